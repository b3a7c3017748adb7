// Package session owns the state of one calibration session: the selected
// court model, the camera position guess, the accumulated line
// correspondences, and the current homography with its quality result.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"court-calibrate/internal/calib"
	"court-calibrate/internal/court"
	"court-calibrate/pkg/geometry"
)

// Session coordinates the calibration core. All mutations recalibrate from
// the full current correspondence set, so a later edit always supersedes an
// earlier solve; there is no partial update to observe. On solver failure
// the previous valid solution stays current.
type Session struct {
	mu sync.RWMutex

	log logrus.FieldLogger

	model  *court.Model
	camera *calib.Position
	store  *calib.Store

	// Current solution and its quality result. Replaced wholesale by
	// Recalibrate; nil until the first successful solve.
	solution *calib.Solution
	result   *calib.Result

	// lastErr is the failure of the most recent solve attempt, nil after a
	// success. Lets callers distinguish "still using last-good calibration"
	// from "have a fresh one".
	lastErr error
}

// New creates an empty session.
func New(log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		log:   log,
		store: calib.NewStore(),
	}
}

// Transformer returns the coordinate transform service backed by this
// session's current homography.
func (s *Session) Transformer() *Transformer {
	return &Transformer{s: s}
}

// SetCourtModel selects the sport for this session. Changing sport resets
// the drawn lines: correspondences are meaningless across court models.
func (s *Session) SetCourtModel(sport court.Sport) error {
	model, err := court.Get(sport)
	if err != nil {
		return fmt.Errorf("%w: %v", calib.ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != nil && s.model.Sport == sport {
		return nil
	}
	s.model = model
	s.store.Reset()
	s.log.WithField("sport", sport).Info("court model selected")
	return nil
}

// SetCameraPosition records the user's coarse camera pose guess and
// recalibrates if enough lines are already drawn.
func (s *Session) SetCameraPosition(edge court.Edge, distanceMeters, heightMeters float64) error {
	pos, err := calib.NewPosition(edge, distanceMeters, heightMeters)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = &pos
	s.log.WithFields(logrus.Fields{
		"edge":     edge,
		"distance": distanceMeters,
		"height":   heightMeters,
	}).Info("camera position set")
	s.recalibrateLocked()
	return nil
}

// AddLine stores a drawn line correspondence and recalibrates. Pixel
// coordinates are native video pixels; the store normalizes them.
func (s *Session) AddLine(lineID string, pixelStart, pixelEnd geometry.Point2D, nativeWidth, nativeHeight int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model == nil {
		return fmt.Errorf("%w: no court model selected", calib.ErrInvalidInput)
	}
	if _, ok := s.model.Line(lineID); !ok {
		return fmt.Errorf("%w: court model %q has no line %q", calib.ErrInvalidInput, s.model.Sport, lineID)
	}

	c, err := s.store.AddLine(lineID, pixelStart, pixelEnd, nativeWidth, nativeHeight)
	if err != nil {
		return err
	}
	if c.OutOfFrame {
		s.log.WithField("line", lineID).Warn("line endpoint outside visible frame, accepted as drawn")
	}

	s.recalibrateLocked()
	return nil
}

// RemoveLine clears one drawn line and recalibrates from what remains.
func (s *Session) RemoveLine(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.RemoveLine(lineID) {
		s.recalibrateLocked()
	}
}

// Reset clears all drawn lines. The current homography, if any, stays
// usable until a fresh solve replaces it.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
}

// Recalibrate re-solves from the current correspondence set. The result
// supersedes any previous one; on failure the previous valid homography
// remains current and the error is returned.
func (s *Session) Recalibrate() (*calib.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalibrateLocked()
	if s.lastErr != nil {
		return nil, s.lastErr
	}
	return s.result, nil
}

// recalibrateLocked runs a solve over the current store state. Callers hold
// the write lock. Failures never blank out a working calibration.
func (s *Session) recalibrateLocked() {
	if s.model == nil || s.camera == nil {
		s.lastErr = fmt.Errorf("%w: session setup incomplete", calib.ErrInsufficientData)
		return
	}
	corrs := s.store.List()
	if len(corrs) < calib.MinCorrespondences {
		s.lastErr = fmt.Errorf("%w: %d of %d required lines drawn",
			calib.ErrInsufficientData, len(corrs), calib.MinCorrespondences)
		return
	}

	sol, err := calib.SolveHomography(s.model, *s.camera, corrs)
	if err != nil {
		s.lastErr = err
		s.log.WithError(err).Warn("solve failed, keeping previous calibration")
		return
	}

	res, err := calib.Evaluate(s.model, *s.camera, sol, corrs)
	if err != nil {
		s.lastErr = err
		s.log.WithError(err).Warn("evaluation failed, keeping previous calibration")
		return
	}

	// Publish atomically: both values fully constructed before the swap.
	s.solution = sol
	s.result = res
	s.lastErr = nil
	s.log.WithFields(logrus.Fields{
		"quality":  res.Quality,
		"error_px": res.ReprojectionErrorPx,
		"accuracy": res.AccuracyPercent,
	}).Info("calibration updated")
}

// CurrentResult returns the most recent successful calibration result.
func (s *Session) CurrentResult() (*calib.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, false
	}
	res := *s.result
	return &res, true
}

// Calibrated reports whether a valid homography exists.
func (s *Session) Calibrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solution != nil
}

// LastError returns the failure of the most recent solve attempt, or nil if
// it succeeded. A non-nil value alongside Calibrated()==true means the
// session is still serving the last-good homography.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Stale reports whether the current homography predates a failed solve.
func (s *Session) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solution != nil && s.lastErr != nil
}

// Model returns the selected court model, or nil.
func (s *Session) Model() *court.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Camera returns the camera position guess, or false if not yet set.
func (s *Session) Camera() (calib.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.camera == nil {
		return calib.Position{}, false
	}
	return *s.camera, true
}

// Lines returns a copy of the drawn correspondences in insertion order.
func (s *Session) Lines() []calib.Correspondence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.List()
}

// LineCount returns the number of drawn lines.
func (s *Session) LineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Count()
}

// IsComplete reports whether enough lines are drawn to solve.
func (s *Session) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.IsComplete()
}

// currentSolution snapshots the current solution for the Transformer.
func (s *Session) currentSolution() (*calib.Solution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.solution == nil {
		return nil, false
	}
	return s.solution, true
}

// IsNotCalibrated reports whether err means no homography exists yet.
func IsNotCalibrated(err error) bool {
	return errors.Is(err, calib.ErrNotCalibrated)
}
