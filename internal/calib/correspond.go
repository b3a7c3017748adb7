package calib

import (
	"fmt"
	"sort"

	"court-calibrate/pkg/geometry"
)

// MinCorrespondences is the minimum number of drawn court lines required
// before a solve is attempted: one baseline-family line, one center line,
// one service line.
const MinCorrespondences = 3

// Correspondence pairs a court reference line with a user-drawn video line.
// Pixel endpoints are stored normalized to the 0-1 range against the native
// video resolution, never against any on-screen display scaling.
type Correspondence struct {
	LineID string             `json:"line_id"`
	Pixel  geometry.Segment2D `json:"pixel"`

	// Native video dimensions the endpoints were normalized against.
	NativeWidth  int `json:"native_width"`
	NativeHeight int `json:"native_height"`

	// OutOfFrame is set when an endpoint lies outside [0,1] after
	// normalization. Such lines are accepted, not clamped: users may draw
	// past the visible frame, and clamping would corrupt line direction.
	OutOfFrame bool `json:"out_of_frame,omitempty"`
}

// Store accumulates line correspondences for the active calibration session.
// At most one correspondence exists per court line id; re-adding replaces.
type Store struct {
	byID  map[string]Correspondence
	order []string
}

// NewStore creates an empty correspondence store.
func NewStore() *Store {
	return &Store{byID: make(map[string]Correspondence)}
}

// AddLine normalizes the drawn pixel endpoints against the native video
// dimensions and stores the correspondence. The caller must convert from
// display/canvas coordinates to native pixels before calling.
func (s *Store) AddLine(lineID string, pixelStart, pixelEnd geometry.Point2D, nativeWidth, nativeHeight int) (Correspondence, error) {
	if lineID == "" {
		return Correspondence{}, fmt.Errorf("%w: court line id is required", ErrInvalidInput)
	}
	if nativeWidth <= 0 || nativeHeight <= 0 {
		return Correspondence{}, fmt.Errorf("%w: native video dimensions must be positive, got %dx%d",
			ErrInvalidInput, nativeWidth, nativeHeight)
	}
	if !pixelStart.IsFinite() || !pixelEnd.IsFinite() {
		return Correspondence{}, fmt.Errorf("%w: pixel coordinates must be finite", ErrInvalidInput)
	}

	w := float64(nativeWidth)
	h := float64(nativeHeight)
	norm := geometry.Segment2D{
		Start: geometry.NewPoint2D(pixelStart.X/w, pixelStart.Y/h),
		End:   geometry.NewPoint2D(pixelEnd.X/w, pixelEnd.Y/h),
	}
	if norm.Length() == 0 {
		return Correspondence{}, fmt.Errorf("%w: line %q has identical endpoints", ErrInvalidInput, lineID)
	}

	c := Correspondence{
		LineID:       lineID,
		Pixel:        norm,
		NativeWidth:  nativeWidth,
		NativeHeight: nativeHeight,
		OutOfFrame:   outOfFrame(norm.Start) || outOfFrame(norm.End),
	}

	if _, exists := s.byID[lineID]; !exists {
		s.order = append(s.order, lineID)
	}
	s.byID[lineID] = c
	return c, nil
}

func outOfFrame(p geometry.Point2D) bool {
	return p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1
}

// RemoveLine clears the correspondence for one court line. It returns true
// if a correspondence was present.
func (s *Store) RemoveLine(lineID string) bool {
	if _, ok := s.byID[lineID]; !ok {
		return false
	}
	delete(s.byID, lineID)
	for i, id := range s.order {
		if id == lineID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Reset clears all correspondences.
func (s *Store) Reset() {
	s.byID = make(map[string]Correspondence)
	s.order = nil
}

// Count returns the number of stored correspondences.
func (s *Store) Count() int {
	return len(s.byID)
}

// IsComplete reports whether enough lines are present to attempt a solve.
func (s *Store) IsComplete() bool {
	return len(s.byID) >= MinCorrespondences
}

// Get returns the correspondence for a court line id.
func (s *Store) Get(lineID string) (Correspondence, bool) {
	c, ok := s.byID[lineID]
	return c, ok
}

// List returns a copy of all correspondences in insertion order.
func (s *Store) List() []Correspondence {
	out := make([]Correspondence, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// LineIDs returns the ids of all stored correspondences, sorted.
func (s *Store) LineIDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
