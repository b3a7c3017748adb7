package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"court-calibrate/internal/calib"
	"court-calibrate/internal/court"
	"court-calibrate/pkg/geometry"
)

// FileVersion is the current session file format version.
const FileVersion = 1

// File is the persisted form of a calibration session (.courtcal). The
// session state is plain data: drawn lines with the native dimensions they
// were normalized against, the camera guess, and the last result. The
// homography itself is not persisted; it is re-derived on load.
type File struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Sport  court.Sport            `json:"sport"`
	Camera *calib.Position        `json:"camera,omitempty"`
	Lines  []calib.Correspondence `json:"lines,omitempty"`

	// Last known result, informational only; superseded by the re-solve on
	// load.
	Result *calib.Result `json:"result,omitempty"`
}

// SaveToFile writes the session state to a JSON session file.
func (s *Session) SaveToFile(path string) error {
	s.mu.RLock()
	f := File{
		Version:  FileVersion,
		Created:  time.Now(),
		Modified: time.Now(),
		Lines:    s.store.List(),
		Result:   s.result,
	}
	if s.model != nil {
		f.Sport = s.model.Sport
	}
	if s.camera != nil {
		cam := *s.camera
		f.Camera = &cam
	}
	s.mu.RUnlock()

	if f.Sport == "" {
		return fmt.Errorf("%w: cannot save a session without a court model", calib.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile reads a session file and rebuilds a live session from it,
// re-solving the homography from the persisted lines.
func LoadFromFile(path string, log logrus.FieldLogger) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Version != FileVersion {
		return nil, fmt.Errorf("%w: unsupported session file version %d", calib.ErrInvalidInput, f.Version)
	}

	s := New(log)
	if err := s.SetCourtModel(f.Sport); err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}
	if f.Camera != nil {
		if err := s.SetCameraPosition(f.Camera.Edge, f.Camera.DistanceMeters, f.Camera.HeightMeters); err != nil {
			return nil, fmt.Errorf("invalid session file: %w", err)
		}
	}
	for _, c := range f.Lines {
		start := geometry.NewPoint2D(c.Pixel.Start.X*float64(c.NativeWidth), c.Pixel.Start.Y*float64(c.NativeHeight))
		end := geometry.NewPoint2D(c.Pixel.End.X*float64(c.NativeWidth), c.Pixel.End.Y*float64(c.NativeHeight))
		if err := s.AddLine(c.LineID, start, end, c.NativeWidth, c.NativeHeight); err != nil {
			return nil, fmt.Errorf("invalid session file line %q: %w", c.LineID, err)
		}
	}
	return s, nil
}
