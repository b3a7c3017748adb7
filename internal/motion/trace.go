package motion

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Trace is a recorded landmark track for one clip, as exported by the pose
// detection stage.
type Trace struct {
	VideoPath string  `json:"video_path,omitempty"`
	FPS       float64 `json:"fps,omitempty"`
	Frames    []Frame `json:"frames"`
}

// LoadTrace reads a landmark trace from a JSON file and returns its frames
// sorted by timestamp.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("parsing trace %s: %w", path, err)
	}
	if len(tr.Frames) == 0 {
		return nil, fmt.Errorf("trace %s contains no frames", path)
	}
	sort.SliceStable(tr.Frames, func(i, j int) bool {
		return tr.Frames[i].TimestampSec < tr.Frames[j].TimestampSec
	})
	return &tr, nil
}
