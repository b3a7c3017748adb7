// Package video probes clip metadata and grabs frames for overlay rendering.
package video

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"court-calibrate/pkg/geometry"
)

// Info describes a clip's native properties. Pixel coordinates elsewhere in
// the system are normalized against Width and Height.
type Info struct {
	Path   string  `json:"path"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
	Frames int     `json:"frames"`
}

// Size returns the native resolution.
func (i Info) Size() geometry.Size {
	return geometry.NewSize(float64(i.Width), float64(i.Height))
}

// Probe opens a video file and reads its native resolution, frame rate and
// frame count without decoding frames.
func Probe(path string) (Info, error) {
	if _, err := os.Stat(path); err != nil {
		return Info{}, fmt.Errorf("probing video: %w", err)
	}
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening video %s: %w", path, err)
	}
	defer cap.Close()

	info := Info{
		Path:   path,
		Width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    cap.Get(gocv.VideoCaptureFPS),
		Frames: int(cap.Get(gocv.VideoCaptureFrameCount)),
	}
	if info.Width <= 0 || info.Height <= 0 {
		return Info{}, fmt.Errorf("video %s reports invalid resolution %dx%d", path, info.Width, info.Height)
	}
	return info, nil
}

// GrabFrame decodes the frame at the given index into a Mat the caller owns.
func GrabFrame(path string, index int) (gocv.Mat, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("opening video %s: %w", path, err)
	}
	defer cap.Close()

	if index > 0 {
		cap.Set(gocv.VideoCapturePosFrames, float64(index))
	}
	frame := gocv.NewMat()
	if ok := cap.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		return gocv.Mat{}, fmt.Errorf("video %s has no frame at index %d", path, index)
	}
	return frame, nil
}
