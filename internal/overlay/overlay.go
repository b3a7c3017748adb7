// Package overlay renders a calibrated court model back onto video frames so
// operators can judge fit by eye.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"court-calibrate/internal/calib"
	"court-calibrate/internal/session"
	"court-calibrate/pkg/geometry"
)

// Colors for the projected model. Matched lines are drawn differently from
// unmatched ones so gaps in the correspondence set stand out.
var (
	matchedColor   = color.RGBA{0, 255, 0, 255}
	unmatchedColor = color.RGBA{0, 165, 255, 255}
	labelColor     = color.RGBA{255, 255, 255, 255}
	netColor       = color.RGBA{255, 0, 255, 255}
)

// Options controls what the renderer draws.
type Options struct {
	DrawLabels    bool
	DrawNet       bool
	LineThickness int
}

// DefaultOptions returns the standard overlay settings.
func DefaultOptions() Options {
	return Options{DrawLabels: true, DrawNet: true, LineThickness: 2}
}

// Renderer projects court lines through a session's calibration and draws
// them on frames at that session's native resolution.
type Renderer struct {
	sess *session.Session
	opts Options
}

// NewRenderer creates a renderer bound to a calibrated session.
func NewRenderer(sess *session.Session, opts Options) *Renderer {
	if opts.LineThickness <= 0 {
		opts.LineThickness = 2
	}
	return &Renderer{sess: sess, opts: opts}
}

// Draw renders the court model onto frame, which must match the native
// resolution the session's lines were marked against.
func (r *Renderer) Draw(frame *gocv.Mat) error {
	model := r.sess.Model()
	if model == nil {
		return fmt.Errorf("session has no court model")
	}
	if !r.sess.Calibrated() {
		return calib.ErrNotCalibrated
	}
	tr := r.sess.Transformer()

	w := frame.Cols()
	h := frame.Rows()

	matched := make(map[string]bool)
	for _, c := range r.sess.Lines() {
		matched[c.LineID] = true
	}

	for _, line := range model.Lines {
		offPlane := line.Segment.Start.Z != 0 || line.Segment.End.Z != 0
		if offPlane && !r.opts.DrawNet {
			continue
		}
		start, ok1 := r.project(tr, line.Segment.Start, w, h)
		end, ok2 := r.project(tr, line.Segment.End, w, h)
		if !ok1 || !ok2 {
			continue
		}

		col := unmatchedColor
		switch {
		case offPlane:
			col = netColor
		case matched[line.ID]:
			col = matchedColor
		}
		gocv.Line(frame, start, end, col, r.opts.LineThickness)

		if r.opts.DrawLabels {
			mid := image.Point{(start.X + end.X) / 2, (start.Y + end.Y) / 2}
			gocv.PutText(frame, line.ID, mid, gocv.FontHersheySimplex, 0.4, labelColor, 1)
		}
	}
	return nil
}

// project maps a world point to frame pixels. Net lines are projected at
// their ground footprint since the calibration covers the court plane only.
func (r *Renderer) project(tr *session.Transformer, p geometry.Point3D, w, h int) (image.Point, bool) {
	px, err := tr.WorldToImage(p.XY())
	if err != nil {
		return image.Point{}, false
	}
	x := int(px.X * float64(w))
	y := int(px.Y * float64(h))
	// Keep points a little outside the frame so lines crossing the border
	// still draw; discard wild projections.
	if x < -w || x > 2*w || y < -h || y > 2*h {
		return image.Point{}, false
	}
	return image.Point{x, y}, true
}

// RenderToFile draws the overlay on a frame and writes it as an image file.
func (r *Renderer) RenderToFile(frame gocv.Mat, path string) error {
	if err := r.Draw(&frame); err != nil {
		return err
	}
	if ok := gocv.IMWrite(path, frame); !ok {
		return fmt.Errorf("writing overlay image %s", path)
	}
	return nil
}

// DrawQualityBanner paints a caption strip in the top-left corner, typically
// the calibration quality summary.
func DrawQualityBanner(frame *gocv.Mat, text string) {
	gocv.Rectangle(frame, image.Rect(0, 0, 12*len(text)+20, 36), color.RGBA{0, 0, 0, 255}, -1)
	gocv.PutText(frame, text, image.Point{10, 24}, gocv.FontHersheySimplex, 0.6, labelColor, 2)
}
