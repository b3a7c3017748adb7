package session

import (
	"fmt"

	"court-calibrate/internal/calib"
	"court-calibrate/pkg/geometry"
)

// Transformer is the runtime-facing coordinate transform service consumed by
// the overlay renderer and the speed pipeline. It holds exactly one current
// solution, replaced wholesale under the session lock: a fully constructed
// solution is swapped in, never patched, so concurrent readers see either
// the old matrix or the new one in full.
type Transformer struct {
	s *Session
}

// ImageToWorld maps a normalized pixel point to world-plane meters using the
// current homography. Returns ErrNotCalibrated before the first successful
// solve.
func (t *Transformer) ImageToWorld(p geometry.Point2D) (geometry.Point2D, error) {
	sol, ok := t.s.currentSolution()
	if !ok {
		return geometry.Point2D{}, fmt.Errorf("%w: no homography solved yet", calib.ErrNotCalibrated)
	}
	out, ok2 := sol.Homography.Apply(p)
	if !ok2 {
		return geometry.Point2D{}, fmt.Errorf("%w: point maps to infinity", calib.ErrInvalidInput)
	}
	return out, nil
}

// WorldToImage maps a world-plane point back into normalized pixel space,
// for overlay rendering.
func (t *Transformer) WorldToImage(p geometry.Point2D) (geometry.Point2D, error) {
	sol, ok := t.s.currentSolution()
	if !ok {
		return geometry.Point2D{}, fmt.Errorf("%w: no homography solved yet", calib.ErrNotCalibrated)
	}
	out, ok2 := sol.Inverse.Apply(p)
	if !ok2 {
		return geometry.Point2D{}, fmt.Errorf("%w: point maps to infinity", calib.ErrInvalidInput)
	}
	return out, nil
}

// BatchTransform maps a full landmark set through the current homography.
// Output order matches input order, one point per input, no silent drops: a
// point that cannot be mapped fails the whole batch.
func (t *Transformer) BatchTransform(points []geometry.Point2D) ([]geometry.Point2D, error) {
	sol, ok := t.s.currentSolution()
	if !ok {
		return nil, fmt.Errorf("%w: no homography solved yet", calib.ErrNotCalibrated)
	}
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		mapped, ok2 := sol.Homography.Apply(p)
		if !ok2 {
			return nil, fmt.Errorf("%w: point %d maps to infinity", calib.ErrInvalidInput, i)
		}
		out[i] = mapped
	}
	return out, nil
}
