package calib

import (
	"fmt"

	"court-calibrate/internal/court"
	"court-calibrate/pkg/geometry"
)

// Quality is the human-readable calibration quality label.
type Quality string

const (
	QualityExcellent  Quality = "Excellent"
	QualityGood       Quality = "Good"
	QualityFair       Quality = "Fair"
	QualityAcceptable Quality = "Acceptable"
	QualityPoor       Quality = "Poor"
)

// Orientation classifies how a drawn line runs on screen.
type Orientation string

const (
	OrientHorizontal Orientation = "horizontal"
	OrientVertical   Orientation = "vertical"
	OrientDiagonal   Orientation = "diagonal"
)

const (
	// orientationTolerance is the angular distance from horizontal or
	// vertical within which a drawn line still counts as that orientation.
	orientationTolerance = 37.5 // degrees

	// Penalties added to the reprojection error before thresholding. A low
	// DLT residual can still describe a physically implausible calibration;
	// these keep the label honest.
	wrongOrientationPenalty = 3.0
	diagonalPenalty         = 2.0
)

// Error thresholds in pixels and the accuracy step for each label.
var qualitySteps = []struct {
	maxErrorPx float64
	label      Quality
	accuracy   float64
}{
	{2, QualityExcellent, 95},
	{5, QualityGood, 85},
	{10, QualityFair, 75},
	{15, QualityAcceptable, 65},
}

const poorAccuracy = 50

// ExampleTransform is one image/world sample pair for results display.
type ExampleTransform struct {
	ImagePoint     geometry.Point2D `json:"image_point"`
	WorldPoint     geometry.Point2D `json:"world_point"`
	PixelsPerMeter float64          `json:"pixels_per_meter"`
}

// Result is the outcome of scoring a solved homography against the
// correspondences that produced it. A new Result supersedes the previous one
// wholesale; results are never merged.
type Result struct {
	AccuracyPercent     float64           `json:"accuracy_percent"`
	ReprojectionErrorPx float64           `json:"reprojection_error_px"`
	Quality             Quality           `json:"quality"`
	Example             *ExampleTransform `json:"example_transform,omitempty"`
}

// Evaluate scores a solution against its source correspondences. The base
// metric is pixel-space reprojection error (world endpoints projected back
// into the image and compared against the drawn endpoints); orientation
// penalties are added on top before thresholding. Deterministic by
// construction: no randomness, no clock.
func Evaluate(model *court.Model, pos Position, sol *Solution, corrs []Correspondence) (*Result, error) {
	if sol == nil || len(sol.Pairs) == 0 {
		return nil, fmt.Errorf("%w: no solution to evaluate", ErrInsufficientData)
	}

	native := make(map[string]Correspondence, len(corrs))
	for _, c := range corrs {
		native[c.LineID] = c
	}

	errPx, err := ReprojectionError(sol, native)
	if err != nil {
		return nil, err
	}

	penalty := orientationPenalty(model, pos, corrs)
	scored := errPx + penalty

	label, accuracy := classify(scored)
	res := &Result{
		AccuracyPercent:     accuracy,
		ReprojectionErrorPx: errPx,
		Quality:             label,
		Example:             exampleTransform(sol, corrs),
	}
	return res, nil
}

// ReprojectionError projects each pair's world point back into the image
// through the inverse homography and averages the pixel-space distance to
// the drawn point. Normalized deltas are scaled by the native dimensions the
// line was drawn against, keeping the metric resolution-honest.
func ReprojectionError(sol *Solution, corrsByLine map[string]Correspondence) (float64, error) {
	var total float64
	count := 0
	for _, p := range sol.Pairs {
		c, ok := corrsByLine[p.LineID]
		if !ok {
			return 0, fmt.Errorf("%w: no correspondence for line %q", ErrInvalidInput, p.LineID)
		}
		proj, ok2 := sol.Inverse.Apply(p.World)
		if !ok2 {
			return 0, fmt.Errorf("%w: world point projects to infinity", ErrIllConditioned)
		}
		dx := (proj.X - p.Image.X) * float64(c.NativeWidth)
		dy := (proj.Y - p.Image.Y) * float64(c.NativeHeight)
		total += geometry.NewPoint2D(dx, dy).Distance(geometry.Point2D{})
		count++
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: no point pairs", ErrInsufficientData)
	}
	return total / float64(count), nil
}

// orientationPenalty checks each drawn line's on-screen orientation against
// the orientation expected for the camera edge and accumulates fixed
// penalties for mismatches.
func orientationPenalty(model *court.Model, pos Position, corrs []Correspondence) float64 {
	var penalty float64
	for _, c := range corrs {
		line, ok := model.Line(c.LineID)
		if !ok {
			continue
		}
		if line.Segment.Start.Z != 0 || line.Segment.End.Z != 0 {
			continue
		}

		drawn := ClassifyOrientation(c.Pixel)
		expected := ExpectedOrientation(line, pos)
		if drawn == expected {
			continue
		}
		penalty += wrongOrientationPenalty
		if drawn == OrientDiagonal {
			penalty += diagonalPenalty
		}
	}
	return penalty
}

// ClassifyOrientation buckets a drawn segment as horizontal, vertical, or
// diagonal by its on-screen angle.
func ClassifyOrientation(s geometry.Segment2D) Orientation {
	angle := s.Angle() // [0, 180)
	switch {
	case angle <= orientationTolerance || angle >= 180-orientationTolerance:
		return OrientHorizontal
	case angle >= 90-orientationTolerance && angle <= 90+orientationTolerance:
		return OrientVertical
	default:
		return OrientDiagonal
	}
}

// ExpectedOrientation returns the on-screen orientation a court line should
// have for the given camera position: lines along the camera's dominant axis
// run roughly horizontally, all other ground lines roughly vertically.
func ExpectedOrientation(line court.Line, pos Position) Orientation {
	if line.Axis() == pos.DominantAxis() {
		return OrientHorizontal
	}
	return OrientVertical
}

func classify(scoredError float64) (Quality, float64) {
	for _, step := range qualitySteps {
		if scoredError < step.maxErrorPx {
			return step.label, step.accuracy
		}
	}
	return QualityPoor, poorAccuracy
}

// exampleTransform samples the frame center through the homography and
// derives the local pixels-per-meter scale for display.
func exampleTransform(sol *Solution, corrs []Correspondence) *ExampleTransform {
	if len(corrs) == 0 {
		return nil
	}
	nativeW := float64(corrs[0].NativeWidth)

	center := geometry.NewPoint2D(0.5, 0.5)
	world, ok := sol.Homography.Apply(center)
	if !ok {
		return nil
	}

	// Local scale: meters covered by a small horizontal pixel step.
	const step = 0.01
	probe, ok := sol.Homography.Apply(geometry.NewPoint2D(0.5+step, 0.5))
	if !ok {
		return nil
	}
	meters := world.Distance(probe)
	if meters == 0 {
		return nil
	}

	return &ExampleTransform{
		ImagePoint:     center,
		WorldPoint:     world,
		PixelsPerMeter: (step * nativeW) / meters,
	}
}
