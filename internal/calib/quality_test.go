package calib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"court-calibrate/internal/court"
	"court-calibrate/pkg/geometry"
)

func TestEvaluatePerfectSceneIsExcellent(t *testing.T) {
	model := badminton(t)
	pos := bottomCamera(t)
	corrs := buildScene(t, model, sceneLines, 1920, 1080, 0, false)

	sol, err := SolveHomography(model, pos, corrs)
	require.NoError(t, err)
	res, err := Evaluate(model, pos, sol, corrs)
	require.NoError(t, err)

	assert.Equal(t, QualityExcellent, res.Quality)
	assert.Equal(t, 95.0, res.AccuracyPercent)
	assert.Less(t, res.ReprojectionErrorPx, 0.5)

	require.NotNil(t, res.Example)
	assert.Equal(t, geometry.NewPoint2D(0.5, 0.5), res.Example.ImagePoint)
	want, ok := groundTruth.Apply(geometry.NewPoint2D(0.5, 0.5))
	require.True(t, ok)
	assert.InDelta(t, want.X, res.Example.WorldPoint.X, 1e-6)
	assert.InDelta(t, want.Y, res.Example.WorldPoint.Y, 1e-6)
	assert.Greater(t, res.Example.PixelsPerMeter, 0.0)
}

func TestEvaluateErrorGrowsWithNoise(t *testing.T) {
	model := badminton(t)
	pos := bottomCamera(t)

	var errs []float64
	for _, noise := range []float64{0, 2, 8} {
		corrs := buildScene(t, model, sceneLines, 1920, 1080, noise, false)
		sol, err := SolveHomography(model, pos, corrs)
		require.NoError(t, err)
		res, err := Evaluate(model, pos, sol, corrs)
		require.NoError(t, err)
		errs = append(errs, res.ReprojectionErrorPx)
	}

	assert.Less(t, errs[0], errs[1])
	assert.Less(t, errs[1], errs[2])
}

func TestEvaluateWrongCameraEdgeIsPoor(t *testing.T) {
	model := badminton(t)
	corrs := buildScene(t, model, sceneLines, 1920, 1080, 0, false)

	// The scene was drawn as seen from behind a baseline. Claiming a
	// side-mounted camera makes every drawn line's orientation contradict
	// the expectation, and the penalties push the score out of every band.
	sidePos, err := NewPosition(court.EdgeLeft, 4, 2.5)
	require.NoError(t, err)

	sol, err := SolveHomography(model, sidePos, corrs)
	require.NoError(t, err)
	res, err := Evaluate(model, sidePos, sol, corrs)
	require.NoError(t, err)

	assert.Equal(t, QualityPoor, res.Quality)
	assert.Equal(t, 50.0, res.AccuracyPercent)
}

func TestEvaluateNilSolution(t *testing.T) {
	model := badminton(t)
	_, err := Evaluate(model, bottomCamera(t), nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestClassifyOrientation(t *testing.T) {
	seg := func(x0, y0, x1, y1 float64) geometry.Segment2D {
		return geometry.Segment2D{Start: geometry.NewPoint2D(x0, y0), End: geometry.NewPoint2D(x1, y1)}
	}
	tests := []struct {
		name string
		seg  geometry.Segment2D
		want Orientation
	}{
		{"flat", seg(0, 0, 1, 0), OrientHorizontal},
		{"slightly tilted", seg(0, 0, 1, 0.5), OrientHorizontal},
		{"upright", seg(0, 0, 0, 1), OrientVertical},
		{"mostly upright", seg(0, 0, 0.4, 1), OrientVertical},
		{"forty five", seg(0, 0, 1, 1), OrientDiagonal},
		{"reverse forty five", seg(1, 1, 0, 0), OrientDiagonal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOrientation(tt.seg))
		})
	}
}

func TestExpectedOrientation(t *testing.T) {
	model := badminton(t)
	baseline, ok := model.Line("baseline")
	require.True(t, ok)
	sideline, ok := model.Line("sideline-doubles-left")
	require.True(t, ok)

	bottom := bottomCamera(t)
	assert.Equal(t, OrientHorizontal, ExpectedOrientation(baseline, bottom))
	assert.Equal(t, OrientVertical, ExpectedOrientation(sideline, bottom))

	side, err := NewPosition(court.EdgeRight, 4, 2.5)
	require.NoError(t, err)
	assert.Equal(t, OrientVertical, ExpectedOrientation(baseline, side))
	assert.Equal(t, OrientHorizontal, ExpectedOrientation(sideline, side))
}
