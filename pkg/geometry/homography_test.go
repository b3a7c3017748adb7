package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityHomographyApply(t *testing.T) {
	h := IdentityHomography()
	p := NewPoint2D(0.37, -1.2)
	out, ok := h.Apply(p)
	require.True(t, ok)
	assert.Equal(t, p, out)
}

func TestHomographyApplyScaleTranslate(t *testing.T) {
	// X = 2x + 1, Y = 3y - 2
	h := Homography{A11: 2, A13: 1, A22: 3, A23: -2, A33: 1}
	out, ok := h.Apply(NewPoint2D(1, 1))
	require.True(t, ok)
	assert.InDelta(t, 3.0, out.X, 1e-12)
	assert.InDelta(t, 1.0, out.Y, 1e-12)
}

func TestHomographyApplyAtInfinity(t *testing.T) {
	// Denominator x + y - 1 vanishes along a line.
	h := Homography{A11: 1, A22: 1, A31: 1, A32: 1, A33: -1}
	_, ok := h.Apply(NewPoint2D(0.5, 0.5))
	assert.False(t, ok)
}

func TestHomographyInverseRoundTrip(t *testing.T) {
	h := Homography{
		A11: 6.1, A12: 0.3, A13: -0.2,
		A21: -0.1, A22: 13.4, A23: 0.5,
		A31: 0.08, A32: 0.15, A33: 1,
	}
	inv, ok := h.Inverse()
	require.True(t, ok)

	points := []Point2D{
		NewPoint2D(0, 0),
		NewPoint2D(0.25, 0.75),
		NewPoint2D(1, 1),
		NewPoint2D(0.5, 0.1),
	}
	for _, p := range points {
		fwd, ok1 := h.Apply(p)
		require.True(t, ok1)
		back, ok2 := inv.Apply(fwd)
		require.True(t, ok2)
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestHomographySingularInverse(t *testing.T) {
	// Rank-deficient: second row is a multiple of the first.
	h := Homography{A11: 1, A12: 2, A21: 2, A22: 4, A33: 0}
	_, ok := h.Inverse()
	assert.False(t, ok)
}

func TestHomographyMulMatchesComposition(t *testing.T) {
	a := Homography{A11: 2, A22: 3, A33: 1, A13: 1}
	b := Homography{A11: 1, A22: 1, A33: 1, A31: 0.1, A32: 0.2}

	p := NewPoint2D(0.4, 0.6)
	viaB, ok := b.Apply(p)
	require.True(t, ok)
	viaBoth, ok := a.Apply(viaB)
	require.True(t, ok)

	composed, ok := a.Mul(b).Apply(p)
	require.True(t, ok)
	assert.InDelta(t, viaBoth.X, composed.X, 1e-12)
	assert.InDelta(t, viaBoth.Y, composed.Y, 1e-12)
}

func TestHomographyNormalized(t *testing.T) {
	h := Homography{A11: 4, A22: 6, A33: 2}
	n := h.Normalized()
	assert.Equal(t, 1.0, n.A33)
	assert.Equal(t, 2.0, n.A11)
	assert.Equal(t, 3.0, n.A22)

	// A33 == 0 stays untouched.
	z := Homography{A11: 1, A33: 0}
	assert.Equal(t, z, z.Normalized())
}

func TestHomographyElementsRoundTrip(t *testing.T) {
	e := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	h := HomographyFromElements(e)
	assert.Equal(t, e, h.Elements())

	assert.Equal(t, Homography{}, HomographyFromElements([]float64{1, 2}))
}
