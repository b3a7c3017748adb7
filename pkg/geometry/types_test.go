package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint2DArithmetic(t *testing.T) {
	p := NewPoint2D(3, 4)
	assert.InDelta(t, 5.0, p.Distance(Point2D{}), 1e-12)
	assert.Equal(t, NewPoint2D(4, 6), p.Add(NewPoint2D(1, 2)))
	assert.Equal(t, NewPoint2D(2, 2), p.Sub(NewPoint2D(1, 2)))
	assert.Equal(t, NewPoint2D(6, 8), p.Scale(2))
}

func TestPoint2DIsFinite(t *testing.T) {
	assert.True(t, NewPoint2D(1, -2).IsFinite())
	assert.False(t, NewPoint2D(math.NaN(), 0).IsFinite())
	assert.False(t, NewPoint2D(0, math.Inf(1)).IsFinite())
}

func TestPoint3DXY(t *testing.T) {
	p := NewPoint3D(1, 2, 3)
	assert.Equal(t, NewPoint2D(1, 2), p.XY())
	assert.InDelta(t, math.Sqrt(14), p.Distance(Point3D{}), 1e-12)
}

func TestSegmentAngle(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment2D
		want float64
	}{
		{"horizontal", Segment2D{Start: NewPoint2D(0, 0), End: NewPoint2D(1, 0)}, 0},
		{"horizontal reversed", Segment2D{Start: NewPoint2D(1, 0), End: NewPoint2D(0, 0)}, 0},
		{"vertical", Segment2D{Start: NewPoint2D(0, 0), End: NewPoint2D(0, 1)}, 90},
		{"diagonal", Segment2D{Start: NewPoint2D(0, 0), End: NewPoint2D(1, 1)}, 45},
		{"diagonal reversed", Segment2D{Start: NewPoint2D(1, 1), End: NewPoint2D(0, 0)}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.seg.Angle(), 1e-9)
		})
	}
}

func TestSegmentLengthMidpoint(t *testing.T) {
	s := Segment2D{Start: NewPoint2D(0, 0), End: NewPoint2D(6, 8)}
	assert.InDelta(t, 10.0, s.Length(), 1e-12)
	assert.Equal(t, NewPoint2D(3, 4), s.Midpoint())
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 6.1, 13.4)
	assert.True(t, r.Contains(NewPoint2D(3, 7)))
	assert.True(t, r.Contains(NewPoint2D(0, 0)))
	assert.True(t, r.Contains(NewPoint2D(6.1, 13.4)))
	assert.False(t, r.Contains(NewPoint2D(-0.1, 5)))
	assert.False(t, r.Contains(NewPoint2D(3, 14)))
	assert.Equal(t, NewPoint2D(3.05, 6.7), r.Center())
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point2D{}, Centroid(nil))
	pts := []Point2D{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	assert.Equal(t, NewPoint2D(1, 1), Centroid(pts))
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox(nil))
	pts := []Point2D{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}}
	box := BoundingBox(pts)
	assert.Equal(t, -2.0, box.X)
	assert.Equal(t, -1.0, box.Y)
	assert.Equal(t, 6.0, box.Width)
	assert.Equal(t, 6.0, box.Height)
}
