package calib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"court-calibrate/pkg/geometry"
)

func TestStoreAddLineNormalizes(t *testing.T) {
	s := NewStore()
	c, err := s.AddLine("baseline", geometry.NewPoint2D(192, 540), geometry.NewPoint2D(1728, 540), 1920, 1080)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, c.Pixel.Start.X, 1e-12)
	assert.InDelta(t, 0.5, c.Pixel.Start.Y, 1e-12)
	assert.InDelta(t, 0.9, c.Pixel.End.X, 1e-12)
	assert.False(t, c.OutOfFrame)
	assert.Equal(t, 1920, c.NativeWidth)
	assert.Equal(t, 1080, c.NativeHeight)
	assert.Equal(t, 1, s.Count())
}

func TestStoreAddLineValidation(t *testing.T) {
	s := NewStore()
	tests := []struct {
		name       string
		id         string
		start, end geometry.Point2D
		w, h       int
	}{
		{"empty id", "", geometry.NewPoint2D(0, 0), geometry.NewPoint2D(1, 1), 1920, 1080},
		{"zero width", "baseline", geometry.NewPoint2D(0, 0), geometry.NewPoint2D(1, 1), 0, 1080},
		{"negative height", "baseline", geometry.NewPoint2D(0, 0), geometry.NewPoint2D(1, 1), 1920, -1},
		{"identical endpoints", "baseline", geometry.NewPoint2D(5, 5), geometry.NewPoint2D(5, 5), 1920, 1080},
		{"nan coordinate", "baseline", geometry.NewPoint2D(math.NaN(), 0), geometry.NewPoint2D(1, 1), 1920, 1080},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddLine(tt.id, tt.start, tt.end, tt.w, tt.h)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, s.Count())
}

func TestStoreOutOfFrameAcceptedNotClamped(t *testing.T) {
	s := NewStore()
	c, err := s.AddLine("baseline", geometry.NewPoint2D(-100, 540), geometry.NewPoint2D(2100, 540), 1920, 1080)
	require.NoError(t, err)

	assert.True(t, c.OutOfFrame)
	// Endpoints keep their drawn positions.
	assert.InDelta(t, -100.0/1920, c.Pixel.Start.X, 1e-12)
	assert.InDelta(t, 2100.0/1920, c.Pixel.End.X, 1e-12)
}

func TestStoreReplacePreservesOrder(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "baseline", 100, 900)
	mustAdd(t, s, "service-short", 100, 700)
	mustAdd(t, s, "center-line", 100, 500)

	// Re-adding the first line keeps it first.
	_, err := s.AddLine("baseline", geometry.NewPoint2D(50, 910), geometry.NewPoint2D(1900, 905), 1920, 1080)
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "baseline", list[0].LineID)
	assert.Equal(t, "service-short", list[1].LineID)
	assert.Equal(t, "center-line", list[2].LineID)
	assert.InDelta(t, 50.0/1920, list[0].Pixel.Start.X, 1e-12)
}

func TestStoreRemoveAndReset(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "baseline", 100, 900)
	mustAdd(t, s, "service-short", 100, 700)

	assert.True(t, s.RemoveLine("baseline"))
	assert.False(t, s.RemoveLine("baseline"))
	assert.Equal(t, 1, s.Count())

	_, ok := s.Get("baseline")
	assert.False(t, ok)
	_, ok = s.Get("service-short")
	assert.True(t, ok)

	s.Reset()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.List())
}

func TestStoreCompleteness(t *testing.T) {
	s := NewStore()
	assert.False(t, s.IsComplete())
	mustAdd(t, s, "baseline", 100, 900)
	mustAdd(t, s, "service-short", 100, 700)
	assert.False(t, s.IsComplete())
	mustAdd(t, s, "center-line", 100, 500)
	assert.True(t, s.IsComplete())

	assert.Equal(t, []string{"baseline", "center-line", "service-short"}, s.LineIDs())
}

// mustAdd stores a horizontal line at pixel height y from x to x+1500.
func mustAdd(t *testing.T, s *Store, id string, x, y float64) {
	t.Helper()
	_, err := s.AddLine(id, geometry.NewPoint2D(x, y), geometry.NewPoint2D(x+1500, y), 1920, 1080)
	require.NoError(t, err)
}
