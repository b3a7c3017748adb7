package court

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"court-calibrate/pkg/geometry"
)

func TestRegistryHasBuiltinSports(t *testing.T) {
	assert.Equal(t, []Sport{SportBadminton, SportTennis}, Sports())

	for _, sport := range Sports() {
		m, err := Get(sport)
		require.NoError(t, err)
		require.NoError(t, m.Validate())
	}

	_, err := Get("squash")
	assert.Error(t, err)
}

func TestBadmintonModel(t *testing.T) {
	m, err := Get(SportBadminton)
	require.NoError(t, err)

	assert.InDelta(t, 13.4, m.LengthMeters, 1e-9)
	assert.InDelta(t, 6.1, m.WidthMeters, 1e-9)
	assert.InDelta(t, 1.55, m.NetHeight, 1e-9)

	baseline, ok := m.Line("baseline")
	require.True(t, ok)
	assert.Equal(t, 0.0, baseline.Segment.Start.Y)
	assert.Equal(t, 0.0, baseline.Segment.Start.Z)
	assert.InDelta(t, m.WidthMeters, baseline.Segment.Length(), 1e-9)

	short, ok := m.Line("service-short")
	require.True(t, ok)
	assert.InDelta(t, 13.4/2-1.98, short.Segment.Start.Y, 1e-9)

	net, ok := m.Line("net-line")
	require.True(t, ok)
	assert.InDelta(t, 1.55, net.Segment.Start.Z, 1e-9)
	assert.InDelta(t, 13.4/2, net.Segment.Start.Y, 1e-9)

	_, ok = m.Line("free-throw")
	assert.False(t, ok)
}

func TestTennisModel(t *testing.T) {
	m, err := Get(SportTennis)
	require.NoError(t, err)

	assert.InDelta(t, 23.77, m.LengthMeters, 1e-9)
	assert.InDelta(t, 10.97, m.WidthMeters, 1e-9)

	// Service lines span the singles court only.
	svc, ok := m.Line("service-line")
	require.True(t, ok)
	assert.InDelta(t, 1.37, svc.Segment.Start.X, 1e-9)
	assert.InDelta(t, 10.97-1.37, svc.Segment.End.X, 1e-9)
}

func TestLineAxis(t *testing.T) {
	width := Line{ID: "w", Segment: widthLine(2, 0, 6)}
	length := Line{ID: "l", Segment: lengthLine(3, 0, 13)}
	assert.Equal(t, AxisWidth, width.Axis())
	assert.Equal(t, AxisLength, length.Axis())
	assert.Equal(t, "width", AxisWidth.String())
	assert.Equal(t, "length", AxisLength.String())
}

func TestEdge(t *testing.T) {
	for _, e := range []Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight} {
		assert.True(t, e.Valid())
	}
	assert.False(t, Edge("corner").Valid())

	assert.True(t, EdgeLeft.SideMounted())
	assert.True(t, EdgeRight.SideMounted())
	assert.False(t, EdgeTop.SideMounted())
	assert.False(t, EdgeBottom.SideMounted())
}

func TestModelValidate(t *testing.T) {
	valid := Badminton()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Model)
	}{
		{"missing sport", func(m *Model) { m.Sport = "" }},
		{"zero width", func(m *Model) { m.WidthMeters = 0 }},
		{"too few lines", func(m *Model) { m.Lines = m.Lines[:2] }},
		{"duplicate id", func(m *Model) { m.Lines[1].ID = m.Lines[0].ID }},
		{"empty id", func(m *Model) { m.Lines[0].ID = "" }},
		{"zero length line", func(m *Model) {
			m.Lines[0].Segment.End = m.Lines[0].Segment.Start
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Badminton()
			tt.mutate(m)
			assert.Error(t, m.Validate())
		})
	}
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "court.json")
	m := Tennis()
	require.NoError(t, m.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Sport, loaded.Sport)
	assert.Equal(t, len(m.Lines), len(loaded.Lines))
	assert.Equal(t, m.LineIDs(), loaded.LineIDs())
}

func TestModelBounds(t *testing.T) {
	m := Badminton()
	b := m.Bounds()
	assert.Equal(t, geometry.NewRect(0, 0, 6.1, 13.4), b)
	assert.True(t, b.Contains(geometry.NewPoint2D(3, 7)))
}
