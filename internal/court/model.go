// Package court provides court model definitions and management.
package court

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"court-calibrate/pkg/geometry"
)

// Sport identifies a supported sport.
type Sport string

const (
	SportBadminton Sport = "badminton"
	SportTennis    Sport = "tennis"
)

// Edge specifies which side of the court the camera is mounted on.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Valid reports whether the edge is one of the four court sides.
func (e Edge) Valid() bool {
	switch e {
	case EdgeTop, EdgeBottom, EdgeLeft, EdgeRight:
		return true
	}
	return false
}

// SideMounted reports whether the camera looks across the court from a
// sideline rather than from behind a baseline.
func (e Edge) SideMounted() bool {
	return e == EdgeLeft || e == EdgeRight
}

// Axis identifies the world axis a reference line runs along.
type Axis int

const (
	AxisWidth  Axis = iota // across the court (X)
	AxisLength             // along the court (Y)
)

func (a Axis) String() string {
	switch a {
	case AxisWidth:
		return "width"
	case AxisLength:
		return "length"
	default:
		return "unknown"
	}
}

// Line is a named reference line with exact world-space endpoints.
// World frame: origin at one court corner, X across the width, Y along the
// length, Z up. Units are meters.
type Line struct {
	ID      string             `json:"id"`
	Segment geometry.Segment3D `json:"segment"`
}

// Axis returns the dominant world axis of the line.
func (l Line) Axis() Axis {
	dx := l.Segment.End.X - l.Segment.Start.X
	dy := l.Segment.End.Y - l.Segment.Start.Y
	if dx*dx >= dy*dy {
		return AxisWidth
	}
	return AxisLength
}

// Model describes a court's reference geometry for one sport.
type Model struct {
	Sport        Sport   `json:"sport"`
	LengthMeters float64 `json:"length_meters"`
	WidthMeters  float64 `json:"width_meters"`
	NetHeight    float64 `json:"net_height_meters"`
	Lines        []Line  `json:"lines"`
}

// Bounds returns the court's ground-plane bounding box.
func (m *Model) Bounds() geometry.Rect {
	return geometry.NewRect(0, 0, m.WidthMeters, m.LengthMeters)
}

// Line returns the reference line with the given id, or false if unknown.
func (m *Model) Line(id string) (Line, bool) {
	for _, l := range m.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return Line{}, false
}

// LineIDs returns the ids of all reference lines, sorted.
func (m *Model) LineIDs() []string {
	ids := make([]string, 0, len(m.Lines))
	for _, l := range m.Lines {
		ids = append(ids, l.ID)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the model for internal consistency.
func (m *Model) Validate() error {
	if m.Sport == "" {
		return fmt.Errorf("court model sport is required")
	}
	if m.LengthMeters <= 0 || m.WidthMeters <= 0 {
		return fmt.Errorf("court dimensions must be positive")
	}
	if len(m.Lines) < 3 {
		return fmt.Errorf("court model needs at least 3 reference lines, got %d", len(m.Lines))
	}
	seen := make(map[string]bool, len(m.Lines))
	for _, l := range m.Lines {
		if l.ID == "" {
			return fmt.Errorf("court line id is required")
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate court line id %q", l.ID)
		}
		seen[l.ID] = true
		if l.Segment.Length() == 0 {
			return fmt.Errorf("court line %q has zero length", l.ID)
		}
	}
	return nil
}

// SaveToFile saves the model to a JSON file.
func (m *Model) SaveToFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a court model from a JSON file.
func LoadFromFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid court model: %w", err)
	}

	return &m, nil
}

// Registry of known court models
var registry = make(map[Sport]*Model)

// Register adds a court model to the registry.
func Register(m *Model) {
	registry[m.Sport] = m
}

// Get returns the court model for a sport, or an error for an unsupported one.
func Get(sport Sport) (*Model, error) {
	if m, ok := registry[sport]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("unsupported sport %q", sport)
}

// Sports returns all registered sports, sorted.
func Sports() []Sport {
	out := make([]Sport, 0, len(registry))
	for s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func init() {
	// Register built-in court models
	Register(Badminton())
	Register(Tennis())
}
