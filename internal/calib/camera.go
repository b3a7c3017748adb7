package calib

import (
	"fmt"

	"court-calibrate/internal/court"
	"court-calibrate/pkg/geometry"
)

// Position is the coarse camera pose guess supplied by the user: which side
// of the court the camera is mounted on, how far from the court edge, and
// how high above the ground. It seeds correspondence weighting and the
// orientation-consistency checks; the solver never mutates it.
type Position struct {
	Edge           court.Edge `json:"edge"`
	DistanceMeters float64    `json:"distance_meters"`
	HeightMeters   float64    `json:"height_meters"`
}

// NewPosition validates and builds a camera position guess.
func NewPosition(edge court.Edge, distanceMeters, heightMeters float64) (Position, error) {
	if !edge.Valid() {
		return Position{}, fmt.Errorf("%w: unknown camera edge %q", ErrInvalidInput, edge)
	}
	if distanceMeters <= 0 {
		return Position{}, fmt.Errorf("%w: camera distance must be positive, got %g", ErrInvalidInput, distanceMeters)
	}
	if heightMeters <= 0 {
		return Position{}, fmt.Errorf("%w: camera height must be positive, got %g", ErrInvalidInput, heightMeters)
	}
	return Position{Edge: edge, DistanceMeters: distanceMeters, HeightMeters: heightMeters}, nil
}

// WorldEstimate derives the approximate 3D camera position for a court:
// centered along the mounting edge, DistanceMeters outside the court
// boundary, HeightMeters above the ground.
func (p Position) WorldEstimate(m *court.Model) geometry.Point3D {
	switch p.Edge {
	case court.EdgeBottom:
		return geometry.NewPoint3D(m.WidthMeters/2, -p.DistanceMeters, p.HeightMeters)
	case court.EdgeTop:
		return geometry.NewPoint3D(m.WidthMeters/2, m.LengthMeters+p.DistanceMeters, p.HeightMeters)
	case court.EdgeLeft:
		return geometry.NewPoint3D(-p.DistanceMeters, m.LengthMeters/2, p.HeightMeters)
	case court.EdgeRight:
		return geometry.NewPoint3D(m.WidthMeters+p.DistanceMeters, m.LengthMeters/2, p.HeightMeters)
	}
	return geometry.Point3D{}
}

// DominantAxis returns the world axis that runs across the camera's view:
// lines along this axis appear roughly horizontal on screen and carry the
// least parallax distortion for this mounting edge.
func (p Position) DominantAxis() court.Axis {
	if p.Edge.SideMounted() {
		return court.AxisLength
	}
	return court.AxisWidth
}
