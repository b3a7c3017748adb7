package court

import "court-calibrate/pkg/geometry"

// ITF standard doubles court.
// Physical characteristics:
// - Court: 23.77 m x 10.97 m (doubles); singles width 8.23 m
// - Net height: 1.07 m at the posts
// - Service line: 6.40 m from the net
// - Singles sideline: 1.37 m inside the doubles sideline

const (
	// Tennis court dimensions in meters
	TennisLength = 23.77
	TennisWidth  = 10.97

	TennisNetHeight     = 1.07
	TennisNetY          = TennisLength / 2
	TennisServiceDist   = 6.40 // from net to service line
	TennisSinglesMargin = 1.37 // doubles sideline to singles sideline
)

// Tennis returns the fully specified tennis court model.
func Tennis() *Model {
	serviceNear := TennisNetY - TennisServiceDist
	serviceFar := TennisNetY + TennisServiceDist
	singlesL := TennisSinglesMargin
	singlesR := TennisWidth - TennisSinglesMargin
	centerX := TennisWidth / 2

	return &Model{
		Sport:        SportTennis,
		LengthMeters: TennisLength,
		WidthMeters:  TennisWidth,
		NetHeight:    TennisNetHeight,
		Lines: []Line{
			{ID: "baseline", Segment: widthLine(0, 0, TennisWidth)},
			{ID: "baseline-far", Segment: widthLine(TennisLength, 0, TennisWidth)},
			// Service lines span the singles court only
			{ID: "service-line", Segment: widthLine(serviceNear, singlesL, singlesR)},
			{ID: "service-line-far", Segment: widthLine(serviceFar, singlesL, singlesR)},
			{ID: "center-service-line", Segment: lengthLine(centerX, serviceNear, serviceFar)},
			{ID: "sideline-doubles-left", Segment: lengthLine(0, 0, TennisLength)},
			{ID: "sideline-doubles-right", Segment: lengthLine(TennisWidth, 0, TennisLength)},
			{ID: "sideline-singles-left", Segment: lengthLine(singlesL, 0, TennisLength)},
			{ID: "sideline-singles-right", Segment: lengthLine(singlesR, 0, TennisLength)},
			{ID: "net-line", Segment: geometry.Segment3D{
				Start: geometry.NewPoint3D(0, TennisNetY, TennisNetHeight),
				End:   geometry.NewPoint3D(TennisWidth, TennisNetY, TennisNetHeight),
			}},
		},
	}
}
