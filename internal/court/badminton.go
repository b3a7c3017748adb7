package court

import "court-calibrate/pkg/geometry"

// BWF standard doubles court.
// Physical characteristics:
// - Court: 13.4 m x 6.1 m (doubles)
// - Net height: 1.55 m at the posts
// - Short service line: 1.98 m from the net
// - Long service line (doubles): 0.76 m from the baseline
// - Singles sideline: 0.46 m inside the doubles sideline

const (
	// Badminton court dimensions in meters
	BadmintonLength = 13.4
	BadmintonWidth  = 6.1

	BadmintonNetHeight     = 1.55
	BadmintonNetY          = BadmintonLength / 2
	BadmintonShortService  = 1.98 // from net to short service line
	BadmintonLongService   = 0.76 // from baseline to doubles long service line
	BadmintonSinglesMargin = 0.46 // doubles sideline to singles sideline
)

// Badminton returns the fully specified badminton court model.
func Badminton() *Model {
	shortNear := BadmintonNetY - BadmintonShortService
	shortFar := BadmintonNetY + BadmintonShortService
	longNear := BadmintonLongService
	longFar := BadmintonLength - BadmintonLongService
	centerX := BadmintonWidth / 2
	singlesL := BadmintonSinglesMargin
	singlesR := BadmintonWidth - BadmintonSinglesMargin

	return &Model{
		Sport:        SportBadminton,
		LengthMeters: BadmintonLength,
		WidthMeters:  BadmintonWidth,
		NetHeight:    BadmintonNetHeight,
		Lines: []Line{
			{ID: "baseline", Segment: widthLine(0, 0, BadmintonWidth)},
			{ID: "baseline-far", Segment: widthLine(BadmintonLength, 0, BadmintonWidth)},
			{ID: "service-long-doubles", Segment: widthLine(longNear, 0, BadmintonWidth)},
			{ID: "service-long-doubles-far", Segment: widthLine(longFar, 0, BadmintonWidth)},
			{ID: "service-short", Segment: widthLine(shortNear, 0, BadmintonWidth)},
			{ID: "service-short-far", Segment: widthLine(shortFar, 0, BadmintonWidth)},
			{ID: "center-line", Segment: lengthLine(centerX, 0, shortNear)},
			{ID: "center-line-far", Segment: lengthLine(centerX, shortFar, BadmintonLength)},
			{ID: "sideline-doubles-left", Segment: lengthLine(0, 0, BadmintonLength)},
			{ID: "sideline-doubles-right", Segment: lengthLine(BadmintonWidth, 0, BadmintonLength)},
			{ID: "sideline-singles-left", Segment: lengthLine(singlesL, 0, BadmintonLength)},
			{ID: "sideline-singles-right", Segment: lengthLine(singlesR, 0, BadmintonLength)},
			{ID: "net-line", Segment: geometry.Segment3D{
				Start: geometry.NewPoint3D(0, BadmintonNetY, BadmintonNetHeight),
				End:   geometry.NewPoint3D(BadmintonWidth, BadmintonNetY, BadmintonNetHeight),
			}},
		},
	}
}

// widthLine builds a ground line across the court width at length position y.
func widthLine(y, x0, x1 float64) geometry.Segment3D {
	return geometry.Segment3D{
		Start: geometry.NewPoint3D(x0, y, 0),
		End:   geometry.NewPoint3D(x1, y, 0),
	}
}

// lengthLine builds a ground line along the court length at width position x.
func lengthLine(x, y0, y1 float64) geometry.Segment3D {
	return geometry.Segment3D{
		Start: geometry.NewPoint3D(x, y0, 0),
		End:   geometry.NewPoint3D(x, y1, 0),
	}
}
