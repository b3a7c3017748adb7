package calib

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"court-calibrate/internal/court"
	"court-calibrate/pkg/geometry"
)

const (
	// dominantAxisWeight boosts lines aligned with the camera's primary
	// viewing axis: they are measured with less parallax distortion and
	// should dominate the fit.
	dominantAxisWeight = 1.2

	// maxConditionNumber is the singular-value ratio above which the DLT
	// system is rejected as near-degenerate instead of solved.
	maxConditionNumber = 1e10

	// collinearityEps is the relative perpendicular spread below which a
	// point set is treated as collinear.
	collinearityEps = 1e-6
)

// PointPair is one image/world point correspondence derived from a drawn
// line endpoint, with its solver weight.
type PointPair struct {
	LineID string
	Image  geometry.Point2D // normalized pixel coordinates
	World  geometry.Point2D // meters, ground-plane world frame
	Weight float64
}

// Solution is the output of a successful homography solve: the image-to-world
// transform, its inverse for overlay rendering, and the point pairs the fit
// was computed from.
type Solution struct {
	Homography geometry.Homography
	Inverse    geometry.Homography
	Pairs      []PointPair
}

// SolveHomography computes the planar homography mapping normalized image
// coordinates to world-plane coordinates from the stored line
// correspondences, weighted by the camera position guess.
func SolveHomography(model *court.Model, pos Position, corrs []Correspondence) (*Solution, error) {
	pairs, err := BuildPairs(model, pos, corrs)
	if err != nil {
		return nil, err
	}

	h, err := solveDLT(pairs)
	if err != nil {
		return nil, err
	}

	inv, ok := h.Inverse()
	if !ok {
		return nil, fmt.Errorf("%w: homography is singular", ErrIllConditioned)
	}

	return &Solution{Homography: h, Inverse: inv, Pairs: pairs}, nil
}

// BuildPairs derives weighted point pairs from line correspondences. Each
// drawn line contributes its two endpoints paired with the model line's
// ground-plane world endpoints, ordered canonically so drawing direction
// does not matter. Off-plane reference lines (the net) are skipped: a
// planar homography cannot absorb them.
func BuildPairs(model *court.Model, pos Position, corrs []Correspondence) ([]PointPair, error) {
	usable := 0
	var pairs []PointPair
	for _, c := range corrs {
		line, ok := model.Line(c.LineID)
		if !ok {
			return nil, fmt.Errorf("%w: court model %q has no line %q", ErrInvalidInput, model.Sport, c.LineID)
		}
		if line.Segment.Start.Z != 0 || line.Segment.End.Z != 0 {
			continue
		}

		weight := 1.0
		if line.Axis() == pos.DominantAxis() {
			weight = dominantAxisWeight
		}

		imgStart, imgEnd := orientImage(c.Pixel)
		wldStart, wldEnd := orientWorld(line.Segment, pos)

		pairs = append(pairs,
			PointPair{LineID: c.LineID, Image: imgStart, World: wldStart, Weight: weight},
			PointPair{LineID: c.LineID, Image: imgEnd, World: wldEnd, Weight: weight},
		)
		usable++
	}

	if usable < MinCorrespondences {
		return nil, fmt.Errorf("%w: need at least %d on-plane line correspondences, got %d",
			ErrInsufficientData, MinCorrespondences, usable)
	}
	return pairs, nil
}

// orientImage orders the drawn endpoints along the segment's dominant image
// axis so endpoint pairing is independent of the drawing direction.
func orientImage(s geometry.Segment2D) (geometry.Point2D, geometry.Point2D) {
	dx := math.Abs(s.End.X - s.Start.X)
	dy := math.Abs(s.End.Y - s.Start.Y)
	if dx >= dy {
		if s.Start.X <= s.End.X {
			return s.Start, s.End
		}
	} else {
		if s.Start.Y <= s.End.Y {
			return s.Start, s.End
		}
	}
	return s.End, s.Start
}

// orientWorld orders the model line's world endpoints to match the
// image-axis ordering for the camera edge. The dominant-plane projection is
// used only to pick the ordering axis; the returned points stay in the
// world frame. Cameras on the top or right edge see the plane's first axis
// mirrored.
func orientWorld(s geometry.Segment3D, pos Position) (geometry.Point2D, geometry.Point2D) {
	a := planePoint(s.Start, pos.Edge)
	b := planePoint(s.End, pos.Edge)

	du := math.Abs(b.X - a.X)
	dv := math.Abs(b.Y - a.Y)
	ascending := true
	if du >= dv {
		ascending = a.X <= b.X
	} else {
		ascending = a.Y <= b.Y
	}
	mirrored := pos.Edge == court.EdgeTop || pos.Edge == court.EdgeRight
	if ascending == mirrored {
		return s.End.XY(), s.Start.XY()
	}
	return s.Start.XY(), s.End.XY()
}

// planePoint maps a world endpoint onto the camera's dominant viewing
// plane: the first plane axis runs across the camera's view, the second
// runs away from it.
func planePoint(p geometry.Point3D, edge court.Edge) geometry.Point2D {
	if edge.SideMounted() {
		return geometry.NewPoint2D(p.Y, p.X)
	}
	return geometry.NewPoint2D(p.X, p.Y)
}

// solveDLT solves the standard DLT system A·h = 0 for the homography.
// Each point pair contributes two rows scaled by its weight; the solution
// is the right-singular vector of the smallest singular value.
func solveDLT(pairs []PointPair) (geometry.Homography, error) {
	n := len(pairs)
	if n < 2*MinCorrespondences {
		return geometry.Homography{}, fmt.Errorf("%w: need at least %d point pairs, got %d",
			ErrInsufficientData, 2*MinCorrespondences, n)
	}

	imgPts := make([]geometry.Point2D, n)
	wldPts := make([]geometry.Point2D, n)
	for i, p := range pairs {
		imgPts[i] = p.Image
		wldPts[i] = p.World
	}
	if collinear(imgPts) {
		return geometry.Homography{}, fmt.Errorf("%w: drawn lines are collinear, redraw a more distinct line", ErrIllConditioned)
	}
	if collinear(wldPts) {
		return geometry.Homography{}, fmt.Errorf("%w: selected court lines are collinear", ErrIllConditioned)
	}

	// Each pair (x,y) -> (X,Y) gives two rows of the 2Nx9 system:
	//   [-x, -y, -1,  0,  0,  0,  Xx, Xy, X]
	//   [ 0,  0,  0, -x, -y, -1,  Yx, Yy, Y]
	data := make([]float64, 0, 2*n*9)
	for _, p := range pairs {
		x, y := p.Image.X, p.Image.Y
		X, Y := p.World.X, p.World.Y
		w := p.Weight
		data = append(data,
			-w*x, -w*y, -w, 0, 0, 0, w*X*x, w*X*y, w*X,
			0, 0, 0, -w*x, -w*y, -w, w*Y*x, w*Y*y, w*Y,
		)
	}
	A := mat.NewDense(2*n, 9, data)

	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return geometry.Homography{}, fmt.Errorf("%w: SVD did not converge", ErrIllConditioned)
	}

	sigma := svd.Values(nil)
	// The null vector is legitimately near-zero; degeneracy shows up in the
	// second-smallest singular value instead.
	if sigma[len(sigma)-2] <= 0 || sigma[0]/sigma[len(sigma)-2] > maxConditionNumber {
		return geometry.Homography{}, fmt.Errorf("%w: condition number too high for a stable solve", ErrIllConditioned)
	}

	var v mat.Dense
	svd.VTo(&v)
	h := v.ColView(len(sigma) - 1)

	H := geometry.Homography{
		A11: h.AtVec(0), A12: h.AtVec(1), A13: h.AtVec(2),
		A21: h.AtVec(3), A22: h.AtVec(4), A23: h.AtVec(5),
		A31: h.AtVec(6), A32: h.AtVec(7), A33: h.AtVec(8),
	}
	if math.Abs(H.A33) < 1e-12 {
		return geometry.Homography{}, fmt.Errorf("%w: degenerate scale in solution", ErrIllConditioned)
	}
	H = H.Normalized()
	if !H.IsFinite() {
		return geometry.Homography{}, fmt.Errorf("%w: solution is not finite", ErrIllConditioned)
	}
	return H, nil
}

// collinear reports whether all points lie within a hair of a single line,
// relative to the point set's extent.
func collinear(points []geometry.Point2D) bool {
	if len(points) < 3 {
		return true
	}

	// Anchor on the two most distant points, then measure perpendicular spread.
	a, b := points[0], points[1]
	maxDist := a.Distance(b)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].Distance(points[j]); d > maxDist {
				a, b, maxDist = points[i], points[j], d
			}
		}
	}
	if maxDist == 0 {
		return true
	}

	dx := (b.X - a.X) / maxDist
	dy := (b.Y - a.Y) / maxDist
	for _, p := range points {
		perp := math.Abs((p.X-a.X)*dy - (p.Y-a.Y)*dx)
		if perp > collinearityEps*maxDist {
			return false
		}
	}
	return true
}
