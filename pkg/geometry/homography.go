package geometry

import (
	"math"
)

// Homography represents a 3x3 projective transform between two planes.
// [a11 a12 a13]
// [a21 a22 a23]
// [a31 a32 a33]
type Homography struct {
	A11, A12, A13 float64
	A21, A22, A23 float64
	A31, A32, A33 float64
}

// IdentityHomography returns the identity transform.
func IdentityHomography() Homography {
	return Homography{A11: 1, A22: 1, A33: 1}
}

// HomographyFromElements builds a Homography from a row-major 9-element slice.
func HomographyFromElements(e []float64) Homography {
	if len(e) != 9 {
		return Homography{}
	}
	return Homography{
		A11: e[0], A12: e[1], A13: e[2],
		A21: e[3], A22: e[4], A23: e[5],
		A31: e[6], A32: e[7], A33: e[8],
	}
}

// Elements returns the matrix as a row-major 9-element slice.
func (h Homography) Elements() []float64 {
	return []float64{
		h.A11, h.A12, h.A13,
		h.A21, h.A22, h.A23,
		h.A31, h.A32, h.A33,
	}
}

// Apply transforms a point. Returns false if the point maps to the line at
// infinity (zero homogeneous denominator).
func (h Homography) Apply(p Point2D) (Point2D, bool) {
	denom := h.A31*p.X + h.A32*p.Y + h.A33
	if denom == 0 {
		return Point2D{}, false
	}
	return Point2D{
		X: (h.A11*p.X + h.A12*p.Y + h.A13) / denom,
		Y: (h.A21*p.X + h.A22*p.Y + h.A23) / denom,
	}, true
}

// Mul returns h * other.
func (h Homography) Mul(other Homography) Homography {
	return Homography{
		A11: h.A11*other.A11 + h.A12*other.A21 + h.A13*other.A31,
		A12: h.A11*other.A12 + h.A12*other.A22 + h.A13*other.A32,
		A13: h.A11*other.A13 + h.A12*other.A23 + h.A13*other.A33,
		A21: h.A21*other.A11 + h.A22*other.A21 + h.A23*other.A31,
		A22: h.A21*other.A12 + h.A22*other.A22 + h.A23*other.A32,
		A23: h.A21*other.A13 + h.A22*other.A23 + h.A23*other.A33,
		A31: h.A31*other.A11 + h.A32*other.A21 + h.A33*other.A31,
		A32: h.A31*other.A12 + h.A32*other.A22 + h.A33*other.A32,
		A33: h.A31*other.A13 + h.A32*other.A23 + h.A33*other.A33,
	}
}

// adjoint returns the transpose of the cofactor matrix. For a homography the
// adjoint is a valid inverse up to scale.
func (h Homography) adjoint() Homography {
	return Homography{
		A11: h.A22*h.A33 - h.A23*h.A32,
		A12: h.A13*h.A32 - h.A12*h.A33,
		A13: h.A12*h.A23 - h.A13*h.A22,
		A21: h.A23*h.A31 - h.A21*h.A33,
		A22: h.A11*h.A33 - h.A13*h.A31,
		A23: h.A13*h.A21 - h.A11*h.A23,
		A31: h.A21*h.A32 - h.A22*h.A31,
		A32: h.A12*h.A31 - h.A11*h.A32,
		A33: h.A11*h.A22 - h.A12*h.A21,
	}
}

// Det returns the determinant.
func (h Homography) Det() float64 {
	return h.A11*(h.A22*h.A33-h.A23*h.A32) -
		h.A12*(h.A21*h.A33-h.A23*h.A31) +
		h.A13*(h.A21*h.A32-h.A22*h.A31)
}

// Inverse returns the inverse transform, if it exists.
func (h Homography) Inverse() (Homography, bool) {
	det := h.Det()
	if math.Abs(det) < 1e-12 {
		return Homography{}, false
	}
	adj := h.adjoint()
	inv := Homography{
		A11: adj.A11 / det, A12: adj.A12 / det, A13: adj.A13 / det,
		A21: adj.A21 / det, A22: adj.A22 / det, A23: adj.A23 / det,
		A31: adj.A31 / det, A32: adj.A32 / det, A33: adj.A33 / det,
	}
	return inv.Normalized(), true
}

// Normalized returns the matrix scaled so A33 == 1. If A33 is zero the
// matrix is returned unchanged.
func (h Homography) Normalized() Homography {
	if h.A33 == 0 {
		return h
	}
	k := h.A33
	return Homography{
		A11: h.A11 / k, A12: h.A12 / k, A13: h.A13 / k,
		A21: h.A21 / k, A22: h.A22 / k, A23: h.A23 / k,
		A31: h.A31 / k, A32: h.A32 / k, A33: 1,
	}
}

// IsFinite reports whether every element is a finite number.
func (h Homography) IsFinite() bool {
	for _, e := range h.Elements() {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return false
		}
	}
	return true
}
