// Package calib implements court-camera calibration: line correspondences,
// weighted DLT homography estimation, and calibration quality scoring.
package calib

import "errors"

// Calibration error taxonomy. Callers classify failures with errors.Is and
// map them to user-facing guidance; none of these conditions is fatal.
var (
	// ErrInvalidInput marks malformed coordinates, non-positive dimensions,
	// or unknown enum values. The rejected call never mutates state.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData marks a solve attempt with fewer than the minimum
	// number of usable correspondences. Expected while the user is still
	// drawing lines.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrIllConditioned marks a correspondence set too close to degenerate
	// for a stable solve. The solver returns this instead of a garbage
	// matrix.
	ErrIllConditioned = errors.New("ill-conditioned system")

	// ErrNotCalibrated marks a transform request made before any successful
	// solve.
	ErrNotCalibrated = errors.New("not calibrated")
)
