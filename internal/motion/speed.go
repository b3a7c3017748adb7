// Package motion derives speed and position metrics from pose landmarks
// transformed into world coordinates by a calibrated session.
package motion

import (
	"fmt"
	"math"

	"court-calibrate/pkg/geometry"
)

// Unit conversion factors from meters per second.
const (
	MpsToKmh = 3.6
	MpsToMph = 2.23694
)

// Transformer maps normalized pixel points into world-plane meters. It is
// satisfied by the session transform service.
type Transformer interface {
	BatchTransform(points []geometry.Point2D) ([]geometry.Point2D, error)
}

// Frame is one video frame's pose landmarks in normalized pixel
// coordinates, with its timestamp in seconds from the start of the clip.
type Frame struct {
	TimestampSec float64            `json:"timestamp_sec"`
	Landmarks    []geometry.Point2D `json:"landmarks"`
}

// Sample is one processed frame: the subject's world position and smoothed
// speed at that instant.
type Sample struct {
	TimestampSec float64          `json:"timestamp_sec"`
	World        geometry.Point2D `json:"world"`
	SpeedMps     float64          `json:"speed_mps"`
}

// Config holds tuning parameters for the speed pipeline.
type Config struct {
	// SmoothingAlpha is the exponential-moving-average weight of a new
	// speed sample; higher is more responsive, lower is smoother.
	SmoothingAlpha float64

	// MinDisplacementMeters gates out landmark jitter: displacements below
	// this register as zero movement.
	MinDisplacementMeters float64

	// MaxSpeedMps rejects physically implausible frame-to-frame jumps
	// (tracking glitches) instead of folding them into the average.
	MaxSpeedMps float64
}

// DefaultConfig returns tuning suitable for human court sports.
func DefaultConfig() Config {
	return Config{
		SmoothingAlpha:        0.3,
		MinDisplacementMeters: 0.02,
		MaxSpeedMps:           12.0,
	}
}

// Tracker accumulates speed statistics across frames for one subject.
type Tracker struct {
	transformer Transformer
	cfg         Config

	initialized bool
	lastWorld   geometry.Point2D
	lastTime    float64
	smoothed    float64

	samples     []Sample
	totalMeters float64
	sumSpeed    float64
	peakSpeed   float64
	count       int
}

// NewTracker creates a speed tracker over a transform service.
func NewTracker(transformer Transformer, cfg Config) (*Tracker, error) {
	if transformer == nil {
		return nil, fmt.Errorf("transformer is required")
	}
	if cfg.SmoothingAlpha <= 0 || cfg.SmoothingAlpha > 1 {
		return nil, fmt.Errorf("smoothing alpha must be in (0, 1], got %g", cfg.SmoothingAlpha)
	}
	return &Tracker{transformer: transformer, cfg: cfg}, nil
}

// ProcessFrame transforms a frame's landmarks into world space and folds the
// subject's displacement into the running speed estimate. The subject
// position is the landmark centroid. Frames must arrive in time order.
func (t *Tracker) ProcessFrame(f Frame) (Sample, error) {
	if len(f.Landmarks) == 0 {
		return Sample{}, fmt.Errorf("frame at %gs has no landmarks", f.TimestampSec)
	}

	world, err := t.transformer.BatchTransform(f.Landmarks)
	if err != nil {
		return Sample{}, err
	}
	pos := geometry.Centroid(world)

	if !t.initialized {
		t.initialized = true
		t.lastWorld = pos
		t.lastTime = f.TimestampSec
		s := Sample{TimestampSec: f.TimestampSec, World: pos}
		t.record(s)
		return s, nil
	}

	dt := f.TimestampSec - t.lastTime
	if dt <= 0 {
		return Sample{}, fmt.Errorf("frame at %gs is not after previous frame at %gs", f.TimestampSec, t.lastTime)
	}

	dist := pos.Distance(t.lastWorld)
	if dist < t.cfg.MinDisplacementMeters {
		dist = 0
	}
	raw := dist / dt
	if t.cfg.MaxSpeedMps > 0 && raw > t.cfg.MaxSpeedMps {
		// Tracking glitch: hold position and speed rather than record a
		// teleport.
		s := Sample{TimestampSec: f.TimestampSec, World: t.lastWorld, SpeedMps: t.smoothed}
		t.lastTime = f.TimestampSec
		t.record(s)
		return s, nil
	}

	t.smoothed = (1-t.cfg.SmoothingAlpha)*t.smoothed + t.cfg.SmoothingAlpha*raw
	t.totalMeters += dist
	t.lastWorld = pos
	t.lastTime = f.TimestampSec

	s := Sample{TimestampSec: f.TimestampSec, World: pos, SpeedMps: t.smoothed}
	t.record(s)
	return s, nil
}

func (t *Tracker) record(s Sample) {
	t.samples = append(t.samples, s)
	t.sumSpeed += s.SpeedMps
	if s.SpeedMps > t.peakSpeed {
		t.peakSpeed = s.SpeedMps
	}
	t.count++
}

// Samples returns a copy of all processed samples in order.
func (t *Tracker) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Report summarizes the track so far.
func (t *Tracker) Report() Report {
	r := Report{
		Frames:         t.count,
		DistanceMeters: t.totalMeters,
		PeakSpeedMps:   t.peakSpeed,
	}
	if t.count > 0 {
		r.AvgSpeedMps = t.sumSpeed / float64(t.count)
		r.DurationSec = t.samples[t.count-1].TimestampSec - t.samples[0].TimestampSec
	}
	return r
}

// Reset clears the tracker for a new subject or clip.
func (t *Tracker) Reset() {
	t.initialized = false
	t.lastWorld = geometry.Point2D{}
	t.lastTime = 0
	t.smoothed = 0
	t.samples = nil
	t.totalMeters = 0
	t.sumSpeed = 0
	t.peakSpeed = 0
	t.count = 0
}

// Report holds aggregate movement statistics for a processed clip.
type Report struct {
	Frames         int     `json:"frames"`
	DurationSec    float64 `json:"duration_sec"`
	DistanceMeters float64 `json:"distance_meters"`
	AvgSpeedMps    float64 `json:"avg_speed_mps"`
	PeakSpeedMps   float64 `json:"peak_speed_mps"`
}

// AvgSpeedKmh returns the average speed in km/h.
func (r Report) AvgSpeedKmh() float64 { return r.AvgSpeedMps * MpsToKmh }

// PeakSpeedKmh returns the peak speed in km/h.
func (r Report) PeakSpeedKmh() float64 { return r.PeakSpeedMps * MpsToKmh }

// AvgSpeedMph returns the average speed in mph.
func (r Report) AvgSpeedMph() float64 { return r.AvgSpeedMps * MpsToMph }

// PeakSpeedMph returns the peak speed in mph.
func (r Report) PeakSpeedMph() float64 { return r.PeakSpeedMps * MpsToMph }

// Round2 rounds to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
