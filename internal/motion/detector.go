package motion

import (
	"fmt"
	"math"
	"time"
)

// SensorAccelerometer is the sensor type delivering 3-axis acceleration.
const SensorAccelerometer = 2

const (
	// DefaultDebounce is the minimum gap between accepted samples.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultThreshold is the speed a sample must exceed to count as a shake.
	DefaultThreshold = 800.0

	speedScale = 10000.0
)

// Sample is one accelerometer reading. At is epoch milliseconds.
type Sample struct {
	X, Y, Z float32
	At      int64
}

// Shake is an emitted shake event.
type Shake struct {
	At    int64
	Speed float64
}

// Config holds detector tuning.
type Config struct {
	Debounce  time.Duration
	Threshold float64
}

// DefaultConfig returns the standard debounce window and threshold.
func DefaultConfig() Config {
	return Config{Debounce: DefaultDebounce, Threshold: DefaultThreshold}
}

// Validate reports whether cfg can drive a detector.
func (c Config) Validate() error {
	if c.Debounce < time.Millisecond {
		return fmt.Errorf("debounce must be at least 1ms, got %s", c.Debounce)
	}
	if c.Threshold <= 0 || math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("threshold must be a positive number, got %v", c.Threshold)
	}
	return nil
}

// State is the detector's memory between samples.
type State struct {
	LastAt              int64
	LastX, LastY, LastZ float32
}

// Initial returns the state before any sample has been accepted.
func Initial() State {
	return State{LastAt: -1, LastX: -1, LastY: -1, LastZ: -1}
}

// Step feeds one sample through the detector.
//
// Returns the next state, and the shake with emitted=true when the sample
// crosses the threshold. A debounced sample returns state unchanged.
func Step(cfg Config, state State, s Sample) (next State, shake Shake, emitted bool) {
	elapsed := s.At - state.LastAt
	if elapsed <= cfg.Debounce.Milliseconds() {
		return state, Shake{}, false
	}

	sum := float64(s.X) + float64(s.Y) + float64(s.Z)
	lastSum := float64(state.LastX) + float64(state.LastY) + float64(state.LastZ)
	// Multiply before dividing so integral deltas land exactly on the threshold.
	speed := math.Abs(sum-lastSum) * speedScale / float64(elapsed)

	next = State{LastAt: s.At, LastX: s.X, LastY: s.Y, LastZ: s.Z}
	if speed > cfg.Threshold {
		return next, Shake{At: s.At, Speed: speed}, true
	}
	return next, Shake{}, false
}

// Detector holds State across samples for a host that delivers them one at a
// time. Not safe for concurrent use.
type Detector struct {
	cfg   Config
	state State
}

// NewDetector returns a detector in the initial state.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg, state: Initial()}
}

// Config returns the detector tuning.
func (d *Detector) Config() Config {
	return d.cfg
}

// State returns the current reference sample.
func (d *Detector) State() State {
	return d.state
}

// Observe feeds s to the detector.
func (d *Detector) Observe(s Sample) (Shake, bool) {
	next, shake, emitted := Step(d.cfg, d.state, s)
	d.state = next
	return shake, emitted
}

// HandleSensor adapts a raw sensor callback. Callbacks for other sensor
// types, or with fewer than three values, are ignored.
func (d *Detector) HandleSensor(sensorType int, values []float32, at int64) (Shake, bool) {
	if sensorType != SensorAccelerometer || len(values) < 3 {
		return Shake{}, false
	}
	return d.Observe(Sample{X: values[0], Y: values[1], Z: values[2], At: at})
}

// Reset returns the detector to its initial state.
func (d *Detector) Reset() {
	d.state = Initial()
}
