package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = int64(1_700_000_000_000)

// primed returns a detector whose reference sample is (0,0,0) at base.
func primed(t *testing.T) *Detector {
	t.Helper()
	d := NewDetector(DefaultConfig())
	_, emitted := d.Observe(Sample{At: base})
	require.False(t, emitted, "first sample must not emit")
	return d
}

func TestInitialState(t *testing.T) {
	assert.Equal(t, State{LastAt: -1, LastX: -1, LastY: -1, LastZ: -1}, Initial())
}

func TestFirstSampleIsAcceptedButDoesNotEmit(t *testing.T) {
	d := NewDetector(DefaultConfig())

	_, emitted := d.Observe(Sample{X: 50, Y: 50, Z: 50, At: base})

	assert.False(t, emitted)
	assert.Equal(t, State{LastAt: base, LastX: 50, LastY: 50, LastZ: 50}, d.State())
}

func TestDebounce_DiscardsSamplesWithinWindow(t *testing.T) {
	for _, gap := range []int64{1, 50, 99, 100} {
		d := primed(t)
		before := d.State()

		_, emitted := d.Observe(Sample{X: 1000, Y: 1000, Z: 1000, At: base + gap})

		assert.False(t, emitted, "gap %dms", gap)
		assert.Equal(t, before, d.State(), "debounced sample must not change state (gap %dms)", gap)
	}
}

func TestDebounce_AcceptsSampleAfterWindow(t *testing.T) {
	d := primed(t)

	shake, emitted := d.Observe(Sample{X: 1000, At: base + 101})

	assert.True(t, emitted)
	assert.Equal(t, base+101, shake.At)
	assert.Equal(t, base+101, d.State().LastAt)
}

func TestThreshold_StrictComparison(t *testing.T) {
	tests := []struct {
		name    string
		delta   float32
		elapsed int64
		emit    bool
	}{
		// 16 * 10000 / 200 = 800
		{"exactly at threshold", 16, 200, false},
		{"just above threshold", 16.5, 200, true},
		{"below threshold", 10, 200, false},
		// 8 * 10000 / 101 ~= 792
		{"short gap below", 8, 101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := primed(t)

			shake, emitted := d.Observe(Sample{X: tt.delta, At: base + tt.elapsed})

			assert.Equal(t, tt.emit, emitted)
			if emitted {
				assert.Greater(t, shake.Speed, DefaultThreshold)
			}
		})
	}
}

func TestStep_NegativeDeltaUsesMagnitude(t *testing.T) {
	state := State{LastAt: base, LastX: 20}

	_, shake, emitted := Step(DefaultConfig(), state, Sample{X: 0, At: base + 200})

	require.True(t, emitted)
	assert.InDelta(t, 1000.0, shake.Speed, 1e-9)
}

func TestStep_StateAdvancesWithoutEmission(t *testing.T) {
	state := State{LastAt: base}
	s := Sample{X: 1, Y: 2, Z: 3, At: base + 500}

	next, _, emitted := Step(DefaultConfig(), state, s)

	assert.False(t, emitted)
	assert.Equal(t, State{LastAt: s.At, LastX: 1, LastY: 2, LastZ: 3}, next)
}

func TestStep_ComparesAgainstLastAcceptedSample(t *testing.T) {
	d := primed(t)

	// Accepted, no shake: reference moves to 5.
	_, emitted := d.Observe(Sample{X: 5, At: base + 1000})
	require.False(t, emitted)

	// Same sum as the reference: no change, no shake.
	_, emitted = d.Observe(Sample{X: 2, Y: 3, At: base + 1200})
	assert.False(t, emitted)
}

func TestHandleSensor(t *testing.T) {
	d := primed(t)

	_, emitted := d.HandleSensor(1, []float32{1000, 0, 0}, base+500)
	assert.False(t, emitted, "non-accelerometer sensor must be ignored")
	assert.Equal(t, base, d.State().LastAt)

	_, emitted = d.HandleSensor(SensorAccelerometer, []float32{1000, 0}, base+500)
	assert.False(t, emitted, "short value slice must be ignored")

	_, emitted = d.HandleSensor(SensorAccelerometer, []float32{1000, 0, 0}, base+500)
	assert.True(t, emitted)
}

func TestDetector_Reset(t *testing.T) {
	d := primed(t)
	d.Reset()
	assert.Equal(t, Initial(), d.State())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Debounce: 0, Threshold: 800}.Validate())
	assert.Error(t, Config{Debounce: time.Millisecond, Threshold: 0}.Validate())
	assert.Error(t, Config{Debounce: time.Millisecond, Threshold: -1}.Validate())
}

func TestCustomConfig(t *testing.T) {
	d := NewDetector(Config{Debounce: 500 * time.Millisecond, Threshold: 100})
	d.Observe(Sample{At: base})

	_, emitted := d.Observe(Sample{X: 100, At: base + 400})
	assert.False(t, emitted, "inside custom debounce window")

	_, emitted = d.Observe(Sample{X: 100, At: base + 1000})
	assert.True(t, emitted, "100 * 10000 / 1000 = 1000 > 100")
}
