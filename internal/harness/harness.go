package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
	_ "time/tzdata"

	"github.com/roach88/busybox/internal/counter"
	"github.com/roach88/busybox/internal/history"
	"github.com/roach88/busybox/internal/motion"
	"github.com/roach88/busybox/internal/prefs"
	"github.com/roach88/busybox/internal/testutil"
)

// Harness is the scenario execution environment.
type Harness struct {
	store   *prefs.SQLiteStore
	service *counter.Service
	clock   *testutil.ManualClock
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each run gets a fresh in-memory database. Execution:
//  1. Open store and write setup values
//  2. Start the counter service on a manual clock
//  3. Deliver steps, recording a trace event per step
//  4. Project history and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	st, err := prefs.Open(":memory:", "")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()

	if err := applySetup(ctx, st, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to apply setup: %w", err)
	}

	opts, err := serviceOptions(scenario)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	clock := testutil.NewManualClock(scenario.StartMS)
	opts = append(opts,
		counter.WithClock(clock),
		counter.WithLogger(logger),
		counter.WithSession("scenario-"+scenario.Name),
	)

	svc, err := counter.New(ctx, st, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}

	h := &Harness{
		store:   st,
		service: svc,
		clock:   clock,
		logger:  logger,
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	p, err := svc.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to project history: %w", err)
	}
	result.Counter = svc.Value()
	result.History = append(result.History, p.Lines()...)
	result.Issues = len(p.Issues)

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// serviceOptions translates scenario rendering and detector settings.
func serviceOptions(scenario *Scenario) ([]counter.Option, error) {
	labels, err := history.ParseLocale(scenario.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", scenario.Locale, err)
	}

	loc := time.UTC
	if scenario.Timezone != "" {
		loc, err = time.LoadLocation(scenario.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", scenario.Timezone, err)
		}
	}

	detector := motion.DefaultConfig()
	if scenario.Shake != nil {
		detector = motion.Config{
			Debounce:  time.Duration(scenario.Shake.DebounceMS) * time.Millisecond,
			Threshold: scenario.Shake.Threshold,
		}
		if err := detector.Validate(); err != nil {
			return nil, fmt.Errorf("invalid shake tuning: %w", err)
		}
	}

	return []counter.Option{
		counter.WithDetector(detector),
		counter.WithHistoryOptions(history.Options{
			Labels: labels,
			Format: history.DateFormatter(loc),
		}),
	}, nil
}

func applySetup(ctx context.Context, st prefs.Store, setup []SetupValue) error {
	for i, v := range setup {
		var err error
		if v.Int != nil {
			err = st.SetInt(ctx, v.Key, *v.Int)
		} else {
			err = st.SetString(ctx, v.Key, *v.String)
		}
		if err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}
	return nil
}

// executeSteps delivers each step to the service in order.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		if step.At != nil {
			h.clock.Set(*step.At)
		}
		at := h.clock.Millis()

		event := TraceEvent{Step: i, Action: step.Action, At: at}

		switch step.Action {
		case ActionPress:
			if _, err := h.service.Increment(ctx); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		case ActionReset:
			if err := h.service.Reset(ctx); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		case ActionSample:
			sensor := step.Sensor
			if sensor == 0 {
				sensor = motion.SensorAccelerometer
			}
			recorded, err := h.service.HandleSensor(ctx, sensor, step.Values, at)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			event.Recorded = recorded
		case ActionShake:
			if err := h.service.RecordShake(ctx, at); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			event.Recorded = true
		case ActionToggleHistory:
			h.service.ToggleHistory()
		default:
			return fmt.Errorf("step %d: unknown action %q", i, step.Action)
		}

		event.Counter = h.service.Value()
		event.Visible = h.service.HistoryVisible()
		result.Trace = append(result.Trace, event)

		h.logger.Info("step completed", "step", i, "action", step.Action, "at", at)
	}
	return nil
}
