package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/busybox/internal/counter"
	"github.com/roach88/busybox/internal/eventlog"
	"github.com/roach88/busybox/internal/history"
	"github.com/roach88/busybox/internal/prefs"
)

// AssertionContext gives assertions access to the store after the run.
type AssertionContext struct {
	Store prefs.Store
	Ctx   context.Context
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s at=%d counter=%d\n", event.Step, event.Action, event.At, event.Counter)
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string
	for _, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertCounter:
		return assertCounter(result, a)
	case AssertHistoryLines:
		return assertHistoryLines(result, a)
	case AssertHistoryCount:
		return assertHistoryCount(result, a, actx)
	case AssertStoreString:
		return assertStoreString(result, a, actx)
	case AssertIssues:
		if result.Issues != *a.Count {
			return &AssertionError{
				Type:     AssertIssues,
				Expected: fmt.Sprintf("%d skipped tokens", *a.Count),
				Actual:   fmt.Sprintf("%d skipped tokens", result.Issues),
				Trace:    result.Trace,
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertCounter(result *Result, a Assertion) error {
	if result.Counter == *a.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertCounter,
		Expected: fmt.Sprintf("counter %d", *a.Value),
		Actual:   fmt.Sprintf("counter %d", result.Counter),
		Trace:    result.Trace,
	}
}

func assertHistoryLines(result *Result, a Assertion) error {
	if slices.Equal(result.History, a.Lines) {
		return nil
	}
	return &AssertionError{
		Type:     AssertHistoryLines,
		Expected: fmt.Sprintf("%q", a.Lines),
		Actual:   fmt.Sprintf("%q", result.History),
		Trace:    result.Trace,
	}
}

// assertHistoryCount counts decoded rows of one kind straight from the store,
// so it is independent of label rendering.
func assertHistoryCount(result *Result, a Assertion, actx *AssertionContext) error {
	kind, err := eventlog.ParseKind(a.Kind)
	if err != nil {
		return err
	}
	p, err := projectStore(actx)
	if err != nil {
		return err
	}

	got := 0
	for _, row := range p.Rows {
		if row.Kind == kind {
			got++
		}
	}
	if got == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertHistoryCount,
		Expected: fmt.Sprintf("%d %s rows", *a.Count, a.Kind),
		Actual:   fmt.Sprintf("%d %s rows", got, a.Kind),
		Trace:    result.Trace,
	}
}

func assertStoreString(result *Result, a Assertion, actx *AssertionContext) error {
	got, err := actx.Store.GetString(actx.Ctx, a.Key, "")
	if err != nil {
		return fmt.Errorf("store_string %s: %w", a.Key, err)
	}
	if got == *a.Text {
		return nil
	}
	return &AssertionError{
		Type:     AssertStoreString,
		Expected: fmt.Sprintf("%s = %q", a.Key, *a.Text),
		Actual:   fmt.Sprintf("%s = %q", a.Key, got),
		Trace:    result.Trace,
	}
}

func projectStore(actx *AssertionContext) (history.Projection, error) {
	pressRaw, err := actx.Store.GetString(actx.Ctx, counter.KeyPressLog, "")
	if err != nil {
		return history.Projection{}, err
	}
	shakeRaw, err := actx.Store.GetString(actx.Ctx, counter.KeyShakeLog, "")
	if err != nil {
		return history.Projection{}, err
	}
	return history.Project(pressRaw, shakeRaw, history.Options{}), nil
}
