package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestRun_PressesAdvanceCounter(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "presses",
		Description: "d",
		StartMS:     1000,
		Steps: []Step{
			{Action: ActionPress},
			{Action: ActionPress, At: int64Ptr(2000)},
			{Action: ActionPress},
		},
		Assertions: []Assertion{
			{Type: AssertCounter, Value: intPtr(3)},
			{Type: AssertStoreString, Key: "cntrValLabel", Text: strPtr("1000|1,2000|2,2000|3,")},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 3, result.Counter)
	require.Len(t, result.Trace, 3)
	assert.Equal(t, int64(1000), result.Trace[0].At)
	assert.Equal(t, int64(2000), result.Trace[2].At)
}

func TestRun_FailingAssertionsAreReported(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "fail",
		Description: "d",
		Steps:       []Step{{Action: ActionPress, At: int64Ptr(1000)}},
		Assertions: []Assertion{
			{Type: AssertCounter, Value: intPtr(2)},
			{Type: AssertHistoryLines, Lines: []string{"nope"}},
			{Type: AssertHistoryCount, Kind: "shake", Count: intPtr(1)},
			{Type: AssertIssues, Count: intPtr(5)},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "Assertion failed: counter")
	assert.Contains(t, result.Errors[0], "Expected: counter 2")
	assert.Contains(t, result.Errors[0], "[0] press at=1000 counter=1")
	assert.Contains(t, result.Errors[2], "0 shake rows")
}

func TestRun_EmptyHistoryMatchesEmptyLines(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "empty",
		Description: "d",
		Steps:       []Step{{Action: ActionReset}},
		Assertions:  []Assertion{{Type: AssertHistoryLines}},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.History)
}

func TestRun_InvalidSettings(t *testing.T) {
	_, err := Run(&Scenario{Name: "n", Description: "d", Locale: "!!", Steps: []Step{{Action: ActionPress}}})
	assert.ErrorContains(t, err, "invalid locale")

	_, err = Run(&Scenario{Name: "n", Description: "d", Timezone: "Nowhere/Land", Steps: []Step{{Action: ActionPress}}})
	assert.ErrorContains(t, err, "invalid timezone")

	_, err = Run(&Scenario{Name: "n", Description: "d", Shake: &ShakeTuning{DebounceMS: 0, Threshold: 1}, Steps: []Step{{Action: ActionPress}}})
	assert.ErrorContains(t, err, "invalid shake tuning")
}

func TestRun_SetupTypeMismatchFailsRun(t *testing.T) {
	_, err := Run(&Scenario{
		Name:        "mismatch",
		Description: "d",
		Setup:       []SetupValue{{Key: "cntrVal", String: strPtr("three")}},
		Steps:       []Step{{Action: ActionPress}},
	})
	assert.ErrorContains(t, err, "failed to start service")
}
