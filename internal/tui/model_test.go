package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/busybox/internal/counter"
	"github.com/roach88/busybox/internal/history"
	"github.com/roach88/busybox/internal/motion"
	"github.com/roach88/busybox/internal/prefs"
	"github.com/roach88/busybox/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestModel(t *testing.T, samples <-chan motion.Sample) Model {
	t.Helper()
	svc, err := counter.New(context.Background(), prefs.NewMemoryStore(),
		counter.WithClock(testutil.NewManualClock(1000)),
		counter.WithSession("tui-test"),
		counter.WithHistoryOptions(history.Options{Format: func(ts int64) string { return "then" }}),
	)
	require.NoError(t, err)
	return New(context.Background(), svc, samples)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_PressAndReset(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = send(t, m, key(" "))
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("+"))
	assert.Equal(t, 3, m.svc.Value())
	assert.Contains(t, m.View(), "3")

	m, _ = send(t, m, key("r"))
	assert.Equal(t, 0, m.svc.Value())

	// History survives the reset.
	m, _ = send(t, m, key("h"))
	assert.Len(t, m.history, 3)
	assert.Contains(t, m.View(), "Pressed: then Value: 3")
}

func TestModel_ToggleHistory(t *testing.T) {
	m := newTestModel(t, nil)

	assert.NotContains(t, m.View(), "no history yet")

	m, _ = send(t, m, key("h"))
	assert.True(t, m.svc.HistoryVisible())
	assert.Contains(t, m.View(), "no history yet")

	// Presses refresh the visible list.
	m, _ = send(t, m, key(" "))
	assert.Equal(t, []string{"Pressed: then Value: 1"}, m.history)

	m, _ = send(t, m, key("h"))
	assert.False(t, m.svc.HistoryVisible())
	assert.NotContains(t, m.View(), "Pressed: then")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, nil)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := send(t, m, key(k))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModel_NoSensorNotice(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "shake detection disabled")
}

func TestModel_SamplesRecordShakes(t *testing.T) {
	samples := make(chan motion.Sample, 2)
	samples <- motion.Sample{At: 10_000}
	samples <- motion.Sample{X: 30, At: 10_200}
	close(samples)

	m := newTestModel(t, samples)
	m, _ = send(t, m, key("h"))

	cmd := m.Init()
	require.NotNil(t, cmd)
	for i := 0; i < 3; i++ {
		msg := cmd()
		m, cmd = send(t, m, msg)
	}

	assert.Equal(t, 1, m.shakes)
	assert.Nil(t, cmd, "closed source stops listening")
	assert.Equal(t, []string{"Shaken: then"}, m.history)
	assert.Contains(t, m.View(), "motion sensor stopped")
	assert.Contains(t, m.View(), "shakes this session: 1")
}
