// Package tui renders the counter screen in a terminal.
//
// Keys:
//
//	space, enter, +   press
//	r                 reset the counter (history is kept)
//	h                 show or hide history
//	q, ctrl+c         quit
//
// Shake detection needs a sample source. Without one the screen says so and
// every other feature works as usual.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/busybox/internal/counter"
	"github.com/roach88/busybox/internal/motion"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	counterStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			Align(lipgloss.Center)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// counterWidth is the fixed width budget of the counter box.
const counterWidth = 20

// sampleMsg carries one sensor sample into Update.
type sampleMsg motion.Sample

// sensorClosedMsg reports that the sample source ran dry.
type sensorClosedMsg struct{}

// Model is the bubbletea model for the counter screen.
type Model struct {
	ctx     context.Context
	svc     *counter.Service
	samples <-chan motion.Sample

	history []string
	shakes  int
	notice  string
	err     error
}

// New returns a model driving svc. samples may be nil when no sensor is
// available.
func New(ctx context.Context, svc *counter.Service, samples <-chan motion.Sample) Model {
	m := Model{ctx: ctx, svc: svc, samples: samples}
	if samples == nil {
		m.notice = "no motion sensor: shake detection disabled"
	}
	return m
}

// Init starts listening for sensor samples.
func (m Model) Init() tea.Cmd {
	return m.waitForSample()
}

func (m Model) waitForSample() tea.Cmd {
	if m.samples == nil {
		return nil
	}
	samples := m.samples
	return func() tea.Msg {
		s, ok := <-samples
		if !ok {
			return sensorClosedMsg{}
		}
		return sampleMsg(s)
	}
}

// Update handles key presses and sensor samples.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case sampleMsg:
		recorded, err := m.svc.Observe(m.ctx, motion.Sample(msg))
		if err != nil {
			m.err = err
		} else if recorded {
			m.shakes++
			m = m.refreshHistory()
		}
		return m, m.waitForSample()

	case sensorClosedMsg:
		m.samples = nil
		m.notice = "motion sensor stopped: shake detection disabled"
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "enter", "+":
		if _, err := m.svc.Increment(m.ctx); err != nil {
			m.err = err
		}
		m = m.refreshHistory()
	case "r":
		if err := m.svc.Reset(m.ctx); err != nil {
			m.err = err
		}
	case "h":
		if m.svc.ToggleHistory() {
			m = m.refreshHistory()
		}
	}
	return m, nil
}

// refreshHistory reloads history rows while the list is visible.
func (m Model) refreshHistory() Model {
	if !m.svc.HistoryVisible() {
		return m
	}
	p, err := m.svc.History(m.ctx)
	if err != nil {
		m.err = err
		return m
	}
	m.history = p.Lines()
	return m
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("busybox"))
	b.WriteString("\n\n")
	b.WriteString(counterStyle.Width(counterWidth).Render(strconv.Itoa(m.svc.Value())))
	b.WriteString("\n\n")

	if m.svc.HistoryVisible() {
		b.WriteString(mutedStyle.Render("shake the device to log a shake"))
		b.WriteString("\n")
		if len(m.history) == 0 {
			b.WriteString(mutedStyle.Render("  (no history yet)"))
			b.WriteString("\n")
		}
		for _, line := range m.history {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(mutedStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.shakes > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("shakes this session: %d", m.shakes)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render("space: press  r: reset  h: history  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the screen and blocks until the user quits.
func Run(ctx context.Context, svc *counter.Service, samples <-chan motion.Sample) error {
	p := tea.NewProgram(New(ctx, svc, samples), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
