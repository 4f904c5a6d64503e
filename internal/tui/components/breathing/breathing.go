package breathing

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase is one step of a breathing cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInhale
	PhaseHold
	PhaseExhale
	PhaseRest
	PhaseDone
)

// Cycles is the number of full inhale/hold/exhale/rest rounds in one session.
const Cycles = 5

var phaseSeconds = map[Phase]int{
	PhaseInhale: 4,
	PhaseHold:   7,
	PhaseExhale: 8,
	PhaseRest:   1,
}

var phaseLabels = map[Phase]string{
	PhaseIdle:   "Ready",
	PhaseInhale: "Breathe in",
	PhaseHold:   "Hold",
	PhaseExhale: "Breathe out",
	PhaseRest:   "Rest",
	PhaseDone:   "Well done",
}

func (p Phase) String() string {
	return phaseLabels[p]
}

// Seconds returns how long the phase lasts, or 0 for idle and done.
func (p Phase) Seconds() int {
	return phaseSeconds[p]
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(30).
			Align(lipgloss.Center)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

// TickMsg advances a running session by one second. Session tags the session
// that scheduled it so ticks from a stopped session are dropped.
type TickMsg struct {
	Session int
	Time    time.Time
}

// Model is a guided 4-7-8 breathing session.
type Model struct {
	phase     Phase
	remaining int
	cycle     int
	session   int
	width     int
	height    int
}

func New() Model {
	return Model{phase: PhaseIdle}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Phase returns the current phase.
func (m Model) Phase() Phase { return m.phase }

// Remaining returns the seconds left in the current phase.
func (m Model) Remaining() int { return m.remaining }

// Cycle returns the 1-based cycle in progress, or 0 when idle.
func (m Model) Cycle() int { return m.cycle }

// Running reports whether a session is in progress.
func (m Model) Running() bool {
	return m.phase != PhaseIdle && m.phase != PhaseDone
}

// Start begins a new session from the first inhale.
func (m Model) Start() (Model, tea.Cmd) {
	m.session++
	m.cycle = 1
	m.phase = PhaseInhale
	m.remaining = PhaseInhale.Seconds()
	return m, m.tick()
}

// Stop abandons the session and returns to idle.
func (m Model) Stop() Model {
	m.session++
	m.phase = PhaseIdle
	m.remaining = 0
	m.cycle = 0
	return m
}

func (m Model) tick() tea.Cmd {
	session := m.session
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Session: session, Time: t}
	})
}

// advance moves the session forward by one second.
func (m Model) advance() Model {
	if !m.Running() {
		return m
	}
	m.remaining--
	if m.remaining > 0 {
		return m
	}

	switch m.phase {
	case PhaseInhale:
		m.phase = PhaseHold
	case PhaseHold:
		m.phase = PhaseExhale
	case PhaseExhale:
		m.phase = PhaseRest
	case PhaseRest:
		if m.cycle >= Cycles {
			m.phase = PhaseDone
			m.remaining = 0
			return m
		}
		m.cycle++
		m.phase = PhaseInhale
	}
	m.remaining = m.phase.Seconds()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Session != m.session || !m.Running() {
			return m, nil
		}
		m = m.advance()
		if m.Running() {
			return m, m.tick()
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if m.Running() {
				return m.Stop(), nil
			}
			return m.Start()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var status string
	switch m.phase {
	case PhaseIdle:
		status = "Press space to begin"
	case PhaseDone:
		status = fmt.Sprintf("%d cycles complete", Cycles)
	default:
		status = fmt.Sprintf("%d  %s", m.remaining, strings.Repeat("●", m.remaining))
	}

	var cycle string
	if m.Running() {
		cycle = fmt.Sprintf("Cycle %d of %d", m.cycle, Cycles)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render("4-7-8 Breathing"),
		phaseStyle.Render(m.phase.String()+"\n\n"+status),
		cycle,
		hintStyle.Render("space: start/stop"),
	)

	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
