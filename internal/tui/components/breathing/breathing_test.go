package breathing

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickAll(m Model, seconds int) Model {
	for i := 0; i < seconds; i++ {
		m, _ = m.Update(TickMsg{Session: m.session, Time: time.Now()})
	}
	return m
}

func TestStart(t *testing.T) {
	m, cmd := New().Start()
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseInhale, m.Phase())
	assert.Equal(t, 4, m.Remaining())
	assert.Equal(t, 1, m.Cycle())
	assert.True(t, m.Running())
}

func TestPhaseSequence(t *testing.T) {
	m, _ := New().Start()

	tests := []struct {
		seconds   int
		phase     Phase
		remaining int
		cycle     int
	}{
		{seconds: 3, phase: PhaseInhale, remaining: 1, cycle: 1},
		{seconds: 1, phase: PhaseHold, remaining: 7, cycle: 1},
		{seconds: 7, phase: PhaseExhale, remaining: 8, cycle: 1},
		{seconds: 8, phase: PhaseRest, remaining: 1, cycle: 1},
		{seconds: 1, phase: PhaseInhale, remaining: 4, cycle: 2},
	}

	for _, tt := range tests {
		m = tickAll(m, tt.seconds)
		assert.Equal(t, tt.phase, m.Phase())
		assert.Equal(t, tt.remaining, m.Remaining())
		assert.Equal(t, tt.cycle, m.Cycle())
	}
}

func TestSessionCompletesAfterFiveCycles(t *testing.T) {
	m, _ := New().Start()

	perCycle := PhaseInhale.Seconds() + PhaseHold.Seconds() + PhaseExhale.Seconds() + PhaseRest.Seconds()
	require.Equal(t, 20, perCycle)

	m = tickAll(m, perCycle*Cycles-1)
	assert.Equal(t, PhaseRest, m.Phase())
	assert.Equal(t, Cycles, m.Cycle())

	var cmd tea.Cmd
	m, cmd = m.Update(TickMsg{Session: m.session})
	assert.Equal(t, PhaseDone, m.Phase())
	assert.False(t, m.Running())
	assert.Nil(t, cmd, "no further ticks once done")
	assert.Contains(t, m.View(), "5 cycles complete")
}

func TestStaleTicksIgnored(t *testing.T) {
	m, _ := New().Start()
	stale := m.session
	m = m.Stop()

	m, cmd := m.Update(TickMsg{Session: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, PhaseIdle, m.Phase())

	m, _ = m.Start()
	m, _ = m.Update(TickMsg{Session: stale})
	assert.Equal(t, 4, m.Remaining(), "tick from an earlier session must not advance the new one")
}

func TestSpaceTogglesSession(t *testing.T) {
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	m, cmd := New().Update(space)
	assert.True(t, m.Running())
	assert.NotNil(t, cmd)

	m, _ = m.Update(space)
	assert.False(t, m.Running())
	assert.Equal(t, PhaseIdle, m.Phase())
}

func TestView(t *testing.T) {
	assert.Contains(t, New().View(), "Press space to begin")

	m, _ := New().Start()
	view := m.View()
	assert.Contains(t, view, "Breathe in")
	assert.Contains(t, view, "Cycle 1 of 5")
}
