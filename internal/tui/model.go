package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/ledger"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/notifier"
	"github.com/julianstephens/quitwise/internal/tui/components/breathing"
	"github.com/julianstephens/quitwise/internal/tui/components/settings"
)

type SessionState int

// Main tabs come first so tab cycling can use modular arithmetic.
const (
	StateHome SessionState = iota
	StateStats
	StateGoals
	StateAchievements
	StateQuotes
	StateSettings
	StateBreathing
	StateLogSmoke
	StateLogCraving
	StateAddQuote
	StateEditSettings
	StateConfirmUndo
)

const NumMainTabs = 6

var tabTitles = []string{"Home", "Stats", "Goals", "Achievements", "Quotes", "Settings"}

const notifyTimeout = 5 * time.Second

// notifiedMsg reports the outcome of a desktop notification.
type notifiedMsg struct {
	achievement string
	err         error
}

type Model struct {
	ledger        *ledger.Ledger
	notifier      notifier.Sender
	state         SessionState
	keys          KeyMap
	help          help.Model
	viewport      viewport.Model
	styles        styles
	breathing     breathing.Model
	settingsModel settings.Model
	form          *huh.Form
	smokeForm     *SmokeFormModel
	cravingForm   *CravingFormModel
	quoteForm     *QuoteFormModel
	settingsForm  *SettingsFormModel
	quoteCursor   int
	status        string
	formError     string
	quitting      bool
	width         int
	height        int
}

func NewModel(l *ledger.Ledger, n notifier.Sender) Model {
	current := l.Settings()
	m := Model{
		ledger:        l,
		notifier:      n,
		state:         StateHome,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		viewport:      viewport.New(0, 0),
		styles:        newStyles(current.DarkMode),
		breathing:     breathing.New(),
		settingsModel: settings.New(current, 0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHome:
		keys = append(keys, m.keys.Smoke, m.keys.Crave, m.keys.Breathe)
	case StateQuotes:
		keys = append(keys, m.keys.Add, m.keys.Favorite)
	case StateSettings:
		keys = append(keys, m.keys.Edit)
	case StateBreathing:
		keys = []key.Binding{m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case StateHome:
		actions = []key.Binding{m.keys.Smoke, m.keys.Crave, m.keys.Undo, m.keys.Breathe}
	case StateQuotes:
		actions = []key.Binding{m.keys.Add, m.keys.Favorite}
	case StateSettings:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads everything derived from the ledger.
func (m *Model) refresh() {
	current := m.ledger.Settings()
	m.styles = newStyles(current.DarkMode)
	m.settingsModel.SetSettings(current)
	if n := len(m.ledger.Quotes()); m.quoteCursor >= n {
		m.quoteCursor = max(0, n-1)
	}
	m.syncViewport()
}

// syncViewport loads the active scrollable tab into the viewport.
func (m *Model) syncViewport() {
	var content string
	switch m.state {
	case StateStats:
		content = m.statsContent()
	case StateGoals:
		content = m.goalsContent()
	case StateAchievements:
		content = m.achievementsContent()
	case StateQuotes:
		content = m.quotesContent()
	default:
		return
	}
	m.viewport.SetContent(content)
}

func (m *Model) switchTab(state SessionState) {
	m.state = state
	m.status = ""
	m.viewport.GotoTop()
	m.syncViewport()
}

func (m Model) scrollable() bool {
	switch m.state {
	case StateStats, StateGoals, StateAchievements, StateQuotes:
		return true
	}
	return false
}

// checkAchievements runs the evaluation pass and queues a toast per new unlock.
func (m *Model) checkAchievements() tea.Cmd {
	unlocked, err := m.ledger.EvaluateAchievements()
	if err != nil {
		m.formError = "Failed to evaluate achievements: " + err.Error()
		return nil
	}
	if len(unlocked) == 0 {
		return nil
	}

	last := unlocked[len(unlocked)-1]
	m.status = cli.Glyph(last.Icon) + " Achievement unlocked: " + last.Name
	if !m.ledger.Settings().NotificationsEnabled || m.notifier == nil {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(unlocked))
	for _, a := range unlocked {
		cmds = append(cmds, notify(m.notifier, a))
	}
	return tea.Batch(cmds...)
}

func notify(n notifier.Sender, a models.Achievement) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		err := n.Notify(ctx, "Achievement unlocked", cli.Glyph(a.Icon)+" "+a.Name+": "+a.Description)
		return notifiedMsg{achievement: a.ID, err: err}
	}
}
