package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitwise/internal/logger"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/notifier"
	"github.com/julianstephens/quitwise/internal/tui/components/breathing"
	"github.com/julianstephens/quitwise/internal/tui/components/settings"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 4 // tabs, status and help

		h, v := docStyle.GetFrameSize()
		m.viewport.Width = msg.Width - h
		m.viewport.Height = max(0, contentHeight-v)
		m.breathing.SetSize(msg.Width, contentHeight)
		m.settingsModel.SetSize(msg.Width-h, contentHeight-v)
		m.syncViewport()
		return m, nil

	case notifiedMsg:
		if errors.Is(msg.err, notifier.ErrTrayNotRunning) {
			logger.Debug("Tray app not running, skipping notification", "achievement", msg.achievement)
		} else if msg.err != nil {
			logger.Warn("Failed to send notification", "achievement", msg.achievement, "error", msg.err)
		}
		return m, nil

	case breathing.TickMsg:
		var cmd tea.Cmd
		m.breathing, cmd = m.breathing.Update(msg)
		return m, cmd

	case settings.EditSettingsMsg:
		m.settingsForm = newSettingsFormModel(m.ledger.Settings())
		m.form = NewSettingsForm(m.settingsForm)
		m.formError = ""
		m.state = StateEditSettings
		return m, m.form.Init()
	}

	switch m.state {
	case StateLogSmoke, StateLogCraving, StateAddQuote, StateEditSettings:
		return m.updateForm(msg)
	case StateConfirmUndo:
		return m.updateConfirmUndo(msg)
	case StateBreathing:
		return m.updateBreathing(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Tab, m.keys.Right):
		m.switchTab((m.state + 1) % NumMainTabs)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab, m.keys.Left):
		m.switchTab((m.state - 1 + NumMainTabs) % NumMainTabs)
		return m, nil
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case StateHome:
		return m.updateHome(keyMsg)
	case StateQuotes:
		return m.updateQuotes(keyMsg)
	case StateSettings:
		var cmd tea.Cmd
		m.settingsModel, cmd = m.settingsModel.Update(keyMsg)
		return m, cmd
	}

	if m.scrollable() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Smoke):
		m.smokeForm = &SmokeFormModel{}
		m.form = NewSmokeForm(m.smokeForm)
		m.formError = ""
		m.state = StateLogSmoke
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Crave):
		m.cravingForm = &CravingFormModel{Intensity: 3}
		m.form = NewCravingForm(m.cravingForm)
		m.formError = ""
		m.state = StateLogCraving
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Undo):
		if len(m.ledger.SmokeEvents(models.TimeRange{})) == 0 {
			m.status = "Nothing to undo."
			return m, nil
		}
		m.state = StateConfirmUndo
		return m, nil
	case key.Matches(msg, m.keys.Breathe):
		m.breathing = breathing.New()
		m.breathing.SetSize(m.width, m.height-4)
		m.state = StateBreathing
		return m, nil
	}
	return m, nil
}

func (m Model) updateQuotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	quotes := m.ledger.Quotes()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.quoteCursor > 0 {
			m.quoteCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.quoteCursor < len(quotes)-1 {
			m.quoteCursor++
		}
	case key.Matches(msg, m.keys.Favorite):
		if m.quoteCursor < len(quotes) {
			q, err := m.ledger.ToggleQuoteFavorite(quotes[m.quoteCursor].ID)
			if err != nil {
				m.formError = fmt.Sprintf("Failed to update quote: %v", err)
			} else if q.IsFavorite {
				m.status = "Added to favorites"
			} else {
				m.status = "Removed from favorites"
			}
		}
	case key.Matches(msg, m.keys.Add):
		m.quoteForm = &QuoteFormModel{}
		m.form = NewQuoteForm(m.quoteForm)
		m.formError = ""
		m.state = StateAddQuote
		return m, m.form.Init()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.syncViewport()
	return m, nil
}

func (m Model) updateBreathing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back), msg.String() == "q":
			m.breathing = m.breathing.Stop()
			m.state = StateHome
			return m, nil
		case msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.breathing, cmd = m.breathing.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmUndo(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		removed, err := m.ledger.UndoLastSmokeEvent()
		switch {
		case err != nil:
			m.formError = fmt.Sprintf("Failed to undo: %v", err)
		case removed:
			m.status = fmt.Sprintf("Removed the most recent cigarette. Today: %d", m.ledger.TodayStats().CigaretteCount)
		default:
			m.status = "Nothing to undo."
		}
		m.state = StateHome
		m.refresh()
	case "n", "N", "esc", "q":
		m.state = StateHome
	}
	return m, nil
}

// formReturn is the tab a form goes back to when it closes.
func (m Model) formReturn() SessionState {
	switch m.state {
	case StateAddQuote:
		return StateQuotes
	case StateEditSettings:
		return StateSettings
	}
	return StateHome
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.switchTab(m.formReturn())
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		back := m.formReturn()
		next, err := m.submitForm()
		if err != nil {
			// stay in the form so the user can correct and retry
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		status := m.status
		m.switchTab(back)
		m.refresh()
		m.status = status
		cmds = append(cmds, next)
	case huh.StateAborted:
		m.formError = ""
		m.switchTab(m.formReturn())
	}
	return m, tea.Batch(cmds...)
}

// submitForm applies a completed form to the ledger.
func (m *Model) submitForm() (tea.Cmd, error) {
	switch m.state {
	case StateLogSmoke:
		fm := m.smokeForm
		if _, err := m.ledger.AddSmokeEvent(strings.TrimSpace(fm.Trigger), strings.TrimSpace(fm.Mood), strings.TrimSpace(fm.Notes)); err != nil {
			return nil, fmt.Errorf("failed to log cigarette: %w", err)
		}
		today := m.ledger.TodayStats().CigaretteCount
		m.status = fmt.Sprintf("Logged cigarette. Today: %d", today)
		if limit := m.ledger.Settings().DailyLimit; limit != nil && today > *limit {
			m.status += fmt.Sprintf(" (over your daily limit of %d)", *limit)
		}
		return m.checkAchievements(), nil

	case StateLogCraving:
		in, err := m.cravingForm.Input()
		if err != nil {
			return nil, err
		}
		if _, err := m.ledger.AddCravingEvent(in); err != nil {
			return nil, fmt.Errorf("failed to log craving: %w", err)
		}
		m.status = fmt.Sprintf("Craving resisted (intensity %d/5). Well done.", in.Intensity)
		return m.checkAchievements(), nil

	case StateAddQuote:
		q, err := m.ledger.AddCustomQuote(strings.TrimSpace(m.quoteForm.Text), strings.TrimSpace(m.quoteForm.Author))
		if err != nil {
			return nil, fmt.Errorf("failed to add quote: %w", err)
		}
		m.status = "Added quote " + q.ID
		return nil, nil

	case StateEditSettings:
		u, err := m.settingsForm.Update()
		if err != nil {
			return nil, err
		}
		if _, err := m.ledger.UpdateSettings(u); err != nil {
			return nil, fmt.Errorf("failed to save settings: %w", err)
		}
		m.status = "Settings updated."
		return nil, nil
	}
	return nil, nil
}
