package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/ledger"
)

const barWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHome:
		content = docStyle.Render(m.viewHome())
	case StateStats, StateGoals, StateAchievements, StateQuotes:
		content = docStyle.Render(m.viewport.View())
	case StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case StateBreathing:
		content = m.breathing.View()
	case StateLogSmoke, StateLogCraving, StateAddQuote, StateEditSettings:
		content = docStyle.Render(m.viewForm())
	case StateConfirmUndo:
		content = m.viewConfirmUndo()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, m.styles.activeTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.inactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.formError != "" {
		return m.styles.danger.Render(m.formError)
	}
	if m.status != "" {
		return m.styles.status.Render(m.status)
	}
	return ""
}

func (m Model) row(label, value string) string {
	return m.styles.label.Render(label) + " " + m.styles.value.Render(value)
}

func (m Model) viewHome() string {
	today := m.ledger.TodayStats()
	streak := m.ledger.CurrentStreak()
	streakText := fmt.Sprintf("%d", streak)
	if streak >= constants.StreakCapDays {
		streakText += "+"
	}

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.styles.card.Render(m.styles.value.Render(streakText)+"\nsmoke-free days"),
		m.styles.card.Render(m.styles.value.Render(cli.FormatMoney(m.ledger.TotalMoneySaved()))+"\nsaved"),
		m.styles.card.Render(m.styles.value.Render(fmt.Sprintf("%d", today.CravingsResisted))+"\ncravings resisted today"),
	)

	var comparison string
	switch diff := m.ledger.Comparison(); {
	case diff < 0:
		comparison = m.styles.success.Render(fmt.Sprintf("%d fewer than yesterday", -diff))
	case diff > 0:
		comparison = m.styles.warning.Render(fmt.Sprintf("%d more than yesterday", diff))
	default:
		comparison = m.styles.muted.Render("Same as yesterday")
	}

	lines := []string{
		cards,
		"",
		m.styles.title.Render("Today"),
		m.row("Cigarettes:", fmt.Sprintf("%d", today.CigaretteCount)),
		m.row("Money saved:", cli.FormatMoney(today.MoneySaved)),
	}
	if limit := m.ledger.Settings().DailyLimit; limit != nil {
		left := max(0, *limit-today.CigaretteCount)
		value := fmt.Sprintf("%d (%d left)", *limit, left)
		if today.CigaretteCount > *limit {
			value = m.styles.danger.Render(fmt.Sprintf("%d (over by %d)", *limit, today.CigaretteCount-*limit))
		}
		lines = append(lines, m.row("Daily limit:", value))
	}
	lines = append(lines, comparison)

	if goal, ok := m.ledger.CurrentGoal(); ok {
		progress := m.ledger.GoalProgress(goal)
		lines = append(lines, "",
			m.styles.title.Render("Current goal"),
			fmt.Sprintf("%s %s %.0f%%", goal.Type, bar(progress, 100), progress),
		)
	}

	if q, err := m.ledger.DailyQuote(); err == nil {
		lines = append(lines, "",
			m.styles.title.Render("Quote of the day"),
			m.styles.quote.Render(fmt.Sprintf("%q", q.Text)),
			m.styles.muted.Render("- "+q.Author),
		)
	}

	return strings.Join(lines, "\n")
}

func (m Model) statsContent() string {
	stats := m.ledger.DailyStats(constants.DefaultStatsWindowDays)
	lines := []string{
		m.styles.title.Render("Progress"),
		m.row("Cigarettes avoided:", humanize.Comma(int64(m.ledger.TotalCigarettesAvoided()))),
		m.row("Money saved:", cli.FormatMoney(m.ledger.TotalMoneySaved())),
		m.row("Average per day:", fmt.Sprintf("%.1f", ledger.AverageCigarettesPerDay(stats))),
	}
	if best, ok := ledger.BestDay(stats); ok {
		lines = append(lines, m.row("Best day:", fmt.Sprintf("%s (%d)", best.Date, best.CigaretteCount)))
	}

	series := m.ledger.DailySeries(7)
	peak := 0
	for _, s := range series {
		peak = max(peak, s.CigaretteCount)
	}
	lines = append(lines, "", m.styles.title.Render("Last 7 days"))
	for _, s := range series {
		lines = append(lines, fmt.Sprintf("%s %s %d", s.Date, bar(float64(s.CigaretteCount), float64(peak)), s.CigaretteCount))
	}

	lines = append(lines, "", m.styles.title.Render("Triggers"))
	triggers := ledger.SortTriggers(m.ledger.TriggerAnalysis())
	if len(triggers) == 0 {
		lines = append(lines, m.styles.muted.Render("No cigarettes logged yet."))
	}
	total := 0
	for _, t := range triggers {
		total += t.Count
	}
	for _, t := range triggers {
		lines = append(lines, fmt.Sprintf("%-12s %s %d (%.0f%%)", t.Trigger, bar(float64(t.Count), float64(total)), t.Count, float64(t.Count)/float64(total)*100))
	}

	if intensity := m.ledger.CravingIntensityByDay(7); len(intensity) > 0 {
		lines = append(lines, "", m.styles.title.Render("Craving intensity"))
		for _, d := range intensity {
			lines = append(lines, fmt.Sprintf("%s %s %.1f/5 (%d)", d.Date, bar(d.Average, 5), d.Average, d.Count))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) goalsContent() string {
	goals := m.ledger.Goals()
	if len(goals) == 0 {
		return m.styles.muted.Render("No goals yet. Add one with: quitwise goal add")
	}

	lines := []string{m.styles.title.Render("Goals")}
	for _, g := range goals {
		progress := m.ledger.GoalProgress(g)
		var status string
		switch {
		case g.Completed:
			status = m.styles.success.Render("completed")
		case m.ledger.GoalRemaining(g) > 0:
			status = humanize.RelTime(time.Now(), time.Now().Add(m.ledger.GoalRemaining(g)), "left", "")
		default:
			status = m.styles.muted.Render("ended")
		}
		lines = append(lines,
			fmt.Sprintf("%s  target %s", m.styles.value.Render(g.Type), humanize.Ftoa(g.Target)),
			fmt.Sprintf("  %s %.0f%%  %s", bar(progress, 100), progress, status),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) achievementsContent() string {
	all := m.ledger.Achievements()
	unlocked := 0
	for _, a := range all {
		if a.IsUnlocked() {
			unlocked++
		}
	}

	lines := []string{m.styles.title.Render(fmt.Sprintf("Achievements (%d of %d unlocked)", unlocked, len(all)))}
	for _, a := range all {
		if a.IsUnlocked() {
			lines = append(lines, fmt.Sprintf("%s %s  %s", cli.Glyph(a.Icon), m.styles.value.Render(a.Name), m.styles.muted.Render(a.Description)))
			continue
		}
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("🔒 %s  %s", a.Name, a.Description)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) quotesContent() string {
	quotes := m.ledger.Quotes()
	if len(quotes) == 0 {
		return m.styles.muted.Render("No quotes. Press 'a' to add one.")
	}

	lines := []string{m.styles.title.Render("Quotes")}
	for i, q := range quotes {
		marker := "  "
		if q.IsFavorite {
			marker = "★ "
		}
		text := fmt.Sprintf("%s%q - %s", marker, q.Text, q.Author)
		if i == m.quoteCursor {
			lines = append(lines, m.styles.selected.Render("> "+text))
		} else {
			lines = append(lines, "  "+text)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewForm() string {
	var title string
	switch m.state {
	case StateLogSmoke:
		title = "Log a cigarette"
	case StateLogCraving:
		title = "Log a resisted craving"
	case StateAddQuote:
		title = "Add a quote"
	case StateEditSettings:
		title = "Edit settings"
	}
	if m.form == nil {
		return ""
	}
	return m.styles.title.Render(title) + "\n" + m.form.View()
}

func (m Model) viewConfirmUndo() string {
	return lipgloss.Place(m.width, max(0, m.height-4),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.warning.Render("Remove the most recent cigarette?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

// bar renders value as a share of peak using barWidth cells.
func bar(value, peak float64) string {
	filled := 0
	if peak > 0 {
		filled = int(value / peak * barWidth)
	}
	filled = min(max(filled, 0), barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
