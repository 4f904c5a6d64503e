package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/quitwise/internal/models"
)

type EditSettingsMsg struct{}

type Model struct {
	settings models.Settings
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.Settings, width, height int) Model {
	return Model{
		settings: settings,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "e" {
		return m, func() tea.Msg { return EditSettingsMsg{} }
	}
	return m, nil
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) View() string {
	limit := "none"
	if m.settings.DailyLimit != nil {
		limit = fmt.Sprintf("%d per day", *m.settings.DailyLimit)
	}

	costs := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Pack Cost:", money(m.settings.PackCost)),
		row("Cigarettes Per Pack:", fmt.Sprintf("%d", m.settings.CigarettesPerPack)),
		row("Cost Per Cigarette:", money(m.settings.CostPerCigarette())),
		row("Daily Limit:", limit),
	)

	display := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Notifications:", fmt.Sprintf("%t", m.settings.NotificationsEnabled)),
		row("Dark Mode:", fmt.Sprintf("%t", m.settings.DarkMode)),
	)

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(1).
		Render("Press 'e' to edit settings")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		sectionStyle.Render(titleStyle.Render("Costs")+"\n"+costs),
		sectionStyle.Render(titleStyle.Render("Display")+"\n"+display),
		helpText,
	)

	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
