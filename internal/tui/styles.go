package tui

import "github.com/charmbracelet/lipgloss"

var docStyle = lipgloss.NewStyle().Padding(1, 2)

// styles holds the palette for one color scheme.
type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	muted       lipgloss.Style
	success     lipgloss.Style
	warning     lipgloss.Style
	danger      lipgloss.Style
	quote       lipgloss.Style
	selected    lipgloss.Style
	card        lipgloss.Style
	status      lipgloss.Style
}

func newStyles(dark bool) styles {
	accent := lipgloss.Color("161")
	text := lipgloss.Color("235")
	muted := lipgloss.Color("245")
	tabBg := lipgloss.Color("254")
	if dark {
		accent = lipgloss.Color("205")
		text = lipgloss.Color("252")
		muted = lipgloss.Color("240")
		tabBg = lipgloss.Color("236")
	}

	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(tabBg).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1),
		label: lipgloss.NewStyle().
			Foreground(muted).
			Width(22),
		value: lipgloss.NewStyle().
			Foreground(text).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(muted),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		quote: lipgloss.NewStyle().
			Foreground(text).
			Italic(true).
			Width(60),
		selected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			MarginRight(1).
			Align(lipgloss.Center),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Padding(0, 1),
	}
}
