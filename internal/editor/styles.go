package editor

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Cursor     lipgloss.Style
	Status     lipgloss.Style
	Mode       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Muted      lipgloss.Style
	HelpTitle  lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
	PromptText lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Cursor: lipgloss.NewStyle().Reverse(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")),
		Mode: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		HelpTitle:  lipgloss.NewStyle().Bold(true).Underline(true),
		HelpKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Width(12),
		HelpDesc:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PromptText: lipgloss.NewStyle().Bold(true),
	}
}
