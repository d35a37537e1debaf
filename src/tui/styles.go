package tui

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the customizable colors for the watch UI.
type StyleConfig struct {
	Accent        lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	Green         lipgloss.Color
	Yellow        lipgloss.Color
	Red           lipgloss.Color
}

// DefaultStyles returns the default color palette
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		Accent:        lipgloss.Color("#8AB4F8"),
		TextPrimary:   lipgloss.Color("#E8EAED"),
		TextSecondary: lipgloss.Color("#9AA0A6"),
		Green:         lipgloss.Color("#34A853"),
		Yellow:        lipgloss.Color("#FBBC04"),
		Red:           lipgloss.Color("#EA4335"),
	}
}

// TitleStyle returns the style for the header line
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Accent).Bold(true)
}

// WaitingStyle returns the style for in-flight progress lines
func (s *StyleConfig) WaitingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.TextSecondary)
}

// VerdictStyle returns a style colored by exit code: green for a clean
// pass, red otherwise.
func (s *StyleConfig) VerdictStyle(exitCode int) lipgloss.Style {
	color := s.Red
	if exitCode == 0 {
		color = s.Green
	}
	return lipgloss.NewStyle().Foreground(color)
}
