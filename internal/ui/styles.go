package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF6B6B"})

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}).
			Padding(0, 1)

	activeBoxStyle = boxStyle.
			BorderForeground(lipgloss.AdaptiveColor{Light: "#AA00AA", Dark: "#FF77FF"})

	editingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#AA00AA", Dark: "#FF77FF"})

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}).
				Background(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
)

// difficultyColor is the foreground used for a difficulty label.
func difficultyColor(label string) lipgloss.TerminalColor {
	switch label {
	case "Easy":
		return lipgloss.Color("2")
	case "Normal":
		return lipgloss.Color("4")
	case "Hard":
		return lipgloss.Color("#FF6347")
	case "Expert":
		return lipgloss.Color("1")
	case "ExpertPlus", "Expert+":
		return lipgloss.Color("5")
	default:
		return lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}
	}
}
