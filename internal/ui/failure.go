package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// failurePrompt blocks the screen with an error until one key is pressed.
type failurePrompt struct {
	err error
}

func (f failurePrompt) view(width, height int) string {
	msg := errorStyle.Render(f.err.Error())
	prompt := labelStyle.Render("press any key to continue")
	if width <= 0 || height <= 0 {
		return "\n  " + msg + "\n  " + prompt + "\n"
	}
	boxWidth := width * 3 / 5
	if boxWidth < 20 {
		boxWidth = width
	}
	body := lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).
		Render(msg + "\n\n" + prompt)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
