package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var brailleSpinner = spinner.Spinner{
	Frames: []string{"⣷", "⣯", "⣟", "⡿", "⢿", "⣻", "⣽", "⣾"},
	FPS:    time.Second / 10,
}

// busyOverlay covers the screen while a fetch is outstanding. The spinner
// keeps its own tick stream; the UI underneath is not updated.
type busyOverlay struct {
	spinner  spinner.Model
	label    string
	active   bool
	statusCh chan string
}

func newBusyOverlay() busyOverlay {
	s := spinner.New()
	s.Spinner = brailleSpinner
	s.Style = spinnerStyle
	return busyOverlay{spinner: s}
}

// start shows the overlay and starts the spinner.
func (b busyOverlay) start(label string) (busyOverlay, tea.Cmd) {
	b.active = true
	b.label = label
	b.statusCh = nil
	return b, b.spinner.Tick
}

// startWithStatus also returns a channel the running command can publish
// progress labels on.
func (b busyOverlay) startWithStatus(label string) (busyOverlay, chan string, tea.Cmd) {
	b, tick := b.start(label)
	b.statusCh = make(chan string, 16)
	return b, b.statusCh, tea.Batch(tick, b.waitForStatus())
}

func (b busyOverlay) stop() busyOverlay {
	b.active = false
	b.label = ""
	b.statusCh = nil
	return b
}

func (b busyOverlay) waitForStatus() tea.Cmd {
	if b.statusCh == nil {
		return nil
	}
	statusCh := b.statusCh
	return func() tea.Msg {
		label, ok := <-statusCh
		if !ok {
			return nil
		}
		return busyStatusMsg(label)
	}
}

func (b busyOverlay) update(msg tea.Msg) (busyOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !b.active {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	case busyStatusMsg:
		if !b.active {
			return b, nil
		}
		b.label = string(msg)
		return b, b.waitForStatus()
	}
	return b, nil
}

func (b busyOverlay) view(width, height int) string {
	content := b.spinner.View()
	if b.label != "" {
		content += " " + statusStyle.Render(b.label)
	}
	if width <= 0 || height <= 0 {
		return "\n  " + content + "\n"
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
