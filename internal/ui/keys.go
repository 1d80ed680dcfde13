package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saberdeck/saberdeck/internal/preview"
)

type browseKeyMap struct {
	Quit       key.Binding
	Search     key.Binding
	Sort       key.Binding
	FetchMore  key.Binding
	Clear      key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Back       key.Binding
	Confirm    key.Binding
	SortID     key.Binding
	SortName   key.Binding
	SortAuthor key.Binding
	SortDate   key.Binding
	Filter     key.Binding
}

var browseKeys = browseKeyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "exit")),
	Search:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
	Sort:       key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort")),
	FetchMore:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fetch more")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "go back")),
	Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	SortID:     key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "id")),
	SortName:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "song name")),
	SortAuthor: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "artist")),
	SortDate:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "date")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
}

type detailKeyMap struct {
	Play        key.Binding
	Pause       key.Binding
	Stop        key.Binding
	Resume      key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding
	Description key.Binding
	Scoreboard  key.Binding
	Back        key.Binding
	Confirm     key.Binding
	MoreScores  key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
}

var detailKeys = detailKeyMap{
	Play:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
	Pause:       key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "pause")),
	Stop:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
	Resume:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
	VolumeUp:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "vol+")),
	VolumeDown:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "vol-")),
	Description: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "description")),
	Scoreboard:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "scoreboard")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "scores")),
	MoreScores:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "more scores")),
	Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "difficulties")),
	Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "leaderboard")),
}

var forceQuitKey = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))

func isForceQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, forceQuitKey)
}

// isEditKey reports whether msg changes the contents of an edit buffer.
func isEditKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace:
		return true
	}
	return false
}

func hintLine(h help.Model, bindings ...key.Binding) string {
	return h.ShortHelpView(bindings)
}

func (k browseKeyMap) hints(mode inputMode, hasResults bool) []key.Binding {
	switch mode {
	case modeEditing:
		return []key.Binding{k.Back, withHelp(k.Confirm, "search")}
	case modeSorting:
		return []key.Binding{k.Back, k.Filter, k.SortID, k.SortName, k.SortAuthor, k.SortDate, k.Open}
	case modeFiltering:
		return []key.Binding{k.Back, k.Confirm}
	default:
		b := []key.Binding{k.Quit, k.Search, k.Sort}
		if hasResults {
			b = append(b, k.FetchMore)
		}
		return append(b, k.Clear, k.Open)
	}
}

func (k detailKeyMap) hints(state preview.State, focus pane) []key.Binding {
	switch state {
	case preview.Playing:
		return []key.Binding{k.Pause, k.Stop, k.VolumeUp, k.VolumeDown}
	case preview.Paused:
		return []key.Binding{k.Resume}
	}
	b := []key.Binding{k.Back, k.Play, k.Description, k.Scoreboard, k.MoreScores}
	if focus == paneDifficulties {
		return append(b, k.Confirm, k.Right)
	}
	return append(b, k.Left)
}

func withHelp(b key.Binding, desc string) key.Binding {
	h := b.Help()
	b.SetHelp(h.Key, desc)
	return b
}
