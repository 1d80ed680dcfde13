package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/leaderboard"
)

// detailPollInterval bounds how long the detail view waits between
// end-of-track checks.
const detailPollInterval = 256 * time.Millisecond

// searchResultMsg carries a finished catalog search. more marks a
// fetch-more page rather than a fresh search.
type searchResultMsg struct {
	query string
	maps  []catalog.Map
	more  bool
	err   error
}

type detailOpenedMsg struct {
	detail *detailModel
	err    error
}

// scoresMsg carries a finished score fetch for the difficulty at index.
type scoresMsg struct {
	index  int
	page   uint32
	scores []leaderboard.Score
	more   bool
	err    error
}

// busyStatusMsg updates the busy overlay label.
type busyStatusMsg string

type detailTickMsg struct {
	session int
}

func detailTickCmd(session int) tea.Cmd {
	return tea.Tick(detailPollInterval, func(time.Time) tea.Msg {
		return detailTickMsg{session: session}
	})
}
