package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/saberdeck/saberdeck/internal/leaderboard"
	"github.com/saberdeck/saberdeck/internal/util"
)

// scoreBoard shows the scores of one difficulty at a time. infos has one
// entry per difficulty and current always indexes it.
type scoreBoard struct {
	infos   []leaderboard.Info
	current int
	scores  []leaderboard.Score
	page    uint32
	sel     cursor
}

func newScoreBoard(infos []leaderboard.Info, current int, scores []leaderboard.Score) scoreBoard {
	return scoreBoard{infos: infos, current: current, scores: scores, page: 1}
}

func (b scoreBoard) rows() int { return len(b.scores) }

func (b scoreBoard) currentInfo() (leaderboard.Info, bool) {
	if b.current < 0 || b.current >= len(b.infos) {
		return leaderboard.Info{}, false
	}
	return b.infos[b.current], true
}

// show replaces the displayed scores with the first page for index.
func (b scoreBoard) show(index int, scores []leaderboard.Score) scoreBoard {
	b.current = index
	b.scores = scores
	b.page = 1
	b.sel = b.sel.clamp(len(scores))
	return b
}

// appendPage adds the next page of the current difficulty.
func (b scoreBoard) appendPage(scores []leaderboard.Score) scoreBoard {
	b.scores = append(b.scores, scores...)
	b.page++
	return b
}

func (b scoreBoard) title() string {
	info, ok := b.currentInfo()
	if !ok || len(b.scores) == 0 {
		return "No scores to display"
	}
	return fmt.Sprintf("Leaderboard - %s - %s",
		leaderboard.DifficultyName(info.Difficulty.Difficulty), info.Difficulty.GameMode)
}

func (b scoreBoard) view(width, height int) string {
	info, _ := b.currentInfo()
	widths := columnWidths(width, 10, 30, 15, 15, 15, 15)
	cols := []table.Column{
		{Title: "RANK", Width: widths[0]},
		{Title: "NAME", Width: widths[1]},
		{Title: "ACC", Width: widths[2]},
		{Title: "PP", Width: widths[3]},
		{Title: "SCORE", Width: widths[4]},
		{Title: "MISSES", Width: widths[5]},
	}
	rows := make([]table.Row, 0, len(b.scores))
	for _, s := range b.scores {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", s.Rank),
			util.Truncate(s.Player.Name, widths[1]),
			fmt.Sprintf("%.2f%%", s.Accuracy(info.MaxScore)),
			fmt.Sprintf("%.2f", s.PP),
			util.FormatCount(s.BaseScore),
			fmt.Sprintf("%d", s.Misses()),
		})
	}
	return renderTable(cols, rows, b.sel, height)
}
