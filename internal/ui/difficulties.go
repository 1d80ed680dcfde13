package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/leaderboard"
)

// difficultyTable lists a version's difficulties in catalog order.
type difficultyTable struct {
	diffs []catalog.Difficulty
	sel   cursor
}

func newDifficultyTable(diffs []catalog.Difficulty) difficultyTable {
	t := difficultyTable{diffs: diffs}
	if len(diffs) > 0 {
		t.sel = at(0)
	}
	return t
}

func (t difficultyTable) rows() int { return len(t.diffs) }

// starsLabel shows "N/A" for difficulties without a leaderboard.
func starsLabel(infos []leaderboard.Info, i int) string {
	if i >= len(infos) || !infos[i].HasLeaderboard() {
		return "N/A"
	}
	return strconv.FormatFloat(infos[i].Stars, 'f', -1, 64)
}

func (t difficultyTable) view(infos []leaderboard.Info) string {
	rows := make([][]string, 0, len(t.diffs))
	for i, d := range t.diffs {
		rows = append(rows, []string{
			d.Difficulty,
			d.Characteristic,
			strconv.FormatFloat(d.NJS, 'f', -1, 64),
			fmt.Sprintf("%.2f", d.NPS),
			strconv.Itoa(d.Notes),
			strconv.Itoa(d.Bombs),
			starsLabel(infos, i),
		})
	}

	diffs := t.diffs
	sel := t.sel
	tbl := lgtable.New().
		Border(lipgloss.HiddenBorder()).
		Headers("DIFF", "MODE", "NJS", "NPS", "NOTES", "BOMBS", "STARS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			s := lipgloss.NewStyle().Padding(0, 1).Foreground(difficultyColor(diffs[row].Difficulty))
			if sel.active && sel.index == row {
				s = s.Reverse(true)
			}
			return s
		})
	return tbl.String()
}
