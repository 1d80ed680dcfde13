package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saberdeck/saberdeck/internal/leaderboard"
	"github.com/saberdeck/saberdeck/internal/logger"
)

var errNoVersion = errors.New("map has no published version")

// buildDetail runs the detail construction steps in order. A failure in
// any step releases what earlier steps acquired.
func buildDetail(ctx context.Context, svc Services, id string, status chan<- string) (detailModel, error) {
	report := func(label string) {
		if status == nil {
			return
		}
		select {
		case status <- label:
		default:
		}
	}

	report("Fetching map " + id)
	m, err := svc.Catalog.GetMap(ctx, id)
	if err != nil {
		return detailModel{}, err
	}
	version, ok := m.LatestVersion()
	if !ok {
		return detailModel{}, fmt.Errorf("map %s: %w", id, errNoVersion)
	}

	report("Fetching preview")
	player, err := svc.OpenPreview(ctx, version.PreviewURL)
	if err != nil {
		return detailModel{}, err
	}
	if err := ctx.Err(); err != nil {
		_ = player.Close()
		return detailModel{}, err
	}

	report("Fetching leaderboards")
	infos, err := leaderboard.BuildInfos(ctx, svc.Leaderboards, version.Hash, version.Diffs)
	if err != nil {
		_ = player.Close()
		return detailModel{}, err
	}

	current, ranked := leaderboard.FirstRanked(infos)
	var scores []leaderboard.Score
	if ranked {
		report("Fetching scores")
		scores, err = svc.Leaderboards.GetScores(ctx, infos[current].ID, 1)
		if err != nil {
			_ = player.Close()
			return detailModel{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		_ = player.Close()
		return detailModel{}, err
	}

	logger.Info("detail opened",
		logger.String("map", id),
		logger.Int("difficulties", len(version.Diffs)),
		logger.Bool("ranked", ranked))
	return newDetailModel(m, version, newScoreBoard(infos, current, scores), player), nil
}

func openDetailCmd(ctx context.Context, svc Services, id string, status chan string) tea.Cmd {
	return func() tea.Msg {
		defer close(status)
		d, err := buildDetail(ctx, svc, id, status)
		if err != nil {
			return detailOpenedMsg{err: err}
		}
		return detailOpenedMsg{detail: &d}
	}
}
