package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/logger"
	"github.com/saberdeck/saberdeck/internal/webapi"
)

// ErrFetch marks a failed per-difficulty lookup while building a board.
var ErrFetch = errors.New("leaderboard fetch failed")

// Client talks to the leaderboard service.
type Client struct {
	api *webapi.Client
}

// New creates a leaderboard client rooted at baseURL.
func New(baseURL string, reqPerSec float64, timeout time.Duration) *Client {
	return &Client{api: webapi.New(baseURL, reqPerSec, timeout)}
}

// GetLeaderboardInfo looks up the leaderboard for one difficulty of a map.
func (c *Client) GetLeaderboardInfo(ctx context.Context, hash string, difficultyID uint8, mode string) (Info, error) {
	path := fmt.Sprintf("/api/leaderboard/by-hash/%s/info?difficulty=%d&gameMode=%s",
		url.PathEscape(hash), difficultyID, url.QueryEscape(mode))

	var info Info
	if err := c.api.GetJSON(ctx, path, &info); err != nil {
		return Info{}, fmt.Errorf("leaderboard info for %s %s: %w", DifficultyName(difficultyID), mode, err)
	}
	return info, nil
}

// GetScores returns one page of scores. Pages start at 1.
func (c *Client) GetScores(ctx context.Context, id uint32, page uint32) ([]Score, error) {
	path := fmt.Sprintf("/api/leaderboard/by-id/%d/scores?page=%d", id, page)

	var resp scoresResponse
	if err := c.api.GetJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("scores for leaderboard %d page %d: %w", id, page, err)
	}
	logger.Debug("scores fetched", logger.Uint32("leaderboard", id), logger.Uint32("page", page), logger.Int("count", len(resp.Scores)))
	return resp.Scores, nil
}

// InfoFetcher is the part of Client that BuildInfos needs.
type InfoFetcher interface {
	GetLeaderboardInfo(ctx context.Context, hash string, difficultyID uint8, mode string) (Info, error)
}

// BuildInfos returns one Info per difficulty, in the same order. Difficulties
// whose characteristic cannot be ranked get an empty Info without a request.
// Any failed lookup aborts the whole build.
func BuildInfos(ctx context.Context, f InfoFetcher, hash string, diffs []catalog.Difficulty) ([]Info, error) {
	infos := make([]Info, 0, len(diffs))
	for _, d := range diffs {
		if !IsCompetitive(d.Characteristic) {
			infos = append(infos, Info{})
			continue
		}
		info, err := f.GetLeaderboardInfo(ctx, hash, DifficultyID(d.Difficulty), ModeName(d.Characteristic))
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", ErrFetch, d.Characteristic, d.Difficulty, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// FirstRanked returns the index of the first Info with a leaderboard.
func FirstRanked(infos []Info) (int, bool) {
	for i, info := range infos {
		if info.HasLeaderboard() {
			return i, true
		}
	}
	return 0, false
}
