package catalog

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/saberdeck/saberdeck/internal/logger"
	"github.com/saberdeck/saberdeck/internal/webapi"
)

// DefaultSortOrder is used when no sort order is configured.
const DefaultSortOrder = "Relevance"

// Client talks to the map catalog.
type Client struct {
	api       *webapi.Client
	sortOrder string
}

// New creates a catalog client rooted at baseURL.
func New(baseURL, sortOrder string, reqPerSec float64, timeout time.Duration) *Client {
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}
	return &Client{
		api:       webapi.New(baseURL, reqPerSec, timeout),
		sortOrder: sortOrder,
	}
}

// SearchMaps returns one page of results for query. Pages start at 0.
func (c *Client) SearchMaps(ctx context.Context, query string, page int) ([]Map, error) {
	path := fmt.Sprintf("/search/text/%d?q=%s&sortOrder=%s",
		page, url.QueryEscape(query), url.QueryEscape(c.sortOrder))

	var resp searchResponse
	if err := c.api.GetJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	logger.Info("catalog search", logger.String("query", query), logger.Int("page", page), logger.Int("results", len(resp.Docs)))
	return resp.Docs, nil
}

// GetMap returns the full record for id.
func (c *Client) GetMap(ctx context.Context, id string) (Map, error) {
	var m Map
	if err := c.api.GetJSON(ctx, "/maps/id/"+url.PathEscape(id), &m); err != nil {
		return Map{}, fmt.Errorf("loading map %s: %w", id, err)
	}
	return m, nil
}
