package ui

import (
	"slices"
	"strings"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/logger"
)

type sortKey int

const (
	sortByID sortKey = iota
	sortBySongName
	sortByAuthor
	sortByDate
)

func (k sortKey) String() string {
	switch k {
	case sortBySongName:
		return "song name"
	case sortByAuthor:
		return "artist"
	case sortByDate:
		return "date"
	default:
		return "id"
	}
}

// resultSet holds everything fetched for the current query and the view
// that is displayed. The view is always built from copies of full.
type resultSet struct {
	full []catalog.Map
	view []catalog.Map
}

func (r *resultSet) replace(maps []catalog.Map) {
	r.full = slices.Clone(maps)
	r.view = slices.Clone(maps)
}

func (r *resultSet) extend(maps []catalog.Map) {
	r.full = append(r.full, maps...)
	r.view = append(r.view, maps...)
}

func (r *resultSet) clear() {
	r.full = nil
	r.view = nil
}

// reset discards any sort or filter applied to the view.
func (r *resultSet) reset() {
	r.view = slices.Clone(r.full)
}

func (r resultSet) empty() bool { return len(r.full) == 0 }

func (r resultSet) rows() int { return len(r.view) }

// sortBy re-sorts the view in place. Song name and artist compare without
// case; id and date compare as plain strings.
func (r *resultSet) sortBy(key sortKey) {
	var cmp func(a, b catalog.Map) int
	switch key {
	case sortBySongName:
		cmp = func(a, b catalog.Map) int {
			return strings.Compare(strings.ToLower(a.Metadata.SongName), strings.ToLower(b.Metadata.SongName))
		}
	case sortByAuthor:
		cmp = func(a, b catalog.Map) int {
			return strings.Compare(strings.ToLower(a.Metadata.SongAuthorName), strings.ToLower(b.Metadata.SongAuthorName))
		}
	case sortByDate:
		cmp = func(a, b catalog.Map) int { return strings.Compare(a.LastPublishedAt, b.LastPublishedAt) }
	default:
		cmp = func(a, b catalog.Map) int { return strings.Compare(a.ID, b.ID) }
	}
	slices.SortStableFunc(r.view, cmp)
	logger.Debug("results sorted", logger.String("key", key.String()), logger.Int("rows", len(r.view)))
}

// filter rebuilds the view from full, keeping maps whose searchable text
// contains text regardless of case. Order follows full.
func (r *resultSet) filter(text string) {
	needle := strings.ToLower(text)
	view := make([]catalog.Map, 0, len(r.full))
	for _, m := range r.full {
		if strings.Contains(searchText(m), needle) {
			view = append(view, m)
		}
	}
	r.view = view
}

func searchText(m catalog.Map) string {
	return strings.ToLower(strings.Join([]string{
		m.ID,
		m.Metadata.SongName,
		m.Metadata.SongAuthorName,
		m.Metadata.LevelAuthorName,
		m.LastPublishedAt,
	}, " "))
}
