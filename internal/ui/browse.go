package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/util"
)

// inputMode is the browse screen's interaction mode. Filtering is only
// reachable from Sorting and always returns to it.
type inputMode int

const (
	modeNormal inputMode = iota
	modeEditing
	modeSorting
	modeFiltering
)

func (m inputMode) String() string {
	switch m {
	case modeEditing:
		return "editing"
	case modeSorting:
		return "sorting"
	case modeFiltering:
		return "filtering"
	default:
		return "normal"
	}
}

// browseRequest is work the browse screen asks the app to run.
type browseRequest interface {
	isBrowseRequest()
}

type searchRequest struct{ query string }

type moreRequest struct {
	query string
	page  int
}

type openRequest struct{ id string }

type quitRequest struct{}

func (searchRequest) isBrowseRequest() {}
func (moreRequest) isBrowseRequest()   {}
func (openRequest) isBrowseRequest()   {}
func (quitRequest) isBrowseRequest()   {}

type browseModel struct {
	mode    inputMode
	input   textinput.Model
	query   string
	results resultSet
	sel     cursor
	page    int
	help    help.Model
	width   int
	height  int
}

func newBrowseModel() browseModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to search"
	ti.TextStyle = editingStyle
	return browseModel{input: ti, help: help.New()}
}

// update applies one key. The returned request, if any, is run by the app
// and its result comes back through applySearch or applyMore.
func (b browseModel) update(msg tea.KeyMsg) (browseModel, browseRequest) {
	switch b.mode {
	case modeEditing:
		return b.updateEditing(msg)
	case modeSorting:
		return b.updateSorting(msg)
	case modeFiltering:
		return b.updateFiltering(msg)
	default:
		return b.updateNormal(msg)
	}
}

func (b browseModel) updateNormal(msg tea.KeyMsg) (browseModel, browseRequest) {
	switch {
	case key.Matches(msg, browseKeys.Quit):
		return b, quitRequest{}
	case key.Matches(msg, browseKeys.Search):
		b = b.enter(modeEditing)
	case key.Matches(msg, browseKeys.Sort):
		b = b.enter(modeSorting)
	case key.Matches(msg, browseKeys.FetchMore):
		if !b.results.empty() {
			return b, moreRequest{query: b.query, page: b.page}
		}
	case key.Matches(msg, browseKeys.Clear):
		b.results.clear()
		b.sel = cursor{}
	default:
		return b.navigate(msg)
	}
	return b, nil
}

func (b browseModel) updateEditing(msg tea.KeyMsg) (browseModel, browseRequest) {
	switch {
	case key.Matches(msg, browseKeys.Back):
		b = b.enter(modeNormal)
	case key.Matches(msg, browseKeys.Confirm):
		query := b.input.Value()
		b = b.enter(modeNormal)
		return b, searchRequest{query: query}
	case isEditKey(msg):
		b.input, _ = b.input.Update(msg)
	}
	return b, nil
}

func (b browseModel) updateSorting(msg tea.KeyMsg) (browseModel, browseRequest) {
	switch {
	case key.Matches(msg, browseKeys.Back):
		b.results.reset()
		b.sel = b.sel.clamp(b.results.rows())
		b = b.enter(modeNormal)
	case key.Matches(msg, browseKeys.SortID):
		b.results.sortBy(sortByID)
	case key.Matches(msg, browseKeys.SortName):
		b.results.sortBy(sortBySongName)
	case key.Matches(msg, browseKeys.SortAuthor):
		b.results.sortBy(sortByAuthor)
	case key.Matches(msg, browseKeys.SortDate):
		b.results.sortBy(sortByDate)
	case key.Matches(msg, browseKeys.Filter):
		b = b.enter(modeFiltering)
	default:
		return b.navigate(msg)
	}
	return b, nil
}

func (b browseModel) updateFiltering(msg tea.KeyMsg) (browseModel, browseRequest) {
	switch {
	case key.Matches(msg, browseKeys.Back):
		b.results.reset()
		b.sel = b.sel.clamp(b.results.rows())
		b = b.enter(modeSorting)
	case key.Matches(msg, browseKeys.Confirm):
		b = b.enter(modeSorting)
	case isEditKey(msg):
		b.input, _ = b.input.Update(msg)
		b.results.filter(b.input.Value())
		b.sel = b.sel.clamp(b.results.rows())
	}
	return b, nil
}

// navigate handles the keys shared by Normal and Sorting.
func (b browseModel) navigate(msg tea.KeyMsg) (browseModel, browseRequest) {
	switch {
	case key.Matches(msg, browseKeys.Up):
		b.sel = b.sel.up(b.results.rows())
	case key.Matches(msg, browseKeys.Down):
		b.sel = b.sel.down(b.results.rows())
	case key.Matches(msg, browseKeys.Open):
		if b.results.rows() > 0 {
			return b, openRequest{id: b.results.view[b.sel.selected()].ID}
		}
	}
	return b, nil
}

// enter switches mode. Modes that take text start from an empty buffer.
func (b browseModel) enter(mode inputMode) browseModel {
	b.mode = mode
	switch mode {
	case modeEditing, modeFiltering:
		b.input.Reset()
		b.input.Focus()
	case modeSorting:
		b.input.Reset()
		b.input.Blur()
	default:
		b.input.Blur()
	}
	return b
}

// applySearch installs the first page of a fresh search.
func (b browseModel) applySearch(query string, maps []catalog.Map) browseModel {
	b.query = query
	b.results.replace(maps)
	b.page = 1
	if b.results.rows() > 0 {
		b.sel = at(0)
	} else {
		b.sel = cursor{}
	}
	return b
}

// applyMore appends a fetched page to both result sets.
func (b browseModel) applyMore(maps []catalog.Map) browseModel {
	b.results.extend(maps)
	b.page++
	b.sel = b.sel.clamp(b.results.rows())
	return b
}

func (b browseModel) view() string {
	var s strings.Builder

	s.WriteString(hintLine(b.help, browseKeys.hints(b.mode, !b.results.empty())...))
	s.WriteString("\n")
	s.WriteString(b.inputView())
	s.WriteString("\n")
	s.WriteString(b.tableView())
	return s.String()
}

func (b browseModel) inputView() string {
	title := "Search"
	text := b.query
	if b.mode == modeSorting || b.mode == modeFiltering {
		title = "Filter"
		text = b.input.Value()
	}
	if b.mode == modeEditing || b.mode == modeFiltering {
		text = b.input.View()
	}

	style := boxStyle
	if b.mode == modeEditing || b.mode == modeFiltering {
		style = activeBoxStyle
	}
	if w := b.width - 2; w > 0 {
		style = style.Width(w)
	}
	return labelStyle.Render(title) + "\n" + style.Render(text)
}

func (b browseModel) tableView() string {
	width := b.width
	if width <= 0 {
		width = 100
	}
	height := b.height - 8
	if height < 3 {
		height = 10
	}

	widths := columnWidths(width-4, 10, 30, 30, 20, 10)
	cols := []table.Column{
		{Title: "ID", Width: widths[0]},
		{Title: "SONG NAME", Width: widths[1]},
		{Title: "SONG AUTHOR", Width: widths[2]},
		{Title: "LEVEL AUTHOR", Width: widths[3]},
		{Title: "DATE", Width: widths[4]},
	}
	rows := make([]table.Row, 0, b.results.rows())
	for _, m := range b.results.view {
		rows = append(rows, table.Row{
			m.ID,
			util.Truncate(m.Metadata.SongName, widths[1]),
			util.Truncate(m.Metadata.SongAuthorName, widths[2]),
			util.Truncate(m.Metadata.LevelAuthorName, widths[3]),
			m.PublishedDate(),
		})
	}
	return boxStyle.Render(renderTable(cols, rows, b.sel, height))
}

// columnWidths splits total across columns by percentage, leaving room
// for cell padding.
func columnWidths(total int, percents ...int) []int {
	widths := make([]int, len(percents))
	for i, p := range percents {
		widths[i] = max(total*p/100-3, 3)
	}
	return widths
}

// renderTable draws a bubbles table with sel highlighted, or no highlight
// when nothing is selected.
func renderTable(cols []table.Column, rows []table.Row, sel cursor, height int) string {
	styles := table.DefaultStyles()
	styles.Header = headerStyle.Padding(0, 1)
	styles.Selected = selectedRowStyle
	if !sel.active {
		styles.Selected = lipgloss.NewStyle()
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithStyles(styles),
	)
	t.SetCursor(sel.clamp(len(rows)).index)
	return t.View()
}
