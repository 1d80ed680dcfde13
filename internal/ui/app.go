package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/leaderboard"
	"github.com/saberdeck/saberdeck/internal/logger"
)

// Catalog is the map catalog the app searches.
type Catalog interface {
	SearchMaps(ctx context.Context, query string, page int) ([]catalog.Map, error)
	GetMap(ctx context.Context, id string) (catalog.Map, error)
}

// Leaderboards is the score service used by the detail screen.
type Leaderboards interface {
	leaderboard.InfoFetcher
	GetScores(ctx context.Context, id uint32, page uint32) ([]leaderboard.Score, error)
}

// Services are the collaborators the app fetches from.
type Services struct {
	Catalog      Catalog
	Leaderboards Leaderboards
	OpenPreview  func(ctx context.Context, url string) (PreviewPlayer, error)
}

// App is the root model. It shows browse, or one detail screen on top of
// it, and runs every fetch behind the busy overlay.
type App struct {
	ctx     context.Context
	cancel  context.CancelFunc
	svc     Services
	browse  browseModel
	detail  *detailModel
	busy    busyOverlay
	failure *failurePrompt
	session int
	initial string
	width   int
	height  int
}

// NewApp creates the root model. A non-empty query is searched on start.
// Fetches still running when the app quits are cancelled.
func NewApp(ctx context.Context, svc Services, query string) App {
	ctx, cancel := context.WithCancel(ctx)
	return App{
		ctx:     ctx,
		cancel:  cancel,
		svc:     svc,
		browse:  newBrowseModel(),
		busy:    newBusyOverlay(),
		initial: query,
	}
}

func (a App) Init() tea.Cmd {
	if a.initial == "" {
		return nil
	}
	query := a.initial
	return func() tea.Msg { return startSearchMsg{query: query} }
}

// startSearchMsg runs a search as if it had been confirmed from the
// search box.
type startSearchMsg struct{ query string }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.browse.width, a.browse.height = msg.Width, msg.Height
		if a.detail != nil {
			a.detail.width, a.detail.height = msg.Width, msg.Height
		}
		return a, nil

	case tea.KeyMsg:
		if isForceQuit(msg) {
			a.closeDetail()
			a.cancel()
			return a, tea.Quit
		}
		if a.busy.active {
			return a, nil
		}
		if a.failure != nil {
			a.failure = nil
			return a, nil
		}
		if a.detail != nil {
			return a.updateDetail(msg)
		}
		return a.updateBrowse(msg)

	case spinner.TickMsg, busyStatusMsg:
		var cmd tea.Cmd
		a.busy, cmd = a.busy.update(msg)
		return a, cmd

	case startSearchMsg:
		return a.runBrowse(searchRequest{query: msg.query})

	case searchResultMsg:
		a.busy = a.busy.stop()
		if msg.err != nil {
			return a.fail(msg.err)
		}
		if msg.more {
			a.browse = a.browse.applyMore(msg.maps)
		} else {
			a.browse = a.browse.applySearch(msg.query, msg.maps)
		}
		return a, nil

	case detailOpenedMsg:
		a.busy = a.busy.stop()
		if msg.err != nil {
			return a.fail(msg.err)
		}
		a.session++
		d := *msg.detail
		d.session = a.session
		d.width, d.height = a.width, a.height
		a.detail = &d
		return a, detailTickCmd(a.session)

	case scoresMsg:
		a.busy = a.busy.stop()
		if msg.err != nil {
			return a.fail(msg.err)
		}
		if a.detail != nil {
			d := a.detail.applyScores(msg)
			a.detail = &d
		}
		return a, nil

	case detailTickMsg:
		if a.detail == nil || msg.session != a.detail.session {
			return a, nil
		}
		d := a.detail.tick()
		a.detail = &d
		return a, detailTickCmd(d.session)
	}
	return a, nil
}

func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var req browseRequest
	a.browse, req = a.browse.update(msg)
	if req == nil {
		return a, nil
	}
	return a.runBrowse(req)
}

func (a App) runBrowse(req browseRequest) (tea.Model, tea.Cmd) {
	ctx, svc := a.ctx, a.svc
	switch req := req.(type) {
	case quitRequest:
		a.cancel()
		return a, tea.Quit
	case searchRequest:
		var tick tea.Cmd
		a.busy, tick = a.busy.start(fmt.Sprintf("Searching %q", req.query))
		return a, tea.Batch(tick, func() tea.Msg {
			maps, err := svc.Catalog.SearchMaps(ctx, req.query, 0)
			return searchResultMsg{query: req.query, maps: maps, err: err}
		})
	case moreRequest:
		var tick tea.Cmd
		a.busy, tick = a.busy.start(fmt.Sprintf("Fetching page %d", req.page+1))
		return a, tea.Batch(tick, func() tea.Msg {
			maps, err := svc.Catalog.SearchMaps(ctx, req.query, req.page)
			return searchResultMsg{query: req.query, maps: maps, more: true, err: err}
		})
	case openRequest:
		var (
			status chan string
			cmd    tea.Cmd
		)
		a.busy, status, cmd = a.busy.startWithStatus("Opening map " + req.id)
		return a, tea.Batch(cmd, openDetailCmd(ctx, svc, req.id, status))
	}
	return a, nil
}

func (a App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, req, err := a.detail.update(msg)
	a.detail = &d
	if err != nil {
		return a.fail(err)
	}
	switch req := req.(type) {
	case leaveRequest:
		a.closeDetail()
		return a, nil
	case scoresRequest:
		ctx, boards := a.ctx, a.svc.Leaderboards
		var tick tea.Cmd
		a.busy, tick = a.busy.start(fmt.Sprintf("Fetching scores page %d", req.page))
		return a, tea.Batch(tick, func() tea.Msg {
			scores, err := boards.GetScores(ctx, req.id, req.page)
			return scoresMsg{index: req.index, page: req.page, scores: scores, more: req.more, err: err}
		})
	}
	return a, nil
}

// closeDetail tears down the detail screen and its preview. Ticks from
// the closed session are dropped.
func (a *App) closeDetail() {
	if a.detail == nil {
		return
	}
	a.detail.close()
	a.detail = nil
	a.session++
}

func (a App) fail(err error) (tea.Model, tea.Cmd) {
	logger.Error("operation failed", logger.ErrorField(err))
	a.failure = &failurePrompt{err: err}
	return a, nil
}

// Close releases the preview of an open detail screen and cancels any
// fetch still in flight.
func (a App) Close() {
	a.closeDetail()
	a.cancel()
}

func (a App) View() string {
	switch {
	case a.busy.active:
		return a.busy.view(a.width, a.height)
	case a.failure != nil:
		return a.failure.view(a.width, a.height)
	case a.detail != nil:
		return a.detail.view()
	default:
		return a.browse.view()
	}
}
