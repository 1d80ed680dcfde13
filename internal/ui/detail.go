package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/logger"
	"github.com/saberdeck/saberdeck/internal/preview"
	"github.com/saberdeck/saberdeck/internal/util"
)

// pane is the detail table that receives up/down.
type pane int

const (
	paneDifficulties pane = iota
	paneLeaderboard
)

// PreviewPlayer is the part of *preview.Player the detail screen drives.
type PreviewPlayer interface {
	State() preview.State
	Volume() float64
	Metadata() preview.Metadata
	Play() error
	Pause()
	Resume()
	Stop()
	VolumeUp()
	VolumeDown()
	Poll() bool
	Close() error
}

// detailRequest is work the detail screen asks the app to run.
type detailRequest interface {
	isDetailRequest()
}

type leaveRequest struct{}

// scoresRequest fetches one score page for the difficulty at index. A
// request with more set appends instead of replacing.
type scoresRequest struct {
	index int
	id    uint32
	page  uint32
	more  bool
}

func (leaveRequest) isDetailRequest()  {}
func (scoresRequest) isDetailRequest() {}

type detailModel struct {
	m       catalog.Map
	version catalog.Version
	diffs   difficultyTable
	board   scoreBoard
	focus   pane
	player  PreviewPlayer
	gauge   volumeGauge

	descExpanded bool
	boardHidden  bool

	session int
	help    help.Model
	width   int
	height  int
}

func newDetailModel(m catalog.Map, version catalog.Version, board scoreBoard, player PreviewPlayer) detailModel {
	return detailModel{
		m:       m,
		version: version,
		diffs:   newDifficultyTable(version.Diffs),
		board:   board,
		focus:   paneDifficulties,
		player:  player,
		gauge:   newVolumeGauge(player.Volume()),
		help:    help.New(),
	}
}

// update applies one key. Most keys mean different things depending on
// the preview state. A non-nil error is shown in the failure prompt.
func (d detailModel) update(msg tea.KeyMsg) (detailModel, detailRequest, error) {
	switch d.player.State() {
	case preview.Playing:
		switch {
		case key.Matches(msg, detailKeys.Pause):
			d.player.Pause()
		case key.Matches(msg, detailKeys.Stop):
			d.player.Stop()
		case key.Matches(msg, detailKeys.VolumeUp):
			d.player.VolumeUp()
		case key.Matches(msg, detailKeys.VolumeDown):
			d.player.VolumeDown()
		}
		return d, nil, nil
	case preview.Paused:
		if key.Matches(msg, detailKeys.Resume) {
			d.player.Resume()
		}
		return d, nil, nil
	}

	switch {
	case key.Matches(msg, detailKeys.Play):
		if err := d.player.Play(); err != nil {
			return d, nil, err
		}
	case key.Matches(msg, detailKeys.Description):
		d.descExpanded = !d.descExpanded
	case key.Matches(msg, detailKeys.Scoreboard):
		d.boardHidden = !d.boardHidden
	case key.Matches(msg, detailKeys.Back):
		return d, leaveRequest{}, nil
	case key.Matches(msg, detailKeys.Confirm):
		if d.focus == paneDifficulties && d.diffs.rows() > 0 {
			return d.selectDifficulty(d.diffs.sel.selected())
		}
	case key.Matches(msg, detailKeys.MoreScores):
		info, ok := d.board.currentInfo()
		if ok && info.HasLeaderboard() {
			return d, scoresRequest{index: d.board.current, id: info.ID, page: d.board.page + 1, more: true}, nil
		}
	case key.Matches(msg, detailKeys.Up):
		if d.focus == paneDifficulties {
			d.diffs.sel = d.diffs.sel.up(d.diffs.rows())
		} else {
			d.board.sel = d.board.sel.up(d.board.rows())
		}
	case key.Matches(msg, detailKeys.Down):
		if d.focus == paneDifficulties {
			d.diffs.sel = d.diffs.sel.down(d.diffs.rows())
		} else {
			d.board.sel = d.board.sel.down(d.board.rows())
		}
	case key.Matches(msg, detailKeys.Right):
		if d.focus == paneDifficulties {
			d.focus = paneLeaderboard
			d.diffs.sel = cursor{}
			d.board.sel = at(0)
		}
	case key.Matches(msg, detailKeys.Left):
		if d.focus == paneLeaderboard {
			d.focus = paneDifficulties
			d.board.sel = cursor{}
			d.diffs.sel = at(d.board.current)
		}
	}
	return d, nil, nil
}

// selectDifficulty shows the scores for index. Difficulties without a
// leaderboard are shown empty without a request.
func (d detailModel) selectDifficulty(index int) (detailModel, detailRequest, error) {
	if index >= len(d.board.infos) {
		return d, nil, nil
	}
	info := d.board.infos[index]
	if !info.HasLeaderboard() {
		d.board = d.board.show(index, nil)
		return d, nil, nil
	}
	return d, scoresRequest{index: index, id: info.ID, page: 1}, nil
}

// applyScores installs a finished score fetch.
func (d detailModel) applyScores(msg scoresMsg) detailModel {
	if msg.more {
		if msg.index == d.board.current {
			d.board = d.board.appendPage(msg.scores)
		}
		return d
	}
	d.board = d.board.show(msg.index, msg.scores)
	return d
}

// tick runs the end-of-track check and eases the volume gauge.
func (d detailModel) tick() detailModel {
	d.player.Poll()
	d.gauge = d.gauge.step(d.player.Volume())
	return d
}

func (d detailModel) close() {
	if err := d.player.Close(); err != nil {
		logger.Warn("closing preview failed", logger.ErrorField(err))
	}
}

func (d detailModel) view() string {
	width := d.width
	if width <= 0 {
		width = 120
	}
	height := d.height
	if height <= 0 {
		height = 40
	}

	leftWidth := width
	boardWidth := 0
	if !d.boardHidden {
		boardWidth = width / 2
		leftWidth = width - boardWidth
	}

	hint := hintLine(d.help, detailKeys.hints(d.player.State(), d.focus)...)
	if d.player.State() != preview.Stopped {
		hint += "  " + d.gauge.view(d.player.Volume())
	}

	body := height - 1
	topHeight := body / 2
	if d.descExpanded {
		topHeight = body
	}
	left := d.topView(leftWidth, topHeight)
	if !d.descExpanded {
		left = lipgloss.JoinVertical(lipgloss.Left, left, d.bottomView(leftWidth, body-lipgloss.Height(left)))
	}

	view := left
	if boardWidth > 0 {
		view = lipgloss.JoinHorizontal(lipgloss.Top, left, d.boardView(boardWidth, body))
	}
	return hint + "\n" + view
}

func (d detailModel) topView(width, height int) string {
	inner := max(width-4, 10)
	meta := d.m.Metadata

	title := meta.SongName
	if meta.SongSubName != "" {
		title += " " + meta.SongSubName
	}
	if tag := d.player.Metadata(); tag.Title != "" && tag.Title != meta.SongName {
		label := tag.Title
		if tag.Artist != "" {
			label += " - " + tag.Artist
		}
		title += artistStyle.Render("  (" + label + ")")
	}
	song := boxStyle.Width(inner).Render(labelStyle.Render("Song Name") + "\n" + titleStyle.Render(title))

	info := []string{
		field("Artist", meta.SongAuthorName),
		field("Mapper", meta.LevelAuthorName),
		field("BPM", fmt.Sprintf("%g", meta.BPM)),
		field("Published", d.m.PublishedDate()),
		field("Duration", util.FormatSeconds(meta.Duration)),
	}
	stats := []string{
		field("Ranked", util.YesNo(d.m.Ranked)),
		field("Qualified", util.YesNo(d.m.Qualified)),
		field("Automapper", util.YesNo(d.m.Automapper)),
		field("Upvotes", util.FormatCount(d.m.Stats.Upvotes)),
		field("Downvotes", util.FormatCount(d.m.Stats.Downvotes)),
	}
	infoWidth := inner * 7 / 10
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Width(infoWidth).Render(strings.Join(info, "\n")),
		boxStyle.Width(max(inner-infoWidth-4, 10)).Render(strings.Join(stats, "\n")),
	)

	descHeight := max(height-lipgloss.Height(song)-lipgloss.Height(middle)-2, 1)
	desc := boxStyle.Width(inner).Height(descHeight).MaxHeight(descHeight + 2).Render(
		labelStyle.Render("Description (e to expand)") + "\n" + d.m.Description)

	return lipgloss.JoinVertical(lipgloss.Left, song, middle, desc)
}

func (d detailModel) bottomView(width, height int) string {
	inner := max(width-4, 10)
	links := boxStyle.Width(inner).Render(
		labelStyle.Render("Links") + "\n" +
			field("Download", d.version.DownloadURL) + "\n" +
			field("Cover", d.version.CoverURL))

	style := boxStyle
	if d.focus == paneDifficulties {
		style = activeBoxStyle
	}
	table := style.Render(labelStyle.Render("Difficulties") + "\n" + d.diffs.view(d.board.infos))
	return lipgloss.JoinVertical(lipgloss.Left, links, table)
}

func (d detailModel) boardView(width, height int) string {
	style := boxStyle
	if d.focus == paneLeaderboard {
		style = activeBoxStyle
	}
	inner := max(width-4, 10)
	rows := max(height-4, 3)
	return style.Width(inner).Render(labelStyle.Render(d.board.title()) + "\n" + d.board.view(inner, rows))
}

func field(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s -> ", label)) + value
}
