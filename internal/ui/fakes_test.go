package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saberdeck/saberdeck/internal/catalog"
	"github.com/saberdeck/saberdeck/internal/leaderboard"
	"github.com/saberdeck/saberdeck/internal/preview"
)

type fakeCatalog struct {
	mu        sync.Mutex
	pages     map[int][]catalog.Map
	maps      map[string]catalog.Map
	err       error
	requested []int
}

func (f *fakeCatalog) SearchMaps(_ context.Context, _ string, page int) ([]catalog.Map, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, page)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[page], nil
}

func (f *fakeCatalog) GetMap(_ context.Context, id string) (catalog.Map, error) {
	if f.err != nil {
		return catalog.Map{}, f.err
	}
	m, ok := f.maps[id]
	if !ok {
		return catalog.Map{}, fmt.Errorf("map %s not found", id)
	}
	return m, nil
}

type scoreCall struct {
	id   uint32
	page uint32
}

type fakeBoards struct {
	mu         sync.Mutex
	infoErr    error
	scoresErr  error
	scoreCalls []scoreCall
}

func (f *fakeBoards) GetLeaderboardInfo(_ context.Context, _ string, id uint8, mode string) (leaderboard.Info, error) {
	if f.infoErr != nil {
		return leaderboard.Info{}, f.infoErr
	}
	return leaderboard.Info{
		ID:         100 + uint32(id),
		MaxScore:   1000,
		Stars:      float64(id),
		Difficulty: leaderboard.DifficultyInfo{Difficulty: id, GameMode: mode},
	}, nil
}

func (f *fakeBoards) GetScores(_ context.Context, id uint32, page uint32) ([]leaderboard.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scoreCalls = append(f.scoreCalls, scoreCall{id: id, page: page})
	if f.scoresErr != nil {
		return nil, f.scoresErr
	}
	return []leaderboard.Score{
		{Rank: int(page)*10 + 1, Player: leaderboard.Player{Name: "first"}, BaseScore: 900},
		{Rank: int(page)*10 + 2, Player: leaderboard.Player{Name: "second"}, BaseScore: 800},
	}, nil
}

func (f *fakeBoards) calls() []scoreCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scoreCall(nil), f.scoreCalls...)
}

type fakePlayer struct {
	meta    preview.Metadata
	state   preview.State
	volume  float64
	playErr error
	drained bool
	plays   int
	closes  int
}

func newFakePlayer() *fakePlayer { return &fakePlayer{volume: preview.DefaultVolume} }

func (p *fakePlayer) State() preview.State       { return p.state }
func (p *fakePlayer) Volume() float64            { return p.volume }
func (p *fakePlayer) Metadata() preview.Metadata { return p.meta }

func (p *fakePlayer) Play() error {
	if p.playErr != nil {
		return p.playErr
	}
	p.plays++
	p.state = preview.Playing
	return nil
}

func (p *fakePlayer) Pause() {
	if p.state == preview.Playing {
		p.state = preview.Paused
	}
}

func (p *fakePlayer) Resume() {
	if p.state == preview.Paused {
		p.state = preview.Playing
	}
}

func (p *fakePlayer) Stop()       { p.state = preview.Stopped }
func (p *fakePlayer) VolumeUp()   { p.volume += preview.VolumeStep }
func (p *fakePlayer) VolumeDown() { p.volume -= preview.VolumeStep }

func (p *fakePlayer) Poll() bool {
	if p.state != preview.Stopped && p.drained {
		p.state = preview.Stopped
		return true
	}
	return false
}

func (p *fakePlayer) Close() error {
	p.closes++
	p.state = preview.Stopped
	return nil
}

func fakeServices(cat *fakeCatalog, boards *fakeBoards, player *fakePlayer) Services {
	return Services{
		Catalog:      cat,
		Leaderboards: boards,
		OpenPreview: func(context.Context, string) (PreviewPlayer, error) {
			return player, nil
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// runCmd executes cmd and feeds the resulting messages back into m until
// nothing is left. Batched commands run concurrently because a status
// reader may wait on a sibling. Animation ticks are not fed back.
func runCmd(m tea.Model, cmd tea.Cmd) tea.Model {
	if cmd == nil {
		return m
	}
	for _, msg := range collect(cmd) {
		var next tea.Cmd
		m, next = m.Update(msg)
		m = runCmd(m, next)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if skipMsg(msg) {
			return nil
		}
		return []tea.Msg{msg}
	}

	results := make([][]tea.Msg, len(batch))
	var wg sync.WaitGroup
	for i, c := range batch {
		if c == nil {
			continue
		}
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = collect(c)
		}()
	}
	wg.Wait()

	var out []tea.Msg
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func skipMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case nil, spinner.TickMsg, busyStatusMsg, detailTickMsg:
		return true
	}
	return false
}

func sendKeys(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(k)
		m = runCmd(m, cmd)
	}
	return m
}
