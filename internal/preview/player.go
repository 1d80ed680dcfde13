package preview

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/saberdeck/saberdeck/internal/logger"
)

const (
	// DefaultVolume is the level every preview starts at.
	DefaultVolume = 0.1
	// VolumeStep is applied by VolumeUp and VolumeDown.
	VolumeStep = 0.02
)

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("preview player closed")

// State is the playback state of a Player.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// FetchFunc downloads a whole audio payload.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Player plays one in-memory preview through a Sink. State transitions keep
// the sink in step: Playing means media is queued and unpaused, Paused means
// the sink is paused and Stopped means queued media was discarded.
type Player struct {
	payload []byte
	sink    Sink
	state   State
	volume  float64
	meta    Metadata
	closed  bool
}

// New creates a stopped Player over payload and pushes the default volume to sink.
func New(payload []byte, sink Sink) *Player {
	p := &Player{
		payload: payload,
		sink:    sink,
		volume:  DefaultVolume,
		meta:    readMetadata(payload),
	}
	sink.SetVolume(p.volume)
	return p
}

// Open fetches url and opens the default audio output.
func Open(ctx context.Context, fetch FetchFunc, url string) (*Player, error) {
	return openWith(ctx, fetch, url, NewOtoSink)
}

func openWith(ctx context.Context, fetch FetchFunc, url string, newSink func() (Sink, error)) (*Player, error) {
	payload, err := fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	sink, err := newSink()
	if err != nil {
		return nil, err
	}
	return New(payload, sink), nil
}

// State returns the current playback state.
func (p *Player) State() State { return p.state }

// Volume returns the current linear volume in [0, 1].
func (p *Player) Volume() float64 { return p.volume }

// Metadata returns the tag information found in the payload.
func (p *Player) Metadata() Metadata { return p.meta }

// Play decodes the payload from the start and queues it. It only acts
// while Stopped.
func (p *Player) Play() error {
	if p.closed {
		return ErrClosed
	}
	if p.state != Stopped {
		return nil
	}
	src, err := newDecoder(p.payload)
	if err != nil {
		return fmt.Errorf("starting preview: %w", err)
	}
	stream, err := newResampler(src)
	if err != nil {
		return fmt.Errorf("starting preview: %w", err)
	}
	p.sink.Stop()
	p.sink.SetVolume(p.volume)
	p.sink.Play(stream)
	p.setState(Playing)
	return nil
}

// Pause acts only while Playing.
func (p *Player) Pause() {
	if p.state != Playing {
		return
	}
	p.sink.Pause()
	p.setState(Paused)
}

// Resume continues a paused preview where it left off.
func (p *Player) Resume() {
	if p.state != Paused {
		return
	}
	p.sink.Resume()
	p.setState(Playing)
}

// Stop discards queued media. The next Play starts from the beginning.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}
	p.sink.Stop()
	p.setState(Stopped)
}

// VolumeUp raises the volume by one step.
func (p *Player) VolumeUp() { p.setVolume(p.volume + VolumeStep) }

// VolumeDown lowers the volume by one step.
func (p *Player) VolumeDown() { p.setVolume(p.volume - VolumeStep) }

func (p *Player) setVolume(v float64) {
	v = math.Round(v*100) / 100
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	p.sink.SetVolume(v)
	logger.Debug("preview volume", logger.Float64("volume", v))
}

// Poll forces the player to Stopped once the sink has played everything.
// It reports whether that happened.
func (p *Player) Poll() bool {
	if p.state == Stopped || !p.sink.Drained() {
		return false
	}
	p.Stop()
	return true
}

// Close stops playback and releases the sink. It is safe to call twice.
func (p *Player) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.sink.Stop()
	p.state = Stopped
	return p.sink.Close()
}

func (p *Player) setState(s State) {
	if s == p.state {
		return
	}
	logger.Debug("preview state", logger.String("from", p.state.String()), logger.String("to", s.String()))
	p.state = s
}
