package preview

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// ErrNoDevice is returned when no audio output can be opened.
var ErrNoDevice = errors.New("no audio output device")

// Sink is the hardware side of the player. Drained reports that everything
// queued by Play has been played out.
type Sink interface {
	Play(r io.Reader)
	Pause()
	Resume()
	Stop()
	SetVolume(v float64)
	Drained() bool
	Close() error
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputSampleRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// otoSink drives one oto.Player at a time on the process-wide context.
type otoSink struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	volume float64
	paused bool
	closed bool
}

// NewOtoSink opens the default audio output.
func NewOtoSink() (Sink, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	return &otoSink{ctx: ctx, volume: 1}, nil
}

func (s *otoSink) Play(r io.Reader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.discard()
	s.player = s.ctx.NewPlayer(r)
	s.player.SetVolume(s.volume)
	s.player.Play()
	s.paused = false
}

func (s *otoSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Pause()
		s.paused = true
	}
}

func (s *otoSink) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Play()
		s.paused = false
	}
}

func (s *otoSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discard()
}

func (s *otoSink) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
	if s.player != nil {
		s.player.SetVolume(v)
	}
}

func (s *otoSink) Drained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player == nil || (!s.paused && !s.player.IsPlaying())
}

func (s *otoSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.discard()
	return nil
}

// discard drops the current player. Callers hold mu.
func (s *otoSink) discard() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	s.player = nil
	s.paused = false
}
