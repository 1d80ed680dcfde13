package preview

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

type fakeSink struct {
	queued  io.Reader
	playing bool
	paused  bool
	drained bool
	volume  float64
	volumes []float64
	stops   int
	closes  int
}

func (s *fakeSink) Play(r io.Reader) {
	s.queued = r
	s.playing = true
	s.paused = false
	s.drained = false
}
func (s *fakeSink) Pause()  { s.paused = true }
func (s *fakeSink) Resume() { s.paused = false }
func (s *fakeSink) Stop() {
	s.stops++
	s.queued = nil
	s.playing = false
	s.paused = false
}
func (s *fakeSink) SetVolume(v float64) {
	s.volume = v
	s.volumes = append(s.volumes, v)
}
func (s *fakeSink) Drained() bool { return s.drained }
func (s *fakeSink) Close() error {
	s.closes++
	return nil
}

// makeWAV builds a 16-bit PCM WAV payload.
func makeWAV(rate, channels int, samples ...int16) []byte {
	data := pcm16(samples...)
	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+len(data)))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&b, binary.LittleEndian, uint32(rate))
	_ = binary.Write(&b, binary.LittleEndian, uint32(rate*channels*2))
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels*2))
	_ = binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(len(data)))
	b.Write(data)
	return b.Bytes()
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(sample))
	}
	return out
}

func assertConsistent(t *testing.T, p *Player, s *fakeSink) {
	t.Helper()
	switch p.State() {
	case Playing:
		if !s.playing || s.paused || s.queued == nil {
			t.Fatalf("state Playing but sink playing=%v paused=%v queued=%v", s.playing, s.paused, s.queued != nil)
		}
	case Paused:
		if !s.paused {
			t.Fatal("state Paused but sink is not paused")
		}
	case Stopped:
		if s.playing || s.queued != nil {
			t.Fatal("state Stopped but sink still has media queued")
		}
	}
}

func TestNewStartsStoppedAtDefaultVolume(t *testing.T) {
	s := &fakeSink{}
	p := New(makeWAV(44100, 2, 1, 2), s)
	if p.State() != Stopped {
		t.Fatalf("expected Stopped, got %v", p.State())
	}
	if p.Volume() != DefaultVolume || s.volume != DefaultVolume {
		t.Fatalf("expected volume %.2f on player and sink, got %.2f / %.2f", DefaultVolume, p.Volume(), s.volume)
	}
}

func TestVolumeStepsAndClamps(t *testing.T) {
	s := &fakeSink{}
	p := New(nil, s)

	for i := 0; i < 10; i++ {
		p.VolumeUp()
	}
	if p.Volume() != 0.3 {
		t.Fatalf("expected 0.3 after ten steps up, got %v", p.Volume())
	}
	if s.volume != 0.3 {
		t.Fatalf("expected sink volume 0.3 while stopped, got %v", s.volume)
	}

	for i := 0; i < 100; i++ {
		p.VolumeUp()
	}
	if p.Volume() != 1 {
		t.Fatalf("expected volume clamped to 1, got %v", p.Volume())
	}

	for i := 0; i < 200; i++ {
		p.VolumeDown()
	}
	if p.Volume() != 0 {
		t.Fatalf("expected volume floored at 0, got %v", p.Volume())
	}
	p.VolumeUp()
	if p.Volume() != 0.02 {
		t.Fatalf("expected 0.02 after one step from floor, got %v", p.Volume())
	}
}

func TestTransitionsKeepSinkConsistent(t *testing.T) {
	s := &fakeSink{}
	p := New(makeWAV(22050, 1, 100, 200, 300, 400), s)

	if err := p.Play(); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if p.State() != Playing {
		t.Fatalf("expected Playing, got %v", p.State())
	}
	assertConsistent(t, p, s)

	p.Pause()
	if p.State() != Paused {
		t.Fatalf("expected Paused, got %v", p.State())
	}
	assertConsistent(t, p, s)

	// Play is not a transition out of Paused.
	if err := p.Play(); err != nil {
		t.Fatalf("Play while paused returned error: %v", err)
	}
	if p.State() != Paused {
		t.Fatalf("expected Play to be ignored while paused, got %v", p.State())
	}

	p.Resume()
	if p.State() != Playing {
		t.Fatalf("expected Playing after resume, got %v", p.State())
	}
	assertConsistent(t, p, s)

	p.Stop()
	if p.State() != Stopped {
		t.Fatalf("expected Stopped, got %v", p.State())
	}
	assertConsistent(t, p, s)
}

func TestPlayRestartsFromBeginning(t *testing.T) {
	s := &fakeSink{}
	p := New(makeWAV(44100, 2, 10, 20, 30, 40), s)

	if err := p.Play(); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	first, err := io.ReadAll(s.queued)
	if err != nil {
		t.Fatalf("reading queued stream: %v", err)
	}
	p.Stop()

	if err := p.Play(); err != nil {
		t.Fatalf("second Play returned error: %v", err)
	}
	second, err := io.ReadAll(s.queued)
	if err != nil {
		t.Fatalf("reading queued stream: %v", err)
	}
	if !bytes.Equal(first, pcm16(10, 20, 30, 40)) {
		t.Fatalf("unexpected first stream %v", first)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected replay from zero, got %v then %v", first, second)
	}
}

func TestPlayRejectsUnknownPayload(t *testing.T) {
	s := &fakeSink{}
	p := New([]byte("<!DOCTYPE html>"), s)

	err := p.Play()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if p.State() != Stopped || s.playing {
		t.Fatal("expected player and sink to stay stopped")
	}
}

func TestPollStopsAtEndOfTrack(t *testing.T) {
	s := &fakeSink{}
	p := New(makeWAV(44100, 2, 1, 1), s)
	if err := p.Play(); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}

	if p.Poll() {
		t.Fatal("expected Poll to keep playing while audio is queued")
	}
	s.drained = true
	if !p.Poll() {
		t.Fatal("expected Poll to report end of track")
	}
	if p.State() != Stopped {
		t.Fatalf("expected Stopped after drain, got %v", p.State())
	}
	assertConsistent(t, p, s)
	if p.Poll() {
		t.Fatal("expected Poll to be a no-op once stopped")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s := &fakeSink{}
	p := New(makeWAV(44100, 2, 1, 1), s)
	_ = p.Play()

	if err := p.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	if s.closes != 1 {
		t.Fatalf("expected sink closed once, got %d", s.closes)
	}
	if p.State() != Stopped {
		t.Fatalf("expected Stopped after close, got %v", p.State())
	}
	if err := p.Play(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestOpenWithPropagatesFailures(t *testing.T) {
	fetchErr := errors.New("fetch failed")
	_, err := openWith(context.Background(),
		func(context.Context, string) ([]byte, error) { return nil, fetchErr },
		"https://cdn.example/a.mp3",
		func() (Sink, error) { t.Fatal("sink opened after failed fetch"); return nil, nil })
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	_, err = openWith(context.Background(),
		func(context.Context, string) ([]byte, error) { return []byte("ID3"), nil },
		"https://cdn.example/a.mp3",
		func() (Sink, error) { return nil, ErrNoDevice })
	if !errors.Is(err, ErrNoDevice) {
		t.Fatalf("expected ErrNoDevice, got %v", err)
	}

	s := &fakeSink{}
	p, err := openWith(context.Background(),
		func(context.Context, string) ([]byte, error) { return makeWAV(44100, 2, 1, 1), nil },
		"https://cdn.example/a.wav",
		func() (Sink, error) { return s, nil })
	if err != nil {
		t.Fatalf("openWith returned error: %v", err)
	}
	if p.State() != Stopped || s.volume != DefaultVolume {
		t.Fatalf("unexpected opened player state %v volume %v", p.State(), s.volume)
	}
}
