package preview

import (
	"bytes"
	"io"
	"testing"
)

type stubPCMSource struct {
	data       []byte
	pos        int
	sampleRate int
	channels   int
}

func (s *stubPCMSource) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

func (s *stubPCMSource) SampleRate() int   { return s.sampleRate }
func (s *stubPCMSource) ChannelCount() int { return s.channels }

func TestResamplerUpmixesMono(t *testing.T) {
	src := &stubPCMSource{data: pcm16(1000, -2000, 3000), sampleRate: outputSampleRate, channels: 1}
	r, err := newResampler(src)
	if err != nil {
		t.Fatalf("newResampler() error = %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := pcm16(1000, 1000, -2000, -2000, 3000, 3000)
	if !bytes.Equal(out, want) {
		t.Fatalf("upmixed PCM mismatch:\n got %v\nwant %v", out, want)
	}
}

func TestResamplerDoublesRate(t *testing.T) {
	src := &stubPCMSource{data: pcm16(0, 1000, 10000, 11000, 20000, 21000), sampleRate: outputSampleRate / 2, channels: 2}
	r, err := newResampler(src)
	if err != nil {
		t.Fatalf("newResampler() error = %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := pcm16(
		0, 1000,
		5000, 6000,
		10000, 11000,
		15000, 16000,
		20000, 21000,
		20000, 21000,
	)
	if !bytes.Equal(out, want) {
		t.Fatalf("resampled PCM mismatch:\n got %v\nwant %v", out, want)
	}
}

func TestResamplerSmallReads(t *testing.T) {
	src := &stubPCMSource{data: pcm16(0, 0, 4000, 4000), sampleRate: outputSampleRate / 2, channels: 2}
	r, err := newResampler(src)
	if err != nil {
		t.Fatalf("newResampler() error = %v", err)
	}
	var out []byte
	buf := make([]byte, 3)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
	want := pcm16(0, 0, 2000, 2000, 4000, 4000, 4000, 4000)
	if !bytes.Equal(out, want) {
		t.Fatalf("PCM mismatch with small reads:\n got %v\nwant %v", out, want)
	}
}

func TestResamplerPassthrough(t *testing.T) {
	data := pcm16(1, 2, 3, 4)
	r, err := newResampler(&stubPCMSource{data: data, sampleRate: outputSampleRate, channels: 2})
	if err != nil {
		t.Fatalf("newResampler() error = %v", err)
	}
	if !r.passthrough {
		t.Fatal("expected 44.1 kHz stereo to pass through")
	}
	out, _ := io.ReadAll(r)
	if !bytes.Equal(out, data) {
		t.Fatalf("passthrough mismatch: %v", out)
	}
}

func TestResamplerRejectsBadFormats(t *testing.T) {
	if _, err := newResampler(&stubPCMSource{sampleRate: 0, channels: 2}); err == nil {
		t.Fatal("expected zero sample rate to fail")
	}
	if _, err := newResampler(&stubPCMSource{sampleRate: 44100, channels: 6}); err == nil {
		t.Fatal("expected 6 channels to fail")
	}
}
