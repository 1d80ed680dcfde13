package preview

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	outputSampleRate     = 44100
	outputChannels       = 2
	outputBytesPerSample = 2
	outputFrameSize      = outputChannels * outputBytesPerSample
)

// resampler presents a pcmSource as a 44.1 kHz stereo s16le stream. It only
// moves forward: playback always restarts from a fresh decoder.
type resampler struct {
	src          pcmSource
	passthrough  bool
	srcRate      int
	srcChannels  int
	srcFrameSize int

	// srcPosNum is the read position in source frames, scaled by outputSampleRate.
	srcPosNum int64

	frames    []int16 // buffered source frames, upmixed to stereo
	baseFrame int64   // absolute index of frames[0:2]
	srcDone   bool

	buf    []byte
	tmpOut []byte
	tmpSrc []byte
}

func newResampler(src pcmSource) (*resampler, error) {
	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("unsupported sample rate: %d", rate)
	}
	channels := src.ChannelCount()
	if channels < 1 || channels > outputChannels {
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}
	return &resampler{
		src:          src,
		passthrough:  rate == outputSampleRate && channels == outputChannels,
		srcRate:      rate,
		srcChannels:  channels,
		srcFrameSize: channels * outputBytesPerSample,
	}, nil
}

func (r *resampler) Read(p []byte) (int, error) {
	if r.passthrough {
		return r.src.Read(p)
	}

	if len(r.buf) > 0 {
		n := copy(p, r.buf)
		r.buf = r.buf[n:]
		return n, nil
	}

	frameCount := (len(p) + outputFrameSize - 1) / outputFrameSize
	if frameCount == 0 {
		frameCount = 1
	}

	raw, err := r.generate(frameCount)
	if len(raw) == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	n := copy(p, raw)
	if n < len(raw) {
		r.buf = append(r.buf[:0], raw[n:]...)
	}
	return n, nil
}

func (r *resampler) generate(frameCount int) ([]byte, error) {
	size := frameCount * outputFrameSize
	if cap(r.tmpOut) < size {
		r.tmpOut = make([]byte, size)
	}
	raw := r.tmpOut[:size]

	written := 0
	for written < frameCount {
		srcFrame := r.srcPosNum / outputSampleRate
		r.compact(srcFrame)

		ok, err := r.fill(srcFrame)
		if err != nil {
			return raw[:written*outputFrameSize], err
		}
		if !ok {
			break
		}
		l0, r0 := r.frameAt(srcFrame)
		l1, r1 := l0, r0
		if ok, err := r.fill(srcFrame + 1); err != nil {
			return raw[:written*outputFrameSize], err
		} else if ok {
			l1, r1 = r.frameAt(srcFrame + 1)
		}

		frac := r.srcPosNum % outputSampleRate
		off := written * outputFrameSize
		binary.LittleEndian.PutUint16(raw[off:], uint16(interpolateSample(l0, l1, frac)))
		binary.LittleEndian.PutUint16(raw[off+2:], uint16(interpolateSample(r0, r1, frac)))

		written++
		r.srcPosNum += int64(r.srcRate)
	}

	if written == 0 {
		return nil, io.EOF
	}
	return raw[:written*outputFrameSize], nil
}

// fill reads until absFrame is buffered. It reports false once the source
// has ended before that frame.
func (r *resampler) fill(absFrame int64) (bool, error) {
	for absFrame >= r.baseFrame+int64(len(r.frames)/outputChannels) {
		if r.srcDone {
			return false, nil
		}
		if err := r.readMore(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// compact drops buffered frames before keepFrom.
func (r *resampler) compact(keepFrom int64) {
	drop := keepFrom - r.baseFrame
	if drop <= 0 {
		return
	}
	available := int64(len(r.frames) / outputChannels)
	if drop >= available {
		r.frames = r.frames[:0]
		r.baseFrame += available
		return
	}
	dropSamples := int(drop) * outputChannels
	n := copy(r.frames, r.frames[dropSamples:])
	r.frames = r.frames[:n]
	r.baseFrame += drop
}

func (r *resampler) readMore() error {
	const chunkFrames = 2048

	size := chunkFrames * r.srcFrameSize
	if cap(r.tmpSrc) < size {
		r.tmpSrc = make([]byte, size)
	}
	buf := r.tmpSrc[:size]

	n, err := io.ReadFull(r.src, buf)
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		r.srcDone = true
	case err != nil:
		return err
	}

	frameCount := n / r.srcFrameSize
	for i := 0; i < frameCount; i++ {
		off := i * r.srcFrameSize
		left := int16(binary.LittleEndian.Uint16(buf[off:]))
		right := left
		if r.srcChannels == 2 {
			right = int16(binary.LittleEndian.Uint16(buf[off+2:]))
		}
		r.frames = append(r.frames, left, right)
	}
	return nil
}

func (r *resampler) frameAt(absFrame int64) (int16, int16) {
	off := int(absFrame-r.baseFrame) * outputChannels
	return r.frames[off], r.frames[off+1]
}

func interpolateSample(a, b int16, fracNum int64) int16 {
	if fracNum == 0 || a == b {
		return a
	}
	diff := int64(int32(b) - int32(a))
	return int16(int64(int32(a)) + (diff*fracNum+outputSampleRate/2)/outputSampleRate)
}
