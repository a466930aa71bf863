package ui

import (
	"encoding/binary"
	"sync/atomic"
)

const (
	// SampleRate is the sample rate of the tone stream in Hz.
	SampleRate = 44100

	// bytesPerFrame is the size of a 16-bit stereo sample frame.
	bytesPerFrame = 4

	amplitude = 0x1800
)

// ToneStream implements io.Reader by generating a square wave while the
// buzzer is active and silence otherwise, as 16-bit little-endian stereo
// frames. It is read from the audio goroutine.
type ToneStream struct {
	active atomic.Bool
	period int // in sample frames
	phase  int
}

// NewToneStream returns a silent stream for a tone of the given frequency.
func NewToneStream(frequency int) *ToneStream {
	return &ToneStream{
		period: max(SampleRate/frequency, 2),
	}
}

// SetActive switches the buzzer on or off.
func (s *ToneStream) SetActive(active bool) {
	s.active.Store(active)
}

func (s *ToneStream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		// fill buffers smaller than a frame with silence to avoid returning 0 bytes
		clear(p)
		return len(p), nil
	}

	active := s.active.Load()
	for i := range frames {
		var value int16
		if active {
			value = amplitude
			if s.phase >= s.period/2 {
				value = -amplitude
			}
		}
		s.phase = (s.phase + 1) % s.period

		offset := i * bytesPerFrame
		binary.LittleEndian.PutUint16(p[offset:], uint16(value))
		binary.LittleEndian.PutUint16(p[offset+2:], uint16(value))
	}
	return frames * bytesPerFrame, nil
}
