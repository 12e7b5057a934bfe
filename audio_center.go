package main

import (
	"encoding/binary"
	"math"
	"sync"
)

const (
	toneBaseHz  = 220.0
	toneRangeHz = 220.0
)

// centerAudioStream sonifies the centre node: a sine tone whose pitch follows
// the node height and whose loudness follows its distance from rest. Heights
// arrive once per tick while Read runs on the audio goroutine.
type centerAudioStream struct {
	mu     sync.Mutex
	height float64
	dc     float64
	gain   float64

	level float64
	phase float64
}

func newCenterAudioStream(gain float64) *centerAudioStream {
	return &centerAudioStream{gain: gain}
}

// Push records the latest centre height.
func (s *centerAudioStream) Push(height float64) {
	if math.IsNaN(height) {
		height = 0
	}
	s.mu.Lock()
	// AC coupling: follow slow drift so only the ripple is heard.
	const alpha = 0.01
	s.dc += alpha * (height - s.dc)
	s.height = clampUnit((height - s.dc) * s.gain)
	s.mu.Unlock()
}

// Read fills whole stereo 16-bit frames.
func (s *centerAudioStream) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	s.mu.Lock()
	v := s.height
	s.mu.Unlock()

	target := math.Abs(v)
	step := 2 * math.Pi * (toneBaseHz + toneRangeHz*v) / audioSampleRate
	for i := 0; i < frames; i++ {
		s.level += (target - s.level) * 0.002
		s.phase += step
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		sample := uint16(int16(math.Sin(s.phase) * s.level * pcm16MaxValue))
		binary.LittleEndian.PutUint16(p[i*4:], sample)
		binary.LittleEndian.PutUint16(p[i*4+2:], sample)
	}
	return frames * 4, nil
}

func (s *centerAudioStream) Close() error {
	return nil
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
