package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"surfacewave/water"
)

// splashSound replays one decoded sample per splash on a small ring of
// players, louder for harder hits.
type splashSound struct {
	ctx    *audio.Context
	pcm    []byte
	voices []*audio.Player
	next   int
}

// loadSplashSound decodes the WAV at path at the context's sample rate.
func loadSplashSound(ctx *audio.Context, path string) (*splashSound, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("wav %q has no audio data", path)
	}
	return &splashSound{ctx: ctx, pcm: pcm, voices: make([]*audio.Player, splashVoices)}, nil
}

// splashVolume maps impulse momentum onto [0,1].
func splashVolume(momentum float64) float64 {
	return math.Min(1, math.Abs(momentum)/fullVolumeMomentum)
}

// Play starts the sample for s, stealing the oldest voice when all are busy.
func (s *splashSound) Play(sp water.Splash) {
	vol := splashVolume(sp.Momentum)
	if vol == 0 {
		return
	}
	if old := s.voices[s.next]; old != nil {
		_ = old.Close()
	}
	p := s.ctx.NewPlayerFromBytes(s.pcm)
	p.SetVolume(vol)
	p.Play()
	s.voices[s.next] = p
	s.next = (s.next + 1) % len(s.voices)
}

func (s *splashSound) Close() {
	for i, p := range s.voices {
		if p != nil {
			_ = p.Close()
			s.voices[i] = nil
		}
	}
}
