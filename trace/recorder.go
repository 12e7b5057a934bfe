// Package trace records a node's height over time as a WAV file.
package trace

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth     = 16
	pcm16MaxInt  = 32767
	wavFormatPCM = 1
)

// Source is anything that reports node heights.
type Source interface {
	HeightAt(i int) float64
}

// Recorder collects one sample per tick and encodes them on Close.
type Recorder struct {
	path       string
	node       int
	gain       float64
	sampleRate int
	samples    []int
}

// NewRecorder samples node of a strip, scaling heights by gain. sampleRate
// is the tick rate, so playback runs at simulation speed.
func NewRecorder(path string, node int, gain float64, sampleRate int) (*Recorder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("trace: sample rate must be positive, got %d", sampleRate)
	}
	if gain == 0 {
		gain = 1
	}
	return &Recorder{path: path, node: node, gain: gain, sampleRate: sampleRate}, nil
}

// Sample reads the recorded node from src.
func (r *Recorder) Sample(src Source) {
	v := src.HeightAt(r.node) * r.gain
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(-1, math.Min(1, v))
	r.samples = append(r.samples, int(math.Round(v*pcm16MaxInt)))
}

// SetNode moves the recording to another node, e.g. after a rebuild.
func (r *Recorder) SetNode(node int) { r.node = node }

// Len reports the samples gathered so far.
func (r *Recorder) Len() int { return len(r.samples) }

// Close writes the mono 16-bit PCM file.
func (r *Recorder) Close() error {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("trace: creating %q: %w", r.path, err)
	}
	enc := wav.NewEncoder(f, r.sampleRate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: r.sampleRate},
		Data:           r.samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("trace: encoding %q: %w", r.path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("trace: finishing %q: %w", r.path, err)
	}
	return f.Close()
}
