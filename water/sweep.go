package water

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepSpec describes a grid of tunings to run side by side. Each run starts
// from Base with the node nearest the middle displaced by Amplitude.
type SweepSpec struct {
	Base            Config
	SpringConstants []float64
	Dampings        []float64
	Spreads         []float64
	Ticks           int
	Amplitude       float64
	// Tolerance is the max |y| below which a run counts as settled.
	Tolerance float64
	Workers   int
}

// SweepResult summarises one tuning.
type SweepResult struct {
	SpringConstant float64
	Damping        float64
	Spread         float64

	Peak        float64
	FinalMax    float64
	FinalEnergy float64
	Settled     bool
	Diverged    bool
	// DivergedAt is the tick at which the run left the bounded regime.
	DivergedAt int
}

// divergenceFactor bounds how far past the seed amplitude a run may swing
// before it is called unstable.
const divergenceFactor = 10

// Sweep runs every combination in spec on its own field, spreading the runs
// over spec.Workers goroutines (NumCPU when zero). Results keep the grid
// order: spring constant outermost, spread innermost.
func Sweep(ctx context.Context, spec SweepSpec) ([]SweepResult, error) {
	if spec.Ticks <= 0 {
		return nil, fmt.Errorf("sweep: ticks must be positive, got %d", spec.Ticks)
	}
	if spec.Amplitude == 0 {
		spec.Amplitude = 1
	}
	if spec.Tolerance <= 0 {
		spec.Tolerance = 1e-3
	}
	springs := orDefault(spec.SpringConstants, spec.Base.SpringConstant)
	dampings := orDefault(spec.Dampings, spec.Base.Damping)
	spreads := orDefault(spec.Spreads, spec.Base.Spread)

	results := make([]SweepResult, 0, len(springs)*len(dampings)*len(spreads))
	for _, k := range springs {
		for _, d := range dampings {
			for _, s := range spreads {
				results = append(results, SweepResult{SpringConstant: k, Damping: d, Spread: s})
			}
		}
	}

	workers := spec.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		r := &results[i]
		g.Go(func() error {
			cfg := spec.Base
			cfg.SpringConstant = r.SpringConstant
			cfg.Damping = r.Damping
			cfg.Spread = r.Spread
			return runSweep(ctx, cfg, spec, r)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runSweep(ctx context.Context, cfg Config, spec SweepSpec, r *SweepResult) error {
	f, err := New(cfg)
	if err != nil {
		return fmt.Errorf("sweep k=%g damping=%g spread=%g: %w", cfg.SpringConstant, cfg.Damping, cfg.Spread, err)
	}
	f.setHeight(f.Len()/2, spec.Amplitude)
	bound := math.Abs(spec.Amplitude) * divergenceFactor
	r.Peak = math.Abs(spec.Amplitude)
	for t := 1; t <= spec.Ticks; t++ {
		if t%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		f.Step()
		m := f.MaxDisplacement()
		if m > r.Peak {
			r.Peak = m
		}
		if math.IsNaN(m) || math.IsInf(m, 0) || m > bound {
			r.Diverged = true
			r.DivergedAt = t
			break
		}
	}
	r.FinalMax = f.MaxDisplacement()
	r.FinalEnergy = f.Energy()
	r.Settled = !r.Diverged && r.FinalMax < spec.Tolerance
	return nil
}

func orDefault(values []float64, fallback float64) []float64 {
	if len(values) == 0 {
		return []float64{fallback}
	}
	return values
}
