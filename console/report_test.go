package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"surfacewave/water"
)

func TestSweepSpecAroundBrackets(t *testing.T) {
	cfg := water.DefaultConfig()
	spec := SweepSpecAround(cfg, 100)
	if len(spec.SpringConstants) != 3 || spec.SpringConstants[1] != cfg.SpringConstant {
		t.Fatalf("springs = %v", spec.SpringConstants)
	}
	if spec.Ticks != 100 || spec.Base != cfg {
		t.Fatalf("spec = %+v", spec)
	}

	cfg.Spread = 0.15
	spec = SweepSpecAround(cfg, 100)
	want := []float64{0.075, 0.15, 0.2}
	if len(spec.Spreads) != len(want) {
		t.Fatalf("spreads = %v, want %v", spec.Spreads, want)
	}
	for i, v := range want {
		if spec.Spreads[i] != v {
			t.Fatalf("spreads = %v, want %v", spec.Spreads, want)
		}
	}

	cfg.Spread = 0.2
	if got := SweepSpecAround(cfg, 100).Spreads; len(got) != 2 {
		t.Fatalf("duplicate cap not removed: %v", got)
	}
}

func TestSweepSpecAroundStaysValid(t *testing.T) {
	cfg := water.DefaultConfig()
	cfg.SpringConstant = 0.6
	cfg.Damping = 0.878
	spec := SweepSpecAround(cfg, 100)
	if got := spec.SpringConstants; len(got) != 3 || got[2] != water.MaxSpringConstant {
		t.Fatalf("springs = %v, want capped at %v", got, water.MaxSpringConstant)
	}
	if got := spec.Dampings; len(got) != 3 || got[2] != water.MaxDamping {
		t.Fatalf("dampings = %v, want capped at %v", got, water.MaxDamping)
	}
	for _, k := range spec.SpringConstants {
		for _, d := range spec.Dampings {
			for _, s := range spec.Spreads {
				c := cfg
				c.SpringConstant, c.Damping, c.Spread = k, d, s
				if err := c.Validate(); err != nil {
					t.Fatalf("bracketed case k=%v d=%v s=%v invalid: %v", k, d, s, err)
				}
			}
		}
	}
	if _, err := water.Sweep(context.Background(), spec); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
}

func TestSettleFraction(t *testing.T) {
	cases := []struct {
		name string
		r    water.SweepResult
		want float64
	}{
		{"quiet", water.SweepResult{Peak: 1, FinalMax: 0}, 1},
		{"half", water.SweepResult{Peak: 1, FinalMax: 0.5}, 0.5},
		{"grew", water.SweepResult{Peak: 1, FinalMax: 3}, 0},
		{"diverged", water.SweepResult{Peak: 1, Diverged: true}, 0},
		{"no peak", water.SweepResult{}, 0},
	}
	for _, tc := range cases {
		if got := settleFraction(tc.r); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRenderSweepStatuses(t *testing.T) {
	out := RenderSweep([]water.SweepResult{
		{SpringConstant: 0.236, Damping: 0.878, Spread: 0.0173, Peak: 1, FinalMax: 1e-5, Settled: true},
		{SpringConstant: 1, Damping: 0, Spread: 0.2, Peak: 12, Diverged: true, DivergedAt: 42},
		{SpringConstant: 0.1, Damping: 0.1, Spread: 0.01, Peak: 1, FinalMax: 0.2},
	}, 3000)
	for _, want := range []string{"settled", "diverged @42", "ringing", "spring", "3000 ticks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunSweepReport(t *testing.T) {
	var buf bytes.Buffer
	if err := RunSweepReport(context.Background(), water.DefaultConfig(), 200, &buf); err != nil {
		t.Fatalf("RunSweepReport: %v", err)
	}
	if strings.Count(buf.String(), "0.0173") == 0 {
		t.Fatalf("report does not list the configured spread:\n%s", buf.String())
	}
}
