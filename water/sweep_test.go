package water

import (
	"context"
	"errors"
	"testing"
)

func TestSweepReferenceTuningSettles(t *testing.T) {
	res, err := Sweep(context.Background(), SweepSpec{
		Base:  DefaultConfig(),
		Ticks: 3000,
	})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d results, want 1", len(res))
	}
	r := res[0]
	if !r.Settled || r.Diverged {
		t.Fatalf("reference tuning did not settle: %+v", r)
	}
	if r.Peak < 1 {
		t.Fatalf("peak %v below the seed amplitude", r.Peak)
	}
}

func TestSweepFlagsDivergence(t *testing.T) {
	base := DefaultConfig()
	base.NodeMass = 0.1
	res, err := Sweep(context.Background(), SweepSpec{
		Base:            base,
		SpringConstants: []float64{0, 1},
		Dampings:        []float64{0},
		Ticks:           500,
		Workers:         2,
	})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("got %d results, want 2", len(res))
	}
	if res[0].SpringConstant != 0 || res[1].SpringConstant != 1 {
		t.Fatalf("grid order lost: %v, %v", res[0].SpringConstant, res[1].SpringConstant)
	}
	if !res[1].Diverged || res[1].DivergedAt == 0 || res[1].Settled {
		t.Fatalf("stiff light strip should diverge: %+v", res[1])
	}
}

func TestSweepRejectsBadInput(t *testing.T) {
	if _, err := Sweep(context.Background(), SweepSpec{Base: DefaultConfig()}); err == nil {
		t.Fatalf("expected error for zero ticks")
	}
	_, err := Sweep(context.Background(), SweepSpec{
		Base:    DefaultConfig(),
		Spreads: []float64{0.5},
		Ticks:   10,
	})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}

func TestSweepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sweep(ctx, SweepSpec{Base: DefaultConfig(), Ticks: 5000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
