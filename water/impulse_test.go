package water

import (
	"errors"
	"math"
	"testing"
)

func TestImpulseWeights(t *testing.T) {
	cases := []struct {
		name        string
		x           float64
		left, right float64
	}{
		{"at left node", 2, 1, 0},
		{"left of left node", 1.5, 1, 0},
		{"at right node", 3, 0, 1},
		{"right of right node", 3.5, 0, 1},
		{"midpoint", 2.5, 0.5, 0.5},
		{"quarter", 2.25, 0.25, 0.75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := mustField(t, DefaultConfig())
			// momentum equal to node mass gives a unit velocity change.
			splash, err := f.ApplyImpulse(tc.x, f.NodeMass(), 2, 3)
			if err != nil {
				t.Fatalf("ApplyImpulse: %v", err)
			}
			if got := f.VelocityAt(2); !approx(got, tc.left, eps) {
				t.Fatalf("left velocity = %v, want %v", got, tc.left)
			}
			if got := f.VelocityAt(3); !approx(got, tc.right, eps) {
				t.Fatalf("right velocity = %v, want %v", got, tc.right)
			}
			if splash.X != 2.5 {
				t.Fatalf("splash at %v, want 2.5", splash.X)
			}
		})
	}
}

func TestImpulseScalesByNodeMass(t *testing.T) {
	f := mustField(t, DefaultConfig())
	if _, err := f.ApplyImpulse(4.5, -8, 4, 5); err != nil {
		t.Fatalf("ApplyImpulse: %v", err)
	}
	want := -8.0 / 40 / 2
	if f.VelocityAt(4) != want || f.VelocityAt(5) != want {
		t.Fatalf("velocities = %v,%v want %v each", f.VelocityAt(4), f.VelocityAt(5), want)
	}
	if f.HeightAt(4) != 0 {
		t.Fatalf("impulse moved a height")
	}
}

func TestImpulseRejectsBadPairs(t *testing.T) {
	pairs := [][2]int{{-1, 0}, {10, 11}, {2, 4}, {3, 2}, {5, 5}}
	for _, p := range pairs {
		f := mustField(t, DefaultConfig())
		_, err := f.ApplyImpulse(2.5, 100, p[0], p[1])
		if !errors.Is(err, ErrIndex) {
			t.Fatalf("pair %v: error = %v, want ErrIndex", p, err)
		}
		var ie *IndexError
		if !errors.As(err, &ie) || ie.Left != p[0] || ie.Right != p[1] || ie.Count != 11 {
			t.Fatalf("pair %v: error = %#v", p, err)
		}
		for i := 0; i < f.Len(); i++ {
			if f.VelocityAt(i) != 0 {
				t.Fatalf("pair %v: node %d mutated", p, i)
			}
		}
	}
}

func TestDeferredImpulseWaitsForStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeferImpulses = true
	deferred := mustField(t, cfg)
	immediate := mustField(t, DefaultConfig())

	splash, err := deferred.ApplyImpulse(6.2, -30, 6, 7)
	if err != nil {
		t.Fatalf("ApplyImpulse: %v", err)
	}
	if splash.X != 6.5 || splash.Momentum != -30 {
		t.Fatalf("splash = %+v", splash)
	}
	if deferred.Pending() != 1 || deferred.VelocityAt(6) != 0 {
		t.Fatalf("deferred impulse applied early")
	}
	if _, err := immediate.ApplyImpulse(6.2, -30, 6, 7); err != nil {
		t.Fatalf("ApplyImpulse: %v", err)
	}

	deferred.Step()
	immediate.Step()

	if deferred.Pending() != 0 {
		t.Fatalf("queue not drained")
	}
	for i := 0; i < deferred.Len(); i++ {
		if deferred.HeightAt(i) != immediate.HeightAt(i) || deferred.VelocityAt(i) != immediate.VelocityAt(i) {
			t.Fatalf("node %d: deferred (%v,%v) != immediate (%v,%v)", i,
				deferred.HeightAt(i), deferred.VelocityAt(i), immediate.HeightAt(i), immediate.VelocityAt(i))
		}
	}
}

func TestDeferredImpulseRejectedEagerly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeferImpulses = true
	f := mustField(t, cfg)
	if _, err := f.ApplyImpulse(1, 1, 0, 2); !errors.Is(err, ErrIndex) {
		t.Fatalf("error = %v, want ErrIndex", err)
	}
	if f.Pending() != 0 {
		t.Fatalf("rejected impulse was queued")
	}
}

func TestImpulseRejectsNonFiniteInput(t *testing.T) {
	cases := []struct {
		name        string
		x, momentum float64
	}{
		{"nan position", math.NaN(), -10},
		{"inf position", math.Inf(1), -10},
		{"nan momentum", 4.5, math.NaN()},
		{"-inf momentum", 4.5, math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, deferred := range []bool{false, true} {
				cfg := DefaultConfig()
				cfg.DeferImpulses = deferred
				f := mustField(t, cfg)
				_, err := f.ApplyImpulse(tc.x, tc.momentum, 4, 5)
				if !errors.Is(err, ErrImpulse) {
					t.Fatalf("deferred=%v: error = %v, want ErrImpulse", deferred, err)
				}
				if f.Pending() != 0 {
					t.Fatalf("deferred=%v: rejected impulse was queued", deferred)
				}
				f.StepN(5)
				for i := 0; i < f.Len(); i++ {
					if f.VelocityAt(i) != 0 || f.HeightAt(i) != 0 {
						t.Fatalf("deferred=%v: node %d moved: y=%v v=%v", deferred, i, f.HeightAt(i), f.VelocityAt(i))
					}
				}
			}
		})
	}
}
