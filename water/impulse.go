package water

import "math"

// Splash is the notification produced by an accepted impulse. It carries no
// state of its own; presenters use it to spawn effects.
type Splash struct {
	X        float64
	Momentum float64
}

type impulse struct {
	x, momentum float64
	left, right int
}

// ApplyImpulse converts a body's vertical momentum into velocity on the node
// pair bridging xPos. The pair must be adjacent and in range, and xPos and
// momentum finite; a rejected call mutates nothing. With DeferImpulses the velocity change waits for the next
// Step, but the splash is reported right away.
func (f *Field) ApplyImpulse(xPos, momentum float64, left, right int) (Splash, error) {
	if !finite(xPos) || !finite(momentum) {
		return Splash{}, &ImpulseError{X: xPos, Momentum: momentum}
	}
	if left < 0 || right >= len(f.nodes) || right != left+1 {
		return Splash{}, &IndexError{Left: left, Right: right, Count: len(f.nodes)}
	}
	imp := impulse{x: xPos, momentum: momentum, left: left, right: right}
	if f.cfg.DeferImpulses {
		f.pending = append(f.pending, imp)
	} else {
		f.apply(imp)
	}
	return Splash{
		X:        (f.nodes[left].X + f.nodes[right].X) * 0.5,
		Momentum: momentum,
	}, nil
}

// Pending reports how many deferred impulses wait for the next Step.
func (f *Field) Pending() int { return len(f.pending) }

func (f *Field) drainImpulses() {
	for _, imp := range f.pending {
		f.apply(imp)
	}
	f.pending = f.pending[:0]
}

func (f *Field) apply(imp impulse) {
	l := &f.nodes[imp.left]
	r := &f.nodes[imp.right]
	dv := imp.momentum / f.cfg.NodeMass
	w := leftWeight(imp.x, l.X, r.X)
	l.Velocity += dv * w
	r.Velocity += dv * (1 - w)
}

// leftWeight is 1 at or left of lx, 0 at or right of rx, linear between.
func leftWeight(x, lx, rx float64) float64 {
	switch {
	case x <= lx:
		return 1
	case x >= rx:
		return 0
	}
	return (x - lx) / (rx - lx)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
