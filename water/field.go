package water

import "math"

// Node is one sample point of the surface. X is fixed at build time; Y is
// the displacement from the rest height of zero.
type Node struct {
	X            float64
	Y            float64
	Velocity     float64
	Acceleration float64
}

// Field is the strip of nodes stepped once per fixed tick. It is not safe
// for concurrent use: ticks, impulses and rebuilds share one goroutine.
type Field struct {
	cfg       Config
	edgeCount int
	nodes     []Node

	leftDelta  []float64
	rightDelta []float64

	pending []impulse
	tick    uint64
}

// New validates cfg and builds a field at rest.
func New(cfg Config) (*Field, error) {
	f := &Field{}
	if err := f.Rebuild(cfg); err != nil {
		return nil, err
	}
	return f, nil
}

// Rebuild discards every node and lays out a fresh strip. On error the
// previous build is left untouched.
func (f *Field) Rebuild(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	edgeCount := cfg.EdgeCount()
	nodes := make([]Node, edgeCount+1)
	for i := range nodes {
		nodes[i].X = cfg.Left + (cfg.Width*float64(i))/float64(edgeCount)
	}
	f.cfg = cfg
	f.edgeCount = edgeCount
	f.nodes = nodes
	f.leftDelta = make([]float64, len(nodes))
	f.rightDelta = make([]float64, len(nodes))
	f.pending = f.pending[:0]
	f.tick = 0
	return nil
}

// Config returns the configuration of the current build.
func (f *Field) Config() Config { return f.cfg }

// Len reports the node count.
func (f *Field) Len() int { return len(f.nodes) }

// EdgeCount reports the number of segments between nodes.
func (f *Field) EdgeCount() int { return f.edgeCount }

// Spacing is the uniform horizontal distance between adjacent nodes.
func (f *Field) Spacing() float64 { return f.cfg.Width / float64(f.edgeCount) }

// Tick counts the steps taken since the last build.
func (f *Field) Tick() uint64 { return f.tick }

func (f *Field) NodeMass() float64  { return f.cfg.NodeMass }
func (f *Field) WaterDrag() float64 { return f.cfg.WaterDrag }

// NodeX returns the fixed horizontal position of node i.
func (f *Field) NodeX(i int) float64 { return f.nodes[i].X }

// HeightAt returns the most recently integrated displacement of node i.
func (f *Field) HeightAt(i int) float64 { return f.nodes[i].Y }

func (f *Field) VelocityAt(i int) float64     { return f.nodes[i].Velocity }
func (f *Field) AccelerationAt(i int) float64 { return f.nodes[i].Acceleration }

// Nodes copies the node array into dst, growing it when needed.
func (f *Field) Nodes(dst []Node) []Node {
	if cap(dst) < len(f.nodes) {
		dst = make([]Node, len(f.nodes))
	}
	dst = dst[:len(f.nodes)]
	copy(dst, f.nodes)
	return dst
}

// Heights copies the node displacements into dst.
func (f *Field) Heights(dst []float64) []float64 {
	if cap(dst) < len(f.nodes) {
		dst = make([]float64, len(f.nodes))
	}
	dst = dst[:len(f.nodes)]
	for i := range f.nodes {
		dst[i] = f.nodes[i].Y
	}
	return dst
}

// SegmentAt returns the adjacent node pair whose span contains x. Positions
// outside the strip report ok=false.
func (f *Field) SegmentAt(x float64) (left, right int, ok bool) {
	first := f.nodes[0].X
	last := f.nodes[len(f.nodes)-1].X
	if x < first || x > last || math.IsNaN(x) {
		return 0, 0, false
	}
	left = int((x - first) / f.Spacing())
	if left >= f.edgeCount {
		left = f.edgeCount - 1
	}
	return left, left + 1, true
}

// SurfaceAt interpolates the surface height at x, clamping to the end nodes.
func (f *Field) SurfaceAt(x float64) float64 {
	n := len(f.nodes)
	if x <= f.nodes[0].X {
		return f.nodes[0].Y
	}
	if x >= f.nodes[n-1].X {
		return f.nodes[n-1].Y
	}
	l, r, _ := f.SegmentAt(x)
	a, b := f.nodes[l], f.nodes[r]
	t := (x - a.X) / (b.X - a.X)
	return a.Y + (b.Y-a.Y)*t
}

// Energy sums kinetic and spring potential energy over all nodes. It is a
// diagnostic and plays no part in stepping.
func (f *Field) Energy() float64 {
	var e float64
	m := f.cfg.NodeMass
	k := f.cfg.SpringConstant
	for i := range f.nodes {
		n := &f.nodes[i]
		e += 0.5*m*n.Velocity*n.Velocity + 0.5*k*n.Y*n.Y
	}
	return e
}

// MaxDisplacement returns the largest |y| on the strip.
func (f *Field) MaxDisplacement() float64 {
	var peak float64
	for i := range f.nodes {
		if a := math.Abs(f.nodes[i].Y); a > peak || math.IsNaN(a) {
			peak = a
		}
	}
	return peak
}

// setHeight displaces node i directly; used to seed scenarios.
func (f *Field) setHeight(i int, y float64) {
	f.nodes[i].Y = y
}
