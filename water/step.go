package water

// Step advances the strip by one tick: queued impulses, then neighbor
// propagation, then the per-node restoring force.
func (f *Field) Step() {
	f.drainImpulses()
	f.propagate()
	f.integrate()
	f.tick++
}

// StepN runs n ticks.
func (f *Field) StepN(n int) {
	for i := 0; i < n; i++ {
		f.Step()
	}
}

// propagate spreads height differences into neighbor velocities, then
// applies the same deltas to neighbor heights once the pass is done.
func (f *Field) propagate() {
	for i := range f.leftDelta {
		f.leftDelta[i] = 0
		f.rightDelta[i] = 0
	}
	for j := 0; j < f.cfg.Iterations; j++ {
		f.spreadIteration()
	}
}

// spreadIteration is one propagation pass in ascending node order. Velocity
// bumps land immediately; height corrections wait for the whole pass so every
// delta reads pre-iteration heights.
func (f *Field) spreadIteration() {
	nodes := f.nodes
	last := len(nodes) - 1
	spread := f.cfg.Spread
	for i := range nodes {
		y := nodes[i].Y
		if i > 0 {
			f.leftDelta[i] = spread * (y - nodes[i-1].Y)
			nodes[i-1].Velocity += f.leftDelta[i]
		}
		if i < last {
			f.rightDelta[i] = spread * (y - nodes[i+1].Y)
			nodes[i+1].Velocity += f.rightDelta[i]
		}
	}
	for i := range nodes {
		if i > 0 {
			nodes[i-1].Y += f.leftDelta[i]
		}
		if i < last {
			nodes[i+1].Y += f.rightDelta[i]
		}
	}
}

// integrate pulls every node toward rest with the spring-damper force.
func (f *Field) integrate() {
	k := f.cfg.SpringConstant
	damping := f.cfg.Damping
	mass := f.cfg.NodeMass
	dt := f.cfg.TimeStep
	for i := range f.nodes {
		n := &f.nodes[i]
		force := k*n.Y + n.Velocity*damping
		n.Acceleration = -force / mass
		if dt > 0 {
			n.Velocity += n.Acceleration * dt
			n.Y += n.Velocity * dt
			continue
		}
		n.Velocity += n.Acceleration
		n.Y += n.Velocity
	}
}
