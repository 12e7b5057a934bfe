package pond

import "github.com/charmbracelet/harmonica"

// Vec2 is a world-space point or velocity, y up.
type Vec2 struct {
	X, Y float64
}

// Body is a weight dropped onto the strip.
type Body struct {
	ID     int
	Mass   float64
	Radius float64
	Pos    Vec2
	Vel    Vec2
	// Drag is the linear drag coefficient set by the colliders it overlaps.
	Drag float64
}

// advance integrates one tick of gravity with linear drag applied first, the
// way a rigid body's drag scales velocity by 1/(1+dt*drag).
func (b *Body) advance(dt float64, gravity harmonica.Vector) {
	if b.Drag > 0 {
		scale := 1 / (1 + dt*b.Drag)
		b.Vel.X *= scale
		b.Vel.Y *= scale
	}
	p := harmonica.NewProjectile(dt,
		harmonica.Point{X: b.Pos.X, Y: b.Pos.Y},
		harmonica.Vector{X: b.Vel.X, Y: b.Vel.Y},
		gravity,
	)
	pos := p.Update()
	vel := p.Velocity()
	b.Pos = Vec2{X: pos.X, Y: pos.Y}
	b.Vel = Vec2{X: vel.X, Y: vel.Y}
}

// Momentum is the vertical momentum handed to the water on entry.
func (b *Body) Momentum() float64 {
	return b.Vel.Y * b.Mass
}
