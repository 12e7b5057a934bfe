package pond

import "surfacewave/water"

// Collider is the trigger volume under one edge of the strip. It spans the
// segment horizontally and reaches from rest height down to the strip depth.
type Collider struct {
	Field       *water.Field
	Left, Right int
}

// collidersFor builds one collider per edge of f.
func collidersFor(f *water.Field) []Collider {
	cs := make([]Collider, f.EdgeCount())
	for i := range cs {
		cs[i] = Collider{Field: f, Left: i, Right: i + 1}
	}
	return cs
}

// Overlaps reports whether b's bounding box touches the trigger volume.
func (c Collider) Overlaps(b *Body) bool {
	minX := c.Field.NodeX(c.Left)
	maxX := c.Field.NodeX(c.Right)
	depth := c.Field.Config().Height
	if b.Pos.X+b.Radius < minX || b.Pos.X-b.Radius > maxX {
		return false
	}
	return b.Pos.Y-b.Radius <= 0 && b.Pos.Y+b.Radius >= -depth
}

// Enter hands the body's vertical momentum to the segment's node pair and
// slows the body to the velocity that momentum gives one node.
func (c Collider) Enter(b *Body) (water.Splash, error) {
	momentum := b.Momentum()
	splash, err := c.Field.ApplyImpulse(b.Pos.X, momentum, c.Left, c.Right)
	if err != nil {
		return water.Splash{}, err
	}
	b.Drag = c.Field.WaterDrag()
	b.Vel.Y = momentum / c.Field.NodeMass()
	return splash, nil
}

// Stay keeps the body dragged while it overlaps.
func (c Collider) Stay(b *Body) {
	b.Drag = c.Field.WaterDrag()
}

// Exit releases the drag.
func (c Collider) Exit(b *Body) {
	b.Drag = 0
}
