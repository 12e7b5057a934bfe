package water

import (
	"fmt"
	"math"
)

// Reference tuning for the strip.
const (
	DefaultSpringConstant = 0.236
	DefaultDamping        = 0.878
	DefaultSpread         = 0.0173
	DefaultNodeDensity    = 1
	DefaultWidth          = 10
	DefaultHeight         = 10
	DefaultNodeMass       = 40
	DefaultWaterDrag      = 2
	DefaultIterations     = 2
)

// Stable ranges enforced by Validate.
const (
	MaxSpringConstant = 1.0
	MaxDamping        = 1.0
	MaxSpread         = 0.2
	// MaxEdgeCount caps the segments one build may allocate.
	MaxEdgeCount = 1 << 20
)

// Config fixes the geometry and physical constants of one build.
type Config struct {
	Left        float64
	Width       float64
	Height      float64
	NodeDensity int

	SpringConstant float64
	Damping        float64
	Spread         float64
	NodeMass       float64
	WaterDrag      float64

	// Iterations is the number of propagation passes per tick.
	Iterations int

	// TimeStep scales the integration pass. Zero keeps the per-tick unit
	// step the default tuning was made for.
	TimeStep float64

	// DeferImpulses queues impulses until the start of the next Step.
	DeferImpulses bool
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		NodeDensity:    DefaultNodeDensity,
		SpringConstant: DefaultSpringConstant,
		Damping:        DefaultDamping,
		Spread:         DefaultSpread,
		NodeMass:       DefaultNodeMass,
		WaterDrag:      DefaultWaterDrag,
		Iterations:     DefaultIterations,
	}
}

// EdgeCount is the number of segments the width splits into. Width rounds
// half to even before scaling by the density.
func (c Config) EdgeCount() int {
	return int(math.RoundToEven(c.Width)) * c.NodeDensity
}

// Validate reports the first parameter outside its stable range.
func (c Config) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"left", c.Left},
		{"width", c.Width},
		{"height", c.Height},
		{"springConstant", c.SpringConstant},
		{"damping", c.Damping},
		{"spread", c.Spread},
		{"nodeMass", c.NodeMass},
		{"waterDrag", c.WaterDrag},
		{"timeStep", c.TimeStep},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return &ConfigError{Param: p.name, Value: p.v, Reason: "must be finite"}
		}
	}
	switch {
	case c.SpringConstant < 0 || c.SpringConstant > MaxSpringConstant:
		return &ConfigError{Param: "springConstant", Value: c.SpringConstant, Reason: "must be in [0,1]"}
	case c.Damping < 0 || c.Damping > MaxDamping:
		return &ConfigError{Param: "damping", Value: c.Damping, Reason: "must be in [0,1]"}
	case c.Spread < 0 || c.Spread > MaxSpread:
		return &ConfigError{Param: "spread", Value: c.Spread, Reason: "must be in [0,0.2]"}
	case c.NodeMass <= 0:
		return &ConfigError{Param: "nodeMass", Value: c.NodeMass, Reason: "must be positive"}
	case c.WaterDrag < 0:
		return &ConfigError{Param: "waterDrag", Value: c.WaterDrag, Reason: "must not be negative"}
	case c.TimeStep < 0:
		return &ConfigError{Param: "timeStep", Value: c.TimeStep, Reason: "must not be negative"}
	case c.Height < 0:
		return &ConfigError{Param: "height", Value: c.Height, Reason: "must not be negative"}
	case c.NodeDensity < 1:
		return &ConfigError{Param: "nodeDensity", Value: float64(c.NodeDensity), Reason: "must be at least 1"}
	case c.Iterations < 1:
		return &ConfigError{Param: "iterations", Value: float64(c.Iterations), Reason: "must be at least 1"}
	case math.RoundToEven(c.Width)*float64(c.NodeDensity) > MaxEdgeCount:
		return &ConfigError{Param: "width", Value: c.Width, Reason: fmt.Sprintf("needs more than %d segments", MaxEdgeCount)}
	case c.EdgeCount() <= 0:
		return &ConfigError{Param: "width", Value: c.Width, Reason: "rounds to zero segments"}
	}
	return nil
}
