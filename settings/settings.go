// Package settings binds the physics flags to scene settings and lets
// SURFACEWAVE_* environment variables seed the ones left unset.
package settings

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"surfacewave/pond"
	"surfacewave/water"
)

// envOverrides maps environment variables onto the flags they seed.
var envOverrides = []struct {
	flag string
	env  string
}{
	{"spring", "SURFACEWAVE_SPRING"},
	{"damping", "SURFACEWAVE_DAMPING"},
	{"spread", "SURFACEWAVE_SPREAD"},
	{"node-mass", "SURFACEWAVE_NODE_MASS"},
	{"width", "SURFACEWAVE_WIDTH"},
	{"node-density", "SURFACEWAVE_NODE_DENSITY"},
	{"water-drag", "SURFACEWAVE_WATER_DRAG"},
}

// Flags holds the physics flags registered on one flag set.
type Flags struct {
	fs *flag.FlagSet

	spring, damping, spread *float64
	nodeMass, waterDrag     *float64
	width, height           *float64
	timeStep                *float64
	nodeDensity, iterations *int
	deferImpulses           *bool

	tps                  *int
	bodyMass, bodyRadius *float64
}

// Register defines the physics flags on fs with the reference defaults.
func Register(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:            fs,
		spring:        fs.Float64("spring", water.DefaultSpringConstant, "spring constant pulling nodes back to rest"),
		damping:       fs.Float64("damping", water.DefaultDamping, "velocity damping factor"),
		spread:        fs.Float64("spread", water.DefaultSpread, "fraction of height difference passed to neighbours per pass (0-0.2)"),
		nodeMass:      fs.Float64("node-mass", water.DefaultNodeMass, "mass of each surface node"),
		waterDrag:     fs.Float64("water-drag", water.DefaultWaterDrag, "drag applied to submerged bodies"),
		width:         fs.Float64("width", water.DefaultWidth, "strip width in world units"),
		height:        fs.Float64("height", water.DefaultHeight, "strip depth in world units"),
		nodeDensity:   fs.Int("node-density", water.DefaultNodeDensity, "edges per world unit"),
		iterations:    fs.Int("iterations", water.DefaultIterations, "propagation passes per step"),
		timeStep:      fs.Float64("time-step", 0, "integration step; 0 keeps the unit step"),
		deferImpulses: fs.Bool("defer-impulses", false, "queue impulses until the start of the next step"),
		tps:           fs.Int("tps", pond.DefaultTPS, "simulation ticks per second"),
		bodyMass:      fs.Float64("body-mass", pond.DefaultBodyMass, "mass of dropped bodies"),
		bodyRadius:    fs.Float64("body-radius", pond.DefaultBodyRadius, "radius of dropped bodies"),
	}
}

// ApplyEnv loads path into the environment when it exists, then lets
// SURFACEWAVE_* variables fill every flag left unset on the command line.
// Call it after parsing; explicit flags always win.
func (f *Flags) ApplyEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading %q: %w", path, err)
			}
		} else {
			log.Printf("Loaded environment from %s", path)
		}
	}
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	for _, o := range envOverrides {
		v, ok := os.LookupEnv(o.env)
		if !ok || set[o.flag] {
			continue
		}
		if err := f.fs.Set(o.flag, v); err != nil {
			return fmt.Errorf("%s=%q: %w", o.env, v, err)
		}
	}
	return nil
}

// Scene assembles the scene and strip settings from the flag values.
func (f *Flags) Scene() pond.Settings {
	s := pond.DefaultSettings()
	s.Water.Width = *f.width
	s.Water.Height = *f.height
	s.Water.NodeDensity = *f.nodeDensity
	s.Water.SpringConstant = *f.spring
	s.Water.Damping = *f.damping
	s.Water.Spread = *f.spread
	s.Water.NodeMass = *f.nodeMass
	s.Water.WaterDrag = *f.waterDrag
	s.Water.Iterations = *f.iterations
	s.Water.TimeStep = *f.timeStep
	s.Water.DeferImpulses = *f.deferImpulses
	s.TPS = *f.tps
	s.BodyMass = *f.bodyMass
	s.BodyRadius = *f.bodyRadius
	return s
}
