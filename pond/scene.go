package pond

import (
	"fmt"

	"github.com/charmbracelet/harmonica"

	"surfacewave/water"
)

// Settings configures a scene around one strip.
type Settings struct {
	Water water.Config

	// TPS is the fixed tick rate bodies integrate at.
	TPS     int
	Gravity harmonica.Vector

	BodyMass   float64
	BodyRadius float64
	// MaxBodies caps live bodies; the oldest is dropped first.
	MaxBodies int
	// SplashTicks is how long a splash stays visible.
	SplashTicks int
}

// Demo weights dropped into the strip.
const (
	DefaultTPS         = 60
	DefaultBodyMass    = 2.0
	DefaultBodyRadius  = 0.25
	DefaultMaxBodies   = 64
	DefaultSplashTicks = 30
)

// DefaultSettings pairs the reference strip with the demo weights.
func DefaultSettings() Settings {
	return Settings{
		Water:       water.DefaultConfig(),
		TPS:         DefaultTPS,
		Gravity:     harmonica.Gravity,
		BodyMass:    DefaultBodyMass,
		BodyRadius:  DefaultBodyRadius,
		MaxBodies:   DefaultMaxBodies,
		SplashTicks: DefaultSplashTicks,
	}
}

// SplashMark is a splash still within its display lifetime.
type SplashMark struct {
	water.Splash
	Age int
}

type contact struct {
	body *Body
	seg  int
}

// Scene owns a strip, its colliders and the bodies falling into it. All
// methods run on the goroutine that drives the ticks.
type Scene struct {
	settings  Settings
	field     *water.Field
	colliders []Collider
	bodies    []*Body
	contacts  map[contact]bool
	splashes  []SplashMark
	nextID    int
	dt        float64
	stepper   func(*water.Field) error

	// OnSplash, when set, sees every accepted impulse.
	OnSplash func(water.Splash)
}

// NewScene builds the strip described by s.Water.
func NewScene(s Settings) (*Scene, error) {
	if s.TPS <= 0 {
		return nil, fmt.Errorf("pond: tps must be positive, got %d", s.TPS)
	}
	f, err := water.New(s.Water)
	if err != nil {
		return nil, err
	}
	return &Scene{
		settings:  s,
		field:     f,
		colliders: collidersFor(f),
		contacts:  make(map[contact]bool),
		dt:        harmonica.FPS(s.TPS),
	}, nil
}

// Field exposes the strip for presenters.
func (s *Scene) Field() *water.Field { return s.field }

func (s *Scene) Settings() Settings { return s.settings }

// Bodies returns the live bodies; callers must not keep the slice.
func (s *Scene) Bodies() []*Body { return s.bodies }

// Splashes returns the splashes still within their lifetime.
func (s *Scene) Splashes() []SplashMark { return s.splashes }

// Rebuild replaces the strip and its colliders and clears every body.
func (s *Scene) Rebuild(cfg water.Config) error {
	if err := s.field.Rebuild(cfg); err != nil {
		return err
	}
	s.settings.Water = cfg
	s.colliders = collidersFor(s.field)
	s.bodies = s.bodies[:0]
	s.splashes = s.splashes[:0]
	clear(s.contacts)
	return nil
}

// Drop spawns a body at rest at (x, y).
func (s *Scene) Drop(x, y, mass float64) *Body {
	if mass <= 0 {
		mass = s.settings.BodyMass
	}
	s.nextID++
	b := &Body{ID: s.nextID, Mass: mass, Radius: s.settings.BodyRadius, Pos: Vec2{X: x, Y: y}}
	if s.settings.MaxBodies > 0 && len(s.bodies) >= s.settings.MaxBodies {
		s.remove(s.bodies[0])
	}
	s.bodies = append(s.bodies, b)
	return b
}

// Update runs one fixed tick: bodies move, overlap changes reach the
// colliders, then the strip steps.
func (s *Scene) Update() error {
	s.ageSplashes()
	for _, b := range s.bodies {
		b.advance(s.dt, s.settings.Gravity)
	}
	for _, b := range s.bodies {
		if err := s.resolveContacts(b); err != nil {
			return err
		}
	}
	s.cull()
	if s.stepper != nil {
		return s.stepper(s.field)
	}
	s.field.Step()
	return nil
}

// SetStepper replaces the strip's CPU step, e.g. with a device solver. A nil
// stepper restores Field.Step.
func (s *Scene) SetStepper(step func(*water.Field) error) {
	s.stepper = step
}

// resolveContacts fires exit, then enter or stay, for every segment b
// touches or stopped touching.
func (s *Scene) resolveContacts(b *Body) error {
	for i, c := range s.colliders {
		k := contact{body: b, seg: i}
		if s.contacts[k] && !c.Overlaps(b) {
			delete(s.contacts, k)
			c.Exit(b)
		}
	}
	for i, c := range s.colliders {
		if !c.Overlaps(b) {
			continue
		}
		k := contact{body: b, seg: i}
		if s.contacts[k] {
			c.Stay(b)
			continue
		}
		s.contacts[k] = true
		splash, err := c.Enter(b)
		if err != nil {
			return fmt.Errorf("pond: body %d entering segment %d: %w", b.ID, i, err)
		}
		s.splashes = append(s.splashes, SplashMark{Splash: splash})
		if s.OnSplash != nil {
			s.OnSplash(splash)
		}
	}
	return nil
}

func (s *Scene) ageSplashes() {
	live := s.splashes[:0]
	for _, m := range s.splashes {
		m.Age++
		if m.Age < s.settings.SplashTicks {
			live = append(live, m)
		}
	}
	s.splashes = live
}

// cull removes bodies that sank below the strip or drifted far past its ends.
func (s *Scene) cull() {
	cfg := s.field.Config()
	floor := -cfg.Height - 2*s.settings.BodyRadius
	minX := cfg.Left - cfg.Width
	maxX := cfg.Left + 2*cfg.Width
	for i := len(s.bodies) - 1; i >= 0; i-- {
		b := s.bodies[i]
		if b.Pos.Y < floor || b.Pos.X < minX || b.Pos.X > maxX {
			s.remove(b)
		}
	}
}

func (s *Scene) remove(b *Body) {
	for k := range s.contacts {
		if k.body == b {
			delete(s.contacts, k)
		}
	}
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return
		}
	}
}
