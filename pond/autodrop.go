package pond

import (
	"math/rand"
	"time"
)

// AutoDropper scatters weights over the strip for a limited time. It drives
// the scripted session used when recording a CPU profile.
type AutoDropper struct {
	rand     *rand.Rand
	deadline time.Time
	active   bool
	// Every is the tick interval between drops.
	Every     int
	countdown int
	Height    float64
}

// NewAutoDropper seeds the drop pattern.
func NewAutoDropper(seed int64) *AutoDropper {
	return &AutoDropper{
		rand:   rand.New(rand.NewSource(seed)),
		Every:  20,
		Height: 4,
	}
}

// Enable schedules drops until now+d.
func (a *AutoDropper) Enable(now time.Time, d time.Duration) {
	a.active = true
	a.deadline = now.Add(d)
	a.countdown = 0
}

// Active reports whether drops are still scheduled at now.
func (a *AutoDropper) Active(now time.Time) bool {
	if a.active && now.After(a.deadline) {
		a.active = false
	}
	return a.active
}

// Update drops one body into s every Every ticks while active.
func (a *AutoDropper) Update(now time.Time, s *Scene) *Body {
	if !a.Active(now) {
		return nil
	}
	if a.countdown > 0 {
		a.countdown--
		return nil
	}
	every := max(a.Every, 1)
	a.countdown = every - 1 + a.rand.Intn(every+1)
	cfg := s.Field().Config()
	x := cfg.Left + a.rand.Float64()*cfg.Width
	mass := s.Settings().BodyMass * (0.5 + a.rand.Float64())
	return s.Drop(x, a.Height, mass)
}
