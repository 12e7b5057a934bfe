package water

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports a configuration that cannot produce a stable strip.
	ErrConfig = errors.New("water: invalid configuration")

	// ErrIndex reports an impulse aimed at a missing or non-adjacent node pair.
	ErrIndex = errors.New("water: invalid node index")

	// ErrImpulse reports an impulse with a non-finite position or momentum.
	ErrImpulse = errors.New("water: invalid impulse")
)

// ConfigError names the offending parameter.
type ConfigError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("water: %s=%g: %s", e.Param, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// IndexError carries the rejected node pair and the strip size at the time.
type IndexError struct {
	Left, Right int
	Count       int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("water: node pair (%d,%d) is not an adjacent pair in [0,%d)", e.Left, e.Right, e.Count)
}

func (e *IndexError) Unwrap() error { return ErrIndex }

// ImpulseError carries the rejected position and momentum.
type ImpulseError struct {
	X, Momentum float64
}

func (e *ImpulseError) Error() string {
	return fmt.Sprintf("water: impulse at x=%g with momentum %g is not finite", e.X, e.Momentum)
}

func (e *ImpulseError) Unwrap() error { return ErrImpulse }
