package generator

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Default generation limits.
const (
	// DefaultMaxGroupResults caps how many fragments any group or composed
	// sequence contributes.
	DefaultMaxGroupResults = 5

	// DefaultMaxRepeaterVariance caps how far an open or wide repeat range may
	// extend past its minimum.
	DefaultMaxRepeaterVariance = 2

	// DefaultMaxResultsLimit caps the final flattened example list.
	DefaultMaxResultsLimit = 10000
)

// ErrInvalidLimits is returned when a Limits value cannot be used.
var ErrInvalidLimits = errors.New("invalid limits")

// Limits holds the tunables read by every resolution.
type Limits struct {
	MaxGroupResults     int `yaml:"max_group_results"`
	MaxRepeaterVariance int `yaml:"max_repeater_variance"`
	MaxResultsLimit     int `yaml:"max_results_limit"`
}

// Validate checks that the limits are usable.
func (l Limits) Validate() error {
	if l.MaxGroupResults < 1 {
		return fmt.Errorf("%w: max group results must be at least 1, got %d", ErrInvalidLimits, l.MaxGroupResults)
	}
	if l.MaxRepeaterVariance < 0 {
		return fmt.Errorf("%w: max repeater variance cannot be negative, got %d", ErrInvalidLimits, l.MaxRepeaterVariance)
	}
	if l.MaxResultsLimit < 1 {
		return fmt.Errorf("%w: max results limit must be at least 1, got %d", ErrInvalidLimits, l.MaxResultsLimit)
	}
	return nil
}

var defaultLimits atomic.Pointer[Limits]

func init() {
	defaultLimits.Store(&Limits{
		MaxGroupResults:     DefaultMaxGroupResults,
		MaxRepeaterVariance: DefaultMaxRepeaterVariance,
		MaxResultsLimit:     DefaultMaxResultsLimit,
	})
}

// DefaultLimits returns the process-wide limits.
func DefaultLimits() Limits {
	return *defaultLimits.Load()
}

// SetDefaultLimits replaces the process-wide limits. Trees resolved earlier keep
// the limits they were resolved with.
func SetDefaultLimits(l Limits) error {
	if err := l.Validate(); err != nil {
		return err
	}
	defaultLimits.Store(&l)
	return nil
}
