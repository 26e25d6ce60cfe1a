package pool

import (
	"dario.cat/mergo"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// CommitPolicy decides what happens to the values of an item when one sub-value of a
// multi-value assignment such as "1 & x & 3" is rejected.
type CommitPolicy int

const (
	// ProgressiveCommit stores each sub-value as soon as it is accepted. When sub-value j is
	// rejected, positions before j hold the new values and positions from j on keep their
	// previous values.
	ProgressiveCommit CommitPolicy = iota

	// AllOrNothing leaves the item untouched unless every sub-value is accepted.
	AllOrNothing
)

func (policy CommitPolicy) String() string {
	switch policy {
	case ProgressiveCommit:
		return "progressive"
	case AllOrNothing:
		return "all-or-nothing"
	}

	return "unknown"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (policy *CommitPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "progressive":
		*policy = ProgressiveCommit
	case "all-or-nothing":
		*policy = AllOrNothing
	default:
		return errors.Errorf("invalid commit policy %q, expected progressive or all-or-nothing", string(text))
	}

	return nil
}

// Defaults holds the values used for attributes an item does not set itself.
// Zero fields are filled from DefaultDefaults.
type Defaults struct {
	MinMax       []float64    `mapstructure:"minmax"`
	Separator    string       `mapstructure:"separator"`
	WidgetSize   int          `mapstructure:"widget_size"`
	RangeSteps   int          `mapstructure:"range_steps"`
	NumberStep   float64      `mapstructure:"number_step"`
	CommitPolicy CommitPolicy `mapstructure:"commit_policy"`
}

// DefaultDefaults returns widget size 11, range [-1000, 1000], 100 slider steps, a
// number step of 0.001, "&" between multiple values and progressive commit.
func DefaultDefaults() Defaults {
	return Defaults{
		WidgetSize:   11,
		MinMax:       []float64{-1000, 1000},
		RangeSteps:   100,
		NumberStep:   0.001,
		Separator:    "&",
		CommitPolicy: ProgressiveCommit,
	}
}

// Complete returns a copy of defaults with every zero field taken from DefaultDefaults.
func (defaults Defaults) Complete() (Defaults, error) {
	if err := mergo.Merge(&defaults, DefaultDefaults()); err != nil {
		return defaults, errors.New(err)
	}

	if len(defaults.MinMax) != 2 || defaults.MinMax[0] > defaults.MinMax[1] {
		return defaults, errors.Errorf("default minmax must be [min, max], got %v", defaults.MinMax)
	}

	return defaults, nil
}
