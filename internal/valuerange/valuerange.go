package valuerange

import (
	"errors"
	"fmt"
)

var ErrInvalidRange = errors.New("invalid value range; max must be greater than min")

// Range maps raw stat values onto a percentile scale.
// The zero value is not usable; construct with New.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Option tweaks a single Percentile call.
type Option func(*options)

type options struct {
	desc          bool
	allowNegative bool
}

// Desc inverts the scale: a low raw value maps to a high percentile.
func Desc() Option { return func(o *options) { o.desc = true } }

// AllowNegative disables the zero floor.
func AllowNegative() Option { return func(o *options) { o.allowNegative = true } }

// New returns a Range or ErrInvalidRange when max <= min.
func New(min, max float64) (Range, error) {
	r := Range{Min: min, Max: max}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// MustNew panics on an invalid range. Only for static tables.
func MustNew(min, max float64) Range {
	r, err := New(min, max)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) Validate() error {
	if !(r.Max > r.Min) {
		return fmt.Errorf("%w: min=%g max=%g", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Percentile normalizes value into the range as (value-min)/(max-min).
// Values above Max are not capped, so outliers score above 1.
// Unless AllowNegative is given the result is floored at 0 before and
// after the Desc inversion.
func (r Range) Percentile(value float64, opts ...Option) float64 {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	pct := (value - r.Min) / (r.Max - r.Min)
	if !o.allowNegative && pct < 0 {
		pct = 0
	}
	if o.desc {
		pct = 1 - pct
	}
	if !o.allowNegative && pct < 0 {
		pct = 0
	}
	return pct
}

// Interpolate is the inverse of Percentile for the ascending scale.
func (r Range) Interpolate(pct float64) float64 {
	return r.Min + (r.Max-r.Min)*pct
}

func (r Range) String() string {
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}
