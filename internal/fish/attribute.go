package fish

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedAttribute is returned when an Attribute cannot describe a
// triangular distribution.
var ErrMalformedAttribute = errors.New("malformed attribute")

// Attribute is a {min, max, average} triple used for fish size, fish weight
// and sinker depth. Catalog values are shared between casts and must not be
// mutated; use Shifted to derive a biased copy.
type Attribute struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Average float64 `json:"average" yaml:"average"`
}

// Validate reports whether a triangular distribution can be built from a.
func (a Attribute) Validate() error {
	for _, v := range []float64{a.Min, a.Max, a.Average} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrMalformedAttribute, a)
		}
	}
	if a.Min > a.Max {
		return fmt.Errorf("%w: min %.2f > max %.2f", ErrMalformedAttribute, a.Min, a.Max)
	}
	if a.Average < a.Min || a.Average > a.Max {
		return fmt.Errorf("%w: average %.2f outside [%.2f, %.2f]", ErrMalformedAttribute, a.Average, a.Min, a.Max)
	}
	return nil
}

// Shifted returns a copy of a whose average has been moved toward Max
// (bias > 0) or toward Min (bias < 0) by |bias| of the remaining distance.
// Bias is clamped to [-1, 1].
func (a Attribute) Shifted(bias float64) Attribute {
	bias = clamp(bias, -1, 1)
	out := a
	switch {
	case bias > 0:
		out.Average += (a.Max - a.Average) * bias
	case bias < 0:
		out.Average += (a.Average - a.Min) * bias
	}
	out.Average = clamp(out.Average, a.Min, a.Max)
	return out
}

// Mean is the expected value of the triangular distribution over a.
func (a Attribute) Mean() float64 {
	return (a.Min + a.Max + a.Average) / 3
}

// Sample draws one value from the triangular distribution (Min, Max, Average).
func (a Attribute) Sample(src Source) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if a.Max == a.Min {
		return a.Min, nil
	}

	span := a.Max - a.Min
	u := src.Float64()
	pivot := (a.Average - a.Min) / span

	var v float64
	if u < pivot {
		v = a.Min + math.Sqrt(u*span*(a.Average-a.Min))
	} else {
		v = a.Max - math.Sqrt((1-u)*span*(a.Max-a.Average))
	}
	return clamp(v, a.Min, a.Max), nil
}

// SampleBiased is Shifted(bias).Sample(src).
func (a Attribute) SampleBiased(bias float64, src Source) (float64, error) {
	return a.Shifted(bias).Sample(src)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
