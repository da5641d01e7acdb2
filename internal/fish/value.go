package fish

import (
	"fmt"
	"strings"
)

// ValueFormula selects how size and weight scale a species' base value.
type ValueFormula int

const (
	// ValueMultiplicative stacks the size and weight ratios, so a small and
	// light fish is penalized twice.
	ValueMultiplicative ValueFormula = iota
	// ValueAveraged averages the two ratios.
	ValueAveraged
)

func (f ValueFormula) String() string {
	if f == ValueAveraged {
		return "averaged"
	}
	return "multiplicative"
}

func ParseValueFormula(s string) (ValueFormula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiplicative", "multiplicitive":
		return ValueMultiplicative, nil
	case "averaged", "average":
		return ValueAveraged, nil
	}
	return ValueMultiplicative, fmt.Errorf("unknown value formula %q", s)
}

// Value prices a fish of the given size and weight. The result is never
// below one Dollar.
func (f ValueFormula) Value(sp SpeciesDef, size, weight float64) Money {
	sizeRatio := ratio(size, sp.Size.Average)
	weightRatio := ratio(weight, sp.Weight.Average)

	var v float64
	switch f {
	case ValueAveraged:
		v = sp.BaseValue.Dollars() * (sizeRatio + weightRatio) / 2
	default:
		v = sp.BaseValue.Dollars() * sizeRatio * weightRatio
	}

	m := NewMoney(v)
	if m < Dollar {
		return Dollar
	}
	return m
}

func ratio(v, avg float64) float64 {
	if avg == 0 {
		return 1
	}
	return v / avg
}
