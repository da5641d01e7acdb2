package fish

type SizeClass int

const (
	SizeTiny SizeClass = iota
	SizeSmall
	SizeAverage
	SizeBig
	SizeHuge
	SizeEnormous
)

var sizeClassNames = [...]string{"tiny", "modest", "average", "big", "huge", "enormous"}

func (c SizeClass) String() string {
	if c < SizeTiny || int(c) >= len(sizeClassNames) {
		return sizeClassNames[SizeEnormous]
	}
	return sizeClassNames[c]
}

// Percentile is the triangular CDF of v over a, in [0, 1].
func (a Attribute) Percentile(v float64) float64 {
	if a.Max <= a.Min {
		return 0
	}
	switch {
	case v <= a.Min:
		return 0
	case v >= a.Max:
		return 1
	}

	span := a.Max - a.Min
	if v <= a.Average {
		return (v - a.Min) * (v - a.Min) / (span * (a.Average - a.Min))
	}
	return 1 - (a.Max-v)*(a.Max-v)/(span*(a.Max-a.Average))
}

// sizeCutoffs are the upper percentile bounds of every class but the last.
var sizeCutoffs = [...]float64{0.08, 0.25, 0.70, 0.90, 0.97}

func ClassFromPercentile(p float64) SizeClass {
	for i, cut := range sizeCutoffs {
		if p < cut {
			return SizeClass(i)
		}
	}
	return SizeEnormous
}

// SizeClassFor ranks a fish's length against its species' size range.
func SizeClassFor(f *Fish) SizeClass {
	return ClassFromPercentile(f.Species.Size.Percentile(f.Size))
}
