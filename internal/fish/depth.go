package fish

// DepthBand is one of the five fixed depth intervals, in feet.
type DepthBand int

const (
	BandShallow DepthBand = iota
	BandMidWater
	BandDeep
	BandAbyssal
	BandHadal
)

// MaxDepth is the floor of the pond.
const MaxDepth = 10000.0

var DepthBands = []DepthBand{BandShallow, BandMidWater, BandDeep, BandAbyssal, BandHadal}

func (b DepthBand) String() string {
	switch b {
	case BandMidWater:
		return "Mid-Water"
	case BandDeep:
		return "Deep"
	case BandAbyssal:
		return "Abyssal"
	case BandHadal:
		return "Hadal"
	default:
		return "Shallow"
	}
}

// Range returns the band bounds. The upper bound is exclusive except for Hadal.
func (b DepthBand) Range() (float64, float64) {
	switch b {
	case BandMidWater:
		return 60, 200
	case BandDeep:
		return 200, 1000
	case BandAbyssal:
		return 1000, 4000
	case BandHadal:
		return 4000, MaxDepth
	default:
		return 0, 60
	}
}

// BandFor maps a sampled depth to its band. Negative depths count as
// Shallow and anything past 4000 ft as Hadal.
func BandFor(depth float64) DepthBand {
	switch {
	case depth < 60:
		return BandShallow
	case depth < 200:
		return BandMidWater
	case depth < 1000:
		return BandDeep
	case depth < 4000:
		return BandAbyssal
	default:
		return BandHadal
	}
}

// Overlaps reports whether [lo, hi] touches the band. With legacy set it uses
// the permissive test the first release shipped with: a range passes if it
// starts at or below the band's ceiling or ends at or above its floor.
func (b DepthBand) Overlaps(lo, hi float64, legacy bool) bool {
	bandLo, bandHi := b.Range()
	if legacy {
		return lo <= bandHi || hi >= bandLo
	}
	return lo <= bandHi && hi >= bandLo
}
