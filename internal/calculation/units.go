package calculation

import "strings"

// Unit identifies the magnitude convention of census counts.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitThousand
	UnitTenThousand
	UnitPerson
	UnitMillion
	UnitHundredMillion
)

var unitNames = map[Unit]string{
	UnitUnknown:        "unknown",
	UnitThousand:       "thousand",
	UnitTenThousand:    "ten-thousand",
	UnitPerson:         "person",
	UnitMillion:        "million",
	UnitHundredMillion: "hundred-million",
}

func (u Unit) String() string {
	if n, ok := unitNames[u]; ok {
		return n
	}
	return "unknown"
}

// unitAliases maps lower-cased spellings to units. CJK labels have no case.
var unitAliases = map[string]Unit{
	"千人": UnitThousand, "千": UnitThousand, "thousand": UnitThousand, "thousands": UnitThousand,
	"k": UnitThousand, "1000": UnitThousand,

	"万人": UnitTenThousand, "万": UnitTenThousand, "ten thousand": UnitTenThousand,
	"ten_thousand": UnitTenThousand, "ten-thousand": UnitTenThousand, "wan": UnitTenThousand,
	"10000": UnitTenThousand, "10k": UnitTenThousand,

	"人": UnitPerson, "person": UnitPerson, "persons": UnitPerson, "people": UnitPerson, "1": UnitPerson,

	"million": UnitMillion, "millions": UnitMillion, "1000000": UnitMillion,

	"亿人": UnitHundredMillion, "亿": UnitHundredMillion, "hundred million": UnitHundredMillion,
	"hundred_million": UnitHundredMillion, "hundred-million": UnitHundredMillion,
	"yi": UnitHundredMillion, "100000000": UnitHundredMillion, "100m": UnitHundredMillion,
}

// ParseUnit resolves a unit label. Unrecognized labels return UnitUnknown.
func ParseUnit(label string) Unit {
	if u, ok := unitAliases[strings.ToLower(strings.TrimSpace(label))]; ok {
		return u
	}
	return UnitUnknown
}

// ToThousands returns the multiplier converting a magnitude in u to thousands.
// UnitUnknown is treated as already canonical.
func (u Unit) ToThousands() float64 {
	switch u {
	case UnitTenThousand:
		return 10
	case UnitPerson:
		return 1.0 / 1000
	case UnitMillion:
		return 1000
	case UnitHundredMillion:
		return 100000
	default:
		return 1
	}
}

// NormalizeUnit converts a magnitude in the labelled unit to thousands and
// reports which unit was applied.
func NormalizeUnit(magnitude float64, label string) (float64, Unit) {
	u := ParseUnit(label)
	return scaleToThousands(magnitude, u), u
}

func scaleToThousands(magnitude float64, u Unit) float64 {
	// person counts divide so that 1000 people is exactly 1.
	if u == UnitPerson {
		return magnitude / 1000
	}
	return magnitude * u.ToThousands()
}
