package calculation

import (
	"sort"
	"strings"

	"github.com/popprobe/population-simulator/internal/domain"
)

// Expansion is the single-year cohort built from census bands.
type Expansion struct {
	Cohort domain.CohortVector
	Unit   Unit
	// Ignored lists band labels that matched no known band, sorted.
	Ignored []string
	// Duplicates lists bands given under more than one spelling, as "label/alias".
	// The value under the first sorted key is used.
	Duplicates []string
}

// ExpandAgeGroups spreads each five-year band evenly over its ages and converts
// the result to thousands. Missing bands leave their ages at zero. Bands are
// visited in age order so the result does not depend on map iteration.
func ExpandAgeGroups(groups map[string]float64, unitLabel string) Expansion {
	unit := ParseUnit(unitLabel)
	exp := Expansion{Unit: unit}

	keysByBand := make(map[int][]string, len(domain.AgeBands))
	for label := range groups {
		band, ok := domain.LookupAgeBand(label)
		if !ok {
			exp.Ignored = append(exp.Ignored, label)
			continue
		}
		keysByBand[band.Start] = append(keysByBand[band.Start], label)
	}

	for _, band := range domain.AgeBands {
		keys := keysByBand[band.Start]
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		if len(keys) > 1 {
			exp.Duplicates = append(exp.Duplicates, strings.Join(keys, "/"))
		}
		perAge := groups[keys[0]] / float64(band.Width())
		for age := band.Start; age <= band.End; age++ {
			exp.Cohort[age] = scaleToThousands(perAge, unit)
		}
	}
	sort.Strings(exp.Ignored)
	return exp
}
