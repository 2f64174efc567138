package domain

// ProjectionRecord is the outcome of one simulated year. Population figures are in thousands.
type ProjectionRecord struct {
	Year            int     `json:"year"`
	TotalPopulation float64 `json:"total_pop"`
	Births          float64 `json:"births"`
	Deaths          float64 `json:"deaths"`
	Growth          float64 `json:"growth"`
	Age0To14        float64 `json:"age0_14"`
	Age15To64       float64 `json:"age15_64"`
	Age65Plus       float64 `json:"age65plus"`
	AgingRate       float64 `json:"aging_rate"`       // percent aged 65+
	DependencyRatio float64 `json:"dependency_ratio"` // percent, (0-14 + 65+) / 15-64

	// Interpolated inputs for the year
	TFR                 float64 `json:"tfr"`
	LifeExpectancy      float64 `json:"le"`
	MeanChildbearingAge float64 `json:"mean_age"`
}

// ProjectionSummary condenses a run into headline figures.
type ProjectionSummary struct {
	StartYear         int     `json:"start_year"`
	EndYear           int     `json:"end_year"`
	InitialPopulation float64 `json:"initial_population"`
	FinalPopulation   float64 `json:"final_population"`
	PeakPopulation    float64 `json:"peak_population"`
	PeakYear          int     `json:"peak_year"`
	FinalAgingRate    float64 `json:"final_aging_rate"`
	TotalBirths       float64 `json:"total_births"`
	TotalDeaths       float64 `json:"total_deaths"`
}

// ProjectionResult bundles the yearly records of one run.
type ProjectionResult struct {
	Name      string             `json:"name,omitempty"`
	Unit      string             `json:"unit"`
	Semantics string             `json:"semantics"`
	Summary   ProjectionSummary  `json:"summary"`
	Records   []ProjectionRecord `json:"records"`
}

// KeyYears keeps the first record, every decade year, and the record for endYear.
func KeyYears(records []ProjectionRecord, endYear int) []ProjectionRecord {
	out := make([]ProjectionRecord, 0, len(records)/10+2)
	for i, r := range records {
		if i == 0 || r.Year%10 == 0 || r.Year == endYear {
			out = append(out, r)
		}
	}
	return out
}
