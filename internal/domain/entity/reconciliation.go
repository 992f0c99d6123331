package entity

import "time"

// Comparison holds the flights of Primary that found no partner in Reference
type Comparison struct {
	Primary   Source         `json:"primary" bson:"primary"`
	Reference Source         `json:"reference" bson:"reference"`
	Unmatched []FlightRecord `json:"unmatched" bson:"unmatched"`
}

// LaunchCounts tallies flights per launch type for one source
type LaunchCounts struct {
	Tow   int `json:"tow" bson:"tow"`
	Winch int `json:"winch" bson:"winch"`
	Tug   int `json:"tug" bson:"tug"`
	TMG   int `json:"tmg" bson:"tmg"`
	Other int `json:"other" bson:"other"`
	Total int `json:"total" bson:"total"`
}

// Reconciliation is the outcome of one fetch-and-compare run for a date
type Reconciliation struct {
	ID               string                    `json:"id" bson:"_id"`
	Date             string                    `json:"date" bson:"date"`
	RunAt            time.Time                 `json:"run_at" bson:"runAt"`
	ToleranceSeconds int                       `json:"tolerance_seconds" bson:"toleranceSeconds"`
	Flights          map[Source][]FlightRecord `json:"flights" bson:"flights"`
	Counts           map[Source]LaunchCounts   `json:"counts" bson:"counts"`
	Comparisons      []Comparison              `json:"comparisons" bson:"comparisons"`
	FetchErrors      map[Source]string         `json:"fetch_errors,omitempty" bson:"fetchErrors,omitempty"`
}

// Comparison returns the comparison for the given ordered pair
func (r *Reconciliation) Comparison(primary, reference Source) (Comparison, bool) {
	for _, c := range r.Comparisons {
		if c.Primary == primary && c.Reference == reference {
			return c, true
		}
	}
	return Comparison{}, false
}

// Sources returns the sources that were fetched successfully, in run order
func (r *Reconciliation) Sources() []Source {
	var out []Source
	for _, s := range AllSources {
		if _, ok := r.Flights[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
