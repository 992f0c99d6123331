package normalizer

import (
	"fmt"
	"time"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/callsign"
	"flightlog-reconciler/pkg/utils"
)

// Aerolog normalizes rows of the Aerolog spreadsheet export. The export only
// carries identity, times and the tug, so launch type, crew and height stay nil.
type Aerolog struct {
	resolver *callsign.Resolver
}

// NewAerolog creates an Aerolog normalizer
func NewAerolog(resolver *callsign.Resolver) *Aerolog {
	return &Aerolog{resolver: resolver}
}

// Normalize keeps the rows flown on date (YYYY-MM-DD) and converts them.
func (n *Aerolog) Normalize(date string, rows []AerologRow) ([]entity.FlightRecord, error) {
	target, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidDate, date)
	}

	flights := make([]entity.FlightRecord, 0, len(rows))
	for _, r := range rows {
		if r.FlightDate == nil || !sameDay(*r.FlightDate, target) {
			continue
		}
		flights = append(flights, entity.FlightRecord{
			UUID:    utils.Deref(r.Seq),
			CN:      n.resolver.Resolve(utils.Deref(r.Aircraft)),
			Takeoff: timeOfDay(r.TimeUp),
			Landing: timeOfDay(r.TimeDown),
			TowCN:   resolvePtr(n.resolver.Resolve, r.Tug),
			Source:  entity.SourceAerolog,
		})
	}
	return flights, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func timeOfDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return utils.StringPtr(t.Format(clockLayout))
}
