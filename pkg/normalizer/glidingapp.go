package normalizer

import (
	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/callsign"
	"flightlog-reconciler/pkg/utils"
)

var glidingAppLaunchTypes = map[string]string{
	"sep-a": entity.LaunchTug,
	"sep":   entity.LaunchTug, // GlidingApp reports tug flights as both sep and sep-a
	"sleep": entity.LaunchTow,
	"lier":  entity.LaunchWinch,
	"tmg":   entity.LaunchTMG,
}

// GlidingApp normalizes GlidingApp flights.
type GlidingApp struct {
	resolver *callsign.Resolver
}

// NewGlidingApp creates a GlidingApp normalizer
func NewGlidingApp(resolver *callsign.Resolver) *GlidingApp {
	return &GlidingApp{resolver: resolver}
}

// Normalize converts one day's batch. Tow partners are looked up by uuid
// within the same batch.
func (n *GlidingApp) Normalize(batch []GlidingAppFlight) []entity.FlightRecord {
	byUUID := make(map[string]int, len(batch))
	for i, f := range batch {
		if f.UUID == nil {
			continue
		}
		if _, seen := byUUID[*f.UUID]; !seen {
			byUUID[*f.UUID] = i
		}
	}

	flights := make([]entity.FlightRecord, 0, len(batch))
	for _, f := range batch {
		rec := entity.FlightRecord{
			UUID:         utils.Deref(f.UUID),
			SeqNo:        f.SeqNo,
			FlightDate:   f.Date,
			LaunchType:   mapLaunch(glidingAppLaunchTypes, f.LaunchMethod),
			CN:           n.resolver.Resolve(utils.Deref(f.Callsign)),
			Takeoff:      clockTime(f.Takeoff),
			Landing:      clockTime(f.Landing),
			PicAccount:   f.PicAccount,
			PicName:      f.PicName,
			P2Account:    f.P2Account,
			P2Name:       f.P2Name,
			PayerAccount: f.PayerAccount,
			Note:         f.Remarks,
			Source:       entity.SourceGlidingApp,
		}
		if f.Category != nil && *f.Category != entity.LaunchOther {
			rec.OtherName = f.Category
		}
		if f.TowUUID != nil {
			if i, ok := byUUID[*f.TowUUID]; ok {
				tow := batch[i]
				rec.TowCN = utils.StringPtr(n.resolver.Resolve(utils.Deref(tow.Callsign)))
				rec.Height = releaseHeight(tow.Altitude, glidingAppOffsetFeet)
			}
		}
		flights = append(flights, rec)
	}
	return flights
}
