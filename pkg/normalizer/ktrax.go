package normalizer

import (
	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/callsign"
	"flightlog-reconciler/pkg/utils"
)

var ktraxLaunchTypes = map[string]string{
	"S": entity.LaunchTug,
	"T": entity.LaunchTow,
	"W": entity.LaunchWinch,
}

// KTrax normalizes KTrax logbook sorties.
type KTrax struct {
	resolver *callsign.Resolver
}

// NewKTrax creates a KTrax normalizer
func NewKTrax(resolver *callsign.Resolver) *KTrax {
	return &KTrax{resolver: resolver}
}

// Normalize converts one day's sorties. KTrax has no sequence number of its
// own, so SeqNo counts sorties from 1 in batch order. Tow partners are looked
// up by seq; their dalt is already above ground so no offset applies.
func (n *KTrax) Normalize(batch []KTraxSortie) []entity.FlightRecord {
	bySeq := make(map[string]int, len(batch))
	for i, s := range batch {
		if s.Seq == nil {
			continue
		}
		if _, seen := bySeq[*s.Seq]; !seen {
			bySeq[*s.Seq] = i
		}
	}

	flights := make([]entity.FlightRecord, 0, len(batch))
	for i, s := range batch {
		rec := entity.FlightRecord{
			UUID:       utils.Deref(s.Seq),
			SeqNo:      utils.IntPtr(i + 1),
			FlightDate: s.Date,
			LaunchType: mapLaunch(ktraxLaunchTypes, s.Launch),
			CN:         n.resolver.Resolve(utils.Deref(s.CN)),
			Takeoff:    clockTime(s.Takeoff),
			Landing:    clockTime(s.Landing),
			Source:     entity.SourceKTrax,
		}
		if s.TowSeq != nil {
			if j, ok := bySeq[*s.TowSeq]; ok {
				tow := batch[j]
				rec.TowCN = utils.StringPtr(n.resolver.Resolve(towCallsign(tow)))
				rec.Height = releaseHeight(tow.Altitude, 0)
			}
		}
		flights = append(flights, rec)
	}
	return flights
}

// towCallsign prefers the tug's callsign field and falls back to its cn.
func towCallsign(s KTraxSortie) string {
	if s.Callsign != nil && *s.Callsign != "" {
		return *s.Callsign
	}
	return utils.Deref(s.CN)
}
