// Package normalizer turns each source's raw flight batch into canonical
// entity.FlightRecord values.
//
// The raw types below are what the I/O clients decode from the wire. Every
// field is optional: a value the client could not read is left nil and the
// normalizer carries the gap through as a nil canonical field.
package normalizer

import "time"

// GlidingAppFlight is one entry of the GlidingApp flights.json payload.
type GlidingAppFlight struct {
	UUID         *string // uuid
	SeqNo        *int    // volg_nummer
	Date         *string // datum
	LaunchMethod *string // start_methode
	Callsign     *string // callsign
	Takeoff      *string // start_tijd
	Landing      *string // landings_tijd
	PicAccount   *string // pic_m_id
	PicName      *string // gezagvoerder_naam
	P2Account    *string // second_pilot_m_id
	P2Name       *string // tweede_inzittende_naam
	PayerAccount *string // paying_pilot_m_id
	TowUUID      *string // sleep_uuid, uuid of the tug flight in the same batch
	Altitude     *string // height, release altitude in meters
	Remarks      *string // bijzonderheden
	Category     *string // category
}

// KTraxSortie is one entry of the KTrax logbook "sorties" array.
type KTraxSortie struct {
	Seq      *string // seq, unique within the batch
	Date     *string // date
	Launch   *string // launch
	CN       *string // cn
	Callsign *string // callsign
	Takeoff  *string // tkof.time
	Landing  *string // ldg.time
	TowSeq   *string // tow_seq, seq of the tug sortie in the same batch
	Altitude *string // dalt, release height in meters above ground
}

// AerologRow is one row of the Aerolog "Flight log enquiry" export.
type AerologRow struct {
	Seq        *string    // SEQ
	FlightDate *time.Time // FLIGHT DATE, only the date part is meaningful
	Aircraft   *string    // AIRCRAFT
	Tug        *string    // TUG
	TimeUp     *time.Time // TIME UP, only the time of day is meaningful
	TimeDown   *time.Time // TIME DOWN
}
