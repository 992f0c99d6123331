// internal/domain/entity/flight_record.go
package entity

// Canonical launch types. Sources may report codes outside this set; those are
// kept verbatim in LaunchType and only bucketed as "other" when reported.
const (
	LaunchTow   = "tow"
	LaunchWinch = "winch"
	LaunchTug   = "tug"
	LaunchTMG   = "tmg"
	LaunchOther = "other"
)

// KnownLaunchTypes lists the canonical launch types in report order.
var KnownLaunchTypes = []string{LaunchTow, LaunchWinch, LaunchTug, LaunchTMG}

// FlightRecord is the source-agnostic shape every normalizer produces.
// Optional fields are nil when the source does not supply them or when the
// raw value could not be read. Records are never mutated after construction.
type FlightRecord struct {
	UUID         string  `json:"uuid" bson:"uuid"` // unique within one source and date only
	SeqNo        *int    `json:"seq_no" bson:"seqNo,omitempty"`
	FlightDate   *string `json:"flight_date" bson:"flightDate,omitempty"`
	LaunchType   *string `json:"launch_type" bson:"launchType,omitempty"`
	CN           string  `json:"cn" bson:"cn"`
	Takeoff      *string `json:"takeoff" bson:"takeoff,omitempty"`
	Landing      *string `json:"landing" bson:"landing,omitempty"`
	PicAccount   *string `json:"pic_account" bson:"picAccount,omitempty"`
	PicName      *string `json:"pic_name" bson:"picName,omitempty"`
	P2Account    *string `json:"p2_account" bson:"p2Account,omitempty"`
	P2Name       *string `json:"p2_name" bson:"p2Name,omitempty"`
	PayerAccount *string `json:"payer_account" bson:"payerAccount,omitempty"`
	TowCN        *string `json:"tow_cn" bson:"towCn,omitempty"`
	Height       *int    `json:"height" bson:"height,omitempty"` // feet, rounded to 100
	Note         *string `json:"note" bson:"note,omitempty"`
	OtherName    *string `json:"other_name" bson:"otherName,omitempty"`
	Source       Source  `json:"source" bson:"source"`
}

// LaunchTypeOr returns the launch type or def when it is absent.
func (f FlightRecord) LaunchTypeOr(def string) string {
	if f.LaunchType == nil {
		return def
	}
	return *f.LaunchType
}

// TakeoffOr returns the takeoff time or def when it is absent.
func (f FlightRecord) TakeoffOr(def string) string {
	if f.Takeoff == nil {
		return def
	}
	return *f.Takeoff
}

// HasNote reports whether the record carries a non-empty note.
func (f FlightRecord) HasNote() bool {
	return f.Note != nil && *f.Note != ""
}
