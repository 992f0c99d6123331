package entity

import "strings"

// Source is the provenance tag of a flight record
type Source string

const (
	SourceGlidingApp Source = "GA"
	SourceKTrax      Source = "KT"
	SourceAerolog    Source = "AL"
)

// AllSources lists the known sources in reconciliation order
var AllSources = []Source{SourceGlidingApp, SourceKTrax, SourceAerolog}

// String returns the tag
func (s Source) String() string {
	return string(s)
}

// DisplayName returns the human readable name used in reports
func (s Source) DisplayName() string {
	switch s {
	case SourceGlidingApp:
		return "Gliding.App"
	case SourceKTrax:
		return "Ktrax"
	case SourceAerolog:
		return "Aerolog"
	default:
		return string(s)
	}
}

// ParseSource accepts a tag or a short name in any case ("ga", "ktrax", "aerolog")
func ParseSource(s string) (Source, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GA", "GLIDINGAPP", "GLIDING.APP":
		return SourceGlidingApp, true
	case "KT", "KTRAX":
		return SourceKTrax, true
	case "AL", "AEROLOG":
		return SourceAerolog, true
	}
	return "", false
}
