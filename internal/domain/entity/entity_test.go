package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := map[string]Source{
		"GA":          SourceGlidingApp,
		"ga":          SourceGlidingApp,
		"Gliding.App": SourceGlidingApp,
		" kt ":        SourceKTrax,
		"ktrax":       SourceKTrax,
		"AL":          SourceAerolog,
		"aerolog":     SourceAerolog,
	}
	for in, want := range tests {
		got, ok := ParseSource(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseSource("ogn")
	assert.False(t, ok)
	_, ok = ParseSource("")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Gliding.App", SourceGlidingApp.DisplayName())
	assert.Equal(t, "Ktrax", SourceKTrax.DisplayName())
	assert.Equal(t, "Aerolog", SourceAerolog.DisplayName())
	assert.Equal(t, "XX", Source("XX").DisplayName())
}

func TestFlightRecordAccessors(t *testing.T) {
	var f FlightRecord
	assert.Equal(t, "other", f.LaunchTypeOr("other"))
	assert.Equal(t, "", f.TakeoffOr(""))
	assert.False(t, f.HasNote())

	launch, takeoff, empty, note := "tow", "10:02", "", "check"
	f = FlightRecord{LaunchType: &launch, Takeoff: &takeoff, Note: &empty}
	assert.Equal(t, "tow", f.LaunchTypeOr("other"))
	assert.Equal(t, "10:02", f.TakeoffOr(""))
	assert.False(t, f.HasNote())

	f.Note = &note
	assert.True(t, f.HasNote())
}

func TestReconciliationLookups(t *testing.T) {
	rec := Reconciliation{
		Flights: map[Source][]FlightRecord{
			SourceAerolog:    {},
			SourceGlidingApp: {{UUID: "g1"}},
		},
		Comparisons: []Comparison{
			{Primary: SourceGlidingApp, Reference: SourceAerolog, Unmatched: []FlightRecord{{UUID: "g1"}}},
			{Primary: SourceAerolog, Reference: SourceGlidingApp},
		},
	}

	assert.Equal(t, []Source{SourceGlidingApp, SourceAerolog}, rec.Sources())

	c, ok := rec.Comparison(SourceGlidingApp, SourceAerolog)
	require.True(t, ok)
	assert.Len(t, c.Unmatched, 1)

	_, ok = rec.Comparison(SourceKTrax, SourceAerolog)
	assert.False(t, ok)
}

func TestFetchError(t *testing.T) {
	cause := errors.New("status 502")
	err := error(&FetchError{Source: SourceKTrax, Err: cause})

	assert.Equal(t, "fetch KT flights: status 502", err.Error())
	assert.ErrorIs(t, err, cause)
}
