package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/utils"
)

func rec(uuid, cn, launch, takeoff string) entity.FlightRecord {
	f := entity.FlightRecord{UUID: uuid, CN: cn, Source: entity.SourceGlidingApp}
	if launch != "" {
		f.LaunchType = utils.StringPtr(launch)
	}
	if takeoff != "" {
		f.Takeoff = utils.StringPtr(takeoff)
	}
	return f
}

func TestCountByLaunchType(t *testing.T) {
	flights := []entity.FlightRecord{
		rec("1", "G-BODU", "tow", "10:00"),
		rec("2", "TUG SB", "tug", "10:00"),
		rec("3", "K21", "winch", "11:00"),
		rec("4", "K21", "winch", "12:00"),
		rec("5", "G-CTMG", "tmg", "13:00"),
		rec("6", "LS8", "bungee", "14:00"),
		rec("7", "LS8", "", "15:00"),
	}

	c := CountByLaunchType(flights)
	assert.Equal(t, entity.LaunchCounts{Tow: 1, Winch: 2, Tug: 1, TMG: 1, Other: 2, Total: 7}, c)
}

func TestGroupByLaunchType(t *testing.T) {
	flights := []entity.FlightRecord{
		rec("1", "K21", "winch", "11:00"),
		rec("2", "G-BODU", "TOW", "10:00"),
		rec("3", "LS8", "other", "14:00"),
		rec("4", "DG", "", "15:00"),
		rec("5", "K21", "winch", "09:00"),
	}

	groups := GroupByLaunchType(flights)
	require.Len(t, groups, 3)

	assert.Equal(t, "tow", groups[0].LaunchType)
	assert.Equal(t, "2", groups[0].Flights[0].UUID, "grouping ignores case")
	assert.Equal(t, "winch", groups[1].LaunchType)
	assert.Equal(t, "1", groups[1].Flights[0].UUID)
	assert.Equal(t, "5", groups[1].Flights[1].UUID)
	assert.Equal(t, "other", groups[2].LaunchType)
	assert.Len(t, groups[2].Flights, 2)
}

func TestSortByTakeoff(t *testing.T) {
	in := []entity.FlightRecord{
		rec("a", "K21", "winch", "11:00"),
		rec("b", "K21", "winch", ""),
		rec("c", "K21", "winch", "09:30"),
		rec("d", "K21", "winch", "09:30"),
	}

	out := SortByTakeoff(in)
	var got []string
	for _, f := range out {
		got = append(got, f.UUID)
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, got)
	assert.Equal(t, "a", in[0].UUID, "input is not reordered")
}

func TestWriteFlights_SkipsTugsUnlessIncluded(t *testing.T) {
	flights := []entity.FlightRecord{
		rec("1", "G-BODU", "tow", "10:00"),
		rec("2", "TUG SB", "tug", "10:00"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFlights(&buf, flights, Options{Title: "All GlidingApp flights"}))
	assert.Contains(t, buf.String(), "All GlidingApp flights")
	assert.Contains(t, buf.String(), "G-BODU")
	assert.NotContains(t, buf.String(), "TUG SB")

	buf.Reset()
	require.NoError(t, WriteFlights(&buf, flights, Options{IncludeTows: true, GroupByLaunchType: true}))
	assert.Contains(t, buf.String(), "--- TOW Flights ---")
	assert.Contains(t, buf.String(), "--- TUG Flights ---")
	assert.Contains(t, buf.String(), "TUG SB")
}

func TestWriteFlights_HeightOnlyForTowLaunches(t *testing.T) {
	towFlight := rec("1", "G-BODU", "tow", "10:00")
	towFlight.Height = utils.IntPtr(2100)
	winch := rec("2", "K21", "winch", "11:00")
	winch.Height = utils.IntPtr(9900)

	var buf bytes.Buffer
	require.NoError(t, WriteFlights(&buf, []entity.FlightRecord{towFlight, winch}, Options{}))
	assert.Contains(t, buf.String(), "2100")
	assert.NotContains(t, buf.String(), "9900")
}

func TestWriteFlights_NotesOnly(t *testing.T) {
	noted := rec("1", "G-BODU", "tow", "10:00")
	noted.Note = utils.StringPtr("canopy cracked")
	plain := rec("2", "K21", "winch", "11:00")

	var buf bytes.Buffer
	require.NoError(t, WriteFlights(&buf, []entity.FlightRecord{noted, plain}, Options{NotesOnly: true, IncludeTows: true}))
	assert.Contains(t, buf.String(), "canopy cracked")
	assert.NotContains(t, buf.String(), "K21")
}

func TestWriteReconciliation(t *testing.T) {
	ga := []entity.FlightRecord{rec("g1", "G-BODU", "tow", "10:00")}
	kt := []entity.FlightRecord{rec("k1", "LS8", "winch", "12:00")}
	r := &entity.Reconciliation{
		ID:   "run-1",
		Date: "2025-06-01",
		Flights: map[entity.Source][]entity.FlightRecord{
			entity.SourceGlidingApp: ga,
			entity.SourceKTrax:      kt,
		},
		Comparisons: []entity.Comparison{
			{Primary: entity.SourceKTrax, Reference: entity.SourceGlidingApp, Unmatched: kt},
			{Primary: entity.SourceGlidingApp, Reference: entity.SourceKTrax, Unmatched: ga},
		},
		FetchErrors: map[entity.Source]string{entity.SourceAerolog: "file not found"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReconciliation(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "Flights which are in Ktrax but not in Gliding.App: 1 flights")
	assert.Contains(t, out, "Flights which are in Gliding.App but not in Ktrax: 1 flights")
	assert.Contains(t, out, "Aerolog unavailable: file not found")
	assert.Contains(t, out, "Flights in Ktrax but not in Gliding.App")
	assert.Contains(t, out, "LS8")
	assert.Contains(t, out, "GA flights with notes")
}
