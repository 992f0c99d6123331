// Package report renders flight lists and reconciliation results as text tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/utils"
)

// Group is the flights of one launch type bucket
type Group struct {
	LaunchType string
	Flights    []entity.FlightRecord
}

// Options controls WriteFlights
type Options struct {
	Title             string
	IncludeTows       bool
	NotesOnly         bool
	GroupByLaunchType bool
}

var flightHeaders = []string{
	"Seq", "Date", "Launch", "Aircraft", "Takeoff", "Landing",
	"P1", "P1 name", "P2", "P2 name", "Payer", "Other name",
	"Tow", "Height", "Notes", "Source",
}

// bucket returns the report bucket of a flight: one of the known launch
// types, or other for anything else including a missing launch type.
func bucket(f entity.FlightRecord) string {
	lt := strings.ToLower(f.LaunchTypeOr(""))
	for _, known := range entity.KnownLaunchTypes {
		if lt == known {
			return known
		}
	}
	return entity.LaunchOther
}

// CountByLaunchType tallies flights per launch type. Only exact matches on
// the canonical values count as known.
func CountByLaunchType(flights []entity.FlightRecord) entity.LaunchCounts {
	var c entity.LaunchCounts
	for _, f := range flights {
		switch f.LaunchTypeOr("") {
		case entity.LaunchTow:
			c.Tow++
		case entity.LaunchWinch:
			c.Winch++
		case entity.LaunchTug:
			c.Tug++
		case entity.LaunchTMG:
			c.TMG++
		default:
			c.Other++
		}
	}
	c.Total = c.Tow + c.Winch + c.Tug + c.TMG + c.Other
	return c
}

// GroupByLaunchType splits flights into tow, winch, tug, tmg and other, in
// that order, dropping empty groups. Flights keep their relative order.
func GroupByLaunchType(flights []entity.FlightRecord) []Group {
	order := append(append([]string{}, entity.KnownLaunchTypes...), entity.LaunchOther)
	byType := make(map[string][]entity.FlightRecord, len(order))
	for _, f := range flights {
		b := bucket(f)
		byType[b] = append(byType[b], f)
	}

	var groups []Group
	for _, lt := range order {
		if len(byType[lt]) == 0 {
			continue
		}
		groups = append(groups, Group{LaunchType: lt, Flights: byType[lt]})
	}
	return groups
}

// SortByTakeoff returns a copy of flights ordered by takeoff string; missing
// times sort first. Equal times keep their input order.
func SortByTakeoff(flights []entity.FlightRecord) []entity.FlightRecord {
	out := make([]entity.FlightRecord, len(flights))
	copy(out, flights)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TakeoffOr("") < out[j].TakeoffOr("")
	})
	return out
}

// WriteFlights writes flights sorted by takeoff as one table, or one table
// per launch type when grouping.
func WriteFlights(w io.Writer, flights []entity.FlightRecord, opts Options) error {
	sorted := SortByTakeoff(flights)

	if opts.Title != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", opts.Title); err != nil {
			return err
		}
	}

	if !opts.GroupByLaunchType {
		var rows []entity.FlightRecord
		for _, f := range sorted {
			if !opts.IncludeTows && f.LaunchTypeOr("") == entity.LaunchTug {
				continue
			}
			rows = append(rows, f)
		}
		return writeTable(w, rows, opts.NotesOnly)
	}

	for _, g := range GroupByLaunchType(sorted) {
		if g.LaunchType == entity.LaunchTug && !opts.IncludeTows {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n--- %s Flights ---\n", strings.ToUpper(g.LaunchType)); err != nil {
			return err
		}
		if err := writeTable(w, g.Flights, opts.NotesOnly); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, flights []entity.FlightRecord, notesOnly bool) error {
	table := tablewriter.NewTable(w)
	table.Header(toAny(flightHeaders)...)
	for _, f := range flights {
		if notesOnly && !f.HasNote() {
			continue
		}
		if err := table.Append(toAny(flightRow(f))...); err != nil {
			return err
		}
	}
	return table.Render()
}

func flightRow(f entity.FlightRecord) []string {
	seq := ""
	if f.SeqNo != nil {
		seq = strconv.Itoa(*f.SeqNo)
	}
	height := ""
	if lt := strings.ToLower(f.LaunchTypeOr("")); (lt == entity.LaunchTug || lt == entity.LaunchTow) && f.Height != nil {
		height = strconv.Itoa(*f.Height)
	}
	return []string{
		seq,
		utils.Deref(f.FlightDate),
		utils.Deref(f.LaunchType),
		f.CN,
		utils.Deref(f.Takeoff),
		utils.Deref(f.Landing),
		utils.Deref(f.PicAccount),
		utils.Deref(f.PicName),
		utils.Deref(f.P2Account),
		utils.Deref(f.P2Name),
		utils.Deref(f.PayerAccount),
		utils.Deref(f.OtherName),
		utils.Deref(f.TowCN),
		height,
		utils.Deref(f.Note),
		f.Source.String(),
	}
}

// WriteSummary writes the per-pair unmatched counts, any fetch failures and
// the launch type counts of every fetched source.
func WriteSummary(w io.Writer, rec *entity.Reconciliation) error {
	if _, err := fmt.Fprintf(w, "Reconciliation %s for %s\n", rec.ID, rec.Date); err != nil {
		return err
	}
	for _, c := range rec.Comparisons {
		if _, err := fmt.Fprintf(w, "Flights which are in %s but not in %s: %d flights\n",
			c.Primary.DisplayName(), c.Reference.DisplayName(), len(c.Unmatched)); err != nil {
			return err
		}
	}
	for _, s := range entity.AllSources {
		if msg, ok := rec.FetchErrors[s]; ok {
			if _, err := fmt.Fprintf(w, "%s unavailable: %s\n", s.DisplayName(), msg); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := tablewriter.NewTable(w)
	table.Header("Source", "Tows", "Winch", "Tug", "TMG", "Other", "Total")
	for _, s := range rec.Sources() {
		c, ok := rec.Counts[s]
		if !ok {
			c = CountByLaunchType(rec.Flights[s])
		}
		row := []string{s.DisplayName(), strconv.Itoa(c.Tow), strconv.Itoa(c.Winch), strconv.Itoa(c.Tug),
			strconv.Itoa(c.TMG), strconv.Itoa(c.Other), strconv.Itoa(c.Total)}
		if err := table.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteReconciliation writes the summary followed by every non-empty
// unmatched list and the GlidingApp flights carrying notes.
func WriteReconciliation(w io.Writer, rec *entity.Reconciliation) error {
	if err := WriteSummary(w, rec); err != nil {
		return err
	}
	for _, c := range rec.Comparisons {
		if len(c.Unmatched) == 0 {
			continue
		}
		title := fmt.Sprintf("Flights in %s but not in %s", c.Primary.DisplayName(), c.Reference.DisplayName())
		if err := WriteFlights(w, c.Unmatched, Options{Title: title, IncludeTows: true}); err != nil {
			return err
		}
	}
	if ga, ok := rec.Flights[entity.SourceGlidingApp]; ok {
		return WriteFlights(w, ga, Options{Title: "GA flights with notes", IncludeTows: true, NotesOnly: true})
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
