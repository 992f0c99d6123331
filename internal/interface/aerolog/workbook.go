// Package aerolog reads the Aerolog "Flight log enquiry" spreadsheet export,
// either from a local file or from Google Drive.
package aerolog

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/normalizer"
	"flightlog-reconciler/pkg/utils"
)

// Column headings read from the header row. Matching ignores case and padding.
const (
	ColumnSeq        = "SEQ"
	ColumnFlightDate = "FLIGHT DATE"
	ColumnAircraft   = "AIRCRAFT"
	ColumnTug        = "TUG"
	ColumnTimeUp     = "TIME UP"
	ColumnTimeDown   = "TIME DOWN"
)

var requiredColumns = []string{
	ColumnSeq, ColumnFlightDate, ColumnAircraft, ColumnTug, ColumnTimeUp, ColumnTimeDown,
}

var (
	dateLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"02/01/2006",
		"2/1/2006",
		"02/01/2006 15:04:05",
		"02/01/2006 15:04",
		"02-Jan-2006",
		"2 Jan 2006",
	}
	timeLayouts = []string{
		"15:04",
		"15:04:05",
		"3:04 PM",
		"3:04:05 PM",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"02/01/2006 15:04:05",
		"02/01/2006 15:04",
	}
	// day zero of the 1900 date system as used by spreadsheet serials
	excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
)

// WorkbookReader reads rows from a workbook on the local filesystem.
type WorkbookReader struct {
	path      string
	sheet     string
	headerRow int
	logger    logger.Logger
}

// NewWorkbookReader creates a reader for the sheet whose headings sit on
// headerRow (1-based).
func NewWorkbookReader(path, sheet string, headerRow int, logger logger.Logger) *WorkbookReader {
	return &WorkbookReader{path: path, sheet: sheet, headerRow: headerRow, logger: logger}
}

// ReadRows opens the workbook and returns every data row below the header.
func (r *WorkbookReader) ReadRows(ctx context.Context) ([]normalizer.AerologRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open aerolog workbook %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := readSheet(f, r.sheet, r.headerRow)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Read aerolog workbook", "path", r.path, "rows", len(rows))
	return rows, nil
}

// ParseWorkbook reads the rows of sheet from an xlsx stream.
func ParseWorkbook(src io.Reader, sheet string, headerRow int) ([]normalizer.AerologRow, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open aerolog workbook: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet, headerRow)
}

func readSheet(f *excelize.File, sheet string, headerRow int) ([]normalizer.AerologRow, error) {
	if headerRow < 1 {
		return nil, fmt.Errorf("aerolog header row must be at least 1, got %d", headerRow)
	}
	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read aerolog sheet %q: %w", sheet, err)
	}
	if len(cells) < headerRow {
		return nil, fmt.Errorf("aerolog sheet %q has no header row %d", sheet, headerRow)
	}

	columns := make(map[string]int)
	for i, heading := range cells[headerRow-1] {
		key := strings.ToUpper(strings.TrimSpace(heading))
		if _, dup := columns[key]; key != "" && !dup {
			columns[key] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("aerolog sheet %q is missing columns: %s", sheet, strings.Join(missing, ", "))
	}

	rows := make([]normalizer.AerologRow, 0, len(cells)-headerRow)
	for _, record := range cells[headerRow:] {
		cell := func(name string) string {
			i := columns[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, normalizer.AerologRow{
			Seq:        utils.NonEmpty(cell(ColumnSeq)),
			FlightDate: parseDate(cell(ColumnFlightDate)),
			Aircraft:   utils.NonEmpty(cell(ColumnAircraft)),
			Tug:        utils.NonEmpty(cell(ColumnTug)),
			TimeUp:     parseTime(cell(ColumnTimeUp)),
			TimeDown:   parseTime(cell(ColumnTimeDown)),
		})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseDate accepts a spreadsheet serial or a textual date. Day-first is
// assumed for slash separated dates.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		y, m, d := t.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &day
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// parseTime accepts a day fraction, a full serial or a textual clock time.
func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial < 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
			return nil
		}
		days := math.Floor(serial)
		secs := math.Round((serial - days) * 86400)
		t := excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
		return &t
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
