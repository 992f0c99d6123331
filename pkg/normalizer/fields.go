package normalizer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"flightlog-reconciler/pkg/utils"
)

const (
	metersToFeet = 3.28084

	// glidingAppOffsetFeet is the systematic offset between GlidingApp's
	// altitude reading and the airfield.
	glidingAppOffsetFeet = 254.0

	clockLayout        = "15:04"
	clockLayoutSeconds = "15:04:05"
	dateLayout         = "2006-01-02"
)

// releaseHeight converts a raw altitude in meters into feet above ground,
// rounded to the nearest 100. Missing, unparsable and zero readings give nil.
func releaseHeight(raw *string, offsetFeet float64) *int {
	if raw == nil {
		return nil
	}
	meters, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || meters == 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		return nil
	}
	feet := meters*metersToFeet - offsetFeet
	return utils.IntPtr(int(math.RoundToEven(feet/100) * 100))
}

// clockTime brings a raw time of day into zero-padded "HH:MM". Values with
// seconds are truncated to the minute; anything else is returned untouched so the
// matcher can reject it.
func clockTime(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(clockLayout, s); err == nil {
		return utils.StringPtr(t.Format(clockLayout))
	}
	if t, err := time.Parse(clockLayoutSeconds, s); err == nil {
		return utils.StringPtr(t.Format(clockLayout))
	}
	return &s
}

// mapLaunch translates a source launch code, keeping unknown codes verbatim.
func mapLaunch(table map[string]string, raw *string) *string {
	if raw == nil {
		return nil
	}
	if canonical, ok := table[*raw]; ok {
		return &canonical
	}
	code := *raw
	return &code
}

func resolvePtr(resolve func(string) string, raw *string) *string {
	if raw == nil {
		return nil
	}
	return utils.StringPtr(resolve(*raw))
}
