// Package matcher finds flights reported by one source that have no
// counterpart in another.
//
// Two records describe the same launch when the aircraft agree and the
// takeoff times are within a tolerance. The aircraft may agree directly
// (same cn) or through the tow link (a's aircraft is the tug b was towed by),
// so a tug flight logged separately in one source can pair with the glider
// entry of another source that only records the tug as tow_cn.
//
// Pairing is greedy and first-fit: each primary record takes the first unused
// reference record that matches. The result therefore depends on input order
// and is not a maximum matching.
package matcher

import (
	"time"

	"flightlog-reconciler/internal/domain/entity"
)

// DefaultTolerance is the largest takeoff difference still considered the same launch.
const DefaultTolerance = 180 * time.Second

const clockLayout = "15:04"

// Matcher pairs flights with a fixed tolerance. The zero value uses DefaultTolerance.
type Matcher struct {
	Tolerance time.Duration
}

// New returns a matcher with the given tolerance; zero or negative selects the default.
func New(tolerance time.Duration) Matcher {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return Matcher{Tolerance: tolerance}
}

func (m Matcher) tolerance() time.Duration {
	if m.Tolerance <= 0 {
		return DefaultTolerance
	}
	return m.Tolerance
}

// FindUnmatched returns the records of primary with no match in reference,
// in primary order. Each reference record pairs with at most one primary record.
func (m Matcher) FindUnmatched(primary, reference []entity.FlightRecord) []entity.FlightRecord {
	unmatched := make([]entity.FlightRecord, 0)
	used := make([]bool, len(reference))

	for _, a := range primary {
		found := false
		for i, b := range reference {
			if used[i] {
				continue
			}
			if m.Match(a, b, false) || m.Match(a, b, true) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			unmatched = append(unmatched, a)
		}
	}
	return unmatched
}

// Match reports whether a and b describe the same launch. With tow set, a's
// aircraft is compared against b's tug instead of b's aircraft.
func (m Matcher) Match(a, b entity.FlightRecord, tow bool) bool {
	if tow {
		if b.TowCN == nil || a.CN != *b.TowCN {
			return false
		}
	} else if a.CN != b.CN {
		return false
	}

	if a.Takeoff == nil || b.Takeoff == nil {
		return false
	}
	delta, ok := TakeoffDelta(*a.Takeoff, *b.Takeoff)
	if !ok {
		return false
	}
	return m.Within(delta)
}

// Within reports whether a takeoff difference falls inside the tolerance.
// The bound is inclusive.
func (m Matcher) Within(delta time.Duration) bool {
	return delta <= m.tolerance()
}

// TakeoffDelta returns the absolute difference between two "HH:MM" times on
// the same day. ok is false when either value does not parse.
func TakeoffDelta(a, b string) (time.Duration, bool) {
	ta, err := time.Parse(clockLayout, a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse(clockLayout, b)
	if err != nil {
		return 0, false
	}
	d := ta.Sub(tb)
	if d < 0 {
		d = -d
	}
	return d, true
}

// FindUnmatched uses DefaultTolerance.
func FindUnmatched(primary, reference []entity.FlightRecord) []entity.FlightRecord {
	return Matcher{}.FindUnmatched(primary, reference)
}

// FlightsMatch uses DefaultTolerance.
func FlightsMatch(a, b entity.FlightRecord, tow bool) bool {
	return Matcher{}.Match(a, b, tow)
}
