// Package interval provides the date-range arithmetic shared by the
// workload calculator and the timeline builder. All inputs are date-only
// values; no timezone handling beyond whole days.
package interval

import "time"

// FarFuture stands in for a missing end date on open-ended assignments.
// It only has to be later than any real project date.
var FarFuture = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] intersect,
// inclusive on both ends.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Clamp restricts [start, end] to [windowStart, windowEnd]. Callers must
// check Overlaps first: clamping a disjoint interval inverts it.
func Clamp(start, end, windowStart, windowEnd time.Time) (time.Time, time.Time) {
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	return start, end
}

// Days is the whole-day distance from start to end. Used for proportional
// layout only.
func Days(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}

// EndOrFarFuture resolves an optional end date to the open-end sentinel.
func EndOrFarFuture(end *time.Time) time.Time {
	if end == nil {
		return FarFuture
	}
	return *end
}
