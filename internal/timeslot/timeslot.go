// Package timeslot converts wall-clock time into timetable coordinates and
// carries the advisory start-time table for the ten teaching periods.
package timeslot

import (
	"strings"
	"time"

	"co2watch/internal/models"
)

// CurrentSlot returns the three-letter lowercase weekday ("mon".."sun") and
// the wall-clock hour (0..23) of the given instant. No timezone conversion
// happens here; the timestamp's own location is used.
//
// Note that the hour returned is the clock hour, not a teaching-period index.
// The timetable nevertheless stores period ordinals 1..10 and the lookup
// compares the two directly, so in practice only lessons whose period number
// happens to equal the clock hour are ever found. This mirrors the original
// system's behavior and is kept deliberately.
func CurrentSlot(now time.Time) (day string, hour int) {
	day = strings.ToLower(now.Weekday().String()[:3])
	return day, now.Hour()
}

// startTimes maps period index 1..10 to its scheduled start of lesson.
var startTimes = [models.HoursPerDay + 1]struct{ Hour, Minute int }{
	1:  {8, 15},
	2:  {9, 0},
	3:  {9, 45},
	4:  {10, 45},
	5:  {11, 45},
	6:  {12, 30},
	7:  {13, 15},
	8:  {14, 0},
	9:  {14, 45},
	10: {15, 30},
}

// SlotStartTime returns the wall-clock start of the given teaching period.
// Indices outside 1..10 report ok=false. The table is display metadata for
// timetable editing; the check itself never consults it.
func SlotStartTime(idx int) (hour, minute int, ok bool) {
	if idx < 1 || idx > models.HoursPerDay {
		return 0, 0, false
	}
	st := startTimes[idx]
	return st.Hour, st.Minute, true
}
