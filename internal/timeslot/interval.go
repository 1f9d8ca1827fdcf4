package timeslot

import "time"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
// Intervals that only touch at an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayBounds returns local midnight of day and the following midnight, both in
// the location of day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// DaysSpanned lists, as "2006-01-02", every local calendar day in loc that
// [start, end) touches. An interval ending exactly at midnight does not touch
// the following day.
func DaysSpanned(start, end time.Time, loc *time.Location) []string {
	if !start.Before(end) {
		return nil
	}

	var out []string
	day, _ := DayBounds(start.In(loc))
	for day.Before(end) {
		out = append(out, day.Format(DateLayout))
		_, day = DayBounds(day)
	}

	return out
}
