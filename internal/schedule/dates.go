package schedule

import (
	"math"
	"time"

	"github.com/turnoapp/turnos-importer/constants"
)

const isoDate = "2006-01-02"

// DateForDay resolves a bare day-of-month against ref using a recency
// heuristic: late in the month a small day number means next month; a day
// far below today's rolls forward, far above rolls back. No weekday check is
// possible here, so prefer ResolveDate whenever a weekday name is available.
func DateForDay(dayNum int, ref time.Time) time.Time {
	year, m, today := ref.Date()
	month := int(m)
	if today >= 24 && dayNum <= 7 {
		month++
	} else {
		if dayNum < today-14 {
			month++
		}
		if dayNum > today+14 {
			month--
		}
	}
	return time.Date(year, time.Month(month), dayNum, 0, 0, 0, 0, ref.Location())
}

// ResolveDate picks the calendar date for (weekday, dayNum) among day dayNum
// of the previous, current and next month relative to ref. Candidates whose
// day-of-month does not round-trip (day 31 in a 30-day month) are discarded;
// when weekday names a known day the candidate's actual weekday must match.
// Among survivors the one closest in absolute time to ref wins. ok is false
// when no candidate survives; the caller must drop the entry, not guess.
func ResolveDate(weekday string, dayNum int, ref time.Time) (time.Time, bool) {
	if dayNum < 1 || dayNum > 31 {
		return time.Time{}, false
	}
	target, checkWeekday := constants.Weekdays[CleanToken(weekday)]

	var best time.Time
	bestDiff := time.Duration(math.MaxInt64)
	found := false

	for _, offset := range []int{-1, 0, 1} {
		c := time.Date(ref.Year(), ref.Month()+time.Month(offset), dayNum, 0, 0, 0, 0, ref.Location())
		if c.Day() != dayNum {
			continue
		}
		if checkWeekday && c.Weekday() != target {
			continue
		}
		diff := c.Sub(ref)
		if diff < 0 {
			diff = -diff
		}
		if !found || diff < bestDiff {
			best = c
			bestDiff = diff
			found = true
		}
	}
	return best, found
}
