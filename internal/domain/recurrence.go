package domain

import (
	"time"

	"github.com/m04kA/UCR-ReservationService/pkg/types"
)

// Occurrence is one concrete calendar occurrence produced by expanding a
// recurring reservation request
type Occurrence struct {
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

// ExpandWeekly expands a (weekday, date range, daily time window) request
// into concrete occurrences, one per matching calendar date, in ascending
// date order.
//
// weekday uses 1=Monday..7=Sunday; matching against time.Weekday
// (0=Sunday..6=Saturday) is done via weekday%7. An inverted range produces
// an empty result, not an error. The daily window is combined with each
// date as-is: window validity (start < end) is the caller's concern, not
// the expander's.
//
// The function is pure: identical inputs always yield the identical
// ordered sequence
func ExpandWeekly(weekday int, rangeStart, rangeEnd time.Time, dailyStart, dailyEnd types.TimeString) ([]Occurrence, error) {
	occurrences := make([]Occurrence, 0)

	startDay := truncateToDay(rangeStart)
	endDay := truncateToDay(rangeEnd)

	for date := startDay; !date.After(endDay); date = date.AddDate(0, 0, 1) {
		if int(date.Weekday()) != weekday%7 {
			continue
		}

		start, err := dailyStart.OnDate(date)
		if err != nil {
			return nil, err
		}
		end, err := dailyEnd.OnDate(date)
		if err != nil {
			return nil, err
		}

		occurrences = append(occurrences, Occurrence{
			Date:      date,
			StartTime: start,
			EndTime:   end,
		})
	}

	return occurrences, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameCalendarDay reports whether two timestamps fall on the same calendar date
func SameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
