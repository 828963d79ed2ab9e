package sessions

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// parseHour reads an hour argument like "18", "18.30" or "2.0". The
// fractional digits are minutes on a two-digit 0-99 scale: ".30" means 30
// minutes, not 30% of an hour. "24" is accepted as an alias for midnight.
func parseHour(raw string) (hour, minute int, numeric float64, err error) {
	raw = strings.TrimSpace(raw)
	numeric, err = strconv.ParseFloat(raw, 64)
	if err != nil || numeric < 0 || numeric > 24 {
		return 0, 0, 0, ErrInvalidDate
	}
	if numeric == 24 {
		// Some people type "24" for midnight instead of "0". The alias
		// applies to the numeric value as well, so the midnight-span
		// comparison below sees 0, not 24.
		return 0, 0, 0, nil
	}
	frac := numeric - math.Trunc(numeric)
	hour = int(numeric)
	minute = int(math.Round(frac * 100))
	if minute > 59 {
		return 0, 0, 0, ErrInvalidDate
	}
	return hour, minute, numeric, nil
}

// SessionDates derives concrete start/end timestamps from the day-of-month
// and hour fragments of a /create command:
//
//   - timestamps are built in the current year/month at the given day;
//   - if that day already passed this month, both shift one month forward;
//   - if the end hour is numerically below the start hour the session spans
//     midnight and the end shifts 24h forward.
//
// The derived end is always strictly after the start.
func SessionDates(now time.Time, day int, startHour, endHour string) (time.Time, time.Time, error) {
	if day < 1 || day > 31 {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}

	sh, sm, startNum, err := parseHour(startHour)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, endNum, err := parseHour(endHour)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	month := now.Month()
	year := now.Year()
	start := time.Date(year, month, day, sh, sm, 0, 0, now.Location())
	end := time.Date(year, month, day, eh, em, 0, 0, now.Location())

	// Day already passed this month: the user means next month.
	if now.Day() > day {
		start = time.Date(year, month+1, day, sh, sm, 0, 0, now.Location())
		end = time.Date(year, month+1, day, eh, em, 0, 0, now.Location())
	}

	// time.Date normalizes days the target month does not have (31 April
	// becomes 1 May); that is a typo, not a session date.
	if start.Day() != day {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}

	// End hour below start hour: the session lasts until the next day.
	if endNum < startNum {
		end = end.Add(24 * time.Hour)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return start, end, nil
}
