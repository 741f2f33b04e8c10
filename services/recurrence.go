package services

import (
	"time"

	"main/model"
)

// Recurrence evaluation is deterministic and side-effect-free: the same rule,
// candidate date and occurrence count always yield the same answer. It backs
// both the server-side generation in ResetDay and next-occurrence previews.

// IsDue reports whether an occurrence of the rule falls on candidate, given
// the first occurrence date and how many occurrences exist so far.
func IsDue(rule model.RecurrenceRule, candidate, seriesStart time.Time, occurrences int) bool {
	candidate = truncateToDay(candidate)
	seriesStart = truncateToDay(seriesStart)

	// The originating instance is always due, interval math aside.
	if candidate.Equal(seriesStart) {
		return true
	}
	if candidate.Before(seriesStart) {
		return false
	}
	if !rule.Enabled {
		return false
	}
	if HasEnded(rule, candidate, occurrences) {
		return false
	}

	interval := rule.Pattern.Interval
	if interval < 1 {
		return false
	}

	switch rule.Pattern.Type {
	case model.RecurrenceDaily:
		return daysBetween(seriesStart, candidate)%interval == 0

	case model.RecurrenceWeekly:
		// Weeks are 7-day blocks anchored at the series start.
		week := daysBetween(seriesStart, candidate) / 7
		if week%interval != 0 {
			return false
		}
		if len(rule.Pattern.DaysOfWeek) == 0 {
			// Empty set: every day of the interval week is due.
			return true
		}
		return rule.Pattern.ContainsWeekday(candidate.Weekday())

	case model.RecurrenceMonthly:
		months := monthsBetween(seriesStart, candidate)
		if months <= 0 || months%interval != 0 {
			return false
		}
		return candidate.Day() == clampDayOfMonth(seriesStart.Day(), candidate)

	case model.RecurrenceYearly:
		years := candidate.Year() - seriesStart.Year()
		if years <= 0 || years%interval != 0 {
			return false
		}
		if candidate.Month() != seriesStart.Month() {
			return false
		}
		return candidate.Day() == clampDayOfMonth(seriesStart.Day(), candidate)

	default:
		return false
	}
}

// HasEnded reports whether the series can generate no further occurrences at
// candidate. When both bounds are set the series ends at whichever is reached
// first.
func HasEnded(rule model.RecurrenceRule, candidate time.Time, occurrences int) bool {
	p := rule.Pattern
	if !p.EndDate.IsZero() && truncateToDay(candidate).After(truncateToDay(p.EndDate)) {
		return true
	}
	if p.MaxOccurrences > 0 && occurrences >= p.MaxOccurrences {
		return true
	}
	return false
}

// NextDue returns the next due date strictly after from, scanning day by day
// up to the given horizon. Returns the zero time when nothing is due within
// the horizon or the series has ended.
func NextDue(rule model.RecurrenceRule, from, seriesStart time.Time, occurrences, horizonDays int) time.Time {
	day := truncateToDay(from)
	for i := 0; i < horizonDays; i++ {
		day = day.AddDate(0, 0, 1)
		if HasEnded(rule, day, occurrences) {
			return time.Time{}
		}
		if IsDue(rule, day, seriesStart, occurrences) {
			return day
		}
	}
	return time.Time{}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(start, end time.Time) int {
	// Both inputs are already midnight-local; Round absorbs DST days that are
	// not exactly 24h long.
	return int(end.Sub(start).Round(24*time.Hour) / (24 * time.Hour))
}

func monthsBetween(start, end time.Time) int {
	y1, m1, _ := start.Date()
	y2, m2, _ := end.Date()
	return (y2-y1)*12 + int(m2) - int(m1)
}

// clampDayOfMonth lands a month step on the anchor's day-of-month, clamped to
// the last valid day when the target month is shorter.
func clampDayOfMonth(anchorDay int, target time.Time) int {
	last := daysInMonth(target.Year(), target.Month())
	if anchorDay > last {
		return last
	}
	return anchorDay
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
