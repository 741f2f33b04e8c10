package services

import (
	"testing"
	"time"

	"main/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rule(t model.RecurrenceType, interval int) model.RecurrenceRule {
	return model.RecurrenceRule{
		Enabled: true,
		Pattern: model.RecurrencePattern{Type: t, Interval: interval},
	}
}

func TestIsDueDaily(t *testing.T) {
	start := day(2026, time.March, 2) // a Monday

	t.Run("interval one is due every day", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		for i := 0; i < 10; i++ {
			candidate := start.AddDate(0, 0, i)
			if !IsDue(r, candidate, start, i) {
				t.Errorf("day %d should be due", i)
			}
		}
	})

	t.Run("interval two alternates", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 2)
		for i := 0; i < 6; i++ {
			candidate := start.AddDate(0, 0, i)
			want := i%2 == 0
			if got := IsDue(r, candidate, start, i); got != want {
				t.Errorf("day %d: got %v, want %v", i, got, want)
			}
		}
	})

	t.Run("before series start never due", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		if IsDue(r, start.AddDate(0, 0, -1), start, 0) {
			t.Error("day before start should not be due")
		}
	})

	t.Run("start date due even when disabled", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		r.Enabled = false
		if !IsDue(r, start, start, 0) {
			t.Error("series start itself should always be due")
		}
		if IsDue(r, start.AddDate(0, 0, 1), start, 1) {
			t.Error("disabled rule should generate nothing past the start")
		}
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		late := time.Date(2026, time.March, 4, 23, 59, 0, 0, time.UTC)
		if !IsDue(r, late, start, 2) {
			t.Error("candidate at 23:59 should match its calendar day")
		}
	})
}

func TestIsDueWeekly(t *testing.T) {
	start := day(2026, time.March, 2) // Monday

	t.Run("empty weekday set covers every day of the week", func(t *testing.T) {
		r := rule(model.RecurrenceWeekly, 1)
		for i := 0; i < 14; i++ {
			if !IsDue(r, start.AddDate(0, 0, i), start, i) {
				t.Errorf("day offset %d should be due with empty weekday set", i)
			}
		}
	})

	t.Run("weekday set restricts within the week", func(t *testing.T) {
		r := rule(model.RecurrenceWeekly, 1)
		r.Pattern.DaysOfWeek = []string{"monday", "wednesday"}

		if !IsDue(r, start, start, 0) {
			t.Error("Monday should be due")
		}
		if IsDue(r, start.AddDate(0, 0, 1), start, 0) {
			t.Error("Tuesday should not be due")
		}
		if !IsDue(r, start.AddDate(0, 0, 2), start, 1) {
			t.Error("Wednesday should be due")
		}
	})

	t.Run("interval two skips alternate weeks", func(t *testing.T) {
		r := rule(model.RecurrenceWeekly, 2)
		r.Pattern.DaysOfWeek = []string{"monday"}

		if IsDue(r, start.AddDate(0, 0, 7), start, 1) {
			t.Error("Monday of week 1 should be skipped")
		}
		if !IsDue(r, start.AddDate(0, 0, 14), start, 1) {
			t.Error("Monday of week 2 should be due")
		}
	})
}

func TestIsDueMonthly(t *testing.T) {
	t.Run("same day each month", func(t *testing.T) {
		start := day(2026, time.January, 15)
		r := rule(model.RecurrenceMonthly, 1)

		if !IsDue(r, day(2026, time.February, 15), start, 1) {
			t.Error("Feb 15 should be due")
		}
		if IsDue(r, day(2026, time.February, 14), start, 1) {
			t.Error("Feb 14 should not be due")
		}
	})

	t.Run("31st clamps to short months", func(t *testing.T) {
		start := day(2026, time.January, 31)
		r := rule(model.RecurrenceMonthly, 1)

		if !IsDue(r, day(2026, time.February, 28), start, 1) {
			t.Error("Feb 28 should carry the Jan 31 anchor in a non-leap year")
		}
		if IsDue(r, day(2026, time.February, 27), start, 1) {
			t.Error("Feb 27 should not be due")
		}
		if !IsDue(r, day(2026, time.March, 31), start, 2) {
			t.Error("Mar 31 should be due again")
		}
	})

	t.Run("interval three", func(t *testing.T) {
		start := day(2026, time.January, 10)
		r := rule(model.RecurrenceMonthly, 3)

		if IsDue(r, day(2026, time.February, 10), start, 1) {
			t.Error("one month later should be skipped")
		}
		if !IsDue(r, day(2026, time.April, 10), start, 1) {
			t.Error("three months later should be due")
		}
	})
}

func TestIsDueYearly(t *testing.T) {
	start := day(2024, time.February, 29) // leap day anchor
	r := rule(model.RecurrenceYearly, 1)

	if !IsDue(r, day(2025, time.February, 28), start, 1) {
		t.Error("leap-day anchor should clamp to Feb 28 in a common year")
	}
	if !IsDue(r, day(2028, time.February, 29), start, 2) {
		t.Error("leap-day anchor should land on Feb 29 in a leap year")
	}
	if IsDue(r, day(2025, time.March, 1), start, 1) {
		t.Error("Mar 1 should not be due")
	}
}

func TestHasEnded(t *testing.T) {
	start := day(2026, time.March, 2)

	t.Run("end date bound", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		r.Pattern.EndDate = day(2026, time.March, 5)

		if HasEnded(r, day(2026, time.March, 5), 3) {
			t.Error("end date itself is still inside the series")
		}
		if !HasEnded(r, day(2026, time.March, 6), 4) {
			t.Error("day after end date should end the series")
		}
		if IsDue(r, day(2026, time.March, 6), start, 4) {
			t.Error("ended series should generate nothing")
		}
	})

	t.Run("max occurrences bound", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		r.Pattern.MaxOccurrences = 3

		if HasEnded(r, day(2026, time.March, 4), 2) {
			t.Error("two occurrences out of three should not end the series")
		}
		if !HasEnded(r, day(2026, time.March, 5), 3) {
			t.Error("reaching max occurrences should end the series")
		}
	})

	t.Run("earlier bound wins", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		r.Pattern.EndDate = day(2026, time.December, 31)
		r.Pattern.MaxOccurrences = 2

		if !HasEnded(r, day(2026, time.March, 4), 2) {
			t.Error("max occurrences should end the series before the end date")
		}
	})
}

func TestNextDue(t *testing.T) {
	start := day(2026, time.March, 2)

	t.Run("daily interval two", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 2)
		next := NextDue(r, start, start, 1, 30)
		if !next.Equal(start.AddDate(0, 0, 2)) {
			t.Errorf("got %v, want %v", next, start.AddDate(0, 0, 2))
		}
	})

	t.Run("ended series returns zero time", func(t *testing.T) {
		r := rule(model.RecurrenceDaily, 1)
		r.Pattern.MaxOccurrences = 1
		next := NextDue(r, start, start, 1, 30)
		if !next.IsZero() {
			t.Errorf("got %v, want zero time", next)
		}
	})

	t.Run("nothing within horizon returns zero time", func(t *testing.T) {
		r := rule(model.RecurrenceMonthly, 1)
		next := NextDue(r, start, start, 1, 5)
		if !next.IsZero() {
			t.Errorf("got %v, want zero time", next)
		}
	})
}
