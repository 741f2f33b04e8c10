package services

import (
	"testing"
	"time"
)

func TestUntilNextMidnight(t *testing.T) {
	t.Run("noon leaves twelve hours", func(t *testing.T) {
		now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
		c := UntilNextMidnight(now)

		if c.Remaining != 12*time.Hour {
			t.Errorf("remaining = %v, want 12h", c.Remaining)
		}
		if c.Hours != 12 || c.Minutes != 0 || c.Seconds != 0 || c.Days != 0 {
			t.Errorf("components = %dd %dh %dm %ds", c.Days, c.Hours, c.Minutes, c.Seconds)
		}
		if c.ElapsedFraction != 0.5 {
			t.Errorf("elapsed fraction = %v, want 0.5", c.ElapsedFraction)
		}
	})

	t.Run("elapsed fraction is monotonic over the day", func(t *testing.T) {
		base := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
		prev := -1.0
		for h := 0; h < 24; h++ {
			c := UntilNextMidnight(base.Add(time.Duration(h) * time.Hour))
			if c.ElapsedFraction < prev {
				t.Fatalf("fraction decreased at hour %d: %v < %v", h, c.ElapsedFraction, prev)
			}
			if c.ElapsedFraction < 0 || c.ElapsedFraction > 1 {
				t.Fatalf("fraction out of range at hour %d: %v", h, c.ElapsedFraction)
			}
			prev = c.ElapsedFraction
		}
	})

	t.Run("last second of the day", func(t *testing.T) {
		now := time.Date(2026, time.March, 2, 23, 59, 59, 0, time.UTC)
		c := UntilNextMidnight(now)
		if c.Remaining != time.Second {
			t.Errorf("remaining = %v, want 1s", c.Remaining)
		}
	})
}

func TestUntilDeadline(t *testing.T) {
	windowStart := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	deadline := windowStart.Add(4 * time.Hour)

	t.Run("halfway through the window", func(t *testing.T) {
		c := UntilDeadline(windowStart.Add(2*time.Hour), windowStart, deadline)
		if c.Remaining != 2*time.Hour {
			t.Errorf("remaining = %v, want 2h", c.Remaining)
		}
		if c.ElapsedFraction != 0.5 {
			t.Errorf("elapsed fraction = %v, want 0.5", c.ElapsedFraction)
		}
	})

	t.Run("past deadline clamps to zero remaining and full fraction", func(t *testing.T) {
		c := UntilDeadline(deadline.Add(time.Hour), windowStart, deadline)
		if c.Remaining != 0 {
			t.Errorf("remaining = %v, want 0", c.Remaining)
		}
		if c.ElapsedFraction != 1 {
			t.Errorf("elapsed fraction = %v, want 1", c.ElapsedFraction)
		}
	})

	t.Run("before window start clamps fraction to zero", func(t *testing.T) {
		c := UntilDeadline(windowStart.Add(-time.Hour), windowStart, deadline)
		if c.ElapsedFraction != 0 {
			t.Errorf("elapsed fraction = %v, want 0", c.ElapsedFraction)
		}
	})

	t.Run("empty window reports complete", func(t *testing.T) {
		c := UntilDeadline(windowStart, windowStart, windowStart)
		if c.ElapsedFraction != 1 {
			t.Errorf("elapsed fraction = %v, want 1", c.ElapsedFraction)
		}
	})
}

func TestCountdownString(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{"full components", 26*time.Hour + 3*time.Minute + 4*time.Second, "1d 2h 3m 4s"},
		{"no days", 2*time.Hour + 30*time.Minute, "2h 30m 0s"},
		{"minutes only", 5*time.Minute + 9*time.Second, "5m 9s"},
		{"seconds only", 42 * time.Second, "42s"},
		{"zero", 0, "0s"},
		{"zero middle component kept", 24*time.Hour + 5*time.Second, "1d 0h 0m 5s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCountdown(tc.remaining, 0)
			if got := c.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
