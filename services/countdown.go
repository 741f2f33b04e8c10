package services

import (
	"fmt"
	"strings"
	"time"
)

const dayMillis = 86_400_000

// Countdown is a pure projection of "now" against a target instant. It holds
// no hidden state, so any periodic tick source can drive it.
type Countdown struct {
	Remaining       time.Duration `json:"-"`
	Days            int           `json:"days"`
	Hours           int           `json:"hours"`
	Minutes         int           `json:"minutes"`
	Seconds         int           `json:"seconds"`
	ElapsedFraction float64       `json:"elapsed_fraction"`
}

// UntilNextMidnight computes time remaining until the next local midnight
// strictly after now, and the elapsed fraction of the current day. The
// fraction is clamped to [0,1] to absorb DST days that are not 24h long.
func UntilNextMidnight(now time.Time) Countdown {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	remaining := next.Sub(now)
	fraction := 1 - float64(remaining.Milliseconds())/float64(dayMillis)
	return newCountdown(remaining, fraction)
}

// UntilDeadline computes time remaining until an arbitrary deadline, with the
// elapsed fraction measured over the window from windowStart to deadline.
func UntilDeadline(now, windowStart, deadline time.Time) Countdown {
	remaining := deadline.Sub(now)
	window := deadline.Sub(windowStart)
	fraction := 1.0
	if window > 0 {
		fraction = 1 - float64(remaining)/float64(window)
	}
	return newCountdown(remaining, fraction)
}

func newCountdown(remaining time.Duration, fraction float64) Countdown {
	if remaining < 0 {
		remaining = 0
	}
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	total := int(remaining.Seconds())
	return Countdown{
		Remaining:       remaining,
		Days:            total / 86400,
		Hours:           total % 86400 / 3600,
		Minutes:         total % 3600 / 60,
		Seconds:         total % 60,
		ElapsedFraction: fraction,
	}
}

// String renders the countdown at a magnitude-appropriate precision: the days
// component is omitted when zero, hours when days and hours are both zero,
// and so on down to seconds.
func (c Countdown) String() string {
	var b strings.Builder
	if c.Days > 0 {
		fmt.Fprintf(&b, "%dd ", c.Days)
	}
	if c.Hours > 0 || c.Days > 0 {
		fmt.Fprintf(&b, "%dh ", c.Hours)
	}
	if c.Minutes > 0 || c.Hours > 0 || c.Days > 0 {
		fmt.Fprintf(&b, "%dm ", c.Minutes)
	}
	fmt.Fprintf(&b, "%ds", c.Seconds)
	return b.String()
}
