package model

import "time"

// DayMarkerLayout is the date-only format persisted per user. Comparison is
// string equality on local dates, never timestamp subtraction.
const DayMarkerLayout = "2006-01-02"

type DayMarker struct {
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocalDay collapses a timestamp to its local calendar date string.
func LocalDay(t time.Time) string {
	return t.Format(DayMarkerLayout)
}
