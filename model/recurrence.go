package model

import (
	"strings"
	"time"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// RecurrenceRule is an immutable value: edits replace the whole rule rather
// than mutating fields in place.
type RecurrenceRule struct {
	Enabled bool              `bson:"enabled" json:"enabled"`
	Pattern RecurrencePattern `bson:"pattern" json:"pattern"`
}

type RecurrencePattern struct {
	Type           RecurrenceType `bson:"type" json:"type"`
	Interval       int            `bson:"interval" json:"interval"`
	DaysOfWeek     []string       `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"`
	EndDate        time.Time      `bson:"end_date,omitempty" json:"end_date,omitempty"`
	MaxOccurrences int            `bson:"max_occurrences,omitempty" json:"max_occurrences,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ValidRecurrenceType(t RecurrenceType) bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

func ValidWeekdayName(name string) bool {
	_, ok := weekdayNames[strings.ToLower(name)]
	return ok
}

func ParseWeekday(name string) (time.Weekday, bool) {
	day, ok := weekdayNames[strings.ToLower(name)]
	return day, ok
}

// ContainsWeekday reports whether the pattern's weekday set includes day.
// An empty set matches nothing here; callers treat empty as "every day".
func (p RecurrencePattern) ContainsWeekday(day time.Weekday) bool {
	for _, name := range p.DaysOfWeek {
		if parsed, ok := weekdayNames[strings.ToLower(name)]; ok && parsed == day {
			return true
		}
	}
	return false
}
