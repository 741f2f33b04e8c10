package model

import (
	"testing"
	"time"
)

func TestTaskBucket(t *testing.T) {
	task := Task{}
	if task.Bucket() != BucketPending {
		t.Errorf("bucket = %s, want pending", task.Bucket())
	}
	task.CompletedToday = true
	if task.Bucket() != BucketCompleted {
		t.Errorf("bucket = %s, want completed", task.Bucket())
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []Category{CategoryHealth, CategoryProductivity, CategoryLearning, CategoryFitness, CategoryPersonal, CategoryCustom} {
		if !ValidCategory(c) {
			t.Errorf("%s should be valid", c)
		}
	}
	if ValidCategory("snacks") {
		t.Error("unknown category should be invalid")
	}
}

func TestParseWeekday(t *testing.T) {
	wd, ok := ParseWeekday("wednesday")
	if !ok || wd != time.Wednesday {
		t.Errorf("ParseWeekday(wednesday) = %v, %v", wd, ok)
	}
	if _, ok := ParseWeekday("Caturday"); ok {
		t.Error("unknown weekday should not parse")
	}
}

func TestContainsWeekday(t *testing.T) {
	p := RecurrencePattern{DaysOfWeek: []string{"monday", "friday"}}
	if !p.ContainsWeekday(time.Monday) {
		t.Error("monday should be contained")
	}
	if p.ContainsWeekday(time.Sunday) {
		t.Error("sunday should not be contained")
	}
}

func TestLocalDay(t *testing.T) {
	ts := time.Date(2026, time.March, 4, 23, 59, 0, 0, time.UTC)
	if got := LocalDay(ts); got != "2026-03-04" {
		t.Errorf("LocalDay = %q", got)
	}
}
