package model

import "time"

type Category string
type Bucket string

const (
	CategoryHealth       Category = "health"
	CategoryProductivity Category = "productivity"
	CategoryLearning     Category = "learning"
	CategoryFitness      Category = "fitness"
	CategoryPersonal     Category = "personal"
	CategoryCustom       Category = "custom"

	BucketPending   Bucket = "pending"
	BucketCompleted Bucket = "completed"
)

type Task struct {
	TaskID           string          `bson:"_id,omitempty" json:"id"`
	UserID           string          `bson:"user_id" json:"user_id"`
	Title            string          `bson:"title" json:"title" binding:"required"`
	Description      string          `bson:"description" json:"description"`
	Category         Category        `bson:"category" json:"category"`
	XPReward         int             `bson:"xp_reward" json:"xp_reward"`
	IsActive         bool            `bson:"is_active" json:"is_active"`
	Deadline         time.Time       `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CompletedToday   bool            `bson:"completed_today" json:"completed_today"`
	CurrentStreak    int             `bson:"current_streak" json:"current_streak"`
	LongestStreak    int             `bson:"longest_streak" json:"longest_streak"`
	TotalCompletions int             `bson:"total_completions" json:"total_completions"`
	Recurrence       *RecurrenceRule `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	SeriesStart      time.Time       `bson:"series_start" json:"series_start"`
	OccurrenceCount  int             `bson:"occurrence_count" json:"occurrence_count"`
	LastOccurrenceAt time.Time       `bson:"last_occurrence_at,omitempty" json:"last_occurrence_at,omitempty"`
	LastCompletedAt  time.Time       `bson:"last_completed_at,omitempty" json:"last_completed_at,omitempty"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updated_at"`
}

// Bucket derives the board bucket from completion state. A task is in exactly
// one bucket at any time.
func (t *Task) Bucket() Bucket {
	if t.CompletedToday {
		return BucketCompleted
	}
	return BucketPending
}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryHealth, CategoryProductivity, CategoryLearning,
		CategoryFitness, CategoryPersonal, CategoryCustom:
		return true
	default:
		return false
	}
}
