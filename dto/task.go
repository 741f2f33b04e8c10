package dto

import (
	"time"

	"main/model"
	"main/services"
)

type TaskResponse struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Category         model.Category        `json:"category"`
	XPReward         int                   `json:"xp_reward"`
	Bucket           model.Bucket          `json:"bucket"`
	CompletedToday   bool                  `json:"completed_today"`
	CurrentStreak    int                   `json:"current_streak"`
	LongestStreak    int                   `json:"longest_streak"`
	TotalCompletions int                   `json:"total_completions"`
	Deadline         *time.Time            `json:"deadline,omitempty"`
	TimeUntilDue     string                `json:"time_until_due,omitempty"`
	Recurrence       *model.RecurrenceRule `json:"recurrence,omitempty"`
	NextOccurrence   *time.Time            `json:"next_occurrence,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// Convert model.Task to TaskResponse
func ToTaskResponse(task *model.Task, now time.Time) TaskResponse {
	response := TaskResponse{
		ID:               task.TaskID,
		Title:            task.Title,
		Description:      task.Description,
		Category:         task.Category,
		XPReward:         task.XPReward,
		Bucket:           task.Bucket(),
		CompletedToday:   task.CompletedToday,
		CurrentStreak:    task.CurrentStreak,
		LongestStreak:    task.LongestStreak,
		TotalCompletions: task.TotalCompletions,
		Recurrence:       task.Recurrence,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	// Handle nullable time fields
	if !task.Deadline.IsZero() {
		response.Deadline = &task.Deadline
		if !task.CompletedToday {
			if task.Deadline.Before(now) {
				response.TimeUntilDue = "Overdue"
			} else {
				response.TimeUntilDue = services.UntilDeadline(now, task.CreatedAt, task.Deadline).String()
			}
		}
	}

	if task.Recurrence != nil && task.Recurrence.Enabled {
		next := services.NextDue(*task.Recurrence, now, task.SeriesStart, task.OccurrenceCount, 366)
		if !next.IsZero() {
			response.NextOccurrence = &next
		}
	}

	return response
}

// Convert slice of model.Task to slice of TaskResponse
func ToTaskResponses(tasks []*model.Task, now time.Time) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task, now)
	}
	return responses
}
