package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

// TaskStore is the operation contract the board and reset orchestrator
// consume. *TasksService is the authoritative implementation; tests use
// fakes.
type TaskStore interface {
	ListTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]*model.Task, error)
	ResetDay(ctx context.Context, userID string) ([]*model.Task, error)
	CompleteTask(ctx context.Context, userID, taskID string) (int, error)
	UncompleteTask(ctx context.Context, userID, taskID string) error
}

type TasksService struct {
	repo *repository.TasksRepo
}

func NewTasksService(repo *repository.TasksRepo) *TasksService {
	return &TasksService{repo: repo}
}

// ListTasks returns the user's active tasks narrowed by the filter.
func (svc *TasksService) ListTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var results []*model.Task
	for _, task := range tasks {
		if !matchesView(task, filter.View, now) {
			continue
		}
		if filter.Category != "" && task.Category != filter.Category {
			continue
		}
		if !filter.From.IsZero() && !task.Deadline.IsZero() && task.Deadline.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !task.Deadline.IsZero() && task.Deadline.After(filter.To) {
			continue
		}
		if filter.Search != "" && !matchesSearch(task, filter.Search) {
			continue
		}
		results = append(results, task)
	}

	sortTasks(results, filter.SortBy)
	return results, nil
}

// CreateTask validates and persists a new task. Malformed recurrence rules
// are rejected here, before anything is persisted.
func (svc *TasksService) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(task.Title) == "" {
		return errors.New("task title is required")
	}
	if task.Category == "" {
		task.Category = model.CategoryCustom
	}
	if !model.ValidCategory(task.Category) {
		return fmt.Errorf("invalid category %q", task.Category)
	}
	if task.XPReward <= 0 {
		return errors.New("xp reward must be positive")
	}

	now := time.Now()
	if task.SeriesStart.IsZero() {
		task.SeriesStart = now
	}

	if err := validateRecurrence(task.Recurrence, task.SeriesStart); err != nil {
		return err
	}

	if task.TaskID == "" {
		task.TaskID = utils.GenerateTaskID()
	}
	task.IsActive = true
	task.CompletedToday = false
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	if err := svc.repo.CreateTask(ctx, task); err != nil {
		return err
	}

	utils.TrackTaskOperation("create")
	return nil
}

// UpdateTask merges the provided fields into an existing task.
func (svc *TasksService) UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) (*model.Task, error) {
	existing, err := svc.repo.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTaskNotFound
	}

	if updates.Title != "" {
		existing.Title = updates.Title
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if updates.Category != "" {
		if !model.ValidCategory(updates.Category) {
			return nil, fmt.Errorf("invalid category %q", updates.Category)
		}
		existing.Category = updates.Category
	}
	if updates.XPReward > 0 {
		existing.XPReward = updates.XPReward
	}
	if !updates.Deadline.IsZero() {
		existing.Deadline = updates.Deadline
	}
	if updates.Recurrence != nil {
		// Rules are replaced wholesale, never merged field by field.
		if err := validateRecurrence(updates.Recurrence, existing.SeriesStart); err != nil {
			return nil, err
		}
		existing.Recurrence = updates.Recurrence
	}

	if err := svc.repo.UpdateTask(ctx, taskID, userID, existing); err != nil {
		return nil, err
	}

	utils.TrackTaskOperation("update")
	return existing, nil
}

// DeleteTask removes a task.
func (svc *TasksService) DeleteTask(ctx context.Context, taskID, userID string) error {
	existing, err := svc.repo.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrTaskNotFound
	}

	if err := svc.repo.DeleteTask(ctx, taskID, userID); err != nil {
		return err
	}

	utils.TrackTaskOperation("delete")
	return nil
}

// DeactivateTask retires a task; generated history persists.
func (svc *TasksService) DeactivateTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	existing, err := svc.repo.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTaskNotFound
	}

	existing.IsActive = false
	if err := svc.repo.UpdateTask(ctx, taskID, userID, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// CompleteTask marks a pending task completed and returns the XP earned.
// Fails with ErrTaskAlreadyComplete / ErrTaskInactive without side effects.
func (svc *TasksService) CompleteTask(ctx context.Context, userID, taskID string) (int, error) {
	existing, err := svc.repo.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, ErrTaskNotFound
	}
	if !existing.IsActive {
		return 0, ErrTaskInactive
	}
	if existing.CompletedToday {
		return 0, ErrTaskAlreadyComplete
	}

	now := time.Now()
	existing.CurrentStreak++
	if existing.CurrentStreak > existing.LongestStreak {
		existing.LongestStreak = existing.CurrentStreak
	}
	existing.TotalCompletions++
	existing.LastCompletedAt = now

	matched, err := svc.repo.MarkComplete(ctx, taskID, userID, existing)
	if err != nil {
		return 0, err
	}
	if !matched {
		// Completed elsewhere between our read and write.
		return 0, ErrTaskAlreadyComplete
	}

	utils.TrackTaskOperation("complete")
	return existing.XPReward, nil
}

// UncompleteTask moves a completed task back to pending, reverting counters.
func (svc *TasksService) UncompleteTask(ctx context.Context, userID, taskID string) error {
	existing, err := svc.repo.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrTaskNotFound
	}
	if !existing.CompletedToday {
		return ErrTaskNotComplete
	}

	if existing.CurrentStreak > 0 {
		existing.CurrentStreak--
	}
	if existing.TotalCompletions > 0 {
		existing.TotalCompletions--
	}

	matched, err := svc.repo.MarkUncomplete(ctx, taskID, userID, existing)
	if err != nil {
		return err
	}
	if !matched {
		return ErrTaskNotComplete
	}

	utils.TrackTaskOperation("uncomplete")
	return nil
}

// ResetDay rolls every task of the user into the new day: completion flags
// are cleared, missed streaks are broken, and recurring tasks lazily
// materialize today's occurrence. Idempotent; a second call on the same day
// changes nothing. Returns the currently-due task set.
func (svc *TasksService) ResetDay(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var due []*model.Task
	for _, task := range tasks {
		changed := svc.rollTask(task, today)
		if changed {
			if err := svc.repo.UpdateTask(ctx, task.TaskID, userID, task); err != nil {
				return nil, err
			}
		}
		if taskDueOn(task, today) {
			due = append(due, task)
		}
	}

	sortTasks(due, model.SortByCreated)
	return due, nil
}

// rollTask applies day-rollover bookkeeping to one task in memory and
// reports whether it changed.
func (svc *TasksService) rollTask(task *model.Task, today time.Time) bool {
	changed := false

	if task.CompletedToday {
		// The day this flag referred to has passed.
		task.CompletedToday = false
		changed = true
	}

	rule := task.Recurrence
	if rule == nil || !rule.Enabled {
		return changed
	}

	// Break the streak when the most recent due day before today went
	// uncompleted.
	if task.CurrentStreak > 0 {
		if prev, ok := previousDueDay(*rule, task.SeriesStart, today, task.OccurrenceCount); ok {
			lastDone := model.LocalDay(task.LastCompletedAt)
			if task.LastCompletedAt.IsZero() || lastDone < model.LocalDay(prev) {
				task.CurrentStreak = 0
				changed = true
			}
		}
	}

	// Lazily materialize today's occurrence, at most once per day.
	if model.LocalDay(task.LastOccurrenceAt) != model.LocalDay(today) &&
		!services.HasEnded(*rule, today, task.OccurrenceCount) &&
		services.IsDue(*rule, today, task.SeriesStart, task.OccurrenceCount) {
		task.OccurrenceCount++
		task.LastOccurrenceAt = today
		changed = true
	}

	return changed
}

// GetTaskStats aggregates the user's task counters.
func (svc *TasksService) GetTaskStats(ctx context.Context, userID string) (*model.TaskStats, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.TaskStats{
		ByCategory: make(map[model.Category]int),
	}

	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	weekAhead := now.AddDate(0, 0, 7)

	for _, task := range tasks {
		stats.Total++
		stats.ByCategory[task.Category]++

		if task.CompletedToday {
			stats.Completed++
			stats.XPEarnedToday += task.XPReward
		} else {
			stats.Pending++
			stats.XPAvailable += task.XPReward
		}

		if task.LongestStreak > stats.BestStreak {
			stats.BestStreak = task.LongestStreak
		}
		if task.Recurrence != nil && task.Recurrence.Enabled {
			stats.Recurring++
		}

		if !task.CompletedToday && !task.Deadline.IsZero() {
			switch {
			case task.Deadline.Before(now):
				stats.Overdue++
			case task.Deadline.Before(endOfDay):
				stats.DueToday++
			case task.Deadline.Before(weekAhead):
				stats.Upcoming++
			}
		}
	}

	return stats, nil
}

// helpers

func matchesView(task *model.Task, view model.TaskView, now time.Time) bool {
	switch view {
	case "", model.ViewAll:
		return true
	case model.ViewToday:
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return taskDueOn(task, today)
	case model.ViewUpcoming:
		return !task.CompletedToday && !task.Deadline.IsZero() && task.Deadline.After(now)
	case model.ViewOverdue:
		return !task.CompletedToday && !task.Deadline.IsZero() && task.Deadline.Before(now)
	case model.ViewCompleted:
		return task.CompletedToday
	default:
		return true
	}
}

func matchesSearch(task *model.Task, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(task.Title), search) ||
		strings.Contains(strings.ToLower(task.Description), search)
}

func sortTasks(tasks []*model.Task, sortBy model.TaskSort) {
	sort.SliceStable(tasks, func(i, j int) bool {
		switch sortBy {
		case model.SortByDeadline:
			if tasks[i].Deadline.IsZero() != tasks[j].Deadline.IsZero() {
				return !tasks[i].Deadline.IsZero() // Tasks with deadlines first
			}
			return tasks[i].Deadline.Before(tasks[j].Deadline)
		case model.SortByXP:
			return tasks[i].XPReward > tasks[j].XPReward
		case model.SortByTitle:
			return strings.ToLower(tasks[i].Title) < strings.ToLower(tasks[j].Title)
		default:
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
	})
}

// taskDueOn decides whether a task belongs on the board for the given day.
// One-shot tasks stay visible while active; recurring tasks appear on their
// due days.
func taskDueOn(task *model.Task, day time.Time) bool {
	if !task.IsActive {
		return false
	}
	rule := task.Recurrence
	if rule == nil || !rule.Enabled {
		return true
	}
	// An occurrence already materialized for this day stays visible even when
	// it was the series' last one and the count has reached its cap.
	if !task.LastOccurrenceAt.IsZero() && model.LocalDay(task.LastOccurrenceAt) == model.LocalDay(day) {
		return true
	}
	return services.IsDue(*rule, day, task.SeriesStart, task.OccurrenceCount)
}

// previousDueDay scans backward from the day before `day` for the most
// recent due day, bounded to a year.
func previousDueDay(rule model.RecurrenceRule, seriesStart, day time.Time, occurrences int) (time.Time, bool) {
	d := day
	for i := 0; i < 366; i++ {
		d = d.AddDate(0, 0, -1)
		if d.Before(seriesStart) {
			return time.Time{}, false
		}
		if services.IsDue(rule, d, seriesStart, occurrences) {
			return d, true
		}
	}
	return time.Time{}, false
}

func validateRecurrence(rule *model.RecurrenceRule, seriesStart time.Time) error {
	if rule == nil {
		return nil
	}

	p := rule.Pattern
	if !model.ValidRecurrenceType(p.Type) {
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidRecurrence, p.Type)
	}
	if p.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1", ErrInvalidRecurrence)
	}
	for _, name := range p.DaysOfWeek {
		if !model.ValidWeekdayName(name) {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidRecurrence, name)
		}
	}
	if len(p.DaysOfWeek) > 0 && p.Type != model.RecurrenceWeekly {
		return fmt.Errorf("%w: days of week apply to weekly rules only", ErrInvalidRecurrence)
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(seriesStart) {
		return fmt.Errorf("%w: end date before series start", ErrInvalidRecurrence)
	}
	if p.MaxOccurrences < 0 {
		return fmt.Errorf("%w: max occurrences cannot be negative", ErrInvalidRecurrence)
	}

	return nil
}
