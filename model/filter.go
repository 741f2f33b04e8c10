package model

import "time"

type TaskView string

const (
	ViewAll       TaskView = "all"
	ViewToday     TaskView = "today"
	ViewUpcoming  TaskView = "upcoming"
	ViewOverdue   TaskView = "overdue"
	ViewCompleted TaskView = "completed"
)

type TaskSort string

const (
	SortByDeadline TaskSort = "deadline"
	SortByXP       TaskSort = "xp"
	SortByCreated  TaskSort = "created"
	SortByTitle    TaskSort = "title"
)

// TaskFilter narrows a task list read. Zero values mean "no constraint".
type TaskFilter struct {
	View     TaskView
	Category Category
	From     time.Time
	To       time.Time
	Search   string
	SortBy   TaskSort
}

func ValidTaskView(v TaskView) bool {
	switch v {
	case ViewAll, ViewToday, ViewUpcoming, ViewOverdue, ViewCompleted:
		return true
	default:
		return false
	}
}
