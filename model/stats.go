package model

type TaskStats struct {
	// Basic counts
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`

	// Category based counts
	ByCategory map[Category]int `json:"by_category"`

	// Time based counts
	Overdue  int `json:"overdue"`
	DueToday int `json:"due_today"`
	Upcoming int `json:"upcoming"` // Deadline in next 7 days

	// Gamification
	XPEarnedToday int `json:"xp_earned_today"`
	XPAvailable   int `json:"xp_available"`
	BestStreak    int `json:"best_streak"`
	Recurring     int `json:"recurring"`
}
