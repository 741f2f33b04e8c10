package model

import "time"

type ResetStatus string

const (
	ResetIdle          ResetStatus = "idle"
	ResetChecking      ResetStatus = "checking"
	ResetNoResetNeeded ResetStatus = "no_reset_needed"
	ResetResetting     ResetStatus = "resetting"
	ResetResolved      ResetStatus = "resolved"
	ResetFailed        ResetStatus = "failed"
)

// ResetOutcome reports one pass of the reset orchestrator.
type ResetOutcome struct {
	Status  ResetStatus `json:"status"`
	Day     string      `json:"day,omitempty"`
	Tasks   []*Task     `json:"tasks,omitempty"`
	ResetAt time.Time   `json:"reset_at,omitempty"`
}
