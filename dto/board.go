package dto

import (
	"time"

	"main/model"
	"main/services"
)

type CountdownResponse struct {
	Remaining       string  `json:"remaining"`
	Days            int     `json:"days"`
	Hours           int     `json:"hours"`
	Minutes         int     `json:"minutes"`
	Seconds         int     `json:"seconds"`
	ElapsedFraction float64 `json:"elapsed_fraction"`
}

type BoardResponse struct {
	Pending     []TaskResponse    `json:"pending"`
	Completed   []TaskResponse    `json:"completed"`
	ResetStatus model.ResetStatus `json:"reset_status"`
	Countdown   CountdownResponse `json:"countdown"`
}

func ToCountdownResponse(c services.Countdown) CountdownResponse {
	return CountdownResponse{
		Remaining:       c.String(),
		Days:            c.Days,
		Hours:           c.Hours,
		Minutes:         c.Minutes,
		Seconds:         c.Seconds,
		ElapsedFraction: c.ElapsedFraction,
	}
}

func ToBoardResponse(pending, completed []*model.Task, status model.ResetStatus, now time.Time) BoardResponse {
	return BoardResponse{
		Pending:     ToTaskResponses(pending, now),
		Completed:   ToTaskResponses(completed, now),
		ResetStatus: status,
		Countdown:   ToCountdownResponse(services.UntilNextMidnight(now)),
	}
}
