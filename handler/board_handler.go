package handler

import (
	"errors"
	"time"

	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards *usecase.BoardManager
}

func NewBoardHandler(boards *usecase.BoardManager) *BoardHandler {
	return &BoardHandler{boards: boards}
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	session, err := h.boards.EnsureFresh(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to load board")
		return
	}

	utils.Success(c, dto.ToBoardResponse(
		session.Board.Pending(),
		session.Board.Completed(),
		session.Orchestrator.Status(),
		time.Now(),
	))
}

func (h *BoardHandler) Transition(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		TaskID string       `json:"task_id" binding:"required"`
		Target model.Bucket `json:"target" binding:"required,oneof=pending completed"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.boards.EnsureFresh(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to load board")
		return
	}

	xp, err := session.Board.ApplyTransition(c.Request.Context(), req.TaskID, req.Target)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			utils.NotFound(c, "Task not found on board")
		case errors.Is(err, usecase.ErrTransitionInFlight):
			utils.Conflict(c, "Task transition already in progress")
		case usecase.IsStaleState(err):
			utils.Conflict(c, "Board state was stale, refresh and retry")
		default:
			utils.InternalError(c, "Failed to apply transition")
		}
		return
	}

	task, _ := session.Board.Task(req.TaskID)
	resp := gin.H{"xp_awarded": xp}
	if task != nil {
		resp["task"] = dto.ToTaskResponse(task, time.Now())
	}
	utils.Success(c, resp)
}

func (h *BoardHandler) ManualReset(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	session := h.boards.Session(userID.(string))
	outcome, err := session.Orchestrator.TriggerManualReset(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "Reset failed: "+err.Error())
		return
	}

	if err := session.Board.Load(c.Request.Context()); err != nil {
		utils.InternalError(c, "Reset succeeded but board reload failed")
		return
	}

	utils.Success(c, outcome)
}

func (h *BoardHandler) GetCountdown(c *gin.Context) {
	utils.Success(c, dto.ToCountdownResponse(services.UntilNextMidnight(time.Now())))
}
