package handler

import (
	"context"
	"errors"
	"time"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// TaskService is the slice of *usecase.TasksService the handlers consume.
type TaskService interface {
	ListTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
	DeactivateTask(ctx context.Context, taskID, userID string) (*model.Task, error)
	CompleteTask(ctx context.Context, userID, taskID string) (int, error)
	UncompleteTask(ctx context.Context, userID, taskID string) error
	ResetDay(ctx context.Context, userID string) ([]*model.Task, error)
	GetTaskStats(ctx context.Context, userID string) (*model.TaskStats, error)
}

// BoardInvalidator marks a user's live board stale after a task mutation
// that bypassed it. Satisfied by *usecase.BoardManager.
type BoardInvalidator interface {
	InvalidateBoard(userID string)
}

type TasksHandler struct {
	service TaskService
	boards  BoardInvalidator
}

func NewTasksHandler(service TaskService, boards BoardInvalidator) *TasksHandler {
	return &TasksHandler{service: service, boards: boards}
}

func (h *TasksHandler) invalidateBoard(userID string) {
	if h.boards != nil {
		h.boards.InvalidateBoard(userID)
	}
}

func (h *TasksHandler) ListTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	filter := model.TaskFilter{
		View:     model.TaskView(c.DefaultQuery("view", string(model.ViewAll))),
		Category: model.Category(c.Query("category")),
		Search:   c.Query("search"),
		SortBy:   model.TaskSort(c.Query("sort")),
	}

	if !model.ValidTaskView(filter.View) {
		utils.BadRequest(c, "Invalid view")
		return
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.BadRequest(c, "Invalid from date")
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.BadRequest(c, "Invalid to date")
			return
		}
		filter.To = t
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), userID.(string), filter)
	if err != nil {
		utils.InternalError(c, "Failed to list tasks")
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks, time.Now()))
}

func (h *TasksHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Title       string                `json:"title" binding:"required"`
		Description string                `json:"description"`
		Category    model.Category        `json:"category"`
		XPReward    int                   `json:"xp_reward" binding:"required,gt=0"`
		Deadline    time.Time             `json:"deadline"`
		Recurrence  *model.RecurrenceRule `json:"recurrence"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task := &model.Task{
		UserID:      userID.(string),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		XPReward:    req.XPReward,
		Deadline:    req.Deadline,
		Recurrence:  req.Recurrence,
	}

	if err := h.service.CreateTask(c.Request.Context(), task); err != nil {
		if errors.Is(err, usecase.ErrInvalidRecurrence) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.BadRequest(c, "Failed to create task: "+err.Error())
		return
	}

	h.invalidateBoard(userID.(string))
	utils.Created(c, dto.ToTaskResponse(task, time.Now()))
}

func (h *TasksHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}
	taskID := c.Param("id")

	var req struct {
		Title       string                `json:"title"`
		Description string                `json:"description"`
		Category    model.Category        `json:"category"`
		XPReward    int                   `json:"xp_reward"`
		Deadline    time.Time             `json:"deadline"`
		Recurrence  *model.RecurrenceRule `json:"recurrence"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updates := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		XPReward:    req.XPReward,
		Deadline:    req.Deadline,
		Recurrence:  req.Recurrence,
	}

	task, err := h.service.UpdateTask(c.Request.Context(), taskID, userID.(string), updates)
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		if errors.Is(err, usecase.ErrInvalidRecurrence) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "Failed to update task")
		return
	}

	h.invalidateBoard(userID.(string))
	utils.Success(c, dto.ToTaskResponse(task, time.Now()))
}

func (h *TasksHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}
	taskID := c.Param("id")

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, "Failed to delete task")
		return
	}

	h.invalidateBoard(userID.(string))
	utils.Success(c, gin.H{"message": "Task deleted"})
}

func (h *TasksHandler) DeactivateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}
	taskID := c.Param("id")

	task, err := h.service.DeactivateTask(c.Request.Context(), taskID, userID.(string))
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, "Failed to deactivate task")
		return
	}

	h.invalidateBoard(userID.(string))
	utils.Success(c, dto.ToTaskResponse(task, time.Now()))
}

// CompleteTask is the direct, board-less completion path. Any live board is
// invalidated so its next read refetches.
func (h *TasksHandler) CompleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}
	taskID := c.Param("id")

	xp, err := h.service.CompleteTask(c.Request.Context(), userID.(string), taskID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrTaskInactive):
			utils.BadRequest(c, "Task is no longer active")
		case errors.Is(err, usecase.ErrTaskAlreadyComplete):
			utils.Conflict(c, "Task is already completed today")
		default:
			utils.InternalError(c, "Failed to complete task")
		}
		return
	}

	h.invalidateBoard(userID.(string))
	utils.Success(c, gin.H{"xp_awarded": xp})
}

func (h *TasksHandler) UncompleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}
	taskID := c.Param("id")

	if err := h.service.UncompleteTask(c.Request.Context(), userID.(string), taskID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrTaskNotComplete):
			utils.Conflict(c, "Task is not completed today")
		default:
			utils.InternalError(c, "Failed to uncomplete task")
		}
		return
	}

	h.invalidateBoard(userID.(string))
	utils.Success(c, gin.H{"message": "Task moved back to pending"})
}

// ResetDay runs the day rollover directly against the store and returns the
// due set. Idempotent within a calendar day.
func (h *TasksHandler) ResetDay(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	due, err := h.service.ResetDay(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to reset tasks")
		return
	}

	h.invalidateBoard(userID.(string))
	utils.Success(c, dto.ToTaskResponses(due, time.Now()))
}

func (h *TasksHandler) GetStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	stats, err := h.service.GetTaskStats(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to get stats")
		return
	}

	utils.Success(c, stats)
}
