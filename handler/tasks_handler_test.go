package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/model"
	"main/usecase"

	"github.com/gin-gonic/gin"
)

// fakeTaskService scripts per-call results for the handler endpoints.
type fakeTaskService struct {
	completeXP  int
	completeErr error

	uncompleteErr error

	resetDue []*model.Task
	resetErr error
}

func (f *fakeTaskService) ListTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]*model.Task, error) {
	return nil, nil
}
func (f *fakeTaskService) CreateTask(ctx context.Context, task *model.Task) error { return nil }
func (f *fakeTaskService) UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) (*model.Task, error) {
	return nil, usecase.ErrTaskNotFound
}
func (f *fakeTaskService) DeleteTask(ctx context.Context, taskID, userID string) error { return nil }
func (f *fakeTaskService) DeactivateTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	return nil, usecase.ErrTaskNotFound
}
func (f *fakeTaskService) CompleteTask(ctx context.Context, userID, taskID string) (int, error) {
	return f.completeXP, f.completeErr
}
func (f *fakeTaskService) UncompleteTask(ctx context.Context, userID, taskID string) error {
	return f.uncompleteErr
}
func (f *fakeTaskService) ResetDay(ctx context.Context, userID string) ([]*model.Task, error) {
	return f.resetDue, f.resetErr
}
func (f *fakeTaskService) GetTaskStats(ctx context.Context, userID string) (*model.TaskStats, error) {
	return &model.TaskStats{}, nil
}

type fakeBoardInvalidator struct {
	invalidated []string
}

func (f *fakeBoardInvalidator) InvalidateBoard(userID string) {
	f.invalidated = append(f.invalidated, userID)
}

func tasksTestRouter(service TaskService, boards BoardInvalidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})

	h := NewTasksHandler(service, boards)
	tasks := router.Group("/api/tasks")
	{
		tasks.POST("/:id/complete", h.CompleteTask)
		tasks.POST("/:id/uncomplete", h.UncompleteTask)
		tasks.POST("/reset", h.ResetDay)
	}
	return router
}

func TestCompleteTaskEndpoint(t *testing.T) {
	t.Run("success awards xp and invalidates the board", func(t *testing.T) {
		boards := &fakeBoardInvalidator{}
		router := tasksTestRouter(&fakeTaskService{completeXP: 40}, boards)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/t1/complete", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var body struct {
			Data struct {
				XPAwarded int `json:"xp_awarded"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if body.Data.XPAwarded != 40 {
			t.Errorf("xp_awarded = %d, want 40", body.Data.XPAwarded)
		}
		if len(boards.invalidated) != 1 || boards.invalidated[0] != "user-1" {
			t.Errorf("board invalidations = %v", boards.invalidated)
		}
	})

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown task is 404", usecase.ErrTaskNotFound, http.StatusNotFound},
		{"inactive task is 400", usecase.ErrTaskInactive, http.StatusBadRequest},
		{"already complete is 409", usecase.ErrTaskAlreadyComplete, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			boards := &fakeBoardInvalidator{}
			router := tasksTestRouter(&fakeTaskService{completeErr: tc.err}, boards)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/tasks/t1/complete", nil)
			router.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
			if len(boards.invalidated) != 0 {
				t.Error("failed completion should not invalidate the board")
			}
		})
	}
}

func TestUncompleteTaskEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		boards := &fakeBoardInvalidator{}
		router := tasksTestRouter(&fakeTaskService{}, boards)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/t1/uncomplete", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if len(boards.invalidated) != 1 {
			t.Error("uncompletion should invalidate the board")
		}
	})

	t.Run("not completed today is 409", func(t *testing.T) {
		router := tasksTestRouter(&fakeTaskService{uncompleteErr: usecase.ErrTaskNotComplete}, &fakeBoardInvalidator{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/t1/uncomplete", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", w.Code)
		}
	})
}

func TestResetDayEndpoint(t *testing.T) {
	t.Run("returns the due set", func(t *testing.T) {
		boards := &fakeBoardInvalidator{}
		service := &fakeTaskService{resetDue: []*model.Task{
			{TaskID: "t1", Title: "stretch", IsActive: true},
			{TaskID: "t2", Title: "read", IsActive: true},
		}}
		router := tasksTestRouter(service, boards)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/reset", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var body struct {
			Data []struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if len(body.Data) != 2 {
			t.Errorf("due tasks = %d, want 2", len(body.Data))
		}
		if len(boards.invalidated) != 1 {
			t.Error("reset should invalidate the board")
		}
	})

	t.Run("store failure is 500", func(t *testing.T) {
		boards := &fakeBoardInvalidator{}
		router := tasksTestRouter(&fakeTaskService{resetErr: context.DeadlineExceeded}, boards)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/reset", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
		if len(boards.invalidated) != 0 {
			t.Error("failed reset should not invalidate the board")
		}
	})
}
