package services

import (
	"context"
	"os"
	"testing"
	"time"

	"main/model"

	"github.com/google/uuid"
)

func setupDayMarkerStore(t *testing.T) *DayMarkerStore {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	store, err := NewDayMarkerStore(redisURL)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDayMarkerStore(t *testing.T) {
	store := setupDayMarkerStore(t)
	ctx := context.Background()
	userID := uuid.New().String()
	t.Cleanup(func() { store.Clear(context.Background(), userID) })

	t.Run("missing marker needs reset", func(t *testing.T) {
		needs, err := store.NeedsReset(ctx, userID)
		if err != nil {
			t.Fatalf("NeedsReset: %v", err)
		}
		if !needs {
			t.Error("absent marker should need a reset")
		}
	})

	t.Run("today's marker needs no reset", func(t *testing.T) {
		today := model.LocalDay(time.Now())
		if err := store.MarkResetDone(ctx, userID, today); err != nil {
			t.Fatalf("MarkResetDone: %v", err)
		}

		needs, err := store.NeedsReset(ctx, userID)
		if err != nil {
			t.Fatalf("NeedsReset: %v", err)
		}
		if needs {
			t.Error("marker from today should not need a reset")
		}
	})

	t.Run("repeated checks are stable within a day", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			needs, err := store.NeedsReset(ctx, userID)
			if err != nil {
				t.Fatalf("NeedsReset: %v", err)
			}
			if needs {
				t.Fatalf("check %d flipped to needing a reset", i)
			}
		}
	})

	t.Run("stale marker needs reset", func(t *testing.T) {
		yesterday := model.LocalDay(time.Now().AddDate(0, 0, -1))
		if err := store.MarkResetDone(ctx, userID, yesterday); err != nil {
			t.Fatalf("MarkResetDone: %v", err)
		}

		needs, err := store.NeedsReset(ctx, userID)
		if err != nil {
			t.Fatalf("NeedsReset: %v", err)
		}
		if !needs {
			t.Error("marker from yesterday should need a reset")
		}
	})

	t.Run("get round trip", func(t *testing.T) {
		day := model.LocalDay(time.Now())
		if err := store.MarkResetDone(ctx, userID, day); err != nil {
			t.Fatalf("MarkResetDone: %v", err)
		}

		marker, err := store.Get(ctx, userID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if marker == nil {
			t.Fatal("marker should exist")
		}
		if marker.UserID != userID || marker.Date != day {
			t.Errorf("marker = %+v", marker)
		}
	})

	t.Run("clear removes the marker", func(t *testing.T) {
		if err := store.Clear(ctx, userID); err != nil {
			t.Fatalf("Clear: %v", err)
		}

		marker, err := store.Get(ctx, userID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if marker != nil {
			t.Errorf("marker should be gone, got %+v", marker)
		}
	})

	t.Run("rejects empty user ID", func(t *testing.T) {
		if _, err := store.NeedsReset(ctx, ""); err == nil {
			t.Error("NeedsReset should reject empty user ID")
		}
		if err := store.MarkResetDone(ctx, "", "2026-03-02"); err == nil {
			t.Error("MarkResetDone should reject empty user ID")
		}
	})

	t.Run("rejects malformed day", func(t *testing.T) {
		if err := store.MarkResetDone(ctx, userID, "03/02/2026"); err == nil {
			t.Error("MarkResetDone should reject a non ISO date")
		}
	})
}
