package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// DayMarkerStore persists one marker per user: the last local calendar date
// on which a reset was confirmed. Markers survive restarts and are cleared on
// logout or account switch.
type DayMarkerStore struct {
	client *redis.Client
}

var GlobalDayMarkerStore *DayMarkerStore

// NewDayMarkerStore connects to Redis and verifies the connection.
func NewDayMarkerStore(redisURL string) (*DayMarkerStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &DayMarkerStore{client: client}, nil
}

func dayMarkerKey(userID string) string {
	return fmt.Sprintf("day_marker:%s", userID)
}

// NeedsReset compares the persisted marker against today's local date using
// date-only string equality. An absent marker means first run and needs a
// reset. Repeated calls within the same calendar day return the same answer
// until MarkResetDone intervenes.
func (s *DayMarkerStore) NeedsReset(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID cannot be empty")
	}

	marker, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if marker == nil {
		return true, nil
	}

	return marker.Date != model.LocalDay(time.Now()), nil
}

// Get returns the stored marker, or nil on a miss.
func (s *DayMarkerStore) Get(ctx context.Context, userID string) (*model.DayMarker, error) {
	data, err := s.client.Get(ctx, dayMarkerKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day marker: %v", err)
	}

	var marker model.DayMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		// Corrupt marker: treat as unreadable so the caller forces a reset.
		return nil, fmt.Errorf("failed to unmarshal day marker: %v", err)
	}

	return &marker, nil
}

// MarkResetDone overwrites the user's marker with the given local date. Only
// called after the store confirmed a successful reset.
func (s *DayMarkerStore) MarkResetDone(ctx context.Context, userID, day string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	if _, err := time.Parse(model.DayMarkerLayout, day); err != nil {
		return fmt.Errorf("invalid day %q: %v", day, err)
	}

	marker := model.DayMarker{
		UserID:    userID,
		Date:      day,
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("failed to marshal day marker: %v", err)
	}

	if err := s.client.Set(ctx, dayMarkerKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store day marker: %v", err)
	}

	return nil
}

// Clear removes the marker. Called on logout and account switch.
func (s *DayMarkerStore) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	if err := s.client.Del(ctx, dayMarkerKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear day marker: %v", err)
	}
	return nil
}

func (s *DayMarkerStore) IsConnected() bool {
	if s == nil || s.client == nil {
		return false
	}
	return s.client.Ping(context.Background()).Err() == nil
}

// Close closes the Redis connection.
func (s *DayMarkerStore) Close() error {
	return s.client.Close()
}
