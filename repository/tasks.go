package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

// Constructor function for TasksRepo
func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("TASKS_COLLECTION")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// GetUserTasks retrieves all active tasks for a user
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	filter := bson.M{
		"user_id":   userID,
		"is_active": true,
	}

	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.TrackError("database", "task_list_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTaskByID retrieves a single task owned by the user
func (r *TasksRepo) GetTaskByID(ctx context.Context, userID, taskID string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find_one", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID, // Ensure user owns this task
	}

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask adds a new task
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	if task.UserID == "" {
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, task)
	if err != nil {
		utils.TrackError("database", "task_creation_failed")
		return err
	}
	return nil
}

// UpdateTask replaces the mutable fields of a task
func (r *TasksRepo) UpdateTask(ctx context.Context, taskID, userID string, task *model.Task) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":              task.Title,
			"description":        task.Description,
			"category":           task.Category,
			"xp_reward":          task.XPReward,
			"is_active":          task.IsActive,
			"deadline":           task.Deadline,
			"completed_today":    task.CompletedToday,
			"current_streak":     task.CurrentStreak,
			"longest_streak":     task.LongestStreak,
			"total_completions":  task.TotalCompletions,
			"recurrence":         task.Recurrence,
			"series_start":       task.SeriesStart,
			"occurrence_count":   task.OccurrenceCount,
			"last_occurrence_at": task.LastOccurrenceAt,
			"last_completed_at":  task.LastCompletedAt,
			"updated_at":         time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

// DeleteTask removes a specific task
func (r *TasksRepo) DeleteTask(ctx context.Context, taskID, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "task_delete_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

// MarkComplete flips a pending task to completed with its new counter values.
// The filter guards on completed_today so a concurrent or repeated completion
// matches nothing instead of double-counting.
func (r *TasksRepo) MarkComplete(ctx context.Context, taskID, userID string, task *model.Task) (bool, error) {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":             taskID,
		"user_id":         userID,
		"is_active":       true,
		"completed_today": false,
	}

	update := bson.M{
		"$set": bson.M{
			"completed_today":   true,
			"current_streak":    task.CurrentStreak,
			"longest_streak":    task.LongestStreak,
			"total_completions": task.TotalCompletions,
			"last_completed_at": task.LastCompletedAt,
			"updated_at":        time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_complete_failed")
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// MarkUncomplete flips a completed task back to pending. The filter guards on
// completed_today being true.
func (r *TasksRepo) MarkUncomplete(ctx context.Context, taskID, userID string, task *model.Task) (bool, error) {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":             taskID,
		"user_id":         userID,
		"completed_today": true,
	}

	update := bson.M{
		"$set": bson.M{
			"completed_today":   false,
			"current_streak":    task.CurrentStreak,
			"longest_streak":    task.LongestStreak,
			"total_completions": task.TotalCompletions,
			"updated_at":        time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_uncomplete_failed")
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// ResetCompletedToday clears the completed_today flag on every task of the
// user. Idempotent: a second run on the same day matches nothing.
func (r *TasksRepo) ResetCompletedToday(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("update_many", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":         userID,
		"completed_today": true,
	}

	update := bson.M{
		"$set": bson.M{
			"completed_today": false,
			"updated_at":      time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateMany(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_reset_failed")
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CountUserTasks counts the active tasks for a user
func (r *TasksRepo) CountUserTasks(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":   userID,
		"is_active": true,
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
