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
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("SESSIONS_COLLECTION")
	return &SessionRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		utils.TrackError("database", "nil_session")
		return errors.New("session cannot be nil")
	}
	if session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return errors.New("invalid session data: missing required fields")
	}

	_, err := r.MongoCollection.InsertOne(ctx, session)
	if err != nil {
		utils.TrackError("database", "session_creation_failed")
		return err
	}
	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find_one", "sessions")
	defer timer.ObserveDuration()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// EndSession deactivates one session.
func (r *SessionRepo) EndSession(ctx context.Context, sessionID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"is_active":        false,
			"last_activity_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update)
	if err != nil {
		utils.TrackError("database", "session_end_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("session not found")
	}
	return nil
}

// TouchSession bumps the session's last activity timestamp.
func (r *SessionRepo) TouchSession(ctx context.Context, sessionID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "is_active": true},
		bson.M{"$set": bson.M{"last_activity_at": time.Now()}})
	return err
}

// EndUserSessions deactivates every session of the user (account switch).
func (r *SessionRepo) EndUserSessions(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update_many", "sessions")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"is_active":        false,
			"last_activity_at": time.Now(),
		},
	}

	_, err := r.MongoCollection.UpdateMany(ctx, bson.M{"user_id": userID, "is_active": true}, update)
	if err != nil {
		utils.TrackError("database", "session_end_all_failed")
	}
	return err
}

// DeleteExpiredSessions removes sessions past their expiry. Run by the
// maintenance scheduler.
func (r *SessionRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	timer := utils.TrackDBOperation("delete_many", "sessions")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now()},
	})
	if err != nil {
		utils.TrackError("database", "session_cleanup_failed")
		return 0, err
	}
	return result.DeletedCount, nil
}
