package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

// MarkerCleaner clears a user's day marker; satisfied by
// services.DayMarkerStore. Cleared on logout so a returning user starts with
// a fresh day-boundary check.
type MarkerCleaner interface {
	Clear(ctx context.Context, userID string) error
}

type UsersService struct {
	repo     *repository.UsersRepo
	sessions *repository.SessionRepo
	markers  MarkerCleaner
	boards   *BoardManager
}

func NewUsersService(repo *repository.UsersRepo, sessions *repository.SessionRepo, markers MarkerCleaner, boards *BoardManager) *UsersService {
	return &UsersService{
		repo:     repo,
		sessions: sessions,
		markers:  markers,
		boards:   boards,
	}
}

// Register creates a new account with a hashed password.
func (svc *UsersService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := svc.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateUserID(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	if err := svc.repo.AddUser(ctx, user); err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "register")
	return user, nil
}

// Login verifies credentials, opens a session and issues an access token.
func (svc *UsersService) Login(ctx context.Context, username, password, userAgent, ip string) (string, *model.Session, error) {
	user, err := svc.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !services.ComparePasswords(user.Password, password) {
		utils.TrackAuthAttempt("failure", "login")
		return "", nil, ErrInvalidCredentials
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	session := &model.Session{
		SessionID:      utils.GenerateSessionID(),
		UserID:         user.UserID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(utils.GetEnvAsDuration("SESSION_DURATION", 24*time.Hour)),
		LastActivityAt: now,
		DeviceInfo:     utils.DeviceInfo(userAgent),
		IPAddress:      ip,
		IsActive:       true,
	}

	if err := svc.sessions.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}

	utils.TrackAuthAttempt("success", "login")
	return token, session, nil
}

// Logout ends the session, invalidates the token, clears the day marker and
// drops the in-memory board.
func (svc *UsersService) Logout(ctx context.Context, userID, sessionID, token string) error {
	var firstErr error

	if sessionID != "" {
		if err := svc.sessions.EndSession(ctx, sessionID); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if token != "" {
		if err := services.BlacklistToken(token); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if svc.markers != nil {
		if err := svc.markers.Clear(ctx, userID); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if svc.boards != nil {
		svc.boards.Drop(userID)
	}

	if firstErr != nil {
		utils.TrackAuthAttempt("failure", "logout")
		return errors.New("logout incomplete: " + firstErr.Error())
	}

	utils.TrackAuthAttempt("success", "logout")
	return nil
}
