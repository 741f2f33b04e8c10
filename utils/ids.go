package utils

import (
	"github.com/google/uuid"
)

func GenerateUserID() string {
	return uuid.New().String()
}

func GenerateTaskID() string {
	return uuid.New().String()
}

func GenerateSessionID() string {
	return uuid.New().String()
}
