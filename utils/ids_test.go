package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestGeneratedIDs(t *testing.T) {
	for name, gen := range map[string]func() string{
		"user":    GenerateUserID,
		"task":    GenerateTaskID,
		"session": GenerateSessionID,
	} {
		t.Run(name, func(t *testing.T) {
			id := gen()
			if _, err := uuid.Parse(id); err != nil {
				t.Errorf("%s ID %q is not a UUID: %v", name, id, err)
			}
			if gen() == id {
				t.Errorf("%s IDs should be unique", name)
			}
		})
	}
}
