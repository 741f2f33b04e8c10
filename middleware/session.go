package middleware

import (
	"time"

	"main/repository"

	"github.com/gin-gonic/gin"
)

// Inactivity window after which a session is no longer refreshed.
const sessionInactivityLimit = 48 * time.Hour

// SessionMiddleware tracks session activity for authenticated requests.
// The session ID is optional; requests without one pass through untouched.
func SessionMiddleware(sessionRepo *repository.SessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.Next()
			return
		}

		session, err := sessionRepo.GetSession(c.Request.Context(), sessionID)
		if err != nil || session == nil || !session.IsActive {
			c.Next()
			return
		}

		if time.Since(session.LastActivityAt) > sessionInactivityLimit ||
			time.Now().After(session.ExpiresAt) {
			sessionRepo.EndSession(c.Request.Context(), sessionID)
			c.Next()
			return
		}

		sessionRepo.TouchSession(c.Request.Context(), sessionID)
		c.Set("session", session)
		c.Next()
	}
}
