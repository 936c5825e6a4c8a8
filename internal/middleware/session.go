package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionKey is the gin context key holding the session ID.
	SessionKey = "session_id"

	sessionHeader = "X-Session-ID"
	sessionCookie = "us_session"
)

// Session resolves the caller's session identifier. Order: explicit
// header, then cookie, then a freshly minted UUID which is set as a
// cookie so the browser keeps its ticket table across requests.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)

		if sessionID == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				sessionID = cookie
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookie, sessionID, 0, "/", "", false, true)
		}

		c.Header(sessionHeader, sessionID)
		c.Set(SessionKey, sessionID)
		c.Next()
	}
}

// SessionID reads the session identifier resolved by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
