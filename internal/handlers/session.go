package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "wordraffle_session"
	sessionKey    = "sessionID"
)

// SessionMiddleware gives every browser its own form session, identified by
// a random cookie value.
func (h *HTTPHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		// MaxAge 0 keeps it a browser-session cookie.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the session set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
