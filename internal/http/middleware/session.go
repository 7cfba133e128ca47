package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName is the session cookie issued to every browser.
const CookieName = "chatauth_session"

const sessionIDKey = "session_id"

// SessionCookie ensures every request carries an opaque session ID. The
// cookie has no MaxAge, so it lives only as long as the browser session,
// which is also the lifetime of the server-side session record. It is
// HttpOnly and SameSite=Lax; secure should be true everywhere the service
// terminates TLS, i.e. outside local development.
func SessionCookie(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, sessionID, 0, "/", "", secure, true)
		}
		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session ID placed on the context by SessionCookie.
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
