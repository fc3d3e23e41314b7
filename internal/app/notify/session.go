package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie names the cookie carrying the visitor session id.
	SessionCookie = "skillhub_session"

	sessionKey = "sessionID"
	cookieAge  = 30 * 24 * 60 * 60
)

// EnsureSession returns the visitor's session id, issuing a new cookie when
// the request has none or carries a malformed one.
func EnsureSession(c *gin.Context, secure bool) string {
	if id := SessionID(c); id != "" {
		return id
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		if parsed, err := uuid.Parse(cookie); err == nil {
			id := parsed.String()
			c.Set(sessionKey, id)
			return id
		}
	}

	id := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, cookieAge, "/", "", secure, true)
	c.Set(sessionKey, id)
	return id
}

// SessionID returns the session id resolved earlier in the request, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
