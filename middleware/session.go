package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/session"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/utils"
)

const sessionCookie = "session_id"

// Session attaches the caller's session to the gin context, minting a new
// one (and its cookie) on first contact.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess := manager.GetOrCreate(id)
		if sess.ID != id {
			// 30 days, httpOnly; secure is left to the deployment's proxy
			c.SetCookie(sessionCookie, sess.ID, 30*24*3600, "/", "", false, true)
		}
		// API clients can authenticate with a bearer token instead of the
		// cookie-bound login flow. A new token invalidates the cached user.
		if token, err := utils.ExtractTokenFromHeader(c.GetHeader("Authorization")); err == nil && token != sess.Token() {
			sess.SetUser(nil)
			sess.SetToken(token)
		}
		c.Set("session", sess)
		c.Next()
	}
}

// GetSession fetches the session placed by the Session middleware.
func GetSession(c *gin.Context) *session.Session {
	if v, exists := c.Get("session"); exists {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
