package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/session"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/storeapi"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/utils"
)

// AdminResolver loads the user behind a session token when it is not cached
// yet; satisfied by *storeapi.Client's Me via a token-bound clone.
type AdminResolver interface {
	Me(sess *session.Session) (*models.User, error)
}

// StoreAPIResolver resolves users through the store API's /auth/me.
type StoreAPIResolver struct {
	API *storeapi.Client
}

func (r *StoreAPIResolver) Me(sess *session.Session) (*models.User, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()
	return r.API.WithToken(sess.Token()).Me(ctx)
}

// IsAdmin decides whether the session belongs to an admin. With JWT_SECRET
// configured the token's role claim is checked locally; otherwise the
// cached user is consulted, falling back to one /auth/me round trip.
func IsAdmin(sess *session.Session, resolver AdminResolver) bool {
	if sess == nil || sess.Token() == "" {
		return false
	}
	if os.Getenv("JWT_SECRET") != "" {
		claims, err := utils.ValidateJWT(sess.Token())
		return err == nil && claims.Role == models.RoleAdmin
	}
	if user := sess.User(); user != nil {
		return user.IsAdmin()
	}
	if resolver == nil {
		return false
	}
	user, err := resolver.Me(sess)
	if err != nil {
		return false
	}
	sess.SetUser(user)
	return user.IsAdmin()
}

// AdminRequired guards the back-office action endpoints. Unauthorized
// callers get 403; view-level navigation to /admin/* is handled separately
// with a silent redirect home.
func AdminRequired(resolver AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if !IsAdmin(sess, resolver) {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
