package middleware

import (
	"avcoe-site/internal/config"
	"avcoe-site/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware authenticates admin requests from the session
// cookie. Unauthenticated callers are redirected to the login page
// instead of receiving an error.
func SessionMiddleware(authService *services.AuthService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Session.Cookie)
		if err != nil || token == "" {
			c.Redirect(302, "/admin/login")
			c.Abort()
			return
		}

		session, err := authService.GetSession(token)
		if err != nil {
			c.Redirect(302, "/admin/login")
			c.Abort()
			return
		}

		c.Set("user", &session.User)
		c.Set("session", session)

		c.Next()
	}
}
