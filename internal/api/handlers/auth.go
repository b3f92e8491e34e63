package handlers

import (
	"time"

	"avcoe-site/internal/config"
	"avcoe-site/internal/logger"
	"avcoe-site/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// lockoutTimeFormat renders the lockout expiry for the login page in the
// server's local time zone.
const lockoutTimeFormat = "2006-01-02 15:04:05 MST"

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

func (h *AuthHandler) fingerprint(c *gin.Context) string {
	return services.DeriveFingerprint(
		c.GetHeader("X-Forwarded-For"),
		c.Request.RemoteAddr,
		c.GetHeader("User-Agent"),
	)
}

// ShowLogin renders the login form, including lockout state for the
// caller's fingerprint.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	locked, until, err := h.authService.LockoutStatus(h.fingerprint(c), time.Now())
	if err != nil {
		logger.L().Error("lockout status lookup failed", zap.Error(err))
	}

	data := gin.H{}
	if locked {
		data["Error"] = "Too many failed attempts. Try again after " + until.Local().Format(lockoutTimeFormat)
	}
	c.HTML(200, "login.html", data)
}

// Login handles the login form submission, gated by the fingerprint
// throttle.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	result, err := h.authService.AttemptLogin(h.fingerprint(c), username, password, time.Now())
	if err != nil {
		c.HTML(500, "login.html", gin.H{"Error": "Login is temporarily unavailable"})
		return
	}

	switch result.Outcome {
	case services.LoginLocked:
		c.HTML(429, "login.html", gin.H{
			"Error": "Too many failed attempts. Try again after " + result.BlockedUntil.Local().Format(lockoutTimeFormat),
		})
	case services.LoginInvalid:
		msg := "Invalid username or password"
		if result.NowLocked {
			msg = "Too many failed attempts. Locked until " + result.BlockedUntil.Local().Format(lockoutTimeFormat)
		}
		c.HTML(401, "login.html", gin.H{"Error": msg})
	case services.LoginSuccess:
		token, expiresAt, err := h.authService.IssueSession(result.User)
		if err != nil {
			c.HTML(500, "login.html", gin.H{"Error": "Failed to create session"})
			return
		}

		maxAge := int(time.Until(expiresAt).Seconds())
		c.SetCookie(h.cfg.Session.Cookie, token, maxAge, "/", "", false, true)

		logger.L().Info("admin login", zap.String("username", result.User.Username))
		c.Redirect(302, "/admin")
	}
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.Cookie); err == nil && token != "" {
		if err := h.authService.DeleteSession(token); err != nil {
			logger.L().Error("failed to delete session", zap.Error(err))
		}
	}

	c.SetCookie(h.cfg.Session.Cookie, "", -1, "/", "", false, true)
	c.Redirect(302, "/admin/login")
}

// AdminPanel renders the admin page. The session middleware has already
// authenticated the caller.
func (h *AuthHandler) AdminPanel(c *gin.Context) {
	c.HTML(200, "admin.html", gin.H{})
}
