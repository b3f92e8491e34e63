package services

import (
	"errors"
	"time"

	"avcoe-site/internal/config"
	"avcoe-site/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// LoginOutcome is the result class of a single login attempt.
type LoginOutcome int

const (
	LoginSuccess LoginOutcome = iota
	LoginInvalid
	LoginLocked
)

// LoginResult carries the outcome of AttemptLogin. BlockedUntil is set
// for LoginLocked and for LoginInvalid attempts that just triggered a
// lockout (NowLocked).
type LoginResult struct {
	Outcome      LoginOutcome
	BlockedUntil time.Time
	NowLocked    bool
	User         *models.AdminUser
}

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// SeedAdmins upserts the configured admin allow-list. Passwords are
// hashed on every boot so a changed config password takes effect.
func (s *AuthService) SeedAdmins() error {
	for _, a := range s.cfg.Admins {
		hash, err := s.HashPassword(a.Password)
		if err != nil {
			return err
		}

		var user models.AdminUser
		err = models.DB.Where("username = ?", a.Username).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.AdminUser{Username: a.Username, PasswordHash: hash}
			if err := models.DB.Create(&user).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			user.PasswordHash = hash
			if err := models.DB.Save(&user).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// Authenticate verifies credentials and returns the admin user
func (s *AuthService) Authenticate(username, password string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := models.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// AttemptLogin runs one pass of the fingerprint throttle around a
// credential check. While a lockout is active the credentials are not
// consulted and the record is not touched. The failed count is only
// reset by a successful login, never by lockout expiry, so a failure
// right after expiry can re-lock immediately.
func (s *AuthService) AttemptLogin(fingerprint, username, password string, now time.Time) (*LoginResult, error) {
	var rec models.LoginAttempt
	err := models.DB.Where("fingerprint = ?", fingerprint).First(&rec).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	found := err == nil

	if found && rec.BlockedUntil != nil && now.Before(*rec.BlockedUntil) {
		return &LoginResult{Outcome: LoginLocked, BlockedUntil: *rec.BlockedUntil}, nil
	}

	user, err := s.Authenticate(username, password)
	if err != nil && !errors.Is(err, ErrInvalidCredentials) {
		return nil, err
	}

	if !found {
		rec = models.LoginAttempt{Fingerprint: fingerprint}
	}

	if user != nil {
		rec.FailedCount = 0
		rec.BlockedUntil = nil
		if err := models.DB.Save(&rec).Error; err != nil {
			return nil, err
		}
		return &LoginResult{Outcome: LoginSuccess, User: user}, nil
	}

	rec.FailedCount++
	result := &LoginResult{Outcome: LoginInvalid}
	if rec.FailedCount >= s.cfg.Security.Login.MaxFailures {
		until := now.Add(s.cfg.LockoutDuration())
		rec.BlockedUntil = &until
		result.BlockedUntil = until
		result.NowLocked = true
	}

	if err := models.DB.Save(&rec).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// LockoutStatus reports whether a fingerprint is currently blocked and
// until when.
func (s *AuthService) LockoutStatus(fingerprint string, now time.Time) (bool, time.Time, error) {
	var rec models.LoginAttempt
	err := models.DB.Where("fingerprint = ?", fingerprint).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, err
	}

	if rec.BlockedUntil != nil && now.Before(*rec.BlockedUntil) {
		return true, *rec.BlockedUntil, nil
	}
	return false, time.Time{}, nil
}

// IssueSession creates a signed session token for the admin and records
// it server-side.
func (s *AuthService) IssueSession(user *models.AdminUser) (string, time.Time, error) {
	expiresIn, err := time.ParseDuration(s.cfg.Session.ExpiresIn)
	if err != nil {
		expiresIn = 24 * time.Hour
	}
	expiresAt := time.Now().Add(expiresIn)

	claims := jwt.MapClaims{
		"sub": user.Username,
		"jti": uuid.NewString(),
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
		"iss": s.cfg.Session.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Session.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &models.Session{
		AdminUserID: user.ID,
		Token:       tokenString,
		ExpiresAt:   expiresAt,
	}
	if err := models.DB.Create(session).Error; err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// GetSession retrieves an unexpired session by token, verifying the
// token signature first.
func (s *AuthService) GetSession(token string) (*models.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Session.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrSessionNotFound
	}

	var session models.Session
	if err := models.DB.Where("token = ? AND expires_at > ?", token, time.Now()).Preload("User").First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// DeleteSession deletes a session
func (s *AuthService) DeleteSession(token string) error {
	return models.DB.Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteExpiredSessions removes expired sessions
func (s *AuthService) DeleteExpiredSessions() error {
	return models.DB.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}

// SweepStaleAttempts deletes throttle records that have seen no activity
// within the retention window and are not currently blocked.
func (s *AuthService) SweepStaleAttempts(now time.Time) (int64, error) {
	cutoff := now.Add(-s.cfg.AttemptRetention())
	res := models.DB.
		Where("updated_at < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, now).
		Delete(&models.LoginAttempt{})
	return res.RowsAffected, res.Error
}
