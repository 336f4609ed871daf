// Package tokens mints, validates, rotates and invalidates the two token
// families the API relies on: single-use purpose-scoped action tokens
// (email verification, password reset) and JWT access/refresh pairs.
package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"blog-app/internal/domain/apperr"
	"blog-app/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purpose scopes an action token to the flow that may consume it.
type Purpose string

const (
	PurposeEmailVerify   Purpose = "email_verify"
	PurposePasswordReset Purpose = "password_reset"
)

// maxGenerateAttempts bounds collision retries when minting a token string.
// Collisions are astronomically unlikely; hitting the cap signals an entropy
// or storage problem, not bad caller input.
const maxGenerateAttempts = 5

type Manager struct {
	db     *gorm.DB
	secret []byte

	// now is read once per operation so a single call never compares a token
	// against two different clock values.
	now func() time.Time
}

func NewManager(db *gorm.DB, secret string) *Manager {
	return &Manager{
		db:     db,
		secret: []byte(secret),
		now:    time.Now,
	}
}

func randomTokenString() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// IssueActionToken mints a token for (userID, purpose). If a row for the pair
// already exists it is overwritten in place (new token, fresh timestamps,
// used reset), so at most one active token exists per pair and the table
// never grows past one row per (user, purpose).
func (m *Manager) IssueActionToken(userID uint, purpose Purpose, lifetime Lifetime) (*users.ActionToken, error) {
	token, err := m.uniqueActionTokenString()
	if err != nil {
		return nil, err
	}

	now := m.now()
	expiresAt := now.Add(lifetime.Duration())

	var existing users.ActionToken
	err = m.db.Where("user_id = ? AND purpose = ?", userID, string(purpose)).First(&existing).Error
	switch {
	case err == nil:
		existing.Token = token
		existing.ExpiresAt = expiresAt
		existing.CreatedAt = now
		existing.Used = false
		if err := m.db.Model(&existing).Select("token", "expires_at", "created_at", "used").Updates(&existing).Error; err != nil {
			return nil, apperr.ErrOperationFailed
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := users.ActionToken{
			UserID:    userID,
			Purpose:   string(purpose),
			Token:     token,
			ExpiresAt: expiresAt,
			CreatedAt: now,
			Used:      false,
		}
		if err := m.db.Create(&row).Error; err != nil {
			return nil, apperr.ErrOperationFailed
		}
		return &row, nil
	default:
		return nil, apperr.ErrOperationFailed
	}
}

// ValidateActionToken looks a token up by (token, purpose). Missing, already
// used and past-expiry all collapse into ErrInvalidToken so the response does
// not reveal which condition failed. With consume=true the token is marked
// used (and stays in the table) before being returned.
func (m *Manager) ValidateActionToken(token string, purpose Purpose, consume bool) (*users.ActionToken, error) {
	var row users.ActionToken
	err := m.db.Where("token = ? AND purpose = ?", token, string(purpose)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, apperr.ErrOperationFailed
	}

	now := m.now()
	if row.Used || !now.Before(row.ExpiresAt) {
		return nil, apperr.ErrInvalidToken
	}

	if consume {
		row.Used = true
		if err := m.db.Model(&row).Update("used", true).Error; err != nil {
			return nil, apperr.ErrOperationFailed
		}
	}

	return &row, nil
}

// IssueAccessToken produces a signed, time-boxed bearer credential. Nothing
// is persisted; verification is by signature and expiry alone.
func (m *Manager) IssueAccessToken(user users.User, ttl time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     m.now().Add(ttl).Unix(),
	})
	return t.SignedString(m.secret)
}

// IssueRefreshToken signs a refresh JWT carrying a random jti claim and
// persists it. The freshly generated string is checked against every stored
// refresh token and regenerated on collision, up to maxGenerateAttempts.
func (m *Manager) IssueRefreshToken(userID uint, lifetime Lifetime) (*users.RefreshToken, error) {
	now := m.now()
	expiresAt := now.Add(lifetime.Duration())

	token, err := m.uniqueRefreshTokenString(userID, expiresAt)
	if err != nil {
		return nil, err
	}

	row := users.RefreshToken{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := m.db.Create(&row).Error; err != nil {
		return nil, apperr.ErrOperationFailed
	}
	return &row, nil
}

// RotateRefreshToken replaces the row's token string and timestamps in place.
// The row identity (and owning user) is preserved, so the table holds one row
// per session lineage no matter how many times the session refreshes.
func (m *Manager) RotateRefreshToken(row *users.RefreshToken, lifetime Lifetime) error {
	now := m.now()
	expiresAt := now.Add(lifetime.Duration())

	token, err := m.uniqueRefreshTokenString(row.UserID, expiresAt)
	if err != nil {
		return err
	}

	row.Token = token
	row.CreatedAt = now
	row.ExpiresAt = expiresAt
	row.RevokedAt = nil
	if err := m.db.Model(row).Updates(map[string]interface{}{
		"token":      token,
		"created_at": now,
		"expires_at": expiresAt,
		"revoked_at": nil,
	}).Error; err != nil {
		return apperr.ErrOperationFailed
	}
	return nil
}

// ValidateRefreshToken looks a refresh token up by exact string and rejects
// anything revoked or expired with the same undifferentiated error used for
// unknown tokens.
func (m *Manager) ValidateRefreshToken(token string) (*users.RefreshToken, error) {
	var row users.RefreshToken
	err := m.db.Where("token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, apperr.ErrOperationFailed
	}

	if !row.Active(m.now()) {
		return nil, apperr.ErrInvalidToken
	}
	return &row, nil
}

// RevokeRefreshToken stamps the row's revocation time (logout).
func (m *Manager) RevokeRefreshToken(row *users.RefreshToken) error {
	now := m.now()
	row.RevokedAt = &now
	if err := m.db.Model(row).Update("revoked_at", now).Error; err != nil {
		return apperr.ErrOperationFailed
	}
	return nil
}

func (m *Manager) uniqueActionTokenString() (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		token := randomTokenString()

		var count int64
		if err := m.db.Model(&users.ActionToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
			return "", apperr.ErrOperationFailed
		}
		if count == 0 {
			return token, nil
		}
	}
	return "", apperr.ErrGenerateUniqueTokenFailed
}

func (m *Manager) uniqueRefreshTokenString(userID uint, expiresAt time.Time) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID,
			"jti":     uuid.NewString(),
			"exp":     expiresAt.Unix(),
		})
		token, err := t.SignedString(m.secret)
		if err != nil {
			return "", apperr.ErrOperationFailed
		}

		var count int64
		if err := m.db.Model(&users.RefreshToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
			return "", apperr.ErrOperationFailed
		}
		if count == 0 {
			return token, nil
		}
	}
	return "", apperr.ErrGenerateUniqueTokenFailed
}
