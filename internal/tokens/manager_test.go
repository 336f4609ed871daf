package tokens

import (
	"testing"
	"time"

	"blog-app/internal/domain/apperr"
	"blog-app/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &users.ActionToken{}, &users.RefreshToken{}))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) users.User {
	t.Helper()
	user := users.User{
		Name:     "Ada",
		Lastname: "Lovelace",
		Email:    "ada@example.com",
		Role:     users.RoleAuthor,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestIssueActionTokenUpsertsPerUserAndPurpose(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	first, err := m.IssueActionToken(user.ID, PurposeEmailVerify, Lifetime{1, Hours})
	require.NoError(t, err)

	second, err := m.IssueActionToken(user.ID, PurposeEmailVerify, Lifetime{1, Hours})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&users.ActionToken{}).
		Where("user_id = ? AND purpose = ?", user.ID, string(PurposeEmailVerify)).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// the overwritten token is no longer valid, the fresh one is
	_, err = m.ValidateActionToken(first.Token, PurposeEmailVerify, false)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	got, err := m.ValidateActionToken(second.Token, PurposeEmailVerify, false)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
}

func TestIssueActionTokenSeparatePurposesCoexist(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	_, err := m.IssueActionToken(user.ID, PurposeEmailVerify, Lifetime{1, Hours})
	require.NoError(t, err)
	_, err = m.IssueActionToken(user.ID, PurposePasswordReset, Lifetime{1, Hours})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&users.ActionToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestValidateActionTokenExpiry(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	row, err := m.IssueActionToken(user.ID, PurposePasswordReset, Lifetime{1, Hours})
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = m.ValidateActionToken(row.Token, PurposePasswordReset, false)
	assert.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = m.ValidateActionToken(row.Token, PurposePasswordReset, false)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestValidateActionTokenConsumesExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	row, err := m.IssueActionToken(user.ID, PurposeEmailVerify, Lifetime{24, Hours})
	require.NoError(t, err)

	got, err := m.ValidateActionToken(row.Token, PurposeEmailVerify, true)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	_, err = m.ValidateActionToken(row.Token, PurposeEmailVerify, true)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	// consumed rows are retained, not deleted
	var count int64
	require.NoError(t, db.Model(&users.ActionToken{}).Where("token = ?", row.Token).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestValidateActionTokenWrongPurpose(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	row, err := m.IssueActionToken(user.ID, PurposeEmailVerify, Lifetime{24, Hours})
	require.NoError(t, err)

	_, err = m.ValidateActionToken(row.Token, PurposePasswordReset, false)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestIssueAccessTokenClaims(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	tokenString, err := m.IssueAccessToken(user, 15*time.Minute)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, users.RoleAuthor, claims["role"])
}

func TestRefreshTokenRotationKeepsRowIdentity(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	row, err := m.IssueRefreshToken(user.ID, Lifetime{7, Days})
	require.NoError(t, err)
	oldToken := row.Token
	oldID := row.ID

	require.NoError(t, m.RotateRefreshToken(row, Lifetime{7, Days}))

	assert.Equal(t, oldID, row.ID)
	assert.Equal(t, user.ID, row.UserID)
	assert.NotEqual(t, oldToken, row.Token)

	// old string is gone, table did not grow
	_, err = m.ValidateRefreshToken(oldToken)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	got, err := m.ValidateRefreshToken(row.Token)
	require.NoError(t, err)
	assert.Equal(t, oldID, got.ID)

	var count int64
	require.NoError(t, db.Model(&users.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestValidateRefreshTokenRevoked(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	row, err := m.IssueRefreshToken(user.ID, Lifetime{7, Days})
	require.NoError(t, err)

	require.NoError(t, m.RevokeRefreshToken(row))

	_, err = m.ValidateRefreshToken(row.Token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	m := NewManager(db, "test-secret")

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	row, err := m.IssueRefreshToken(user.ID, Lifetime{30, Minutes})
	require.NoError(t, err)

	// expiry is inclusive: now >= expiresAt means expired
	m.now = func() time.Time { return issuedAt.Add(30 * time.Minute) }
	_, err = m.ValidateRefreshToken(row.Token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestValidateRefreshTokenUnknown(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db, "test-secret")

	_, err := m.ValidateRefreshToken("never-issued")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestLifetimeDurationIsExact(t *testing.T) {
	tests := []struct {
		lifetime Lifetime
		want     time.Duration
	}{
		{Lifetime{90, Seconds}, 90 * time.Second},
		{Lifetime{61, Minutes}, 61 * time.Minute},
		{Lifetime{1, Hours}, time.Hour},
		{Lifetime{2, Days}, 48 * time.Hour},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.lifetime.Duration())
	}
}

func TestParseUnit(t *testing.T) {
	for _, valid := range []string{"seconds", "minutes", "hours", "days"} {
		u, err := ParseUnit(valid)
		require.NoError(t, err)
		assert.Equal(t, Unit(valid), u)
	}

	_, err := ParseUnit("fortnights")
	assert.Error(t, err)
}
