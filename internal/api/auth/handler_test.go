package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-app/config"
	"blog-app/database"
	routes "blog-app/internal/app/http"
	"blog-app/internal/domain/content"
	"blog-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JWT_SECRET = "test-secret"
	config.FRONTEND_URL = "http://localhost:5173"
	config.APP_BASE_URL = "http://localhost:8080"
	config.ACCESS_TOKEN_TTL_MIN = 15
	config.REFRESH_TOKEN_TTL_AMOUNT = 7
	config.REFRESH_TOKEN_TTL_UNIT = "days"
	config.VERIFY_TOKEN_TTL_AMOUNT = 24
	config.VERIFY_TOKEN_TTL_UNIT = "hours"
	config.RESET_TOKEN_TTL_AMOUNT = 1
	config.RESET_TOKEN_TTL_UNIT = "hours"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{}, &users.ActionToken{}, &users.RefreshToken{},
		&content.Theme{}, &content.Tag{}, &content.Post{}, &content.Comment{}, &content.Like{},
	))
	database.DB = db

	r := gin.New()
	routes.RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterVerifyLoginRefreshLogoutFlow(t *testing.T) {
	r := setupApp(t)

	// register
	w := doJSON(r, http.MethodPost, "/register", gin.H{
		"name":     "Ada",
		"lastname": "Lovelace",
		"email":    "ada@example.com",
		"password": "secret1234",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// login before verification is refused
	w = doJSON(r, http.MethodPost, "/login", gin.H{
		"email":    "ada@example.com",
		"password": "secret1234",
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// pull the verification token straight from storage
	var token users.ActionToken
	require.NoError(t, database.DB.Where("purpose = ?", "email_verify").First(&token).Error)

	w = doJSON(r, http.MethodGet, "/verify?token="+token.Token, nil, nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)

	// verifying twice fails: the token was consumed
	w = doJSON(r, http.MethodGet, "/verify?token="+token.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// login now works and returns a pair
	w = doJSON(r, http.MethodPost, "/login", gin.H{
		"email":    "ada@example.com",
		"password": "secret1234",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pair := decode(t, w)
	access := pair["access_token"].(string)
	refresh := pair["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	// access token opens authenticated routes
	w = doJSON(r, http.MethodGet, "/me", nil, map[string]string{"Authorization": "Bearer " + access})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode(t, w)
	assert.Equal(t, "ada@example.com", me["email"])

	// refresh rotates: a new pair comes back, the old refresh token dies
	w = doJSON(r, http.MethodPost, "/refresh", gin.H{"refresh_token": refresh}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rotated := decode(t, w)
	newRefresh := rotated["refresh_token"].(string)
	assert.NotEqual(t, refresh, newRefresh)

	w = doJSON(r, http.MethodPost, "/refresh", gin.H{"refresh_token": refresh}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logout revokes; the token can no longer refresh
	w = doJSON(r, http.MethodPost, "/logout", gin.H{"refresh_token": newRefresh},
		map[string]string{"Authorization": "Bearer " + access})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/refresh", gin.H{"refresh_token": newRefresh}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	r := setupApp(t)

	w := doJSON(r, http.MethodPost, "/register", gin.H{
		"name":     "Grace",
		"lastname": "Hopper",
		"email":    "grace@example.com",
		"password": "oldpass123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, database.DB.Model(&users.User{}).
		Where("email = ?", "grace@example.com").
		Update("is_verified", true).Error)

	// requesting a reset never reveals whether the account exists
	w = doJSON(r, http.MethodPost, "/request-password-reset", gin.H{"email": "nobody@example.com"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/request-password-reset", gin.H{"email": "grace@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var token users.ActionToken
	require.NoError(t, database.DB.Where("purpose = ?", "password_reset").First(&token).Error)

	w = doJSON(r, http.MethodPost, "/reset-password", gin.H{
		"token":        token.Token,
		"new_password": "newpass123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// old password refused, new one works
	w = doJSON(r, http.MethodPost, "/login", gin.H{"email": "grace@example.com", "password": "oldpass123"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/login", gin.H{"email": "grace@example.com", "password": "newpass123"}, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the reset token is single-use
	w = doJSON(r, http.MethodPost, "/reset-password", gin.H{
		"token":        token.Token,
		"new_password": "another123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResendVerificationReplacesToken(t *testing.T) {
	r := setupApp(t)

	w := doJSON(r, http.MethodPost, "/register", gin.H{
		"name":     "Alan",
		"lastname": "Turing",
		"email":    "alan@example.com",
		"password": "enigma123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var first users.ActionToken
	require.NoError(t, database.DB.Where("purpose = ?", "email_verify").First(&first).Error)

	w = doJSON(r, http.MethodPost, "/resend-verification", gin.H{"email": "alan@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// still exactly one row for (user, purpose); old token invalid
	var count int64
	require.NoError(t, database.DB.Model(&users.ActionToken{}).
		Where("user_id = ? AND purpose = ?", first.UserID, "email_verify").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = doJSON(r, http.MethodGet, "/verify?token="+first.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var second users.ActionToken
	require.NoError(t, database.DB.Where("purpose = ?", "email_verify").First(&second).Error)
	w = doJSON(r, http.MethodGet, "/verify?token="+second.Token, nil, nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	r := setupApp(t)

	w := doJSON(r, http.MethodPost, "/register", gin.H{
		"name":     "Weak",
		"lastname": "Password",
		"email":    "weak@example.com",
		"password": "short1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
