package auth

import (
	"net/http"
	"regexp"
	"time"

	"blog-app/config"
	"blog-app/database"
	"blog-app/internal/domain/apperr"
	"blog-app/internal/domain/users"
	"blog-app/internal/identity"
	"blog-app/internal/mailer"
	"blog-app/internal/tokens"

	"github.com/gin-gonic/gin"
)

// Passwords is the hashing capability handlers go through; swappable in tests.
var Passwords identity.Provider = identity.NewBcryptProvider()

func manager() *tokens.Manager {
	return tokens.NewManager(database.DB, config.JWT_SECRET)
}

func verifyLifetime() tokens.Lifetime {
	return tokens.MustLifetime(config.VERIFY_TOKEN_TTL_AMOUNT, config.VERIFY_TOKEN_TTL_UNIT)
}

func resetLifetime() tokens.Lifetime {
	return tokens.MustLifetime(config.RESET_TOKEN_TTL_AMOUNT, config.RESET_TOKEN_TTL_UNIT)
}

func refreshLifetime() tokens.Lifetime {
	return tokens.MustLifetime(config.REFRESH_TOKEN_TTL_AMOUNT, config.REFRESH_TOKEN_TTL_UNIT)
}

func accessTTL() time.Duration {
	return time.Duration(config.ACCESS_TOKEN_TTL_MIN) * time.Minute
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

func issueTokenPair(user users.User) (string, string, error) {
	m := manager()
	access, err := m.IssueAccessToken(user, accessTTL())
	if err != nil {
		return "", "", err
	}
	refresh, err := m.IssueRefreshToken(user.ID, refreshLifetime())
	if err != nil {
		return "", "", err
	}
	return access, refresh.Token, nil
}

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Lastname string `json:"lastname" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}
	if !isEmailValid(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	hashed, err := Passwords.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := users.User{
		Name:         input.Name,
		Lastname:     input.Lastname,
		Email:        input.Email,
		Password:     &hashed,
		AuthProvider: "local",
		Role:         users.RoleUser,
		IsVerified:   false,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	if _, err := users.EnsureBlogSlug(database.DB, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate blog slug"})
		return
	}

	token, err := manager().IssueActionToken(user.ID, tokens.PurposeEmailVerify, verifyLifetime())
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	mailer.Default.Enqueue(mailer.VerificationMessage(user.Email, token.Token))

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully. Please check your email to verify your account."})
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	row, err := manager().ValidateActionToken(token, tokens.PurposeEmailVerify, true)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", row.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, config.FRONTEND_URL+"/signin")
}

func ResendVerification(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid email"})
		return
	}

	var user users.User
	err := database.DB.Where("email = ?", body.Email).First(&user).Error
	if err != nil {
		c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already verified"})
		return
	}

	// Re-issue overwrites the previous row for (user, email_verify).
	token, err := manager().IssueActionToken(user.ID, tokens.PurposeEmailVerify, verifyLifetime())
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	mailer.Default.Enqueue(mailer.VerificationMessage(user.Email, token.Token))

	c.JSON(http.StatusOK, gin.H{"message": "Verification email resent"})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	err := database.DB.Where("email = ?", input.Email).First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsVerified {
		c.JSON(apperr.ErrUnconfirmedEmail.Status, gin.H{"error": apperr.ErrUnconfirmedEmail.Message})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := Passwords.VerifyPassword(*user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	access, refresh, err := issueTokenPair(user)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": refresh})
}

// Refresh exchanges a live refresh token for a new pair. The stored row is
// rotated in place; the old token string stops working immediately.
func Refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing refresh token"})
		return
	}

	m := manager()
	row, err := m.ValidateRefreshToken(body.RefreshToken)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	var user users.User
	if err := database.DB.First(&user, row.UserID).Error; err != nil {
		c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
		return
	}

	if err := m.RotateRefreshToken(row, refreshLifetime()); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	access, err := m.IssueAccessToken(user, accessTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": row.Token})
}

func Logout(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing refresh token"})
		return
	}

	m := manager()
	row, err := m.ValidateRefreshToken(body.RefreshToken)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	if err := m.RevokeRefreshToken(row); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func RequestPasswordReset(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		// Don't expose whether the email exists
		c.JSON(http.StatusOK, gin.H{"message": "If your email exists, you'll receive a reset link."})
		return
	}

	token, err := manager().IssueActionToken(user.ID, tokens.PurposePasswordReset, resetLifetime())
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	mailer.Default.Enqueue(mailer.PasswordResetMessage(user.Email, token.Token))

	c.JSON(http.StatusOK, gin.H{"message": "If your email exists, you'll receive a reset link."})
}

func ResetPassword(c *gin.Context) {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters with letters and numbers"})
		return
	}

	row, err := manager().ValidateActionToken(body.Token, tokens.PurposePasswordReset, true)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	hashed, err := Passwords.HashPassword(body.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := database.DB.Model(&users.User{}).Where("id = ?", row.UserID).Update("password", hashed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters with letters and numbers"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "This account does not have a password. Sign in with Google or set a password first.",
		})
		return
	}

	if err := Passwords.VerifyPassword(*user.Password, body.OldPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashedNew, err := Passwords.HashPassword(body.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := database.DB.Model(&user).Update("password", hashedNew).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
