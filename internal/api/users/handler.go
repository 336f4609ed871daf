package users

import (
	"net/http"

	"blog-app/database"
	"blog-app/internal/app/http/httpx"
	"blog-app/internal/domain/apperr"
	"blog-app/internal/domain/content"
	"blog-app/internal/domain/users"
	"blog-app/internal/pagination"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileDTO struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Lastname   string  `json:"lastname"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"is_verified"`
	BlogSlug   *string `json:"blog_slug,omitempty"`
}

// GET /me
func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
		return
	}

	_, _ = users.EnsureBlogSlug(database.DB, &user)

	c.JSON(http.StatusOK, ProfileDTO{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Lastname:   user.Lastname,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		BlogSlug:   user.BlogSlug,
	})
}

// GET /blogs/:slug — public view of one author's blog: profile + their posts,
// paginated and searchable like the main listing.
func GetBlog(c *gin.Context) {
	var user users.User
	if err := database.DB.Where("blog_slug = ?", c.Param("slug")).First(&user).Error; err != nil {
		c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
		return
	}

	params := httpx.PageParams(c)
	params.Filter = func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", user.ID)
	}

	page, err := pagination.GetPage[content.Post](database.DB.Preload("Tags").Preload("Theme"), params)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author": ProfileDTO{
			ID:       user.ID,
			Name:     user.Name,
			Lastname: user.Lastname,
			BlogSlug: user.BlogSlug,
			Role:     user.Role,
		},
		"posts": page,
	})
}
