package admin

import (
	"net/http"

	"blog-app/database"
	"blog-app/internal/app/http/httpx"
	"blog-app/internal/domain/apperr"
	"blog-app/internal/domain/content"
	"blog-app/internal/domain/users"
	"blog-app/internal/pagination"

	"github.com/gin-gonic/gin"
)

type Stats struct {
	TotalUsers    int64            `json:"total_users"`
	TotalPosts    int64            `json:"total_posts"`
	TotalComments int64            `json:"total_comments"`
	TotalLikes    int64            `json:"total_likes"`
	PostsPerTheme map[string]int64 `json:"posts_per_theme"`
}

// GET /admin/dashboard
func Dashboard(c *gin.Context) {
	var stats Stats

	database.DB.Model(&users.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&content.Post{}).Count(&stats.TotalPosts)
	database.DB.Model(&content.Comment{}).Count(&stats.TotalComments)
	database.DB.Model(&content.Like{}).Count(&stats.TotalLikes)

	type themeCount struct {
		Name  string
		Count int64
	}
	var counts []themeCount
	database.DB.
		Table("posts").
		Select("themes.name, COUNT(posts.id) as count").
		Joins("LEFT JOIN themes ON posts.theme_id = themes.id").
		Group("themes.name").
		Scan(&counts)

	stats.PostsPerTheme = map[string]int64{}
	for _, tc := range counts {
		stats.PostsPerTheme[tc.Name] = tc.Count
	}

	c.JSON(http.StatusOK, stats)
}

type AdminUser struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Lastname   string  `json:"lastname"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"is_verified"`
	BlogSlug   *string `json:"blog_slug,omitempty"`
}

// GET /admin/users — paginated, searchable over name/lastname/email
func ListUsers(c *gin.Context) {
	page, err := pagination.GetPage[users.User](database.DB, httpx.PageParams(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	out := make([]AdminUser, 0, len(page.Data))
	for _, u := range page.Data {
		out = append(out, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			BlogSlug:   u.BlogSlug,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"page":          page.Page,
		"limit":         page.Limit,
		"total_pages":   page.TotalPages,
		"total_records": page.TotalRecords,
		"data":          out,
	})
}

// GET /admin/users/:id
func GetUserDetails(c *gin.Context) {
	var user users.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
		return
	}

	var postCount, commentCount int64
	database.DB.Model(&content.Post{}).Where("author_id = ?", user.ID).Count(&postCount)
	database.DB.Model(&content.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount)

	c.JSON(http.StatusOK, gin.H{
		"user": AdminUser{
			ID:         user.ID,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Email:      user.Email,
			Role:       user.Role,
			IsVerified: user.IsVerified,
			BlogSlug:   user.BlogSlug,
		},
		"post_count":    postCount,
		"comment_count": commentCount,
	})
}

// PUT /admin/users/:id/role
func UpdateUserRole(c *gin.Context) {
	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch body.Role {
	case users.RoleAdmin, users.RoleAuthor, users.RoleUser:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
		return
	}

	if err := database.DB.Model(&user).Update("role", body.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}
