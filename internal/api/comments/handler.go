package comments

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

// GET /posts/:id/comments — paginated, newest first unless sorted otherwise
func ListComments(c *gin.Context) {
	postID := c.Param("id")

	var post content.Post
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	params := httpx.PageParams(c)
	if params.SortColumn == "" {
		params.SortColumn = "created_at"
	}
	params.Filter = func(db *gorm.DB) *gorm.DB {
		return db.Where("post_id = ?", postID)
	}

	page, err := pagination.GetPage[content.Comment](database.DB, params)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, page)
}

// POST /posts/:id/comments
func CreateComment(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post content.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := content.Comment{
		PostID:  post.ID,
		UserID:  userID,
		Content: body.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DELETE /comments/:id — the commenter, the post's author or an admin
func DeleteComment(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var comment content.Comment
	if err := database.DB.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	allowed := comment.UserID == userID || role == users.RoleAdmin
	if !allowed {
		var post content.Post
		if err := database.DB.First(&post, "id = ?", comment.PostID).Error; err == nil {
			allowed = post.AuthorID == userID
		}
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
