package tags

import (
	"net/http"

	"blog-app/database"
	"blog-app/internal/domain/content"

	"github.com/gin-gonic/gin"
)

// GET /tags — public, alphabetical
func ListTags(c *gin.Context) {
	var tags []content.Tag
	if err := database.DB.Order("name ASC").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tags"})
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GET /tags/:id/posts — ids of posts carrying the tag
func PostsForTag(c *gin.Context) {
	var tag content.Tag
	if err := database.DB.First(&tag, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var posts []content.Post
	err := database.DB.
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tag.ID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tag, "posts": posts})
}
