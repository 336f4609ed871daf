package posts

import (
	"errors"
	"net/http"
	"path/filepath"

	"blog-app/database"
	"blog-app/internal/app/http/httpx"
	"blog-app/internal/domain/apperr"
	"blog-app/internal/domain/content"
	"blog-app/internal/domain/users"
	"blog-app/internal/pagination"
	"blog-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// canEdit: the author owns the post; admins override.
func canEdit(c *gin.Context, post *content.Post) bool {
	userID := c.GetUint("user_id")
	role := c.GetString("role")
	return post.AuthorID == userID || role == users.RoleAdmin
}

// ------------------------------
// GET /posts
// ------------------------------
func ListPosts(c *gin.Context) {
	params := httpx.PageParams(c)

	var filters []func(*gorm.DB) *gorm.DB
	if themeID := c.Query("theme_id"); themeID != "" {
		filters = append(filters, byTheme(themeID))
	}
	if authorID := c.Query("author_id"); authorID != "" {
		var author users.User
		if err := database.DB.First(&author, authorID).Error; err != nil {
			c.JSON(apperr.ErrUserNotFound.Status, gin.H{"error": apperr.ErrUserNotFound.Message})
			return
		}
		filters = append(filters, byAuthor(author.ID))
	}
	if len(filters) > 0 {
		params.Filter = combine(filters...)
	}

	page, err := pagination.GetPage[content.Post](database.DB.Preload("Tags").Preload("Theme"), params)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, page)
}

func GetPost(c *gin.Context) {
	var post content.Post
	err := database.DB.
		Preload("Tags").
		Preload("Theme").
		First(&post, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var likeCount, commentCount int64
	database.DB.Model(&content.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
	database.DB.Model(&content.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)

	c.JSON(http.StatusOK, gin.H{
		"post":          post,
		"like_count":    likeCount,
		"comment_count": commentCount,
	})
}

// ------------------------------
// POST /posts  (authors and admins)
// ------------------------------
func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var theme content.Theme
	if err := database.DB.First(&theme, "id = ?", req.ThemeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme does not exist"})
		return
	}

	tags, err := upsertTags(database.DB, req.Tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tags"})
		return
	}

	post := content.Post{
		AuthorID: userID,
		ThemeID:  theme.ID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Tags:     tags,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// PUT /posts/:id — explicit read, transform, write-back
func UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post content.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !canEdit(c, &post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.ThemeID != nil {
		var theme content.Theme
		if err := database.DB.First(&theme, "id = ?", *req.ThemeID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Theme does not exist"})
			return
		}
		updates["theme_id"] = theme.ID
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&post).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Tags != nil {
			tags, err := upsertTags(tx, req.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	var updated content.Post
	if err := database.DB.Preload("Tags").Preload("Theme").First(&updated, "id = ?", post.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func DeletePost(c *gin.Context) {
	var post content.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !canEdit(c, &post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := database.DB.Select("Comments", "Likes").Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// POST /images  (multipart form, field "image")
func UploadImage(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")
	key := "posts/" + uuid.NewString() + filepath.Ext(file.Filename)

	url, err := storage.Upload(c.Request.Context(), f, contentType, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ------------------------------
// POST /posts/:id/like, DELETE /posts/:id/like
// ------------------------------
func LikePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var post content.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	like := content.Like{PostID: post.ID, UserID: userID}
	err := database.DB.Where("post_id = ? AND user_id = ?", post.ID, userID).FirstOrCreate(&like).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}

func UnlikePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.Where("post_id = ? AND user_id = ?", c.Param("id"), userID).Delete(&content.Like{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unliked"})
}

func upsertTags(db *gorm.DB, names []string) ([]content.Tag, error) {
	tags := make([]content.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag content.Tag
		err := db.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = content.Tag{Name: name}
			err = db.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
