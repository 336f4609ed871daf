package themes

import (
	"net/http"

	"blog-app/database"
	"blog-app/internal/app/http/httpx"
	"blog-app/internal/domain/apperr"
	"blog-app/internal/domain/content"
	"blog-app/internal/pagination"

	"github.com/gin-gonic/gin"
)

// GET /themes — public
func ListThemes(c *gin.Context) {
	params := httpx.PageParams(c)
	if params.SortColumn == "" {
		params.SortColumn = "name"
		params.SortDirection = "asc"
	}

	page, err := pagination.GetPage[content.Theme](database.DB, params)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, page)
}

// POST /admin/themes
func CreateTheme(c *gin.Context) {
	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	theme := content.Theme{Name: body.Name, Description: body.Description}
	if err := database.DB.Create(&theme).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Theme may already exist"})
		return
	}

	c.JSON(http.StatusCreated, theme)
}

// PUT /admin/themes/:id
func UpdateTheme(c *gin.Context) {
	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var theme content.Theme
	if err := database.DB.First(&theme, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		updates["name"] = *body.Name
		theme.Name = *body.Name
	}
	if body.Description != nil {
		updates["description"] = *body.Description
		theme.Description = *body.Description
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&theme).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update theme"})
			return
		}
	}

	c.JSON(http.StatusOK, theme)
}

// DELETE /admin/themes/:id — refused while posts still reference it
func DeleteTheme(c *gin.Context) {
	var theme content.Theme
	if err := database.DB.First(&theme, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	var postCount int64
	database.DB.Model(&content.Post{}).Where("theme_id = ?", theme.ID).Count(&postCount)
	if postCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Theme still has posts"})
		return
	}

	if err := database.DB.Delete(&theme).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete theme"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Theme deleted"})
}
