package posts

type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	ThemeID  string   `json:"theme_id" binding:"required"`
	Tags     []string `json:"tags"`
	ImageURL *string  `json:"image_url"`
}

type UpdatePostRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	ThemeID  *string  `json:"theme_id"`
	Tags     []string `json:"tags"`
	ImageURL *string  `json:"image_url"`
}
