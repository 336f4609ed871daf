package content

import (
	"time"

	"blog-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	AuthorID uint        `gorm:"index;not null" json:"author_id"`
	Author   *users.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`

	ThemeID string `gorm:"type:uuid;index;not null" json:"theme_id"`
	Theme   *Theme `gorm:"foreignKey:ThemeID" json:"theme,omitempty"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	ImageURL *string `gorm:"column:image_url" json:"image_url,omitempty"`

	Tags     []Tag     `gorm:"many2many:post_tags;" json:"tags,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (Post) SearchColumns() []string {
	return []string{"title", "content"}
}
