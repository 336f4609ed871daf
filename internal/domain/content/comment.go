package content

import (
	"time"

	"blog-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	PostID string      `gorm:"type:uuid;index;not null" json:"post_id"`
	UserID uint        `gorm:"index;not null" json:"user_id"`
	User   *users.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (Comment) SearchColumns() []string {
	return []string{"content"}
}
