package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Theme is a top-level category posts are filed under.
type Theme struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Posts []Post `gorm:"foreignKey:ThemeID" json:"posts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Theme) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (Theme) SearchColumns() []string {
	return []string{"name", "description"}
}
