package users

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
	RoleUser   = "user"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'"`
	IsVerified   bool

	BlogSlug *string `gorm:"column:blog_slug;uniqueIndex:idx_users_blog_slug"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchColumns lists the columns free-text search may match against
// (admin user listing).
func (User) SearchColumns() []string {
	return []string{"name", "lastname", "email"}
}
