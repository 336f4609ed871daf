package users

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from the user's name.
// Example: "John Doe" -> "john-doe"
func MakeSlug(name, lastname string) string {
	base := strings.ToLower(strings.TrimSpace(name + " " + lastname))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "user"
	}
	return base
}

// EnsureBlogSlug makes sure user.BlogSlug exists and is persisted. Must be
// called after the user has an ID. The db handle is passed in rather than
// imported to keep this package free of the global connection.
func EnsureBlogSlug(db *gorm.DB, user *User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("user is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	if user.BlogSlug != nil && strings.TrimSpace(*user.BlogSlug) != "" {
		return strings.TrimSpace(*user.BlogSlug), nil
	}

	if user.ID == 0 {
		return "", fmt.Errorf("user ID missing (call EnsureBlogSlug after Create)")
	}

	base := MakeSlug(user.Name, user.Lastname)
	slug := fmt.Sprintf("%s-%d", base, user.ID)

	user.BlogSlug = &slug

	if err := db.
		Model(&User{}).
		Where("id = ?", user.ID).
		Update("blog_slug", slug).Error; err != nil {
		return "", err
	}

	return slug, nil
}
