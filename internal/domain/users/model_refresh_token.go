package users

import "time"

// RefreshToken is the long-lived half of a session token pair. Rotation
// updates the row in place (new token string and timestamps, same identity),
// so the table holds one row per session lineage rather than one per refresh.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
}

// Expired reports whether now is at or past the expiry instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Active means not revoked and not expired.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && !t.Expired(now)
}
