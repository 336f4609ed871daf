package users

import "time"

// ActionToken is a single-use, purpose-scoped credential (email verification,
// password reset). At most one row exists per (user, purpose): re-issuing
// overwrites the existing row in place. Consumed rows are kept with Used=true,
// never deleted.
type ActionToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_action_tokens_user_purpose"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Purpose   string `gorm:"type:varchar(32);not null;uniqueIndex:idx_action_tokens_user_purpose"`
	Token     string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	Used      bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}
