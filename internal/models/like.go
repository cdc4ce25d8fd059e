package models

import "time"

// Like is a (user, post) join row; the composite unique index is what makes
// the toggle race-safe.
type Like struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"uniqueIndex:idx_likes_user_post;not null" json:"user_id"`
	PostID    int       `gorm:"uniqueIndex:idx_likes_user_post;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
