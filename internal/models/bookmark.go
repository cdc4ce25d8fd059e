package models

import "time"

type Bookmark struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"uniqueIndex:idx_bookmarks_user_post;not null" json:"user_id"`
	PostID    int       `gorm:"uniqueIndex:idx_bookmarks_user_post;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
