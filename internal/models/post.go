package models

import "time"

type Post struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Slug      string     `gorm:"uniqueIndex;not null" json:"slug"`
	Content   string     `gorm:"type:text" json:"content"`
	Thumbnail *string    `json:"thumbnail"`
	ViewCount int        `gorm:"default:0" json:"view_count"`
	AuthorID  int        `gorm:"index;not null" json:"author_id"`
	Author    User       `gorm:"foreignKey:AuthorID" json:"author"`
	Tags      []Tag      `gorm:"many2many:post_tags" json:"tags"`
	Comments  []Comment  `json:"comments,omitempty"`
	Likes     []Like     `json:"-"`
	Bookmarks []Bookmark `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CreatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Thumbnail *string  `json:"thumbnail"`
	Tags      []string `json:"tags"`
}

type UpdatePostRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Thumbnail *string  `json:"thumbnail"`
	Tags      []string `json:"tags"` // nil means "leave tags alone"
}

// PostFilter captures the list-endpoint query parameters.
type PostFilter struct {
	Keyword string
	Tag     string
	Page    int
	Limit   int
	SortBy  string // "latest", "popular" or "comments"
}

// PostSummary is the list projection: no content, counts instead of rows.
type PostSummary struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Thumbnail    *string   `json:"thumbnail"`
	ViewCount    int       `json:"view_count"`
	CreatedAt    time.Time `json:"created_at"`
	Author       User      `json:"author"`
	Tags         []Tag     `json:"tags"`
	CommentCount int64     `json:"comment_count"`
	LikeCount    int64     `json:"like_count"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

// PostCounts carries the aggregate counts shown on the detail page.
type PostCounts struct {
	Likes     int64 `json:"likes"`
	Bookmarks int64 `json:"bookmarks"`
	Comments  int64 `json:"comments"`
}
