package models

// Interactions reports the caller's like/bookmark state for a post.
type Interactions struct {
	Liked      bool `json:"liked"`
	Bookmarked bool `json:"bookmarked"`
	PostID     int  `json:"post_id"`
}
