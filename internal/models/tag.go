package models

type Tag struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TagWithCount annotates a tag with how many posts reference it.
type TagWithCount struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	PostCount int64  `json:"post_count"`
}
