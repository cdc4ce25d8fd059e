package models

import "time"

// Image records an uploaded file; the row stores the served URL, the file
// itself sits in the upload directory.
type Image struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
