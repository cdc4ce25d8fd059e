package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique;not null" json:"email"`
	Name     string `gorm:"not null" json:"name"`
	Image    string `json:"image"`
	Role     string `gorm:"default:USER" json:"role"`
	Password string `json:"-"` // empty for OAuth users

	// OAuth fields
	GitHubID     string `gorm:"index" json:"-"`
	AuthProvider string `json:"auth_provider"` // "email" or "github"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OAuthRequest struct {
	Token string `json:"token" binding:"required"` // provider access token from the frontend
	Name  string `json:"name"`                     // optional, for first-time setup
	Image string `json:"image"`
}
