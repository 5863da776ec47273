package domain

import "time"

// User is an account record. Wishlist holds property ids and behaves as a
// set; membership changes go through the repository's atomic toggle.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	IsCertified  bool      `json:"isCertified"`
	Wishlist     []string  `json:"wishlist"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
