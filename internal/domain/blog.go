package domain

import "time"

// Blog is a post published by a user.
type Blog struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorName string    `json:"blogAuthor"`
	UserID     string    `json:"blog_user_id"`
	Image      string    `json:"blogImage"`
	Date       time.Time `json:"date"`
}
