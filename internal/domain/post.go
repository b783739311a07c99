package domain

import (
	"errors"
	"time"
)

var (
	// ErrPostNotFound indicates that the post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostAuthor indicates that the user does not own the post.
	ErrNotPostAuthor = errors.New("post belongs to another user")
)

// Post holds a community post shared between platform users.
type Post struct {
	ID            int32     `json:"id"`
	Author        string    `json:"author"`
	Content       string    `json:"content"`
	AyahReference string    `json:"ayah_reference,omitempty"`
	AyahText      string    `json:"ayah_text,omitempty"`
	Likes         int32     `json:"likes"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePostParams is the input data to create a post.
type CreatePostParams struct {
	Author        string
	Content       string
	AyahReference string
	AyahText      string
}

// UpdatePostParams is the input data to update a post's content.
type UpdatePostParams struct {
	Content       string
	AyahReference string
	AyahText      string
}
