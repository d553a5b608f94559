package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	ArticleID int64     `json:"article_id" db:"article_id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CommentRecord is a comment loaded with its author
type CommentRecord struct {
	Comment
	Author ProfileRecord
}

// CommentPayload is the request body for adding a comment
type CommentPayload struct {
	Body string `json:"body"`
}

// CommentResponse is the wire shape of a comment
type CommentResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Body      string    `json:"body"`
	Author    Profile   `json:"author"`
}
