package models

import (
	"time"
)

// Article represents an article in the system
type Article struct {
	ID          int64     `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Body        string    `json:"body" db:"body"`
	AuthorID    int64     `json:"author_id" db:"author_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ArticleRecord is an article loaded with its author, tags and favoriting users
type ArticleRecord struct {
	Article
	Author      ProfileRecord
	TagList     []string
	FavoritedBy []string
}

// ArticlePatch holds the fields an update may change. Empty strings are left untouched;
// a nil TagList keeps the current tags.
type ArticlePatch struct {
	Slug        string
	Title       string
	Description string
	Body        string
	TagList     []string
	UpdatedAt   time.Time
}

// ArticlePayload is the request body for creating or updating an article
type ArticlePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

// ArticleFilter holds the optional list filters. A nil field is not applied.
type ArticleFilter struct {
	Author    *string
	Tag       *string
	Favorited *string
}

// ArticleResponse is the wire shape of an article
type ArticleResponse struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// ArticleList is a page of articles. Count is the number of articles in this page.
type ArticleList struct {
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"articlesCount"`
}

// Tag is a named label shared between articles
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
