package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Bio       *string   `json:"bio" db:"bio"`
	Image     *string   `json:"image" db:"image"`
	Demo      bool      `json:"demo" db:"demo"` // seed account, content visible to everyone
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileRecord is a user together with the usernames following it
type ProfileRecord struct {
	ID         int64
	Username   string
	Bio        *string
	Image      *string
	Demo       bool
	FollowedBy []string
}

// Profile is the wire shape of a user as seen by a viewer
type Profile struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}
