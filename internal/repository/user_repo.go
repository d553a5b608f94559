package repository

import (
	"context"
	"database/sql"

	"github.com/conduit-api/internal/database"
	"github.com/conduit-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByUsername retrieves a user by username
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, bio, image, demo, created_at, updated_at
		FROM users WHERE username = $1
	`

	var user models.User
	var bio, image sql.NullString
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &bio, &image, &user.Demo,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.Bio = nullableString(bio)
	user.Image = nullableString(image)
	return &user, nil
}

// GetProfile retrieves a user with the usernames of its followers
func (r *userRepo) GetProfile(ctx context.Context, username string) (*models.ProfileRecord, error) {
	query := `SELECT id, username, bio, image, demo FROM users WHERE username = $1`

	var profile models.ProfileRecord
	var bio, image sql.NullString
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&profile.ID, &profile.Username, &bio, &image, &profile.Demo,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	profile.Bio = nullableString(bio)
	profile.Image = nullableString(image)

	followers, err := followersOf(ctx, r.db, []int64{profile.ID})
	if err != nil {
		return nil, err
	}
	profile.FollowedBy = followers[profile.ID]

	return &profile, nil
}

// Follow adds the follow edge; an existing edge is left as is
func (r *userRepo) Follow(ctx context.Context, followerID, followeeID int64) error {
	query := `
		INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	return err
}

// Unfollow removes the follow edge if present
func (r *userRepo) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID, followeeID,
	)
	return err
}

// Upsert inserts or updates a user by username and fills in its ID
func (r *userRepo) Upsert(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password, bio, image, demo)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (username) DO UPDATE SET
			bio = EXCLUDED.bio,
			image = EXCLUDED.image,
			demo = EXCLUDED.demo,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.Password, user.Bio, user.Image, user.Demo,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// helper to convert NULL to a nil pointer
func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
