package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/conduit-api/internal/database"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
)

const commentSelect = `
	SELECT c.id, c.article_id, c.author_id, c.body, c.created_at, c.updated_at,
		u.id, u.username, u.bio, u.image, u.demo
	FROM comments c
	JOIN users u ON u.id = c.author_id
	JOIN articles ar ON ar.id = c.article_id
`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// FindMany returns comments matching where, oldest first
func (r *commentRepo) FindMany(ctx context.Context, where query.Predicate) ([]*models.CommentRecord, error) {
	w := newSQLWhere(commentLeaves)
	cond, err := w.compile(where)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, commentSelect+" WHERE "+cond+" ORDER BY c.created_at, c.id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.CommentRecord
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.CommentRecord, error) {
	return r.getOne(ctx, commentSelect+" WHERE c.id = $1", id)
}

// GetForAuthor retrieves a comment by ID only if it was written by authorUsername
func (r *commentRepo) GetForAuthor(ctx context.Context, id int64, authorUsername string) (*models.CommentRecord, error) {
	return r.getOne(ctx, commentSelect+" WHERE c.id = $1 AND u.username = $2", id, authorUsername)
}

// Create inserts a new comment, filling in its ID and timestamps
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	insert := `
		INSERT INTO comments (article_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, insert, comment.ArticleID, comment.AuthorID, comment.Body).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	return err
}

func (r *commentRepo) getOne(ctx context.Context, stmt string, args ...interface{}) (*models.CommentRecord, error) {
	comment, err := scanComment(r.db.QueryRowContext(ctx, stmt, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, []*models.CommentRecord{comment}); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepo) hydrate(ctx context.Context, comments []*models.CommentRecord) error {
	if len(comments) == 0 {
		return nil
	}
	authorIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	followers, err := followersOf(ctx, r.db, authorIDs)
	if err != nil {
		return fmt.Errorf("failed to load followers: %w", err)
	}
	for _, c := range comments {
		c.Author.FollowedBy = followers[c.AuthorID]
	}
	return nil
}

func scanComment(row rowScanner) (*models.CommentRecord, error) {
	var comment models.CommentRecord
	var bio, image sql.NullString
	err := row.Scan(
		&comment.ID, &comment.ArticleID, &comment.AuthorID, &comment.Body,
		&comment.CreatedAt, &comment.UpdatedAt,
		&comment.Author.ID, &comment.Author.Username, &bio, &image, &comment.Author.Demo,
	)
	if err != nil {
		return nil, err
	}
	comment.Author.Bio = nullableString(bio)
	comment.Author.Image = nullableString(image)
	return &comment, nil
}
