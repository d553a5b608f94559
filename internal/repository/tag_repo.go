package repository

import (
	"context"
	"fmt"

	"github.com/conduit-api/internal/database"
	"github.com/conduit-api/internal/query"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// ListNames returns the distinct names of tags attached to at least one article matching where
func (r *tagRepo) ListNames(ctx context.Context, where query.Predicate) ([]string, error) {
	w := newSQLWhere(articleLeaves)
	cond, err := w.compile(where)
	if err != nil {
		return nil, err
	}

	stmt := `
		SELECT DISTINCT t.name
		FROM tags t
		JOIN article_tags atg ON atg.tag_id = t.id
		JOIN articles a ON a.id = atg.article_id
		JOIN users u ON u.id = a.author_id
		WHERE ` + cond + `
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, stmt, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
