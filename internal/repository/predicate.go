package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/conduit-api/internal/query"
)

// leafSQL maps each supported field to a SQL fragment with one %s placeholder for its argument
type leafSQL map[query.Field]string

// articleLeaves assume articles aliased as a and their author as u
var articleLeaves = leafSQL{
	query.AuthorDemo:     "u.demo = %s",
	query.AuthorUsername: "u.username = %s",
	query.TagName: `EXISTS (SELECT 1 FROM article_tags atg JOIN tags t ON t.id = atg.tag_id
		WHERE atg.article_id = a.id AND t.name = %s)`,
	query.FavoritedBy: `EXISTS (SELECT 1 FROM favorites f JOIN users fu ON fu.id = f.user_id
		WHERE f.article_id = a.id AND fu.username = %s)`,
	query.AuthorFollowedBy: `EXISTS (SELECT 1 FROM follows fl
		WHERE fl.followee_id = a.author_id AND fl.follower_id = %s)`,
}

// commentLeaves assume comments aliased as c, their author as u and their article as ar
var commentLeaves = leafSQL{
	query.AuthorDemo:     "u.demo = %s",
	query.AuthorUsername: "u.username = %s",
	query.ArticleSlug:    "ar.slug = %s",
}

// sqlWhere accumulates positional arguments while compiling a predicate
type sqlWhere struct {
	leaves leafSQL
	args   []interface{}
}

func newSQLWhere(leaves leafSQL) *sqlWhere {
	return &sqlWhere{leaves: leaves}
}

// arg registers v and returns its placeholder
func (w *sqlWhere) arg(v interface{}) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// compile renders p as a boolean SQL expression. Every leaf field is checked
// against the supported set first, so a rejected predicate binds no arguments.
func (w *sqlWhere) compile(p query.Predicate) (string, error) {
	for _, leaf := range query.Leaves(p) {
		if _, ok := w.leaves[leaf.Field]; !ok {
			return "", fmt.Errorf("unsupported predicate field %s", leaf.Field)
		}
	}
	return w.render(p)
}

func (w *sqlWhere) render(p query.Predicate) (string, error) {
	switch n := p.(type) {
	case nil:
		return "TRUE", nil
	case query.And:
		return w.join(n, " AND ", "TRUE")
	case query.Or:
		return w.join(n, " OR ", "FALSE")
	case query.Cond:
		return fmt.Sprintf(w.leaves[n.Field], w.arg(n.Value)), nil
	default:
		return "", fmt.Errorf("unsupported predicate node %T", p)
	}
}

func (w *sqlWhere) join(children []query.Predicate, sep, empty string) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		part, err := w.render(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, stmt string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, stmt string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, stmt string, args ...interface{}) *sql.Row
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// namesByID runs a two-column (id, name) query and groups the names by id
func namesByID(ctx context.Context, q querier, stmt string, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := q.QueryContext(ctx, stmt, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = append(out[id], name)
	}
	return out, rows.Err()
}

const followersQuery = `
	SELECT fl.followee_id, u.username
	FROM follows fl JOIN users u ON u.id = fl.follower_id
	WHERE fl.followee_id = ANY($1)
`

// followersOf returns follower usernames keyed by followed user id
func followersOf(ctx context.Context, q querier, userIDs []int64) (map[int64][]string, error) {
	return namesByID(ctx, q, followersQuery, uniqueIDs(userIDs))
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
