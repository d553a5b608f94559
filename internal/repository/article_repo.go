package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/conduit-api/internal/database"
	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
)

const articleSelect = `
	SELECT a.id, a.slug, a.title, a.description, a.body, a.author_id, a.created_at, a.updated_at,
		u.id, u.username, u.bio, u.image, u.demo
	FROM articles a JOIN users u ON u.id = a.author_id
`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// FindMany returns one page of articles matching where, newest first
func (r *articleRepo) FindMany(ctx context.Context, where query.Predicate, page query.Page) ([]*models.ArticleRecord, error) {
	w := newSQLWhere(articleLeaves)
	cond, err := w.compile(where)
	if err != nil {
		return nil, err
	}
	page = page.Normalize()

	stmt := fmt.Sprintf("%s WHERE %s ORDER BY a.created_at DESC, a.id DESC OFFSET %s LIMIT %s",
		articleSelect, cond, w.arg(page.Offset), w.arg(page.Limit))

	rows, err := r.db.QueryContext(ctx, stmt, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.ArticleRecord
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := hydrateArticles(ctx, r.db, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.ArticleRecord, error) {
	row := r.db.QueryRowContext(ctx, articleSelect+" WHERE a.slug = $1", slug)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := hydrateArticles(ctx, r.db, []*models.ArticleRecord{article}); err != nil {
		return nil, err
	}
	return article, nil
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// Create inserts a new article and attaches its tags, creating missing ones
func (r *articleRepo) Create(ctx context.Context, article *models.Article, tags []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO articles (slug, title, description, body, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insert,
		article.Slug, article.Title, article.Description, article.Body, article.AuthorID,
		article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	if isUniqueViolation(err) {
		return errs.Conflict("title")
	}
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	if err := attachTags(ctx, tx, article.ID, tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Update applies patch. When patch.TagList is not nil the tag set is replaced.
func (r *articleRepo) Update(ctx context.Context, id int64, patch *models.ArticlePatch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `
		UPDATE articles SET
			slug = COALESCE(NULLIF($1, ''), slug),
			title = COALESCE(NULLIF($2, ''), title),
			description = COALESCE(NULLIF($3, ''), description),
			body = COALESCE(NULLIF($4, ''), body),
			updated_at = $5
		WHERE id = $6
	`
	_, err = tx.ExecContext(ctx, update,
		patch.Slug, patch.Title, patch.Description, patch.Body, patch.UpdatedAt, id,
	)
	if isUniqueViolation(err) {
		return errs.Conflict("title")
	}
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	if patch.TagList != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM article_tags WHERE article_id = $1", id); err != nil {
			return fmt.Errorf("failed to detach tags: %w", err)
		}
		if err := attachTags(ctx, tx, id, patch.TagList); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes an article; tag, favorite and comment rows cascade
func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	return err
}

// AddFavorite adds the favorite edge; an existing edge is left as is
func (r *articleRepo) AddFavorite(ctx context.Context, articleID, userID int64) error {
	insert := `
		INSERT INTO favorites (article_id, user_id) VALUES ($1, $2)
		ON CONFLICT (article_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, insert, articleID, userID)
	return err
}

// RemoveFavorite removes the favorite edge if present
func (r *articleRepo) RemoveFavorite(ctx context.Context, articleID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE article_id = $1 AND user_id = $2",
		articleID, userID,
	)
	return err
}

// attachTags upserts tags by name and links them to the article
func attachTags(ctx context.Context, tx *sql.Tx, articleID int64, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	upsert := `
		INSERT INTO tags (name) SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, upsert, pq.Array(tags)); err != nil {
		return fmt.Errorf("failed to upsert tags: %w", err)
	}

	link := `
		INSERT INTO article_tags (article_id, tag_id)
		SELECT $1, id FROM tags WHERE name = ANY($2)
		ON CONFLICT (article_id, tag_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, link, articleID, pq.Array(tags)); err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.ArticleRecord, error) {
	var article models.ArticleRecord
	var bio, image sql.NullString
	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Description, &article.Body,
		&article.AuthorID, &article.CreatedAt, &article.UpdatedAt,
		&article.Author.ID, &article.Author.Username, &bio, &image, &article.Author.Demo,
	)
	if err != nil {
		return nil, err
	}
	article.Author.Bio = nullableString(bio)
	article.Author.Image = nullableString(image)
	return &article, nil
}

const (
	articleTagsQuery = `
		SELECT atg.article_id, t.name
		FROM article_tags atg JOIN tags t ON t.id = atg.tag_id
		WHERE atg.article_id = ANY($1)
		ORDER BY t.name
	`
	articleFavoritesQuery = `
		SELECT f.article_id, u.username
		FROM favorites f JOIN users u ON u.id = f.user_id
		WHERE f.article_id = ANY($1)
	`
)

// hydrateArticles loads tag names, favoriting usernames and author followers for a page
func hydrateArticles(ctx context.Context, q querier, articles []*models.ArticleRecord) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(articles))
	authorIDs := make([]int64, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
		authorIDs = append(authorIDs, a.AuthorID)
	}

	tags, err := namesByID(ctx, q, articleTagsQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	favorites, err := namesByID(ctx, q, articleFavoritesQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	followers, err := followersOf(ctx, q, authorIDs)
	if err != nil {
		return fmt.Errorf("failed to load followers: %w", err)
	}

	for _, a := range articles {
		a.TagList = tags[a.ID]
		a.FavoritedBy = favorites[a.ID]
		a.Author.FollowedBy = followers[a.AuthorID]
	}
	return nil
}
