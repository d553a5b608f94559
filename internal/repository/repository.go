package repository

import (
	"context"

	"github.com/conduit-api/internal/database"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetProfile(ctx context.Context, username string) (*models.ProfileRecord, error)
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	Upsert(ctx context.Context, user *models.User) error
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	FindMany(ctx context.Context, where query.Predicate, page query.Page) ([]*models.ArticleRecord, error)
	GetBySlug(ctx context.Context, slug string) (*models.ArticleRecord, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, article *models.Article, tags []string) error
	Update(ctx context.Context, id int64, patch *models.ArticlePatch) error
	Delete(ctx context.Context, id int64) error
	AddFavorite(ctx context.Context, articleID, userID int64) error
	RemoveFavorite(ctx context.Context, articleID, userID int64) error
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	ListNames(ctx context.Context, where query.Predicate) ([]string, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	FindMany(ctx context.Context, where query.Predicate) ([]*models.CommentRecord, error)
	GetByID(ctx context.Context, id int64) (*models.CommentRecord, error)
	GetForAuthor(ctx context.Context, id int64, authorUsername string) (*models.CommentRecord, error)
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Tag     TagRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Tag:     NewTagRepo(db),
		Comment: NewCommentRepo(db),
	}
}
