package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/repository"
)

// ArticleService defines the article operations
type ArticleService interface {
	ListArticles(ctx context.Context, filter models.ArticleFilter, page query.Page, viewer models.Viewer) (*models.ArticleList, error)
	GetFeed(ctx context.Context, page query.Page, viewer models.Viewer) (*models.ArticleList, error)
	CreateArticle(ctx context.Context, payload *models.ArticlePayload, viewer models.Viewer) (*models.ArticleResponse, error)
	GetArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error)
	UpdateArticle(ctx context.Context, payload *models.ArticlePayload, slug string, viewer models.Viewer) (*models.ArticleResponse, error)
	DeleteArticle(ctx context.Context, slug string, viewer models.Viewer) error
	FavoriteArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error)
	UnfavoriteArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error)
}

// CommentService defines the comment operations
type CommentService interface {
	ListComments(ctx context.Context, slug string, viewer models.Viewer) ([]models.CommentResponse, error)
	AddComment(ctx context.Context, payload *models.CommentPayload, slug string, viewer models.Viewer) (*models.CommentResponse, error)
	DeleteComment(ctx context.Context, id int64, viewer models.Viewer) error
}

// ProfileService defines the profile operations
type ProfileService interface {
	GetProfile(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error)
	FollowUser(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error)
	UnfollowUser(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error)
}

// TagService defines the tag operations
type TagService interface {
	ListTags(ctx context.Context, viewer models.Viewer) ([]string, error)
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Comment CommentService
	Profile ProfileService
	Tag     TagService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	identity := identityLookup{users: repos.User}

	return &Services{
		Article: newArticleService(repos.Article, identity, log),
		Comment: newCommentService(repos.Comment, repos.Article, identity, log),
		Profile: newProfileService(repos.User, identity, log),
		Tag:     newTagService(repos.Tag),
	}
}
