package mocks

import (
	"context"

	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/service"
)

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	ListFunc       func(ctx context.Context, filter models.ArticleFilter, page query.Page, viewer models.Viewer) (*models.ArticleList, error)
	FeedFunc       func(ctx context.Context, page query.Page, viewer models.Viewer) (*models.ArticleList, error)
	CreateFunc     func(ctx context.Context, payload *models.ArticlePayload, viewer models.Viewer) (*models.ArticleResponse, error)
	GetFunc        func(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error)
	UpdateFunc     func(ctx context.Context, payload *models.ArticlePayload, slug string, viewer models.Viewer) (*models.ArticleResponse, error)
	DeleteFunc     func(ctx context.Context, slug string, viewer models.Viewer) error
	FavoriteFunc   func(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error)
	UnfavoriteFunc func(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error)

	LastFilter models.ArticleFilter
	LastPage   query.Page
	LastViewer models.Viewer
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func (m *MockArticleService) ListArticles(ctx context.Context, filter models.ArticleFilter, page query.Page, viewer models.Viewer) (*models.ArticleList, error) {
	m.LastFilter, m.LastPage, m.LastViewer = filter, page, viewer
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, viewer)
	}
	return &models.ArticleList{Articles: []models.ArticleResponse{}}, nil
}

func (m *MockArticleService) GetFeed(ctx context.Context, page query.Page, viewer models.Viewer) (*models.ArticleList, error) {
	m.LastPage, m.LastViewer = page, viewer
	if m.FeedFunc != nil {
		return m.FeedFunc(ctx, page, viewer)
	}
	return &models.ArticleList{Articles: []models.ArticleResponse{}}, nil
}

func (m *MockArticleService) CreateArticle(ctx context.Context, payload *models.ArticlePayload, viewer models.Viewer) (*models.ArticleResponse, error) {
	m.LastViewer = viewer
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload, viewer)
	}
	return &models.ArticleResponse{Title: payload.Title, TagList: payload.TagList}, nil
}

func (m *MockArticleService) GetArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	m.LastViewer = viewer
	if m.GetFunc != nil {
		return m.GetFunc(ctx, slug, viewer)
	}
	return &models.ArticleResponse{Slug: slug, TagList: []string{}}, nil
}

func (m *MockArticleService) UpdateArticle(ctx context.Context, payload *models.ArticlePayload, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	m.LastViewer = viewer
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, payload, slug, viewer)
	}
	return &models.ArticleResponse{Slug: slug, Title: payload.Title}, nil
}

func (m *MockArticleService) DeleteArticle(ctx context.Context, slug string, viewer models.Viewer) error {
	m.LastViewer = viewer
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, slug, viewer)
	}
	return nil
}

func (m *MockArticleService) FavoriteArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	m.LastViewer = viewer
	if m.FavoriteFunc != nil {
		return m.FavoriteFunc(ctx, slug, viewer)
	}
	return &models.ArticleResponse{Slug: slug, Favorited: true, FavoritesCount: 1}, nil
}

func (m *MockArticleService) UnfavoriteArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	m.LastViewer = viewer
	if m.UnfavoriteFunc != nil {
		return m.UnfavoriteFunc(ctx, slug, viewer)
	}
	return &models.ArticleResponse{Slug: slug}, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc   func(ctx context.Context, slug string, viewer models.Viewer) ([]models.CommentResponse, error)
	AddFunc    func(ctx context.Context, payload *models.CommentPayload, slug string, viewer models.Viewer) (*models.CommentResponse, error)
	DeleteFunc func(ctx context.Context, id int64, viewer models.Viewer) error

	DeletedIDs []int64
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) ListComments(ctx context.Context, slug string, viewer models.Viewer) ([]models.CommentResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, slug, viewer)
	}
	return []models.CommentResponse{}, nil
}

func (m *MockCommentService) AddComment(ctx context.Context, payload *models.CommentPayload, slug string, viewer models.Viewer) (*models.CommentResponse, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, payload, slug, viewer)
	}
	return &models.CommentResponse{ID: 1, Body: payload.Body}, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id int64, viewer models.Viewer) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, viewer)
	}
	return nil
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	GetFunc      func(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error)
	FollowFunc   func(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error)
	UnfollowFunc func(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error)
}

// Verify interface compliance
var _ service.ProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) GetProfile(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, username, viewer)
	}
	return &models.Profile{Username: username}, nil
}

func (m *MockProfileService) FollowUser(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error) {
	if m.FollowFunc != nil {
		return m.FollowFunc(ctx, username, viewer)
	}
	return &models.Profile{Username: username, Following: true}, nil
}

func (m *MockProfileService) UnfollowUser(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error) {
	if m.UnfollowFunc != nil {
		return m.UnfollowFunc(ctx, username, viewer)
	}
	return &models.Profile{Username: username}, nil
}

// MockTagService is a mock implementation of TagService
type MockTagService struct {
	ListFunc func(ctx context.Context, viewer models.Viewer) ([]string, error)
}

// Verify interface compliance
var _ service.TagService = (*MockTagService)(nil)

func (m *MockTagService) ListTags(ctx context.Context, viewer models.Viewer) ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, viewer)
	}
	return []string{}, nil
}

// NewMockServices returns a Services bundle of default mocks
func NewMockServices() (*service.Services, *MockArticleService, *MockCommentService, *MockProfileService, *MockTagService) {
	a, c, p, t := &MockArticleService{}, &MockCommentService{}, &MockProfileService{}, &MockTagService{}
	return &service.Services{Article: a, Comment: c, Profile: p, Tag: t}, a, c, p, t
}
