package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/mapper"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/repository"
	"github.com/conduit-api/internal/validation"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	identity identityLookup
	log      zerolog.Logger
	now      func() time.Time
}

// newArticleService creates a new ArticleService
func newArticleService(articles repository.ArticleRepository, identity identityLookup, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		identity: identity,
		log:      log.With().Str("service", "article").Logger(),
		now:      time.Now,
	}
}

// ListArticles returns one page of articles visible to the viewer.
// The count is the size of the page, not the number of matches.
func (s *articleService) ListArticles(ctx context.Context, filter models.ArticleFilter, page query.Page, viewer models.Viewer) (*models.ArticleList, error) {
	records, err := s.articles.FindMany(ctx, query.ArticleList(filter, viewer), page)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	list := mapper.Articles(records, viewer)
	return &list, nil
}

// GetFeed returns articles by authors the viewer follows
func (s *articleService) GetFeed(ctx context.Context, page query.Page, viewer models.Viewer) (*models.ArticleList, error) {
	viewerID, err := s.identity.viewerID(ctx, viewer)
	if err != nil {
		return nil, err
	}

	records, err := s.articles.FindMany(ctx, query.Feed(viewerID), page)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	list := mapper.Articles(records, viewer)
	return &list, nil
}

// CreateArticle validates the payload and stores a new article owned by the viewer
func (s *articleService) CreateArticle(ctx context.Context, payload *models.ArticlePayload, viewer models.Viewer) (*models.ArticleResponse, error) {
	if err := validation.ValidateArticle(payload); err != nil {
		return nil, err
	}

	authorID, err := s.identity.viewerID(ctx, viewer)
	if err != nil {
		return nil, err
	}

	slug := articleSlug(payload.Title, authorID)
	exists, err := s.articles.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return nil, errs.Conflict("title")
	}

	now := s.now()
	article := &models.Article{
		Slug:        slug,
		Title:       payload.Title,
		Description: payload.Description,
		Body:        payload.Body,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.articles.Create(ctx, article, validation.UniqueTags(payload.TagList)); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.log.Info().Str("slug", slug).Int64("author_id", authorID).Msg("Article created")

	return s.load(ctx, slug, viewer)
}

// GetArticle returns a single article
func (s *articleService) GetArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	return s.load(ctx, slug, viewer)
}

// UpdateArticle patches an article owned by the viewer. A new title moves the
// article to a new slug; a non-empty tag list replaces the current tags.
func (s *articleService) UpdateArticle(ctx context.Context, payload *models.ArticlePayload, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	viewerID, err := s.identity.viewerID(ctx, viewer)
	if err != nil {
		return nil, err
	}

	existing, err := s.owned(ctx, slug, viewer, "You are not authorized to update this article")
	if err != nil {
		return nil, err
	}

	patch := &models.ArticlePatch{
		Title:       payload.Title,
		Description: payload.Description,
		Body:        payload.Body,
		UpdatedAt:   s.now(),
	}

	newSlug := slug
	if payload.Title != "" {
		newSlug = articleSlug(payload.Title, viewerID)
		if newSlug != slug {
			exists, err := s.articles.SlugExists(ctx, newSlug)
			if err != nil {
				return nil, fmt.Errorf("failed to check slug: %w", err)
			}
			if exists {
				return nil, errs.Conflict("title")
			}
			patch.Slug = newSlug
		}
	}

	if tags := validation.UniqueTags(payload.TagList); len(tags) > 0 {
		patch.TagList = tags
	}

	if err := s.articles.Update(ctx, existing.ID, patch); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	s.log.Info().Str("slug", slug).Str("new_slug", newSlug).Msg("Article updated")

	return s.load(ctx, newSlug, viewer)
}

// DeleteArticle removes an article owned by the viewer
func (s *articleService) DeleteArticle(ctx context.Context, slug string, viewer models.Viewer) error {
	existing, err := s.owned(ctx, slug, viewer, "You are not authorized to delete this article")
	if err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	s.log.Info().Str("slug", slug).Msg("Article deleted")
	return nil
}

// FavoriteArticle marks the article as favorited by the viewer
func (s *articleService) FavoriteArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	return s.toggleFavorite(ctx, slug, viewer, s.articles.AddFavorite)
}

// UnfavoriteArticle removes the viewer's favorite
func (s *articleService) UnfavoriteArticle(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	return s.toggleFavorite(ctx, slug, viewer, s.articles.RemoveFavorite)
}

func (s *articleService) toggleFavorite(
	ctx context.Context,
	slug string,
	viewer models.Viewer,
	apply func(ctx context.Context, articleID, userID int64) error,
) (*models.ArticleResponse, error) {
	userID, err := s.identity.viewerID(ctx, viewer)
	if err != nil {
		return nil, err
	}

	article, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := apply(ctx, article.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to update favorite: %w", err)
	}

	return s.load(ctx, slug, viewer)
}

// owned returns the article at slug if the viewer wrote it.
// Missing articles are reported before ownership.
func (s *articleService) owned(ctx context.Context, slug string, viewer models.Viewer, forbidden string) (*models.ArticleRecord, error) {
	article, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !viewer.Is(article.Author.Username) {
		return nil, errs.Forbidden(forbidden)
	}
	return article, nil
}

func (s *articleService) find(ctx context.Context, slug string) (*models.ArticleRecord, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return nil, errs.NotFound("article")
	}
	return article, nil
}

func (s *articleService) load(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
	article, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := mapper.Article(article, viewer)
	return &resp, nil
}
