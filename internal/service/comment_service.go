package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/mapper"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/repository"
	"github.com/conduit-api/internal/validation"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	identity identityLookup
	log      zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	identity identityLookup,
	log zerolog.Logger,
) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		identity: identity,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// ListComments returns the comments on an article written by demo accounts
// or by the viewer. Other users' comments are never listed.
func (s *commentService) ListComments(ctx context.Context, slug string, viewer models.Viewer) ([]models.CommentResponse, error) {
	records, err := s.comments.FindMany(ctx, query.CommentList(slug, viewer))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return mapper.Comments(records, viewer), nil
}

// AddComment stores a comment by the viewer on the article at slug
func (s *commentService) AddComment(ctx context.Context, payload *models.CommentPayload, slug string, viewer models.Viewer) (*models.CommentResponse, error) {
	if err := validation.ValidateComment(payload); err != nil {
		return nil, err
	}

	authorID, err := s.identity.viewerID(ctx, viewer)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return nil, errs.NotFound("article")
	}

	comment := &models.Comment{
		ArticleID: article.ID,
		AuthorID:  authorID,
		Body:      payload.Body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	record, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if record == nil {
		return nil, errs.NotFound("comment")
	}

	s.log.Info().Int64("comment_id", comment.ID).Str("slug", slug).Msg("Comment added")

	resp := mapper.Comment(record, viewer)
	return &resp, nil
}

// DeleteComment removes a comment written by the viewer. The lookup is already
// scoped to the viewer, so the ownership check below only guards the store contract.
func (s *commentService) DeleteComment(ctx context.Context, id int64, viewer models.Viewer) error {
	username, ok := viewer.Username()
	if !ok {
		return errs.Unauthorized("missing authorization credentials")
	}

	comment, err := s.comments.GetForAuthor(ctx, id, username)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return errs.NotFound("comment")
	}
	if comment.Author.Username != username {
		return errs.Forbidden("You are not authorized to delete this comment")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.log.Info().Int64("comment_id", id).Msg("Comment deleted")
	return nil
}
