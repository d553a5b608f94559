package service

import (
	"context"
	"fmt"

	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/repository"
)

type tagService struct {
	tags repository.TagRepository
}

func newTagService(tags repository.TagRepository) *tagService {
	return &tagService{tags: tags}
}

// ListTags returns the names of tags used by articles visible to the viewer
func (s *tagService) ListTags(ctx context.Context, viewer models.Viewer) ([]string, error) {
	names, err := s.tags.ListNames(ctx, query.TagCloud(viewer))
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return names, nil
}
