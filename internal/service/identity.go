package service

import (
	"context"
	"fmt"
	"strconv"

	slugify "github.com/gosimple/slug"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/repository"
)

// identityLookup resolves usernames to user ids
type identityLookup struct {
	users repository.UserRepository
}

// userID returns the id of username, or NotFound
func (l identityLookup) userID(ctx context.Context, username string) (int64, error) {
	user, err := l.users.GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	if user == nil {
		return 0, errs.NotFound("user")
	}
	return user.ID, nil
}

// viewerID resolves the viewer, rejecting anonymous viewers
func (l identityLookup) viewerID(ctx context.Context, viewer models.Viewer) (int64, error) {
	username, ok := viewer.Username()
	if !ok {
		return 0, errs.Unauthorized("missing authorization credentials")
	}
	return l.userID(ctx, username)
}

// articleSlug derives the slug of an article from its title and author
func articleSlug(title string, authorID int64) string {
	return slugify.Make(title) + "-" + strconv.FormatInt(authorID, 10)
}
