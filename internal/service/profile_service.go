package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/mapper"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/repository"
)

// profileService is the concrete implementation of ProfileService
type profileService struct {
	users    repository.UserRepository
	identity identityLookup
	log      zerolog.Logger
}

// newProfileService creates a new ProfileService
func newProfileService(users repository.UserRepository, identity identityLookup, log zerolog.Logger) *profileService {
	return &profileService{
		users:    users,
		identity: identity,
		log:      log.With().Str("service", "profile").Logger(),
	}
}

// GetProfile returns the profile of username as seen by the viewer
func (s *profileService) GetProfile(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error) {
	record, err := s.find(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := mapper.Profile(*record, viewer)
	return &profile, nil
}

// FollowUser makes the viewer follow username. Following oneself is rejected.
func (s *profileService) FollowUser(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error) {
	return s.setFollow(ctx, username, viewer, true)
}

// UnfollowUser removes the viewer's follow of username
func (s *profileService) UnfollowUser(ctx context.Context, username string, viewer models.Viewer) (*models.Profile, error) {
	return s.setFollow(ctx, username, viewer, false)
}

func (s *profileService) setFollow(ctx context.Context, username string, viewer models.Viewer, follow bool) (*models.Profile, error) {
	followerID, err := s.identity.viewerID(ctx, viewer)
	if err != nil {
		return nil, err
	}

	target, err := s.find(ctx, username)
	if err != nil {
		return nil, err
	}

	if follow {
		if target.ID == followerID {
			return nil, errs.Validation("username", "cannot follow yourself")
		}
		err = s.users.Follow(ctx, followerID, target.ID)
	} else {
		err = s.users.Unfollow(ctx, followerID, target.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update follow: %w", err)
	}

	s.log.Debug().Str("target", username).Bool("follow", follow).Msg("Follow updated")

	return s.GetProfile(ctx, username, viewer)
}

func (s *profileService) find(ctx context.Context, username string) (*models.ProfileRecord, error) {
	record, err := s.users.GetProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if record == nil {
		return nil, errs.NotFound("profile")
	}
	return record, nil
}
