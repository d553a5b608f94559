// Package mapper turns persisted records into wire responses relative to a viewer.
package mapper

import (
	"github.com/conduit-api/internal/models"
)

// Profile maps a user record; Following is true when the viewer follows the user
func Profile(rec models.ProfileRecord, viewer models.Viewer) models.Profile {
	return models.Profile{
		Username:  rec.Username,
		Bio:       rec.Bio,
		Image:     rec.Image,
		Following: viewer.In(rec.FollowedBy),
	}
}
