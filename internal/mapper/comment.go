package mapper

import (
	"github.com/conduit-api/internal/models"
)

// Comment maps a comment record to its wire shape for the viewer
func Comment(rec *models.CommentRecord, viewer models.Viewer) models.CommentResponse {
	return models.CommentResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Body:      rec.Body,
		Author:    Profile(rec.Author, viewer),
	}
}

// Comments maps records in order, returning an empty slice rather than nil
func Comments(recs []*models.CommentRecord, viewer models.Viewer) []models.CommentResponse {
	out := make([]models.CommentResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Comment(rec, viewer))
	}
	return out
}
