package mapper

import (
	"github.com/conduit-api/internal/models"
)

// Article maps an article record for the viewer
func Article(rec *models.ArticleRecord, viewer models.Viewer) models.ArticleResponse {
	tags := rec.TagList
	if tags == nil {
		tags = []string{}
	}
	return models.ArticleResponse{
		Slug:           rec.Slug,
		Title:          rec.Title,
		Description:    rec.Description,
		Body:           rec.Body,
		TagList:        tags,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
		Favorited:      viewer.In(rec.FavoritedBy),
		FavoritesCount: len(rec.FavoritedBy),
		Author:         Profile(rec.Author, viewer),
	}
}

// Articles maps a page of records
func Articles(recs []*models.ArticleRecord, viewer models.Viewer) models.ArticleList {
	out := make([]models.ArticleResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Article(rec, viewer))
	}
	return models.ArticleList{Articles: out, Count: len(out)}
}
