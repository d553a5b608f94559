package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-api/internal/models"
)

func sampleArticle() *models.ArticleRecord {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.ArticleRecord{
		Article: models.Article{
			ID:          1,
			Slug:        "how-to-train-your-dragon-2",
			Title:       "How to train your dragon",
			Description: "Ever wonder how?",
			Body:        "You have to believe",
			AuthorID:    2,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		Author: models.ProfileRecord{
			ID:         2,
			Username:   "jake",
			FollowedBy: []string{"alice"},
		},
		TagList:     []string{"dragons", "training"},
		FavoritedBy: []string{"alice", "bob"},
	}
}

func TestArticle(t *testing.T) {
	rec := sampleArticle()

	resp := Article(rec, models.AuthenticatedAs("alice"))
	assert.Equal(t, "how-to-train-your-dragon-2", resp.Slug)
	assert.True(t, resp.Favorited)
	assert.Equal(t, 2, resp.FavoritesCount)
	assert.True(t, resp.Author.Following)

	resp = Article(rec, models.AuthenticatedAs("carol"))
	assert.False(t, resp.Favorited)
	assert.False(t, resp.Author.Following)

	resp = Article(rec, models.Anonymous())
	assert.False(t, resp.Favorited)
	assert.Equal(t, 2, resp.FavoritesCount)
}

func TestArticle_WireShape(t *testing.T) {
	rec := sampleArticle()
	rec.TagList = nil

	data, err := json.Marshal(Article(rec, models.Anonymous()))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, []interface{}{}, body["tagList"])
	assert.Equal(t, "2024-03-01T12:00:00Z", body["createdAt"])
	assert.Equal(t, float64(2), body["favoritesCount"])
	assert.Contains(t, body, "author")
	assert.NotContains(t, body, "id")
}

func TestArticles(t *testing.T) {
	list := Articles([]*models.ArticleRecord{sampleArticle(), sampleArticle()}, models.Anonymous())
	assert.Len(t, list.Articles, 2)
	assert.Equal(t, 2, list.Count)

	empty := Articles(nil, models.Anonymous())
	assert.NotNil(t, empty.Articles)
	assert.Equal(t, 0, empty.Count)
}

func TestCommentAndProfile(t *testing.T) {
	bio := "I work at statefarm"
	rec := &models.CommentRecord{
		Comment: models.Comment{ID: 5, Body: "It takes a Jacobian"},
		Author:  models.ProfileRecord{Username: "jake", Bio: &bio, FollowedBy: []string{"bob"}},
	}

	resp := Comment(rec, models.AuthenticatedAs("bob"))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "It takes a Jacobian", resp.Body)
	assert.Equal(t, &bio, resp.Author.Bio)
	assert.True(t, resp.Author.Following)

	assert.Empty(t, Comments(nil, models.Anonymous()))
	assert.NotNil(t, Comments(nil, models.Anonymous()))

	profile := Profile(rec.Author, models.Anonymous())
	assert.Equal(t, models.Profile{Username: "jake", Bio: &bio}, profile)
}
