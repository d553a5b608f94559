package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
)

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name      string
		article   models.ArticlePayload
		wantField string
	}{
		{
			name:    "valid article",
			article: models.ArticlePayload{Title: "Hello", Description: "d", Body: "b"},
		},
		{
			name:      "missing title",
			article:   models.ArticlePayload{Description: "d", Body: "b"},
			wantField: "title",
		},
		{
			name:      "missing description",
			article:   models.ArticlePayload{Title: "Hello", Body: "b"},
			wantField: "description",
		},
		{
			name:      "missing body",
			article:   models.ArticlePayload{Title: "Hello", Description: "d"},
			wantField: "body",
		},
		{
			name:      "everything missing reports title first",
			article:   models.ArticlePayload{},
			wantField: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticle(&tt.article)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var e *errs.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errs.KindValidation, e.Kind)
			assert.Equal(t, 422, e.Status)
			assert.Equal(t, []string{"can't be blank"}, e.Fields[tt.wantField])
			assert.Len(t, e.Fields, 1)
		})
	}
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, ValidateComment(&models.CommentPayload{Body: "nice"}))

	err := ValidateComment(&models.CommentPayload{})
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestUniqueTags(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, UniqueTags([]string{"go", "", "sql", "go"}))
	assert.Nil(t, UniqueTags(nil))
	assert.Empty(t, UniqueTags([]string{""}))
}
