package validation

import (
	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
)

// ValidateArticle checks the fields required to create an article.
// Fields are checked in order and the first blank one is reported.
func ValidateArticle(article *models.ArticlePayload) error {
	if article.Title == "" {
		return errs.Blank("title")
	}
	if article.Description == "" {
		return errs.Blank("description")
	}
	if article.Body == "" {
		return errs.Blank("body")
	}
	return nil
}

// ValidateComment checks a comment body
func ValidateComment(comment *models.CommentPayload) error {
	if comment.Body == "" {
		return errs.Blank("body")
	}
	return nil
}

// UniqueTags drops empty and repeated tag names, keeping first occurrences in order
func UniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
