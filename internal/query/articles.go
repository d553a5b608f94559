package query

import (
	"github.com/conduit-api/internal/models"
)

// Visibility restricts results to content authored by demo accounts or,
// when a viewer is present, by the viewer.
func Visibility(viewer models.Viewer) Predicate {
	visible := Or{Eq(AuthorDemo, true)}
	if username, ok := viewer.Username(); ok {
		visible = append(visible, Eq(AuthorUsername, username))
	}
	return visible
}

// ArticleList builds the predicate for listing articles. The author filter is a
// separate conjunct next to Visibility, so filtering by a non-demo author other
// than the viewer matches nothing.
func ArticleList(filter models.ArticleFilter, viewer models.Viewer) Predicate {
	author := And{Visibility(viewer)}
	if filter.Author != nil {
		author = append(author, Eq(AuthorUsername, *filter.Author))
	}

	p := And{author}
	if filter.Tag != nil {
		p = append(p, Eq(TagName, *filter.Tag))
	}
	if filter.Favorited != nil {
		p = append(p, Eq(FavoritedBy, *filter.Favorited))
	}
	return p
}

// Feed matches articles written by authors the user followerID follows
func Feed(followerID int64) Predicate {
	return Eq(AuthorFollowedBy, followerID)
}

// CommentList matches the comments of an article that the viewer may see
func CommentList(slug string, viewer models.Viewer) Predicate {
	return And{Eq(ArticleSlug, slug), Visibility(viewer)}
}

// TagCloud matches the articles whose tags are listed to the viewer
func TagCloud(viewer models.Viewer) Predicate {
	return Visibility(viewer)
}
