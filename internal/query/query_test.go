package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conduit-api/internal/models"
)

// author is a flat record the tests evaluate predicates against
type author struct {
	username string
	demo     bool
	tags     []string
}

func (a author) match(c Cond) bool {
	switch c.Field {
	case AuthorDemo:
		return a.demo == c.Value.(bool)
	case AuthorUsername:
		return a.username == c.Value.(string)
	case TagName:
		for _, t := range a.tags {
			if t == c.Value.(string) {
				return true
			}
		}
	}
	return false
}

func TestEval_EmptyNodes(t *testing.T) {
	never := func(Cond) bool { return false }

	assert.True(t, Eval(nil, never))
	assert.True(t, Eval(And{}, never))
	assert.False(t, Eval(Or{}, never))
	assert.False(t, Eval(And{Or{}}, never))
}

func TestVisibility(t *testing.T) {
	demo := author{username: "demo", demo: true}
	alice := author{username: "alice"}
	bob := author{username: "bob"}

	anon := Visibility(models.Anonymous())
	assert.Equal(t, Or{Eq(AuthorDemo, true)}, anon)
	assert.True(t, Eval(anon, demo.match))
	assert.False(t, Eval(anon, alice.match))

	viewer := Visibility(models.AuthenticatedAs("alice"))
	assert.True(t, Eval(viewer, demo.match))
	assert.True(t, Eval(viewer, alice.match))
	assert.False(t, Eval(viewer, bob.match))
}

func TestArticleList(t *testing.T) {
	bobName, goTag := "bob", "go"
	demo := author{username: "demo", demo: true, tags: []string{"go"}}
	alice := author{username: "alice", tags: []string{"go"}}
	bob := author{username: "bob", tags: []string{"go"}}

	tests := []struct {
		name   string
		filter models.ArticleFilter
		viewer models.Viewer
		want   map[string]bool
	}{
		{
			name:   "no filter anonymous",
			viewer: models.Anonymous(),
			want:   map[string]bool{"demo": true, "alice": false, "bob": false},
		},
		{
			name:   "author filter on hidden author",
			filter: models.ArticleFilter{Author: &bobName},
			viewer: models.AuthenticatedAs("alice"),
			want:   map[string]bool{"demo": false, "alice": false, "bob": false},
		},
		{
			name:   "author filter on self",
			filter: models.ArticleFilter{Author: &bobName},
			viewer: models.AuthenticatedAs("bob"),
			want:   map[string]bool{"demo": false, "alice": false, "bob": true},
		},
		{
			name:   "tag filter",
			filter: models.ArticleFilter{Tag: &goTag},
			viewer: models.AuthenticatedAs("alice"),
			want:   map[string]bool{"demo": true, "alice": true, "bob": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ArticleList(tt.filter, tt.viewer)
			for _, a := range []author{demo, alice, bob} {
				assert.Equal(t, tt.want[a.username], Eval(p, a.match), a.username)
			}
		})
	}
}

func TestArticleList_Shape(t *testing.T) {
	author, tag, fav := "alice", "go", "bob"
	p := ArticleList(models.ArticleFilter{Author: &author, Tag: &tag, Favorited: &fav}, models.Anonymous())

	assert.Equal(t, And{
		And{Or{Eq(AuthorDemo, true)}, Eq(AuthorUsername, "alice")},
		Eq(TagName, "go"),
		Eq(FavoritedBy, "bob"),
	}, p)
	assert.Len(t, Leaves(p), 4)
}

func TestCommentListAndFeed(t *testing.T) {
	p := CommentList("hello-1", models.AuthenticatedAs("alice"))
	assert.Equal(t, And{
		Eq(ArticleSlug, "hello-1"),
		Or{Eq(AuthorDemo, true), Eq(AuthorUsername, "alice")},
	}, p)

	assert.Equal(t, Eq(AuthorFollowedBy, int64(3)), Feed(3))
	assert.Equal(t, Visibility(models.Anonymous()), TagCloud(models.Anonymous()))
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		offset, limit string
		want          Page
	}{
		{"", "", Page{0, 10}},
		{"20", "5", Page{20, 5}},
		{"-1", "-5", Page{0, 10}},
		{"abc", "1.5", Page{0, 10}},
		{"3", "0", Page{3, 10}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePage(tt.offset, tt.limit), "offset=%q limit=%q", tt.offset, tt.limit)
	}

	assert.Equal(t, DefaultPage(), Page{Offset: -4}.Normalize())
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "author.demo", AuthorDemo.String())
	assert.Equal(t, "article.slug", ArticleSlug.String())
	assert.Equal(t, "unknown", Field(0).String())
}
