package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/repository"
	"github.com/conduit-api/internal/service"
)

// disabledPassword cannot be produced by any password hash, so demo
// accounts can never sign in.
const disabledPassword = "!"

type demoArticle struct {
	title       string
	description string
	body        string
	tags        []string
	comments    []demoComment
}

type demoComment struct {
	author string
	body   string
}

type demoAuthor struct {
	username string
	bio      string
	articles []demoArticle
}

// demoAuthors is the content every visitor sees on a fresh install
var demoAuthors = []demoAuthor{
	{
		username: "conduit",
		bio:      "The official Conduit account.",
		articles: []demoArticle{
			{
				title:       "Welcome to Conduit",
				description: "What this place is for",
				body:        "Conduit is a place to share articles. Sign in to write your own, follow authors and keep your favorites.",
				tags:        []string{"welcome", "conduit"},
				comments: []demoComment{
					{author: "gopher", body: "Glad to be here."},
				},
			},
			{
				title:       "Writing your first article",
				description: "Titles, tags and markdown",
				body:        "Every article needs a title, a short description and a body. Tags help readers find it.",
				tags:        []string{"conduit", "howto"},
			},
		},
	},
	{
		username: "gopher",
		bio:      "Writes about Go.",
		articles: []demoArticle{
			{
				title:       "Context cancellation in practice",
				description: "Stop work nobody is waiting for",
				body:        "Pass a context.Context to every blocking call and return as soon as it is done.",
				tags:        []string{"go", "howto"},
				comments: []demoComment{
					{author: "conduit", body: "A good one to start with."},
				},
			},
		},
	},
}

// Seeder loads the demo accounts and their content
type Seeder struct {
	users    repository.UserRepository
	services *service.Services
	log      zerolog.Logger
}

// New creates a new Seeder
func New(users repository.UserRepository, services *service.Services, log zerolog.Logger) *Seeder {
	return &Seeder{
		users:    users,
		services: services,
		log:      log.With().Str("component", "seed").Logger(),
	}
}

// Run upserts the demo accounts and publishes their articles through the
// services. Articles that already exist are skipped, so running it again
// is harmless. It returns the number of articles created.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	for _, author := range demoAuthors {
		bio := author.bio
		user := &models.User{
			Username: author.username,
			Email:    author.username + "@demo.conduit",
			Password: disabledPassword,
			Bio:      &bio,
			Demo:     true,
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return 0, fmt.Errorf("failed to upsert demo user %s: %w", author.username, err)
		}
	}

	created := 0
	for _, author := range demoAuthors {
		viewer := models.AuthenticatedAs(author.username)
		for _, a := range author.articles {
			article, err := s.services.Article.CreateArticle(ctx, &models.ArticlePayload{
				Title:       a.title,
				Description: a.description,
				Body:        a.body,
				TagList:     a.tags,
			}, viewer)
			if errs.Is(err, errs.KindConflict) {
				continue
			}
			if err != nil {
				return created, fmt.Errorf("failed to create demo article %q: %w", a.title, err)
			}
			created++

			for _, c := range a.comments {
				_, err := s.services.Comment.AddComment(ctx, &models.CommentPayload{Body: c.body}, article.Slug, models.AuthenticatedAs(c.author))
				if err != nil {
					return created, fmt.Errorf("failed to comment on %s: %w", article.Slug, err)
				}
			}
		}
	}

	for _, follower := range demoAuthors {
		for _, followee := range demoAuthors {
			if follower.username == followee.username {
				continue
			}
			if _, err := s.services.Profile.FollowUser(ctx, followee.username, models.AuthenticatedAs(follower.username)); err != nil {
				return created, fmt.Errorf("failed to follow %s: %w", followee.username, err)
			}
		}
	}

	s.log.Info().
		Int("users", len(demoAuthors)).
		Int("articles_created", created).
		Msg("Demo content seeded")
	return created, nil
}
