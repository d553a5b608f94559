package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/repository"
)

type edge struct {
	from, to int64
}

// Store is an in-memory relational store shared by the mock repositories.
// Predicates are evaluated with query.Eval so the mocks filter exactly like
// the SQL compiler does.
type Store struct {
	mu sync.Mutex

	Users    map[int64]*models.User
	Articles map[int64]*models.Article
	Tags     map[int64]*models.Tag
	Comments map[int64]*models.Comment

	follows     map[edge]struct{} // follower -> followee
	articleTags map[edge]struct{} // article -> tag
	favorites   map[edge]struct{} // article -> user

	nextID int64

	// Err, when set, is returned by every repository call
	Err error
}

func NewStore() *Store {
	return &Store{
		Users:       make(map[int64]*models.User),
		Articles:    make(map[int64]*models.Article),
		Tags:        make(map[int64]*models.Tag),
		Comments:    make(map[int64]*models.Comment),
		follows:     make(map[edge]struct{}),
		articleTags: make(map[edge]struct{}),
		favorites:   make(map[edge]struct{}),
		nextID:      100,
	}
}

// Repositories returns repository implementations backed by the store
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:    &MockUserRepository{store: s},
		Article: &MockArticleRepository{store: s},
		Tag:     &MockTagRepository{store: s},
		Comment: &MockCommentRepository{store: s},
	}
}

// AddUser seeds a user. A zero ID is assigned automatically.
func (s *Store) AddUser(user models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		user.ID = s.id()
	}
	u := user
	s.Users[u.ID] = &u
	return &u
}

// Following reports whether followerID follows followeeID
func (s *Store) Following(followerID, followeeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.follows[edge{followerID, followeeID}]
	return ok
}

// FollowCount returns the number of follow edges
func (s *Store) FollowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) userByName(username string) *models.User {
	for _, u := range s.Users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (s *Store) articleBySlug(slug string) *models.Article {
	for _, a := range s.Articles {
		if a.Slug == slug {
			return a
		}
	}
	return nil
}

func (s *Store) profile(userID int64) models.ProfileRecord {
	u := s.Users[userID]
	if u == nil {
		return models.ProfileRecord{ID: userID}
	}
	rec := models.ProfileRecord{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
		Demo:     u.Demo,
	}
	for e := range s.follows {
		if e.to == userID {
			if follower := s.Users[e.from]; follower != nil {
				rec.FollowedBy = append(rec.FollowedBy, follower.Username)
			}
		}
	}
	sort.Strings(rec.FollowedBy)
	return rec
}

func (s *Store) tagNames(articleID int64) []string {
	var names []string
	for e := range s.articleTags {
		if e.from == articleID {
			names = append(names, s.Tags[e.to].Name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Store) favoritedBy(articleID int64) []string {
	var names []string
	for e := range s.favorites {
		if e.from == articleID {
			if u := s.Users[e.to]; u != nil {
				names = append(names, u.Username)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (s *Store) articleRecord(a *models.Article) *models.ArticleRecord {
	return &models.ArticleRecord{
		Article:     *a,
		Author:      s.profile(a.AuthorID),
		TagList:     s.tagNames(a.ID),
		FavoritedBy: s.favoritedBy(a.ID),
	}
}

func (s *Store) matchArticle(rec *models.ArticleRecord) func(query.Cond) bool {
	return func(c query.Cond) bool {
		switch c.Field {
		case query.AuthorDemo:
			return rec.Author.Demo == c.Value.(bool)
		case query.AuthorUsername:
			return rec.Author.Username == c.Value.(string)
		case query.TagName:
			return contains(rec.TagList, c.Value.(string))
		case query.FavoritedBy:
			return contains(rec.FavoritedBy, c.Value.(string))
		case query.AuthorFollowedBy:
			_, ok := s.follows[edge{c.Value.(int64), rec.AuthorID}]
			return ok
		default:
			return false
		}
	}
}

func (s *Store) attachTags(articleID int64, names []string) {
	for _, name := range names {
		var tag *models.Tag
		for _, t := range s.Tags {
			if t.Name == name {
				tag = t
				break
			}
		}
		if tag == nil {
			tag = &models.Tag{ID: s.id(), Name: name}
			s.Tags[tag.ID] = tag
		}
		s.articleTags[edge{articleID, tag.ID}] = struct{}{}
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	store *Store
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u := s.userByName(username)
	if u == nil {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *MockUserRepository) GetProfile(ctx context.Context, username string) (*models.ProfileRecord, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u := s.userByName(username)
	if u == nil {
		return nil, nil
	}
	rec := s.profile(u.ID)
	return &rec, nil
}

func (m *MockUserRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.follows[edge{followerID, followeeID}] = struct{}{}
	return nil
}

func (m *MockUserRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.follows, edge{followerID, followeeID})
	return nil
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	now := time.Now().UTC()
	if existing := s.userByName(user.Username); existing != nil {
		existing.Bio, existing.Image, existing.Demo = user.Bio, user.Image, user.Demo
		existing.UpdatedAt = now
		user.ID, user.CreatedAt, user.UpdatedAt = existing.ID, existing.CreatedAt, now
		return nil
	}
	user.ID, user.CreatedAt, user.UpdatedAt = s.id(), now, now
	u := *user
	s.Users[u.ID] = &u
	return nil
}

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	store *Store
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func (m *MockArticleRepository) FindMany(ctx context.Context, where query.Predicate, page query.Page) ([]*models.ArticleRecord, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var matched []*models.ArticleRecord
	for _, a := range s.Articles {
		rec := s.articleRecord(a)
		if query.Eval(where, s.matchArticle(rec)) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	page = page.Normalize()
	if page.Offset >= len(matched) {
		return []*models.ArticleRecord{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end], nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.ArticleRecord, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a := s.articleBySlug(slug)
	if a == nil {
		return nil, nil
	}
	return s.articleRecord(a), nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.articleBySlug(slug) != nil, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article, tags []string) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.articleBySlug(article.Slug) != nil {
		return errs.Conflict("title")
	}

	article.ID = s.id()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
		article.UpdatedAt = article.CreatedAt
	}
	stored := *article
	s.Articles[stored.ID] = &stored
	s.attachTags(stored.ID, tags)
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id int64, patch *models.ArticlePatch) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	a := s.Articles[id]
	if a == nil {
		return nil
	}
	if patch.Slug != "" {
		if other := s.articleBySlug(patch.Slug); other != nil && other.ID != id {
			return errs.Conflict("title")
		}
		a.Slug = patch.Slug
	}
	if patch.Title != "" {
		a.Title = patch.Title
	}
	if patch.Description != "" {
		a.Description = patch.Description
	}
	if patch.Body != "" {
		a.Body = patch.Body
	}
	a.UpdatedAt = patch.UpdatedAt
	if patch.TagList != nil {
		for e := range s.articleTags {
			if e.from == id {
				delete(s.articleTags, e)
			}
		}
		s.attachTags(id, patch.TagList)
	}
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Articles, id)
	for e := range s.articleTags {
		if e.from == id {
			delete(s.articleTags, e)
		}
	}
	for e := range s.favorites {
		if e.from == id {
			delete(s.favorites, e)
		}
	}
	for cid, c := range s.Comments {
		if c.ArticleID == id {
			delete(s.Comments, cid)
		}
	}
	return nil
}

func (m *MockArticleRepository) AddFavorite(ctx context.Context, articleID, userID int64) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.favorites[edge{articleID, userID}] = struct{}{}
	return nil
}

func (m *MockArticleRepository) RemoveFavorite(ctx context.Context, articleID, userID int64) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.favorites, edge{articleID, userID})
	return nil
}

// MockTagRepository is an in-memory implementation of TagRepository
type MockTagRepository struct {
	store *Store
}

var _ repository.TagRepository = (*MockTagRepository)(nil)

func (m *MockTagRepository) ListNames(ctx context.Context, where query.Predicate) ([]string, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	seen := make(map[string]struct{})
	for _, a := range s.Articles {
		rec := s.articleRecord(a)
		if !query.Eval(where, s.matchArticle(rec)) {
			continue
		}
		for _, name := range rec.TagList {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// MockCommentRepository is an in-memory implementation of CommentRepository
type MockCommentRepository struct {
	store *Store
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) record(c *models.Comment) *models.CommentRecord {
	return &models.CommentRecord{Comment: *c, Author: m.store.profile(c.AuthorID)}
}

func (m *MockCommentRepository) FindMany(ctx context.Context, where query.Predicate) ([]*models.CommentRecord, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	matched := make([]*models.CommentRecord, 0)
	for _, c := range s.Comments {
		rec := m.record(c)
		article := s.Articles[c.ArticleID]
		match := func(cond query.Cond) bool {
			switch cond.Field {
			case query.AuthorDemo:
				return rec.Author.Demo == cond.Value.(bool)
			case query.AuthorUsername:
				return rec.Author.Username == cond.Value.(string)
			case query.ArticleSlug:
				return article != nil && article.Slug == cond.Value.(string)
			default:
				return false
			}
		}
		if query.Eval(where, match) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.CommentRecord, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c := s.Comments[id]
	if c == nil {
		return nil, nil
	}
	return m.record(c), nil
}

func (m *MockCommentRepository) GetForAuthor(ctx context.Context, id int64, authorUsername string) (*models.CommentRecord, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c := s.Comments[id]
	if c == nil {
		return nil, nil
	}
	if author := s.Users[c.AuthorID]; author == nil || author.Username != authorUsername {
		return nil, nil
	}
	return m.record(c), nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	comment.ID = s.id()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	s.Comments[stored.ID] = &stored
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Comments, id)
	return nil
}
