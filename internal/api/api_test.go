package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-api/internal/api"
	"github.com/conduit-api/internal/config"
	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/mocks"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/service"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth:   config.AuthConfig{JWTSecret: testSecret},
	}
}

func token(t *testing.T, username string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, api.Claims{Username: username}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Token " + signed
}

// setupStoreRouter wires the real services over the in-memory store
func setupStoreRouter(t *testing.T) (*gin.Engine, *mocks.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mocks.NewStore()
	store.AddUser(models.User{ID: 1, Username: "demo", Email: "demo@example.com", Demo: true})
	store.AddUser(models.User{ID: 7, Username: "alice", Email: "alice@example.com"})
	store.AddUser(models.User{ID: 9, Username: "bob", Email: "bob@example.com"})

	services := service.NewServices(store.Repositories(), zerolog.Nop())
	return api.NewRouter(services, testConfig(), zerolog.Nop()), store
}

func do(router *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupStoreRouter(t)

	w := do(router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "conduit-api", response["service"])
	assert.NotEmpty(t, w.Header().Get(api.RequestIDHeader))
}

func TestHealthEndpoint_Unhealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	services, _, _, _, _ := mocks.NewMockServices()
	failing := func(ctx context.Context) error { return errors.New("connection refused") }
	router := api.NewRouter(services, testConfig(), zerolog.Nop(), failing)

	w := do(router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decode(t, w)["status"])
}

func TestRequestIDPropagation(t *testing.T) {
	router, _ := setupStoreRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(api.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(api.RequestIDHeader))
}

func TestArticleLifecycle(t *testing.T) {
	router, _ := setupStoreRouter(t)
	alice := token(t, "alice")

	w := do(router, "POST", "/api/articles", alice, gin.H{"article": gin.H{
		"title":       "Hello World",
		"description": "first post",
		"body":        "content",
		"tagList":     []string{"intro"},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	article := decode(t, w)["article"].(map[string]interface{})
	assert.Equal(t, "hello-world-7", article["slug"])
	assert.Equal(t, []interface{}{"intro"}, article["tagList"])
	assert.Equal(t, false, article["favorited"])
	assert.Equal(t, float64(0), article["favoritesCount"])
	assert.Equal(t, "alice", article["author"].(map[string]interface{})["username"])

	// alice's articles are hidden from anonymous readers
	w = do(router, "GET", "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Empty(t, list["articles"])
	assert.Equal(t, float64(0), list["articlesCount"])

	w = do(router, "GET", "/api/articles?limit=5", alice, nil)
	list = decode(t, w)
	assert.Len(t, list["articles"], 1)
	assert.Equal(t, float64(1), list["articlesCount"])

	w = do(router, "POST", "/api/articles/hello-world-7/favorite", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	article = decode(t, w)["article"].(map[string]interface{})
	assert.Equal(t, true, article["favorited"])
	assert.Equal(t, float64(1), article["favoritesCount"])

	w = do(router, "PUT", "/api/articles/hello-world-7", token(t, "bob"), gin.H{"article": gin.H{"title": "Mine"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not authorized to update this article", decode(t, w)["message"])

	w = do(router, "PUT", "/api/articles/hello-world-7", alice, gin.H{"article": gin.H{"title": "Goodbye World"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "goodbye-world-7", decode(t, w)["article"].(map[string]interface{})["slug"])

	w = do(router, "DELETE", "/api/articles/goodbye-world-7", alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, "GET", "/api/articles/goodbye-world-7", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]interface{}{"errors": map[string]interface{}{"article": []interface{}{"not found"}}}, decode(t, w))
}

func TestCreateArticle_Errors(t *testing.T) {
	router, _ := setupStoreRouter(t)
	alice := token(t, "alice")

	w := do(router, "POST", "/api/articles", alice, gin.H{"article": gin.H{"title": "Only a title"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]interface{}{"errors": map[string]interface{}{"description": []interface{}{"can't be blank"}}}, decode(t, w))

	payload := gin.H{"article": gin.H{"title": "Twice", "description": "d", "body": "b"}}
	require.Equal(t, http.StatusCreated, do(router, "POST", "/api/articles", alice, payload).Code)
	w = do(router, "POST", "/api/articles", alice, payload)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]interface{}{"errors": map[string]interface{}{"title": []interface{}{"must be unique"}}}, decode(t, w))

	req := httptest.NewRequest("POST", "/api/articles", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", alice)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthentication(t *testing.T) {
	router, _ := setupStoreRouter(t)

	w := do(router, "POST", "/api/articles", "", gin.H{"article": gin.H{}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, map[string]interface{}{"status": "error", "message": "missing authorization credentials"}, decode(t, w))

	w = do(router, "GET", "/api/articles/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a bad token is rejected even on routes where auth is optional
	w = do(router, "GET", "/api/articles", "Token not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, api.Claims{Username: "alice"}).SignedString([]byte("other"))
	require.NoError(t, err)
	w = do(router, "GET", "/api/articles", "Bearer "+forged, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, "GET", "/api/articles", "Basic abc", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	bearer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, api.Claims{Username: "alice"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	w = do(router, "GET", "/api/articles/feed", "Bearer "+bearer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestComments(t *testing.T) {
	router, _ := setupStoreRouter(t)
	demo, alice, bob := token(t, "demo"), token(t, "alice"), token(t, "bob")

	w := do(router, "POST", "/api/articles", demo, gin.H{"article": gin.H{"title": "Open", "description": "d", "body": "b"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, "POST", "/api/articles/open-1/comments", alice, gin.H{"comment": gin.H{"body": "hi from alice"}})
	require.Equal(t, http.StatusCreated, w.Code)
	comment := decode(t, w)["comment"].(map[string]interface{})
	assert.Equal(t, "hi from alice", comment["body"])
	id := int64(comment["id"].(float64))

	w = do(router, "POST", "/api/articles/open-1/comments", alice, gin.H{"comment": gin.H{"body": ""}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(router, "GET", "/api/articles/open-1/comments", "", nil)
	assert.Empty(t, decode(t, w)["comments"])

	w = do(router, "GET", "/api/articles/open-1/comments", alice, nil)
	assert.Len(t, decode(t, w)["comments"], 1)

	path := "/api/articles/open-1/comments/" + strconv.FormatInt(id, 10)
	assert.Equal(t, http.StatusNotFound, do(router, "DELETE", path, bob, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(router, "DELETE", path, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(router, "DELETE", "/api/articles/open-1/comments/abc", alice, nil).Code)
}

func TestProfilesAndTags(t *testing.T) {
	router, store := setupStoreRouter(t)
	alice := token(t, "alice")

	w := do(router, "POST", "/api/profiles/bob/follow", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode(t, w)["profile"].(map[string]interface{})
	assert.Equal(t, "bob", profile["username"])
	assert.Equal(t, true, profile["following"])
	assert.Nil(t, profile["bio"])
	assert.True(t, store.Following(7, 9))

	w = do(router, "POST", "/api/profiles/alice/follow", alice, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(router, "GET", "/api/profiles/bob", "", nil)
	assert.Equal(t, false, decode(t, w)["profile"].(map[string]interface{})["following"])

	w = do(router, "DELETE", "/api/profiles/bob/follow", alice, nil)
	assert.Equal(t, false, decode(t, w)["profile"].(map[string]interface{})["following"])

	assert.Equal(t, http.StatusNotFound, do(router, "GET", "/api/profiles/ghost", "", nil).Code)

	do(router, "POST", "/api/articles", token(t, "demo"), gin.H{"article": gin.H{
		"title": "Tagged", "description": "d", "body": "b", "tagList": []string{"go", "api"},
	}})
	w = do(router, "GET", "/api/tags", "", nil)
	assert.Equal(t, []interface{}{"api", "go"}, decode(t, w)["tags"])
}

// setupMockRouter wires func-field service mocks
func setupMockRouter() (*gin.Engine, *mocks.MockArticleService, *mocks.MockCommentService) {
	gin.SetMode(gin.TestMode)
	services, articles, comments, _, _ := mocks.NewMockServices()
	return api.NewRouter(services, testConfig(), zerolog.Nop()), articles, comments
}

func TestListArticles_QueryParams(t *testing.T) {
	router, articles, _ := setupMockRouter()

	w := do(router, "GET", "/api/articles?author=jake&tag=dragons&offset=20&limit=abc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, articles.LastFilter.Author)
	assert.Equal(t, "jake", *articles.LastFilter.Author)
	assert.Equal(t, "dragons", *articles.LastFilter.Tag)
	assert.Nil(t, articles.LastFilter.Favorited)
	assert.Equal(t, query.Page{Offset: 20, Limit: 10}, articles.LastPage)
	assert.False(t, articles.LastViewer.Authenticated())
}

func TestErrorRendering(t *testing.T) {
	router, articles, comments := setupMockRouter()
	alice := token(t, "alice")

	articles.GetFunc = func(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
		return nil, errors.New("database is on fire")
	}
	w := do(router, "GET", "/api/articles/anything", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"message": "internal server error"}, decode(t, w))

	comments.DeleteFunc = func(ctx context.Context, id int64, viewer models.Viewer) error {
		return errs.Forbidden("You are not authorized to delete this comment")
	}
	w = do(router, "DELETE", "/api/articles/x/comments/42", alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []int64{42}, comments.DeletedIDs)
	assert.Equal(t, "You are not authorized to delete this comment", decode(t, w)["message"])
}

func TestRecovery(t *testing.T) {
	router, articles, _ := setupMockRouter()
	articles.GetFunc = func(ctx context.Context, slug string, viewer models.Viewer) (*models.ArticleResponse, error) {
		panic("boom")
	}

	w := do(router, "GET", "/api/articles/anything", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
