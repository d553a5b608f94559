package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/query"
	"github.com/conduit-api/internal/service"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

type articleEnvelope struct {
	Article models.ArticlePayload `json:"article"`
}

// List handles GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	filter := models.ArticleFilter{
		Author:    queryParam(c, "author"),
		Tag:       queryParam(c, "tag"),
		Favorited: queryParam(c, "favorited"),
	}

	list, err := h.services.Article.ListArticles(c.Request.Context(), filter, pageParams(c), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Feed handles GET /api/articles/feed
func (h *ArticleHandler) Feed(c *gin.Context) {
	list, err := h.services.Article.GetFeed(c.Request.Context(), pageParams(c), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req articleEnvelope
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.services.Article.CreateArticle(c.Request.Context(), &req.Article, viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Get handles GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.GetArticle(c.Request.Context(), c.Param("slug"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Update handles PUT /api/articles/:slug
func (h *ArticleHandler) Update(c *gin.Context) {
	var req articleEnvelope
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.services.Article.UpdateArticle(c.Request.Context(), &req.Article, c.Param("slug"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Delete handles DELETE /api/articles/:slug
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.DeleteArticle(c.Request.Context(), c.Param("slug"), viewerFrom(c)); err != nil {
		renderError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Favorite handles POST /api/articles/:slug/favorite
func (h *ArticleHandler) Favorite(c *gin.Context) {
	article, err := h.services.Article.FavoriteArticle(c.Request.Context(), c.Param("slug"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Unfavorite handles DELETE /api/articles/:slug/favorite
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	article, err := h.services.Article.UnfavoriteArticle(c.Request.Context(), c.Param("slug"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// queryParam returns the named query parameter, or nil when it is absent
func queryParam(c *gin.Context, name string) *string {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	return &v
}

func pageParams(c *gin.Context) query.Page {
	return query.ParsePage(c.Query("offset"), c.Query("limit"))
}
