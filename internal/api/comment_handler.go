package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
	"github.com/conduit-api/internal/service"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

type commentEnvelope struct {
	Comment models.CommentPayload `json:"comment"`
}

// List handles GET /api/articles/:slug/comments
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.services.Comment.ListComments(c.Request.Context(), c.Param("slug"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Add handles POST /api/articles/:slug/comments
func (h *CommentHandler) Add(c *gin.Context) {
	var req commentEnvelope
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.services.Comment.AddComment(c.Request.Context(), &req.Comment, c.Param("slug"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Delete handles DELETE /api/articles/:slug/comments/:id.
// Comments are addressed by id alone; the slug segment is not checked.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, h.log, errs.NotFound("comment"))
		return
	}

	if err := h.services.Comment.DeleteComment(c.Request.Context(), id, viewerFrom(c)); err != nil {
		renderError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
