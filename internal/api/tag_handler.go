package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/service"
)

// TagHandler handles GET /api/tags
type TagHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(services *service.Services, log zerolog.Logger) *TagHandler {
	return &TagHandler{
		services: services,
		log:      log.With().Str("handler", "tag").Logger(),
	}
}

// List returns the names of tags on articles visible to the viewer
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.services.Tag.ListTags(c.Request.Context(), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
