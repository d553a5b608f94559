package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conduit-api/internal/service"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(services *service.Services, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		services: services,
		log:      log.With().Str("handler", "profile").Logger(),
	}
}

// Get handles GET /api/profiles/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.services.Profile.GetProfile(c.Request.Context(), c.Param("username"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Follow handles POST /api/profiles/:username/follow
func (h *ProfileHandler) Follow(c *gin.Context) {
	profile, err := h.services.Profile.FollowUser(c.Request.Context(), c.Param("username"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Unfollow handles DELETE /api/profiles/:username/follow
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	profile, err := h.services.Profile.UnfollowUser(c.Request.Context(), c.Param("username"), viewerFrom(c))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
