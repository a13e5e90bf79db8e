package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelmates/backend/internal/cache"
	"github.com/reelmates/backend/internal/middleware"
	"github.com/reelmates/backend/internal/service"
)

type FollowHandler struct {
	followService  *service.FollowService
	profileService *service.ProfileService
	views          *cache.ViewCache
}

func NewFollowHandler(followService *service.FollowService, profileService *service.ProfileService, views *cache.ViewCache) *FollowHandler {
	return &FollowHandler{
		followService:  followService,
		profileService: profileService,
		views:          views,
	}
}

func (h *FollowHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	follows := router.Group("/follows")
	follows.Use(middleware.AuthMiddleware(validator))
	{
		follows.POST("/:username", h.Follow)
		follows.DELETE("/:username", h.Unfollow)
	}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	target, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	follow, err := h.followService.Follow(c.Request.Context(), userID, target.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationFollow, userID.String(), 0)
	// Follower count feeds into the target's stats view.
	h.views.Invalidate(cache.Key("profile:stats", target.UserID))
	c.JSON(http.StatusCreated, follow)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	target, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), userID, target.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationUnfollow, userID.String(), 0)
	h.views.Invalidate(cache.Key("profile:stats", target.UserID))
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}
