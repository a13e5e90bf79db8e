package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reelmates/backend/internal/cache"
	"github.com/reelmates/backend/internal/middleware"
	"github.com/reelmates/backend/internal/service"
)

const leaderboardTTL = 30 * time.Second

// WatchlistsHandler serves the community watchlist leaderboard and the
// like/unlike toggles on other users' watchlists.
type WatchlistsHandler struct {
	watchlistsService *service.WatchlistsService
	likeService       *service.WatchlistLikeService
	profileService    *service.ProfileService
	views             *cache.ViewCache
}

func NewWatchlistsHandler(watchlistsService *service.WatchlistsService, likeService *service.WatchlistLikeService, profileService *service.ProfileService, views *cache.ViewCache) *WatchlistsHandler {
	return &WatchlistsHandler{
		watchlistsService: watchlistsService,
		likeService:       likeService,
		profileService:    profileService,
		views:             views,
	}
}

func (h *WatchlistsHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	watchlists := router.Group("/watchlists")

	watchlists.GET("/leaderboard", middleware.OptionalAuthMiddleware(validator), h.GetLeaderboard)

	authed := watchlists.Group("")
	authed.Use(middleware.AuthMiddleware(validator))
	{
		authed.POST("/:ownerID/like", h.Like)
		authed.DELETE("/:ownerID/like", h.Unlike)
	}
}

// GetLeaderboard returns every watchlist owner with at least one rating,
// ordered by like count then rating count. Only the anonymous view is
// cached; authenticated responses carry per-viewer like flags.
func (h *WatchlistsHandler) GetLeaderboard(c *gin.Context) {
	viewerID, authenticated := currentUserID(c)

	if !authenticated {
		entries, err := h.views.GetOrLoad(c.Request.Context(), cache.Key("leaderboard"), leaderboardTTL, func(ctx context.Context) (interface{}, error) {
			return h.watchlistsService.GetLeaderboard(ctx, nil)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
		return
	}

	entries, err := h.watchlistsService.GetLeaderboard(c.Request.Context(), &viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (h *WatchlistsHandler) Like(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ownerID, err := uuid.Parse(c.Param("ownerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist owner id"})
		return
	}

	owner, err := h.profileService.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve watchlist owner"})
		return
	}
	if owner == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "watchlist owner not found"})
		return
	}

	like, err := h.likeService.Like(c.Request.Context(), userID, ownerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationLike, userID.String(), 0)
	c.JSON(http.StatusCreated, like)
}

func (h *WatchlistsHandler) Unlike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ownerID, err := uuid.Parse(c.Param("ownerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist owner id"})
		return
	}

	if err := h.likeService.Unlike(c.Request.Context(), userID, ownerID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationUnlike, userID.String(), 0)
	c.JSON(http.StatusOK, gin.H{"message": "unliked"})
}
