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

const watchlistTTL = time.Minute

type WatchlistHandler struct {
	watchlistService *service.WatchlistService
	views            *cache.ViewCache
}

func NewWatchlistHandler(watchlistService *service.WatchlistService, views *cache.ViewCache) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, views: views}
}

func (h *WatchlistHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	watchlist := router.Group("/watchlist")
	watchlist.Use(middleware.AuthMiddleware(validator))
	{
		watchlist.GET("", h.GetWatchlist)
		watchlist.POST("", h.AddToWatchlist)
		watchlist.PATCH("/:id", h.UpdateWatchlistMovie)
		watchlist.DELETE("/:id", h.RemoveFromWatchlist)
	}
}

func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	key := cache.Key("watchlist", userID)
	movies, err := h.views.GetOrLoad(c.Request.Context(), key, watchlistTTL, func(ctx context.Context) (interface{}, error) {
		return h.watchlistService.GetWatchlist(ctx, userID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": movies})
}

// AddToWatchlist adds a movie the caller has already rated. Unrated movies
// are rejected; adding the same movie twice returns the existing entry.
func (h *WatchlistHandler) AddToWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddToWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.watchlistService.AddToWatchlist(c.Request.Context(), userID, service.AddToWatchlistParams{
		TMDBId:     req.TMDBId,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationWatchlistWrite, userID.String(), req.TMDBId)
	c.JSON(http.StatusCreated, entry)
}

func (h *WatchlistHandler) UpdateWatchlistMovie(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist entry id"})
		return
	}

	var req UpdateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.watchlistService.UpdateWatchlistMovie(c.Request.Context(), entryID, userID, service.UpdateWatchlistMovieParams{
		Watched: req.Watched,
		Rating:  req.Rating,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationWatchlistWrite, userID.String(), entry.TMDBId)
	c.JSON(http.StatusOK, entry)
}

func (h *WatchlistHandler) RemoveFromWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist entry id"})
		return
	}

	if err := h.watchlistService.RemoveFromWatchlist(c.Request.Context(), entryID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationWatchlistWrite, userID.String(), 0)
	c.JSON(http.StatusOK, gin.H{"message": "removed from watchlist"})
}
