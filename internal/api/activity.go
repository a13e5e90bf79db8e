package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelmates/backend/internal/cache"
	"github.com/reelmates/backend/internal/middleware"
	"github.com/reelmates/backend/internal/service"
)

// Feeds refresh on a short TTL: clients poll while the page is open, and the
// cache absorbs those polls between writes.
const (
	feedTTL   = 30 * time.Second
	unreadTTL = 30 * time.Second
)

type ActivityHandler struct {
	activityService *service.ActivityService
	views           *cache.ViewCache
}

func NewActivityHandler(activityService *service.ActivityService, views *cache.ViewCache) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, views: views}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	activity := router.Group("/activity")
	activity.Use(middleware.AuthMiddleware(validator))
	{
		activity.GET("", h.GetFeed)
		activity.GET("/unread-count", h.GetUnreadCount)
	}
}

// GetFeed returns the latest ratings from users the caller follows, newest
// first, with movie titles resolved from TMDB.
func (h *ActivityHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	key := cache.Key("activity:feed", userID)
	items, err := h.views.GetOrLoad(c.Request.Context(), key, feedTTL, func(ctx context.Context) (interface{}, error) {
		return h.activityService.GetFollowingActivity(ctx, userID, 0)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get activity feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": items})
}

func (h *ActivityHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	key := cache.Key("activity:unread", userID)
	count, err := h.views.GetOrLoad(c.Request.Context(), key, unreadTTL, func(ctx context.Context) (interface{}, error) {
		return h.activityService.UnreadActivityCount(ctx, userID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get unread count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
