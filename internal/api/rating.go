package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reelmates/backend/internal/cache"
	"github.com/reelmates/backend/internal/middleware"
	"github.com/reelmates/backend/internal/service"
)

type RatingHandler struct {
	ratingService *service.RatingService
	views         *cache.ViewCache
}

func NewRatingHandler(ratingService *service.RatingService, views *cache.ViewCache) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, views: views}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	ratings := router.Group("/ratings")
	ratings.Use(middleware.AuthMiddleware(validator))
	{
		ratings.GET("", h.GetOwnRatings)
		ratings.POST("", h.RateMovie)
		ratings.DELETE("/:id", h.DeleteRating)
	}
}

func (h *RatingHandler) GetOwnRatings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ratings, err := h.ratingService.GetUserRatings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// RateMovie creates or replaces the caller's rating for a movie. A user has
// at most one rating per movie; rating again overwrites the value.
func (h *RatingHandler) RateMovie(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req RateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rating, err := h.ratingService.RateMovie(c.Request.Context(), userID, req.MovieID, req.RatingValue)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationRate, userID.String(), req.MovieID)
	c.JSON(http.StatusCreated, rating)
}

// DeleteRating removes a rating and, in the same transaction, the watchlist
// entry for that movie since watchlist membership requires a rating.
func (h *RatingHandler) DeleteRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rating id"})
		return
	}

	rating, err := h.ratingService.GetRating(c.Request.Context(), ratingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rating"})
		return
	}
	if rating == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), ratingID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationDeleteRating, userID.String(), rating.MovieID)
	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}
