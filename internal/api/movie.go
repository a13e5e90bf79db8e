package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reelmates/backend/internal/middleware"
	"github.com/reelmates/backend/internal/service"
)

type MovieHandler struct {
	movieService  *service.MovieService
	ratingService *service.RatingService
	searchLimiter *middleware.RateLimiter
}

func NewMovieHandler(movieService *service.MovieService, ratingService *service.RatingService, searchLimiter *middleware.RateLimiter) *MovieHandler {
	return &MovieHandler{
		movieService:  movieService,
		ratingService: ratingService,
		searchLimiter: searchLimiter,
	}
}

func (h *MovieHandler) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	{
		movies.GET("/trending", h.GetTrending)
		if h.searchLimiter != nil {
			movies.GET("/search", h.searchLimiter.RateLimitMiddleware(), h.SearchMovies)
		} else {
			movies.GET("/search", h.SearchMovies)
		}
		movies.GET("/:id", h.GetMovieDetails)
		movies.GET("/:id/ratings", h.GetMovieRatings)
	}
}

func (h *MovieHandler) GetTrending(c *gin.Context) {
	window := c.DefaultQuery("window", "week")

	movies, err := h.movieService.GetTrending(c.Request.Context(), window)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch trending movies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": movies})
}

func (h *MovieHandler) SearchMovies(c *gin.Context) {
	query := c.Query("q")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	results, err := h.movieService.SearchMovies(c.Request.Context(), query, page)
	if err != nil {
		if err == service.ErrQueryTooShort {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to search movies"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *MovieHandler) GetMovieDetails(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	details, err := h.movieService.GetMovieDetails(c.Request.Context(), movieID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch movie details"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetMovieRatings returns the aggregate rating for a movie along with the
// most recent individual ratings.
func (h *MovieHandler) GetMovieRatings(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	summary, err := h.ratingService.GetMovieRatingSummary(c.Request.Context(), movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rating summary"})
		return
	}

	recent, err := h.ratingService.GetRecentRatings(c.Request.Context(), movieID, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recent ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"recent":  recent,
	})
}
