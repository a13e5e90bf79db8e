package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/cache"
	"github.com/reelmates/backend/internal/middleware"
	"github.com/reelmates/backend/internal/service"
	"github.com/reelmates/backend/internal/tmdb"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ReelMates API is running",
		"version": "v1.0.0",
	})
}

// SetupAPI wires services, handlers and routes onto the router. redisClient
// may be nil, which disables the TMDB response cache and search rate limiting.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, tmdbClient *tmdb.Client, jwtSecret string, log *logrus.Logger) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	views := cache.NewViewCache()

	authService := service.NewAuthService(db, jwtSecret)
	profileService := service.NewProfileService(db)
	ratingService := service.NewRatingService(db)
	watchlistService := service.NewWatchlistService(db)
	followService := service.NewFollowService(db)
	likeService := service.NewWatchlistLikeService(db)
	watchlistsService := service.NewWatchlistsService(db, likeService)
	movieService := service.NewMovieService(tmdbClient, redisClient, log)
	activityService := service.NewActivityService(db, tmdbClient, log)

	var searchLimiter *middleware.RateLimiter
	if redisClient != nil {
		searchLimiter = middleware.NewSearchRateLimiter(redisClient)
	}

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService, followService, ratingService, authService, views)
	movieHandler := NewMovieHandler(movieService, ratingService, searchLimiter)
	ratingHandler := NewRatingHandler(ratingService, views)
	watchlistHandler := NewWatchlistHandler(watchlistService, views)
	followHandler := NewFollowHandler(followService, profileService, views)
	watchlistsHandler := NewWatchlistsHandler(watchlistsService, likeService, profileService, views)
	activityHandler := NewActivityHandler(activityService, views)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1, authService)
	movieHandler.RegisterRoutes(v1)
	ratingHandler.RegisterRoutes(v1, authService)
	watchlistHandler.RegisterRoutes(v1, authService)
	followHandler.RegisterRoutes(v1, authService)
	watchlistsHandler.RegisterRoutes(v1, authService)
	activityHandler.RegisterRoutes(v1, authService)
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrNotRated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrSelfLike),
		errors.Is(err, service.ErrQueryTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
