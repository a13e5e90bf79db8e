package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/reelmates/backend/config"
	"github.com/reelmates/backend/internal/api"
	"github.com/reelmates/backend/internal/middleware"
	"github.com/reelmates/backend/internal/tmdb"
)

// New builds the application router with the global middleware chain and
// all API routes registered.
func New(db *gorm.DB, redisClient *redis.Client, tmdbClient *tmdb.Client, jwtSecret string, log *logrus.Logger) *gin.Engine {
	if config.GetEnvironment() == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	api.SetupAPI(router, db, redisClient, tmdbClient, jwtSecret, log)

	return router
}
