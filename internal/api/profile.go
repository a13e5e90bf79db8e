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

const statsTTL = time.Minute

type ProfileHandler struct {
	profileService *service.ProfileService
	followService  *service.FollowService
	ratingService  *service.RatingService
	authService    *service.AuthService
	views          *cache.ViewCache
}

func NewProfileHandler(profileService *service.ProfileService, followService *service.FollowService, ratingService *service.RatingService, authService *service.AuthService, views *cache.ViewCache) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		followService:  followService,
		ratingService:  ratingService,
		authService:    authService,
		views:          views,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(validator))
	{
		profile.GET("", h.GetOwnProfile)
		profile.PUT("", h.UpdateProfile)
	}

	router.GET("/username-available", h.UsernameAvailable)

	users := router.Group("/users")
	users.Use(middleware.OptionalAuthMiddleware(validator))
	{
		users.GET("/:username", h.GetPublicProfile)
		users.GET("/:username/ratings", h.GetUserRatings)
		users.GET("/:username/stats", h.GetUserStats)
		users.GET("/:username/followers", h.GetFollowers)
		users.GET("/:username/following", h.GetFollowing)
	}
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile, true))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileParams{
		Username:    req.Username,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Preferences: req.Preferences,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.views.OnMutation(cache.MutationProfileUpdate, userID.String(), 0)
	c.JSON(http.StatusOK, newProfileResponse(profile, true))
}

func (h *ProfileHandler) UsernameAvailable(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	taken, err := h.profileService.UsernameTaken(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check username"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": !taken})
}

func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile, false))
}

// GetUserRatings lists a user's ratings with tiered visibility: anonymous
// viewers see only the top half by rating value, with the numeric value and
// date withheld.
func (h *ProfileHandler) GetUserRatings(c *gin.Context) {
	profile, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	_, authenticated := currentUserID(c)
	ratings, err := h.ratingService.VisibleRatings(c.Request.Context(), profile.UserID, authenticated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

func (h *ProfileHandler) GetUserStats(c *gin.Context) {
	profile, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	key := cache.Key("profile:stats", profile.UserID)
	stats, err := h.views.GetOrLoad(c.Request.Context(), key, statsTTL, func(ctx context.Context) (interface{}, error) {
		return h.profileService.GetProfileStats(ctx, profile.UserID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ProfileHandler) GetFollowers(c *gin.Context) {
	profile, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	followers, err := h.followService.GetFollowers(c.Request.Context(), profile.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

func (h *ProfileHandler) GetFollowing(c *gin.Context) {
	profile, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	following, err := h.followService.GetFollowing(c.Request.Context(), profile.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get following"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}
