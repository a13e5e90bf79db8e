package api

import (
	"time"

	"github.com/reelmates/backend/internal/models"
	"github.com/reelmates/backend/internal/service"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=3,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Username    *string  `json:"username"`
	Bio         *string  `json:"bio"`
	AvatarURL   *string  `json:"avatar_url"`
	Preferences []string `json:"preferences"`
}

type ProfileResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Preferences []string  `json:"preferences"`
	CreatedAt   time.Time `json:"created_at"`
}

// newProfileResponse builds the public view of a profile. The email is only
// included when own is set, so other users never see it.
func newProfileResponse(p *models.Profile, own bool) ProfileResponse {
	resp := ProfileResponse{
		ID:          p.UserID.String(),
		Username:    p.Username,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		Preferences: service.PreferenceList(p),
		CreatedAt:   p.CreatedAt,
	}
	if own {
		resp.Email = p.Email
	}
	return resp
}

type RateMovieRequest struct {
	MovieID     int     `json:"movie_id" binding:"required"`
	RatingValue float64 `json:"rating_value"`
}

type AddToWatchlistRequest struct {
	TMDBId     int    `json:"tmdb_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	PosterPath string `json:"poster_path"`
}

type UpdateWatchlistRequest struct {
	Watched *bool    `json:"watched"`
	Rating  *float64 `json:"rating"`
}
