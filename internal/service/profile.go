package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
)

// ProfileSummary is the slim owner/author projection embedded in aggregate
// views.
type ProfileSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
}

// ProfileStats are the derived numbers shown on a profile page.
type ProfileStats struct {
	MoviesRated   int    `json:"movies_rated"`
	AverageRating string `json:"average_rating"`
	Followers     int    `json:"followers"`
}

// UpdateProfileParams carries optional profile mutations; nil means leave
// the field unchanged.
type UpdateProfileParams struct {
	Username    *string
	Bio         *string
	AvatarURL   *string
	Preferences []string
}

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a profile by the owning user's ID. Returns (nil, nil)
// when no profile exists.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUsername retrieves a profile by username. Returns (nil, nil)
// when the username is unknown.
func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the provided mutations to a user's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if params.Username != nil && *params.Username != profile.Username {
		taken, err := s.UsernameTaken(ctx, *params.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		profile.Username = *params.Username
	}
	if params.Bio != nil {
		profile.Bio = *params.Bio
	}
	if params.AvatarURL != nil {
		profile.AvatarURL = *params.AvatarURL
	}
	if params.Preferences != nil {
		profile.Preferences = strings.Join(params.Preferences, ",")
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

// UsernameTaken reports whether a username is already in use.
func (s *ProfileService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetProfileStats computes the derived numbers for a profile page: rating
// count, average rating to one decimal, follower count.
func (s *ProfileService) GetProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStats, error) {
	var ratings []models.Rating
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ratings).Error; err != nil {
		return nil, err
	}

	avg := "0.0"
	if len(ratings) > 0 {
		sum := 0.0
		for _, r := range ratings {
			sum += r.RatingValue
		}
		avg = fmt.Sprintf("%.1f", sum/float64(len(ratings)))
	}

	var followers int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).Count(&followers).Error; err != nil {
		return nil, err
	}

	return &ProfileStats{
		MoviesRated:   len(ratings),
		AverageRating: avg,
		Followers:     int(followers),
	}, nil
}

// Summary converts a profile to its slim projection.
func Summary(p *models.Profile) ProfileSummary {
	return ProfileSummary{
		ID:        p.UserID,
		Username:  p.Username,
		AvatarURL: p.AvatarURL,
	}
}

// PreferenceList splits the stored preference tags. Empty storage yields an
// empty (non-nil) slice.
func PreferenceList(p *models.Profile) []string {
	if p.Preferences == "" {
		return []string{}
	}
	return strings.Split(p.Preferences, ",")
}
