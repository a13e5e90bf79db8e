package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
)

// RatingWithUsername joins a rating with its author's username for display.
type RatingWithUsername struct {
	models.Rating
	Username string `json:"username"`
}

// MovieRatingSummary aggregates all ratings for one movie.
type MovieRatingSummary struct {
	MovieID int     `json:"movie_id"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// VisibleRating is a rating as exposed to a possibly anonymous viewer.
// RatingValue and CreatedAt are nil when the viewer is not authenticated.
type VisibleRating struct {
	ID          uuid.UUID  `json:"id"`
	MovieID     int        `json:"movie_id"`
	RatingValue *float64   `json:"rating_value,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// RatingService handles rating reads and the upsert/delete mutations, both
// of which keep the denormalized watchlist copy consistent.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// GetUserRating returns the user's rating for a movie, or (nil, nil) when
// the user has not rated it.
func (s *RatingService) GetUserRating(ctx context.Context, userID uuid.UUID, movieID int) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

// GetRating returns a rating by ID, or (nil, nil) when it does not exist.
func (s *RatingService) GetRating(ctx context.Context, ratingID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).Where("id = ?", ratingID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

// RateMovie records a rating with upsert semantics: rating the same movie
// twice updates in place. The denormalized copy on watchlist_movies is
// updated in the same transaction.
func (s *RatingService) RateMovie(ctx context.Context, userID uuid.UUID, movieID int, value float64) (*models.Rating, error) {
	if value < 0 || value > 10 {
		return nil, ErrRatingOutOfRange
	}

	var result models.Rating
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&existing).Error
		switch {
		case err == nil:
			existing.RatingValue = value
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = models.Rating{
				UserID:      userID,
				MovieID:     movieID,
				RatingValue: value,
			}
			if err := tx.Create(&result).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// Keep the watchlist snapshot in sync; no row is a no-op.
		return tx.Model(&models.WatchlistMovie{}).
			Where("user_id = ? AND tmdb_id = ?", userID, movieID).
			Update("rating", value).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovieRatings returns all ratings for a movie, newest first.
func (s *RatingService) GetMovieRatings(ctx context.Context, movieID int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := s.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetMovieRatingSummary computes the aggregate rating for a movie.
func (s *RatingService) GetMovieRatingSummary(ctx context.Context, movieID int) (*MovieRatingSummary, error) {
	ratings, err := s.GetMovieRatings(ctx, movieID)
	if err != nil {
		return nil, err
	}

	summary := &MovieRatingSummary{MovieID: movieID, Count: len(ratings)}
	if len(ratings) > 0 {
		sum := 0.0
		for _, r := range ratings {
			sum += r.RatingValue
		}
		summary.Average = sum / float64(len(ratings))
	}
	return summary, nil
}

// GetRecentRatings returns the latest ratings for a movie with the rater's
// username, for the movie page's recent-activity slice.
func (s *RatingService) GetRecentRatings(ctx context.Context, movieID, limit int) ([]RatingWithUsername, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []RatingWithUsername
	if err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Select("ratings.*, profiles.username AS username").
		Joins("JOIN profiles ON profiles.user_id = ratings.user_id").
		Where("ratings.movie_id = ?", movieID).
		Order("ratings.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetUserRatings returns all of a user's ratings, newest first.
func (s *RatingService) GetUserRatings(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// DeleteRating removes a rating and, in the same transaction, any watchlist
// entry for the same (user, movie). Only the owner may delete. A missing
// watchlist entry is a no-op, not an error.
func (s *RatingService) DeleteRating(ctx context.Context, ratingID, userID uuid.UUID) error {
	var rating models.Rating
	if err := s.db.WithContext(ctx).First(&rating, "id = ?", ratingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rating.UserID != userID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND tmdb_id = ?", rating.UserID, rating.MovieID).
			Delete(&models.WatchlistMovie{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rating{}, "id = ?", ratingID).Error
	})
}

// VisibleRatings produces the rating list for a profile as seen by a viewer.
// The list is ranked by rating value, best first. Anonymous viewers get only
// the top half (rounded up) with the numeric value and date stripped; the
// truncation happens here, at the data-producing boundary, so the hidden
// fields never leave the service.
func (s *RatingService) VisibleRatings(ctx context.Context, userID uuid.UUID, authenticated bool) ([]VisibleRating, error) {
	var ratings []models.Rating
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ratings).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].RatingValue > ratings[j].RatingValue
	})

	if !authenticated {
		keep := int(math.Ceil(float64(len(ratings)) / 2))
		ratings = ratings[:keep]
	}

	visible := make([]VisibleRating, len(ratings))
	for i := range ratings {
		visible[i] = VisibleRating{
			ID:      ratings[i].ID,
			MovieID: ratings[i].MovieID,
		}
		if authenticated {
			value := ratings[i].RatingValue
			created := ratings[i].CreatedAt
			visible[i].RatingValue = &value
			visible[i].CreatedAt = &created
		}
	}
	return visible, nil
}
