package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
)

// AddToWatchlistParams carries the denormalized snapshot stored at add time.
type AddToWatchlistParams struct {
	TMDBId     int
	Title      string
	PosterPath string
}

// UpdateWatchlistMovieParams carries optional watchlist entry mutations.
type UpdateWatchlistMovieParams struct {
	Watched *bool
	Rating  *float64
}

// WatchlistService handles a user's saved movies.
type WatchlistService struct {
	db *gorm.DB
}

func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{db: db}
}

// GetWatchlist returns a user's watchlist, most recently added first.
func (s *WatchlistService) GetWatchlist(ctx context.Context, userID uuid.UUID) ([]models.WatchlistMovie, error) {
	var entries []models.WatchlistMovie
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// AddToWatchlist saves a movie to the user's watchlist. The movie must
// already be rated by the user; the current rating is denormalized onto the
// entry. Adding a movie that is already present returns the existing entry.
func (s *WatchlistService) AddToWatchlist(ctx context.Context, userID uuid.UUID, params AddToWatchlistParams) (*models.WatchlistMovie, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, params.TMDBId).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRated
		}
		return nil, err
	}

	var existing models.WatchlistMovie
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND tmdb_id = ?", userID, params.TMDBId).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry := models.WatchlistMovie{
		UserID:     userID,
		TMDBId:     params.TMDBId,
		Title:      params.Title,
		PosterPath: params.PosterPath,
		Rating:     rating.RatingValue,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveFromWatchlist deletes an entry owned by the user.
func (s *WatchlistService) RemoveFromWatchlist(ctx context.Context, entryID, userID uuid.UUID) error {
	var entry models.WatchlistMovie
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if entry.UserID != userID {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.WatchlistMovie{}, "id = ?", entryID).Error
}

// UpdateWatchlistMovie mutates the watched flag and/or rating snapshot of an
// entry owned by the user and returns the updated row.
func (s *WatchlistService) UpdateWatchlistMovie(ctx context.Context, entryID, userID uuid.UUID, params UpdateWatchlistMovieParams) (*models.WatchlistMovie, error) {
	var entry models.WatchlistMovie
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}

	if params.Watched != nil {
		entry.Watched = *params.Watched
	}
	if params.Rating != nil {
		entry.Rating = *params.Rating
	}

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// IsInWatchlist reports whether the user has saved the movie.
func (s *WatchlistService) IsInWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.WatchlistMovie{}).
		Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
