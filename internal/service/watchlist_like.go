package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
)

// WatchlistLikeService handles likes on whole watchlists.
type WatchlistLikeService struct {
	db *gorm.DB
}

func NewWatchlistLikeService(db *gorm.DB) *WatchlistLikeService {
	return &WatchlistLikeService{db: db}
}

// Like records that userID likes ownerID's watchlist. Self-likes are
// rejected; duplicates are idempotent.
func (s *WatchlistLikeService) Like(ctx context.Context, userID, ownerID uuid.UUID) (*models.WatchlistLike, error) {
	if userID == ownerID {
		return nil, ErrSelfLike
	}

	var existing models.WatchlistLike
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND watchlist_owner_id = ?", userID, ownerID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	like := models.WatchlistLike{
		UserID:           userID,
		WatchlistOwnerID: ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// Unlike removes a like; removing a non-existent like is a no-op.
func (s *WatchlistLikeService) Unlike(ctx context.Context, userID, ownerID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND watchlist_owner_id = ?", userID, ownerID).
		Delete(&models.WatchlistLike{}).Error
}

// LikeState scans all likes into a count per watchlist owner and, when a
// viewer is given, the set of owners that viewer has liked.
func (s *WatchlistLikeService) LikeState(ctx context.Context, viewerID *uuid.UUID) (map[uuid.UUID]int, map[uuid.UUID]bool, error) {
	var likes []models.WatchlistLike
	if err := s.db.WithContext(ctx).Find(&likes).Error; err != nil {
		return nil, nil, err
	}

	counts := make(map[uuid.UUID]int)
	viewerLiked := make(map[uuid.UUID]bool)
	for _, like := range likes {
		counts[like.WatchlistOwnerID]++
		if viewerID != nil && like.UserID == *viewerID {
			viewerLiked[like.WatchlistOwnerID] = true
		}
	}
	return counts, viewerLiked, nil
}
