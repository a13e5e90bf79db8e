package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
)

// FollowService handles the follower graph.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow creates a follow edge. Self-follows are rejected; a duplicate
// follow is idempotent and returns the existing edge.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	var existing models.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

// Unfollow removes a follow edge; removing a non-existent edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

// GetFollowing returns the profiles the user follows.
func (s *FollowService) GetFollowing(ctx context.Context, userID uuid.UUID) ([]ProfileSummary, error) {
	return s.followEdgeProfiles(ctx, "follows.follower_id = ?", "profiles.user_id = follows.following_id", userID)
}

// GetFollowers returns the profiles following the user.
func (s *FollowService) GetFollowers(ctx context.Context, userID uuid.UUID) ([]ProfileSummary, error) {
	return s.followEdgeProfiles(ctx, "follows.following_id = ?", "profiles.user_id = follows.follower_id", userID)
}

func (s *FollowService) followEdgeProfiles(ctx context.Context, where, join string, userID uuid.UUID) ([]ProfileSummary, error) {
	var rows []struct {
		UserID    uuid.UUID
		Username  string
		AvatarURL string
	}
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Select("profiles.user_id, profiles.username, profiles.avatar_url").
		Joins("JOIN profiles ON "+join).
		Where(where, userID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]ProfileSummary, len(rows))
	for i, r := range rows {
		summaries[i] = ProfileSummary{ID: r.UserID, Username: r.Username, AvatarURL: r.AvatarURL}
	}
	return summaries, nil
}

// FollowingIDs returns the raw set of user IDs the user follows.
func (s *FollowService) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// IsFollowing reports whether follower follows following.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowerCount returns how many users follow the given user.
func (s *FollowService) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// FollowingCount returns how many users the given user follows.
func (s *FollowService) FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
