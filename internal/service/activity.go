package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
	"github.com/reelmates/backend/internal/tmdb"
)

const (
	defaultFeedLimit   = 20
	unreadScanLimit    = 50
	unreadWindowLength = 24 * time.Hour
)

// MovieResolver resolves movie metadata for feed assembly. Satisfied by
// *MovieService and by *tmdb.Client.
type MovieResolver interface {
	GetMovieDetails(ctx context.Context, movieID int) (*tmdb.MovieDetails, error)
}

// MovieRef is the slim movie projection embedded in feed items.
type MovieRef struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

// ActivityItem is one rating by a followed user, enriched with the author's
// profile summary and the movie's metadata.
type ActivityItem struct {
	ID        uuid.UUID      `json:"id"`
	User      ProfileSummary `json:"user"`
	Movie     MovieRef       `json:"movie"`
	Rating    float64        `json:"rating"`
	CreatedAt time.Time      `json:"created_at"`
}

// ActivityService computes the following-activity feed and the derived
// unread count.
type ActivityService struct {
	db     *gorm.DB
	movies MovieResolver
	logger *logrus.Logger
}

func NewActivityService(db *gorm.DB, movies MovieResolver, logger *logrus.Logger) *ActivityService {
	return &ActivityService{
		db:     db,
		movies: movies,
		logger: logger,
	}
}

// GetFollowingActivity returns the latest ratings by users the given user
// follows, newest first. A user following nobody gets an empty feed without
// touching the ratings table. Movie metadata is resolved concurrently; a
// failed lookup degrades that one item to a placeholder title instead of
// failing the feed.
func (s *ActivityService) GetFollowingActivity(ctx context.Context, userID uuid.UUID, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	var followingIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &followingIDs).Error; err != nil {
		return nil, err
	}
	if len(followingIDs) == 0 {
		return []ActivityItem{}, nil
	}

	var rows []struct {
		models.Rating
		Username  string
		AvatarURL string
	}
	if err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Select("ratings.*, profiles.username AS username, profiles.avatar_url AS avatar_url").
		Joins("JOIN profiles ON profiles.user_id = ratings.user_id").
		Where("ratings.user_id IN ?", followingIDs).
		Order("ratings.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ActivityItem, len(rows))
	var wg sync.WaitGroup
	for i := range rows {
		items[i] = ActivityItem{
			ID: rows[i].Rating.ID,
			User: ProfileSummary{
				ID:        rows[i].Rating.UserID,
				Username:  rows[i].Username,
				AvatarURL: rows[i].AvatarURL,
			},
			Movie:     MovieRef{ID: rows[i].Rating.MovieID},
			Rating:    rows[i].Rating.RatingValue,
			CreatedAt: rows[i].Rating.CreatedAt,
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			details, err := s.movies.GetMovieDetails(ctx, items[i].Movie.ID)
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"movie_id": items[i].Movie.ID,
					"error":    err.Error(),
				}).Warn("movie lookup failed, using placeholder")
				items[i].Movie.Title = fmt.Sprintf("Movie #%d", items[i].Movie.ID)
				return
			}
			items[i].Movie.Title = details.Title
			items[i].Movie.PosterPath = details.PosterPath
		}(i)
	}
	wg.Wait()

	return items, nil
}

// UnreadActivityCount counts feed items from the last 24 hours. There is no
// persisted read state; "unread" is a rolling window over the most recent
// items. A feed shorter than the scan limit is counted as-is.
func (s *ActivityService) UnreadActivityCount(ctx context.Context, userID uuid.UUID) (int, error) {
	items, err := s.GetFollowingActivity(ctx, userID, unreadScanLimit)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-unreadWindowLength)
	count := 0
	for _, item := range items {
		if item.CreatedAt.After(cutoff) {
			count++
		}
	}
	return count, nil
}
