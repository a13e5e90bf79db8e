package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelmates/backend/internal/models"
)

const leaderboardRecentMovies = 4

// RecentMovie is one of the teaser movies shown on a leaderboard card.
type RecentMovie struct {
	MovieID     int     `json:"movie_id"`
	RatingValue float64 `json:"rating_value"`
}

// LeaderboardEntry is one user's watchlist as ranked on the community view.
type LeaderboardEntry struct {
	Owner         ProfileSummary `json:"owner"`
	TotalRatings  int            `json:"total_ratings"`
	LikeCount     int            `json:"like_count"`
	LikedByViewer bool           `json:"liked_by_viewer"`
	RecentMovies  []RecentMovie  `json:"recent_movies"`
}

// WatchlistsService computes the community leaderboard. This is a full
// scan-and-rank per request; fine at the scale this runs at, and callers
// sit it behind the view cache.
type WatchlistsService struct {
	db    *gorm.DB
	likes *WatchlistLikeService
}

func NewWatchlistsService(db *gorm.DB, likes *WatchlistLikeService) *WatchlistsService {
	return &WatchlistsService{
		db:    db,
		likes: likes,
	}
}

// GetLeaderboard ranks every profile with at least one rating by like count,
// ties broken by total ratings. viewerID, when present, personalizes the
// liked-by-viewer flag. Each entry carries the owner's 4 most recent ratings.
func (s *WatchlistsService) GetLeaderboard(ctx context.Context, viewerID *uuid.UUID) ([]LeaderboardEntry, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Order("username").Find(&profiles).Error; err != nil {
		return nil, err
	}

	var ratings []models.Rating
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&ratings).Error; err != nil {
		return nil, err
	}

	likeCounts, viewerLiked, err := s.likes.LikeState(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// Group ratings by owner; the query already ordered them newest first,
	// so the head of each group is the recent-movies teaser.
	ratingsByUser := make(map[uuid.UUID][]models.Rating)
	for _, r := range ratings {
		ratingsByUser[r.UserID] = append(ratingsByUser[r.UserID], r)
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for _, profile := range profiles {
		userRatings := ratingsByUser[profile.UserID]
		// A watchlist with no rated movies is not a watchlist.
		if len(userRatings) == 0 {
			continue
		}

		recent := make([]RecentMovie, 0, leaderboardRecentMovies)
		for _, r := range userRatings {
			if len(recent) == leaderboardRecentMovies {
				break
			}
			recent = append(recent, RecentMovie{MovieID: r.MovieID, RatingValue: r.RatingValue})
		}

		entries = append(entries, LeaderboardEntry{
			Owner:         Summary(&profile),
			TotalRatings:  len(userRatings),
			LikeCount:     likeCounts[profile.UserID],
			LikedByViewer: viewerLiked[profile.UserID],
			RecentMovies:  recent,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].LikeCount != entries[j].LikeCount {
			return entries[i].LikeCount > entries[j].LikeCount
		}
		return entries[i].TotalRatings > entries[j].TotalRatings
	})

	return entries, nil
}
