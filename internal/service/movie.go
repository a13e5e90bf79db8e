package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/reelmates/backend/internal/tmdb"
)

const (
	trendingCacheTTL = 5 * time.Minute
	searchCacheTTL   = 5 * time.Minute
	detailsCacheTTL  = 30 * time.Minute

	minSearchQueryLength = 3
)

// MovieService fronts the TMDB client with a Redis response cache. Trending
// changes slowly and details are immutable in practice, so both are safe to
// serve slightly stale. A nil Redis client disables caching.
type MovieService struct {
	tmdb   *tmdb.Client
	redis  *redis.Client
	logger *logrus.Logger
}

func NewMovieService(tmdbClient *tmdb.Client, rdb *redis.Client, logger *logrus.Logger) *MovieService {
	return &MovieService{
		tmdb:   tmdbClient,
		redis:  rdb,
		logger: logger,
	}
}

// GetTrending returns trending movies for "day" or "week".
func (s *MovieService) GetTrending(ctx context.Context, window string) ([]tmdb.Movie, error) {
	cacheKey := fmt.Sprintf("tmdb:trending:%s", window)

	var cached []tmdb.Movie
	if s.getCached(ctx, cacheKey, &cached) {
		return cached, nil
	}

	movies, err := s.tmdb.GetTrending(ctx, window)
	if err != nil {
		return nil, err
	}

	s.setCached(ctx, cacheKey, movies, trendingCacheTTL)
	return movies, nil
}

// SearchMovies searches TMDB. Queries shorter than 3 characters are rejected
// before any request is made: they produce noise and burn the rate limit.
func (s *MovieService) SearchMovies(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error) {
	if len(query) < minSearchQueryLength {
		return nil, ErrQueryTooShort
	}
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("tmdb:search:%s:%d", query, page)

	var cached tmdb.SearchResponse
	if s.getCached(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	resp, err := s.tmdb.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, err
	}

	s.setCached(ctx, cacheKey, resp, searchCacheTTL)
	return resp, nil
}

// GetMovieDetails fetches one movie's details.
func (s *MovieService) GetMovieDetails(ctx context.Context, movieID int) (*tmdb.MovieDetails, error) {
	cacheKey := fmt.Sprintf("tmdb:movie:%d", movieID)

	var cached tmdb.MovieDetails
	if s.getCached(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	details, err := s.tmdb.GetMovieDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}

	s.setCached(ctx, cacheKey, details, detailsCacheTTL)
	return details, nil
}

// ImageURL builds a full image URL; "" for an empty path.
func (s *MovieService) ImageURL(path, size string) string {
	return s.tmdb.ImageURL(path, size)
}

func (s *MovieService) getCached(ctx context.Context, key string, out interface{}) bool {
	if s.redis == nil {
		return false
	}
	raw, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

func (s *MovieService) setCached(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.WithFields(logrus.Fields{"key": key, "error": err.Error()}).
			Warn("failed to write TMDB response cache")
	}
}
