package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardExcludesProfilesWithoutRatings(t *testing.T) {
	db := newTestDB(t)
	svc := NewWatchlistsService(db, NewWatchlistLikeService(db))

	ana := createTestUser(t, db, "ana@example.com", "ana")
	createTestUser(t, db, "beto@example.com", "beto") // never rates

	rateAt(t, db, ana, 550, 8, time.Now())

	entries, err := svc.GetLeaderboard(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ana", entries[0].Owner.Username)
}

func TestLeaderboardOrderByLikesThenRatings(t *testing.T) {
	db := newTestDB(t)
	likes := NewWatchlistLikeService(db)
	svc := NewWatchlistsService(db, likes)

	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")
	cleo := createTestUser(t, db, "cleo@example.com", "cleo")

	now := time.Now()
	// Ana: 3 ratings, no likes. Beto: 1 rating, 1 like. Cleo: 2 ratings, 1 like.
	for i, movieID := range []int{550, 27205, 603} {
		rateAt(t, db, ana, movieID, 8, now.Add(time.Duration(-i)*time.Minute))
	}
	rateAt(t, db, beto, 550, 7, now)
	rateAt(t, db, cleo, 550, 7, now)
	rateAt(t, db, cleo, 603, 6, now.Add(-time.Minute))

	_, err := likes.Like(context.Background(), ana, beto)
	require.NoError(t, err)
	_, err = likes.Like(context.Background(), ana, cleo)
	require.NoError(t, err)

	entries, err := svc.GetLeaderboard(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Likes dominate; ties break on rating count.
	assert.Equal(t, "cleo", entries[0].Owner.Username)
	assert.Equal(t, "beto", entries[1].Owner.Username)
	assert.Equal(t, "ana", entries[2].Owner.Username)
	assert.Equal(t, 3, entries[2].TotalRatings)
}

func TestLeaderboardRecentMoviesNewestFirstCappedAtFour(t *testing.T) {
	db := newTestDB(t)
	svc := NewWatchlistsService(db, NewWatchlistLikeService(db))
	ana := createTestUser(t, db, "ana@example.com", "ana")

	now := time.Now()
	for i := 0; i < 6; i++ {
		rateAt(t, db, ana, 100+i, 7, now.Add(time.Duration(-i)*time.Hour))
	}

	entries, err := svc.GetLeaderboard(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].RecentMovies, 4)

	// Newest first: movie 100 was rated most recently.
	for i, movie := range entries[0].RecentMovies {
		assert.Equal(t, 100+i, movie.MovieID)
	}
	assert.Equal(t, 6, entries[0].TotalRatings)
}

func TestLeaderboardViewerPersonalization(t *testing.T) {
	db := newTestDB(t)
	likes := NewWatchlistLikeService(db)
	svc := NewWatchlistsService(db, likes)

	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	rateAt(t, db, beto, 550, 7, time.Now())
	_, err := likes.Like(context.Background(), ana, beto)
	require.NoError(t, err)

	entries, err := svc.GetLeaderboard(context.Background(), &ana)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].LikedByViewer)
	assert.Equal(t, 1, entries[0].LikeCount)

	anon, err := svc.GetLeaderboard(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, anon[0].LikedByViewer)
	assert.Equal(t, 1, anon[0].LikeCount)
}
