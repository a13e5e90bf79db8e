package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToWatchlistRequiresRating(t *testing.T) {
	db := newTestDB(t)
	watchlist := NewWatchlistService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")

	_, err := watchlist.AddToWatchlist(context.Background(), ana, AddToWatchlistParams{
		TMDBId: 550,
		Title:  "Fight Club",
	})
	assert.ErrorIs(t, err, ErrNotRated)
}

func TestAddToWatchlistIdempotent(t *testing.T) {
	db := newTestDB(t)
	ratings := NewRatingService(db)
	watchlist := NewWatchlistService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")

	_, err := ratings.RateMovie(context.Background(), ana, 550, 8)
	require.NoError(t, err)

	first, err := watchlist.AddToWatchlist(context.Background(), ana, AddToWatchlistParams{
		TMDBId: 550,
		Title:  "Fight Club",
	})
	require.NoError(t, err)

	second, err := watchlist.AddToWatchlist(context.Background(), ana, AddToWatchlistParams{
		TMDBId: 550,
		Title:  "Fight Club",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entries, err := watchlist.GetWatchlist(context.Background(), ana)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpdateWatchlistMovie(t *testing.T) {
	db := newTestDB(t)
	ratings := NewRatingService(db)
	watchlist := NewWatchlistService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")

	_, err := ratings.RateMovie(context.Background(), ana, 550, 8)
	require.NoError(t, err)
	entry, err := watchlist.AddToWatchlist(context.Background(), ana, AddToWatchlistParams{
		TMDBId: 550,
		Title:  "Fight Club",
	})
	require.NoError(t, err)

	watched := true
	updated, err := watchlist.UpdateWatchlistMovie(context.Background(), entry.ID, ana, UpdateWatchlistMovieParams{
		Watched: &watched,
	})
	require.NoError(t, err)
	assert.True(t, updated.Watched)
	assert.Equal(t, 8.0, updated.Rating, "untouched fields stay")
}

func TestWatchlistOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	ratings := NewRatingService(db)
	watchlist := NewWatchlistService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	_, err := ratings.RateMovie(context.Background(), ana, 550, 8)
	require.NoError(t, err)
	entry, err := watchlist.AddToWatchlist(context.Background(), ana, AddToWatchlistParams{
		TMDBId: 550,
		Title:  "Fight Club",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, watchlist.RemoveFromWatchlist(context.Background(), entry.ID, beto), ErrForbidden)

	watched := true
	_, err = watchlist.UpdateWatchlistMovie(context.Background(), entry.ID, beto, UpdateWatchlistMovieParams{Watched: &watched})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, watchlist.RemoveFromWatchlist(context.Background(), uuid.New(), ana), ErrNotFound)

	require.NoError(t, watchlist.RemoveFromWatchlist(context.Background(), entry.ID, ana))
	entries, err := watchlist.GetWatchlist(context.Background(), ana)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
