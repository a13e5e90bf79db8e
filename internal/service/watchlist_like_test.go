package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeAndUnlike(t *testing.T) {
	db := newTestDB(t)
	svc := NewWatchlistLikeService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	_, err := svc.Like(context.Background(), ana, beto)
	require.NoError(t, err)

	counts, liked, err := svc.LikeState(context.Background(), &ana)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[beto])
	assert.True(t, liked[beto])

	require.NoError(t, svc.Unlike(context.Background(), ana, beto))
	counts, _, err = svc.LikeState(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, counts[beto])
}

func TestLikeSelfRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewWatchlistLikeService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")

	_, err := svc.Like(context.Background(), ana, ana)
	assert.ErrorIs(t, err, ErrSelfLike)
}

func TestLikeIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewWatchlistLikeService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	first, err := svc.Like(context.Background(), ana, beto)
	require.NoError(t, err)
	second, err := svc.Like(context.Background(), ana, beto)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	counts, _, err := svc.LikeState(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[beto])
}

func TestUnlikeNonexistentIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewWatchlistLikeService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	assert.NoError(t, svc.Unlike(context.Background(), ana, beto))
}
