package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	_, err := svc.Follow(context.Background(), ana, beto)
	require.NoError(t, err)

	following, err := svc.IsFollowing(context.Background(), ana, beto)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directional.
	reverse, err := svc.IsFollowing(context.Background(), beto, ana)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.NoError(t, svc.Unfollow(context.Background(), ana, beto))
	following, err = svc.IsFollowing(context.Background(), ana, beto)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowSelfRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")

	_, err := svc.Follow(context.Background(), ana, ana)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	first, err := svc.Follow(context.Background(), ana, beto)
	require.NoError(t, err)
	second, err := svc.Follow(context.Background(), ana, beto)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := svc.FollowingCount(context.Background(), ana)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnfollowNonexistentIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	assert.NoError(t, svc.Unfollow(context.Background(), ana, beto))
}

func TestFollowersAndFollowingLists(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")
	cleo := createTestUser(t, db, "cleo@example.com", "cleo")

	_, err := svc.Follow(context.Background(), ana, beto)
	require.NoError(t, err)
	_, err = svc.Follow(context.Background(), cleo, beto)
	require.NoError(t, err)

	followers, err := svc.GetFollowers(context.Background(), beto)
	require.NoError(t, err)
	names := []string{}
	for _, f := range followers {
		names = append(names, f.Username)
	}
	assert.ElementsMatch(t, []string{"ana", "cleo"}, names)

	following, err := svc.GetFollowing(context.Background(), ana)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "beto", following[0].Username)
	assert.Equal(t, beto, following[0].ID)
}

func TestFollowingIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ana := createTestUser(t, db, "ana@example.com", "ana")
	beto := createTestUser(t, db, "beto@example.com", "beto")

	ids, err := svc.FollowingIDs(context.Background(), ana)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = svc.Follow(context.Background(), ana, beto)
	require.NoError(t, err)

	ids, err = svc.FollowingIDs(context.Background(), ana)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, beto, ids[0])
}
