package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLikeService(t *testing.T) (LikeService, *fakeLikeRepo, *fakeReviewRepo) {
	t.Helper()
	likeRepo := newFakeLikeRepo()
	reviewRepo := newFakeReviewRepo()
	return NewLikeService(likeRepo, reviewRepo), likeRepo, reviewRepo
}

func TestSetLike_ToggleCases(t *testing.T) {
	svc, likeRepo, reviewRepo := setupLikeService(t)
	reviewID := seedReview(t, reviewRepo, "")

	// no like yet, wantLiked=false is a no-op
	liked, err := svc.SetLike("user-1", reviewID, false)
	require.NoError(t, err)
	assert.False(t, liked)

	// no like yet, wantLiked=true creates one
	liked, err = svc.SetLike("user-1", reviewID, true)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := likeRepo.CountByReview(reviewID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// like exists, wantLiked=true does not duplicate it
	liked, err = svc.SetLike("user-1", reviewID, true)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err = likeRepo.CountByReview(reviewID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "repeated like must not add a second record")

	// like exists, wantLiked=false deletes it
	liked, err = svc.SetLike("user-1", reviewID, false)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = likeRepo.CountByReview(reviewID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// and unliking again stays a no-op
	liked, err = svc.SetLike("user-1", reviewID, false)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestSetLike_KeyedOnUserAndReview(t *testing.T) {
	svc, likeRepo, reviewRepo := setupLikeService(t)
	first := seedReview(t, reviewRepo, "")
	second := seedReview(t, reviewRepo, "")

	// a like on one review must not shadow a like on another
	_, err := svc.SetLike("user-1", first, true)
	require.NoError(t, err)

	liked, err := svc.SetLike("user-1", second, true)
	require.NoError(t, err)
	assert.True(t, liked)

	firstCount, err := likeRepo.CountByReview(first)
	require.NoError(t, err)
	secondCount, err := likeRepo.CountByReview(second)
	require.NoError(t, err)

	assert.Equal(t, int64(1), firstCount)
	assert.Equal(t, int64(1), secondCount)

	// unliking the first leaves the second in place
	liked, err = svc.SetLike("user-1", first, false)
	require.NoError(t, err)
	assert.False(t, liked)

	secondCount, err = likeRepo.CountByReview(second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), secondCount)
}

func TestSetLike_UnknownReview(t *testing.T) {
	svc, _, _ := setupLikeService(t)

	_, err := svc.SetLike("user-1", "no-such-review", true)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestSetLike_ConcurrentSamePairLeavesOneRecord(t *testing.T) {
	svc, likeRepo, reviewRepo := setupLikeService(t)
	reviewID := seedReview(t, reviewRepo, "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SetLike("user-1", reviewID, true)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := likeRepo.CountByReview(reviewID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
