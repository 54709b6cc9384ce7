package service

import (
	"sync"
	"testing"

	"reviewhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRatingService(t *testing.T) (RatingService, *fakeRatingRepo, *fakeReviewRepo) {
	t.Helper()
	ratingRepo := newFakeRatingRepo()
	reviewRepo := newFakeReviewRepo()
	return NewRatingService(ratingRepo, reviewRepo), ratingRepo, reviewRepo
}

func seedReview(t *testing.T, reviewRepo *fakeReviewRepo, authorID string) string {
	t.Helper()
	review := &models.Review{
		Group:    "books",
		Name:     "some review",
		Content:  "content",
		Rating:   7,
		AuthorID: authorID,
	}
	require.NoError(t, reviewRepo.Create(review))
	return review.ID
}

func TestSetRating_RejectsOutOfRange(t *testing.T) {
	svc, ratingRepo, reviewRepo := setupRatingService(t)
	reviewID := seedReview(t, reviewRepo, "")

	require.NoError(t, svc.SetRating("user-1", reviewID, 5))

	for _, value := range []int{0, -1, 11, 100} {
		err := svc.SetRating("user-1", reviewID, value)
		assert.ErrorIs(t, err, ErrRatingOutOfRange)
	}

	// the existing rating is untouched by rejected calls
	rating, err := svc.GetUserRating("user-1", reviewID)
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, 1, ratingRepo.count("user-1", reviewID))
}

func TestSetRating_UnknownReview(t *testing.T) {
	svc, _, _ := setupRatingService(t)

	err := svc.SetRating("user-1", "no-such-review", 5)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestSetRating_UpsertKeepsOneRecordPerPair(t *testing.T) {
	svc, ratingRepo, reviewRepo := setupRatingService(t)
	reviewID := seedReview(t, reviewRepo, "")

	require.NoError(t, svc.SetRating("user-1", reviewID, 8))
	require.NoError(t, svc.SetRating("user-1", reviewID, 3))

	assert.Equal(t, 1, ratingRepo.count("user-1", reviewID))

	rating, err := svc.GetUserRating("user-1", reviewID)
	require.NoError(t, err)
	assert.Equal(t, 3, rating.Rating, "last write wins")
}

func TestSetRating_DifferentUsersCoexist(t *testing.T) {
	svc, _, reviewRepo := setupRatingService(t)
	reviewID := seedReview(t, reviewRepo, "")

	require.NoError(t, svc.SetRating("user-1", reviewID, 10))
	require.NoError(t, svc.SetRating("user-2", reviewID, 1))

	first, err := svc.GetUserRating("user-1", reviewID)
	require.NoError(t, err)
	second, err := svc.GetUserRating("user-2", reviewID)
	require.NoError(t, err)

	assert.Equal(t, 10, first.Rating)
	assert.Equal(t, 1, second.Rating)
}

func TestGetUserRating_NotRated(t *testing.T) {
	svc, _, reviewRepo := setupRatingService(t)
	reviewID := seedReview(t, reviewRepo, "")

	_, err := svc.GetUserRating("user-1", reviewID)
	assert.ErrorIs(t, err, ErrRatingNotFound)
}

func TestSetRating_ConcurrentSamePairLeavesOneRecord(t *testing.T) {
	svc, ratingRepo, reviewRepo := setupRatingService(t)
	reviewID := seedReview(t, reviewRepo, "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(value int) {
			defer wg.Done()
			assert.NoError(t, svc.SetRating("user-1", reviewID, value%10+1))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ratingRepo.count("user-1", reviewID))
}
