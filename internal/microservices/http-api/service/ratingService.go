package service

import (
	"errors"

	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	SetRating(userID, reviewID string, ratingValue int) error
	GetUserRating(userID, reviewID string) (*models.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	reviewRepo repository.ReviewRepository
	locks      *keyedMutex
}

func NewRatingService(ratingRepo repository.RatingRepository, reviewRepo repository.ReviewRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		reviewRepo: reviewRepo,
		locks:      newKeyedMutex(),
	}
}

// SetRating upserts the user's rating for a review. The upsert is keyed on
// the (user, review) pair, not on the rating's own id: rating the same review
// twice overwrites the first value in place, so at most one row exists per
// pair. The read-then-write is serialized per pair, and a duplicate-key
// violation that slips through anyway (another instance, say) is retried once
// as an update.
func (s *ratingService) SetRating(userID, reviewID string, ratingValue int) error {
	if ratingValue < 1 || ratingValue > 10 {
		return ErrRatingOutOfRange
	}

	// Check if review exists
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	unlock := s.locks.Lock("rating:" + userID + ":" + reviewID)
	defer unlock()

	existing, err := s.ratingRepo.GetByUserAndReview(userID, reviewID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing != nil {
		existing.Rating = ratingValue
		return s.ratingRepo.Update(existing)
	}

	newRating := &models.Rating{
		UserID:   userID,
		ReviewID: reviewID,
		Rating:   ratingValue,
	}
	if err := s.ratingRepo.Create(newRating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.retryAsUpdate(userID, reviewID, ratingValue)
		}
		return err
	}
	return nil
}

// retryAsUpdate handles the lost race: someone else created the row between
// our lookup and create, so overwrite theirs.
func (s *ratingService) retryAsUpdate(userID, reviewID string, ratingValue int) error {
	existing, err := s.ratingRepo.GetByUserAndReview(userID, reviewID)
	if err != nil {
		return err
	}
	existing.Rating = ratingValue
	return s.ratingRepo.Update(existing)
}

// GetUserRating retrieves a user's rating for a specific review
func (s *ratingService) GetUserRating(userID, reviewID string) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByUserAndReview(userID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}
