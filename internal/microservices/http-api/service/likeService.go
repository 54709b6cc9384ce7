package service

import (
	"errors"

	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type LikeService interface {
	SetLike(userID, reviewID string, wantLiked bool) (bool, error)
}

type likeService struct {
	likeRepo   repository.LikeRepository
	reviewRepo repository.ReviewRepository
	locks      *keyedMutex
}

func NewLikeService(likeRepo repository.LikeRepository, reviewRepo repository.ReviewRepository) LikeService {
	return &likeService{
		likeRepo:   likeRepo,
		reviewRepo: reviewRepo,
		locks:      newKeyedMutex(),
	}
}

// SetLike toggles the like state for a (user, review) pair toward wantLiked
// and returns the resulting state. All four cases are idempotent: repeating
// the same call never duplicates a row and never errors. The existence check
// is keyed on the full (user, review) pair, liking one review never shadows a
// like on another.
func (s *likeService) SetLike(userID, reviewID string, wantLiked bool) (bool, error) {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrReviewNotFound
		}
		return false, err
	}

	unlock := s.locks.Lock("like:" + userID + ":" + reviewID)
	defer unlock()

	exists, err := s.likeRepo.ExistsByUserAndReview(userID, reviewID)
	if err != nil {
		return false, err
	}

	switch {
	case exists && wantLiked:
		return true, nil
	case exists && !wantLiked:
		if err := s.likeRepo.Delete(userID, reviewID); err != nil {
			return false, err
		}
		return false, nil
	case !exists && wantLiked:
		like := &models.Like{UserID: userID, ReviewID: reviewID}
		if err := s.likeRepo.Create(like); err != nil {
			// concurrent create from elsewhere, the state we wanted is there
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return true, nil
			}
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}
