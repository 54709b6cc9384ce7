package repository

import (
	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *models.Like) error
	Delete(userID, reviewID string) error
	ExistsByUserAndReview(userID, reviewID string) (bool, error)
	CountByReview(reviewID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create a new like
func (r *likeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

// Delete a like by user and review
func (r *likeRepository) Delete(userID, reviewID string) error {
	result := r.db.Where("user_id = ? AND review_id = ?", userID, reviewID).Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsByUserAndReview checks whether the user has liked the review
func (r *likeRepository) ExistsByUserAndReview(userID, reviewID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByReview counts the total number of likes for a review
func (r *likeRepository) CountByReview(reviewID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("review_id = ?", reviewID).Count(&count).Error
	return count, err
}
