package repository

import (
	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(reviewID string) error
	GetByID(reviewID string) (*models.Review, error)
	GetAll() ([]models.Review, error)
	GetByAuthor(authorID string) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update an existing review
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// Delete a review by id
func (r *reviewRepository) Delete(reviewID string) error {
	result := r.db.Where("id = ?", reviewID).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a review by its id
func (r *reviewRepository) GetByID(reviewID string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetAll retrieves every review. The engagement aggregation works over the
// full set, ranking happens in memory after the join.
func (r *reviewRepository) GetAll() ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetByAuthor retrieves all reviews written by the given author
func (r *reviewRepository) GetByAuthor(authorID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("author_id = ?", authorID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
