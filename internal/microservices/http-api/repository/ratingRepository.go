package repository

import (
	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	GetByUserAndReview(userID, reviewID string) (*models.Rating, error)
	GetByReview(reviewID string) ([]models.Rating, error)
	GetAll() ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// Update an existing rating
func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

// GetByUserAndReview retrieves a user's rating for a specific review
func (r *ratingRepository) GetByUserAndReview(userID, reviewID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND review_id = ?", userID, reviewID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByReview retrieves all ratings for a specific review
func (r *ratingRepository) GetByReview(reviewID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("review_id = ?", reviewID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetAll retrieves every rating, the aggregation filters per review in memory
func (r *ratingRepository) GetAll() ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
