package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Review struct {
	ID      string                     `json:"id" gorm:"primaryKey;type:uuid"`
	Group   string                     `json:"group" gorm:"column:review_group;not null"`
	Tags    datatypes.JSONSlice[string] `json:"tags"`
	Content string                     `json:"content" gorm:"type:text"`
	Images  datatypes.JSONSlice[string] `json:"images"`
	// the author's own 1-10 score, not the aggregated one
	Rating    int       `json:"rating" gorm:"check:rating >= 1 AND rating <= 10"`
	AuthorID  string    `json:"author_id" gorm:"index"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook to set UUID before creating a Review
func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}
