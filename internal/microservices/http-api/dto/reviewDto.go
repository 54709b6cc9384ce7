package dto

import "reviewhub/internal/microservices/http-api/models"

// CreateReviewDTO for creating or updating a review
type CreateReviewDTO struct {
	Group   string   `json:"group" binding:"required"`
	Tags    []string `json:"tags"`
	Content string   `json:"content" binding:"required"`
	Images  []string `json:"images"`
	Rating  int      `json:"rating" binding:"required,min=1,max=10"`
	// optional, aggregation tolerates reviews without a resolvable author
	AuthorID string `json:"author_id"`
	Name     string `json:"name" binding:"required"`
}

// ReviewWithEngagement is a review joined with its derived engagement data:
// the aggregated rating, the author (nil when the author id is dangling) and
// the viewer's own rating/like state.
type ReviewWithEngagement struct {
	Review       models.Review `json:"review"`
	MiddleRating float64       `json:"middle_rating"`
	Author       *UserResponse `json:"author"`
	SelfRating   *int          `json:"self_rating,omitempty"`
	SelfLike     bool          `json:"self_like"`
	LikesTotal   int64         `json:"likes_total"`
}

// SelfRatingResponse for returning the caller's own rating of a review
type SelfRatingResponse struct {
	ReviewID string `json:"review_id"`
	Rating   int    `json:"rating"`
}

// LikeStateResponse for returning the resulting liked state of a toggle
type LikeStateResponse struct {
	Liked bool `json:"liked"`
}

// AuthorLikesResponse for returning the total likes across an author's reviews
type AuthorLikesResponse struct {
	AuthorID   string `json:"author_id"`
	LikesTotal int64  `json:"likes_total"`
}

// TagsResponse for returning the set of unique tags across all reviews
type TagsResponse struct {
	Tags []string `json:"tags"`
}
