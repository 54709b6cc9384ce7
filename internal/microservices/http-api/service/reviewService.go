package service

import (
	"context"
	"errors"
	"sort"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(req *dto.CreateReviewDTO) (*models.Review, error)
	Update(reviewID string, req *dto.CreateReviewDTO) (*models.Review, error)
	Delete(reviewID string) error
	GetByID(reviewID, viewerID string) (*dto.ReviewWithEngagement, error)
	ListByRating(page, limit int, viewerID string) (*dto.ItemsPage[dto.ReviewWithEngagement], error)
	ListByAuthor(authorID string, page, limit int, viewerID string) (*dto.ItemsPage[dto.ReviewWithEngagement], error)
	GetTags() ([]string, error)
	AuthorLikesTotal(authorID string) (int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	ratingRepo repository.RatingRepository
	likeRepo   repository.LikeRepository
	userRepo   repository.UserRepository
	tagCache   *repository.TagCache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	ratingRepo repository.RatingRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	tagCache *repository.TagCache,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		ratingRepo: ratingRepo,
		likeRepo:   likeRepo,
		userRepo:   userRepo,
		tagCache:   tagCache,
	}
}

// Create stores a new review. No engagement data is computed here.
func (s *reviewService) Create(req *dto.CreateReviewDTO) (*models.Review, error) {
	review := &models.Review{
		Group:    req.Group,
		Tags:     datatypes.NewJSONSlice(req.Tags),
		Content:  req.Content,
		Images:   datatypes.NewJSONSlice(req.Images),
		Rating:   req.Rating,
		AuthorID: req.AuthorID,
		Name:     req.Name,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	// the tag set may have changed
	s.invalidateTags()

	return review, nil
}

// Update overwrites the fields of an existing review
func (s *reviewService) Update(reviewID string, req *dto.CreateReviewDTO) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	review.Group = req.Group
	review.Tags = datatypes.NewJSONSlice(req.Tags)
	review.Content = req.Content
	review.Images = datatypes.NewJSONSlice(req.Images)
	review.Rating = req.Rating
	review.AuthorID = req.AuthorID
	review.Name = req.Name

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	s.invalidateTags()

	return review, nil
}

// Delete removes a review by id
func (s *reviewService) Delete(reviewID string) error {
	if err := s.reviewRepo.Delete(reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	s.invalidateTags()

	return nil
}

// GetByID returns one review joined with its engagement data, personalized
// for the viewer when one is given.
func (s *reviewService) GetByID(reviewID, viewerID string) (*dto.ReviewWithEngagement, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	ratings, err := s.ratingRepo.GetByReview(reviewID)
	if err != nil {
		return nil, err
	}

	result, err := s.withEngagement(*review, ratings, viewerID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByRating aggregates every review, ranks by middle rating and slices out
// the requested page.
func (s *reviewService) ListByRating(page, limit int, viewerID string) (*dto.ItemsPage[dto.ReviewWithEngagement], error) {
	reviews, err := s.reviewRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return s.rankAndPage(reviews, page, limit, viewerID)
}

// ListByAuthor is ListByRating restricted to one author's reviews. The page
// total counts all of the author's reviews, not just the page slice.
func (s *reviewService) ListByAuthor(authorID string, page, limit int, viewerID string) (*dto.ItemsPage[dto.ReviewWithEngagement], error) {
	reviews, err := s.reviewRepo.GetByAuthor(authorID)
	if err != nil {
		return nil, err
	}
	return s.rankAndPage(reviews, page, limit, viewerID)
}

// rankAndPage joins the reviews against the full rating store, sorts
// ascending by middle rating and paginates. The sort is stable so equal-rated
// reviews keep their store order between requests.
func (s *reviewService) rankAndPage(reviews []models.Review, page, limit int, viewerID string) (*dto.ItemsPage[dto.ReviewWithEngagement], error) {
	if limit <= 0 {
		return nil, ErrLimitInvalid
	}
	if page < 0 {
		return nil, ErrPageInvalid
	}

	allRatings, err := s.ratingRepo.GetAll()
	if err != nil {
		return nil, err
	}

	aggregated := make([]dto.ReviewWithEngagement, 0, len(reviews))
	for _, review := range reviews {
		item, err := s.withEngagement(review, allRatings, viewerID)
		if err != nil {
			return nil, err
		}
		aggregated = append(aggregated, item)
	}

	sort.SliceStable(aggregated, func(i, j int) bool {
		return aggregated[i].MiddleRating < aggregated[j].MiddleRating
	})

	result := dto.Paginate(aggregated, page, limit)
	return &result, nil
}

// withEngagement computes the derived metrics for one review: the mean of
// its ratings (0 when it has none), the resolved author (nil when the author
// id points nowhere), the viewer's own rating and like state, and the like
// count. allRatings may span every review, filtering happens here.
func (s *reviewService) withEngagement(review models.Review, allRatings []models.Rating, viewerID string) (dto.ReviewWithEngagement, error) {
	var ratings []models.Rating
	for _, rating := range allRatings {
		if rating.ReviewID == review.ID {
			ratings = append(ratings, rating)
		}
	}

	middleRating := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating.Rating
		}
		middleRating = float64(sum) / float64(len(ratings))
	}

	var author *dto.UserResponse
	if review.AuthorID != "" {
		user, err := s.userRepo.FindByID(review.AuthorID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReviewWithEngagement{}, err
		}
		// a dangling author id leaves author nil, it never fails the join
		author = dto.FromModelToUserResponse(user)
	}

	var selfRating *int
	selfLike := false
	if viewerID != "" {
		for _, rating := range ratings {
			if rating.UserID == viewerID {
				value := rating.Rating
				selfRating = &value
				break
			}
		}

		liked, err := s.likeRepo.ExistsByUserAndReview(viewerID, review.ID)
		if err != nil {
			return dto.ReviewWithEngagement{}, err
		}
		selfLike = liked
	}

	likesTotal, err := s.likeRepo.CountByReview(review.ID)
	if err != nil {
		return dto.ReviewWithEngagement{}, err
	}

	return dto.ReviewWithEngagement{
		Review:       review,
		MiddleRating: middleRating,
		Author:       author,
		SelfRating:   selfRating,
		SelfLike:     selfLike,
		LikesTotal:   likesTotal,
	}, nil
}

// GetTags returns the unique tag strings across all reviews, first-seen order
func (s *reviewService) GetTags() ([]string, error) {
	ctx := context.Background()

	if tags, ok, err := s.tagCache.Get(ctx); err == nil && ok {
		return tags, nil
	}

	reviews, err := s.reviewRepo.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, review := range reviews {
		for _, tag := range review.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}

	// best effort, a cache write failure must not fail the read
	_ = s.tagCache.Set(ctx, tags)

	return tags, nil
}

// AuthorLikesTotal sums the like counts over all of an author's reviews.
// An author with no reviews has a total of 0, not an error.
func (s *reviewService) AuthorLikesTotal(authorID string) (int64, error) {
	reviews, err := s.reviewRepo.GetByAuthor(authorID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, review := range reviews {
		count, err := s.likeRepo.CountByReview(review.ID)
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

func (s *reviewService) invalidateTags() {
	_ = s.tagCache.Invalidate(context.Background())
}
