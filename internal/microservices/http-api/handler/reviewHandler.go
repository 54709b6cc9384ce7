package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/middleware"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	ratingService service.RatingService
	likeService   service.LikeService
}

func NewReviewHandler(
	reviewService service.ReviewService,
	ratingService service.RatingService,
	likeService service.LikeService,
) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		ratingService: ratingService,
		likeService:   likeService,
	}
}

// RegisterRoutes registers review-related routes. Read routes are public with
// optional viewer personalization, write routes require authentication.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	router.GET("/one/:id", optionalAuth, h.GetOneByID)
	router.GET("/tags", h.GetTags)
	router.GET("/by-rating/:page/:limit", optionalAuth, h.ListByRating)
	router.GET("/by-user/:userId/:page/:limit", optionalAuth, h.ListByAuthor)

	router.POST("", requireAuth, h.Create)
	router.PUT("/:id", requireAuth, h.Update)
	router.DELETE("/:id", requireAuth, h.Delete)
	router.POST("/rate/:reviewId/:rating", requireAuth, h.Rate)
	router.GET("/rate/:reviewId", requireAuth, h.GetMyRating)
	router.POST("/like/:id/:isLike", requireAuth, h.Like)
	router.GET("/like/author/:userId", requireAuth, h.AuthorLikesTotal)
}

// Create stores a new review
// POST /review
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// Update overwrites an existing review
// PUT /review/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Param("id"), &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// Delete removes a review
// DELETE /review/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviewService.Delete(c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// GetOneByID returns one review with its engagement data
// GET /review/one/:id
func (h *ReviewHandler) GetOneByID(c *gin.Context) {
	result, err := h.reviewService.GetByID(c.Param("id"), middleware.ViewerID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTags returns the unique tag strings across all reviews
// GET /review/tags
func (h *ReviewHandler) GetTags(c *gin.Context) {
	tags, err := h.reviewService.GetTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TagsResponse{Tags: tags})
}

// Rate upserts the caller's rating for a review
// POST /review/rate/:reviewId/:rating
func (h *ReviewHandler) Rate(c *gin.Context) {
	ratingValue, err := strconv.Atoi(c.Param("rating"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rating value"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.ratingService.SetRating(userID.(string), c.Param("reviewId"), ratingValue); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating saved successfully"})
}

// GetMyRating returns the caller's own rating for a review
// GET /review/rate/:reviewId
func (h *ReviewHandler) GetMyRating(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	rating, err := h.ratingService.GetUserRating(userID.(string), c.Param("reviewId"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SelfRatingResponse{ReviewID: rating.ReviewID, Rating: rating.Rating})
}

// ListByRating returns all reviews ranked by middle rating, paginated
// GET /review/by-rating/:page/:limit
func (h *ReviewHandler) ListByRating(c *gin.Context) {
	page, limit, err := parsePageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reviewService.ListByRating(page, limit, middleware.ViewerID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListByAuthor returns one author's reviews ranked by middle rating, paginated
// GET /review/by-user/:userId/:page/:limit
func (h *ReviewHandler) ListByAuthor(c *gin.Context) {
	page, limit, err := parsePageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reviewService.ListByAuthor(c.Param("userId"), page, limit, middleware.ViewerID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Like toggles the caller's like on a review and returns the resulting state
// POST /review/like/:id/:isLike
func (h *ReviewHandler) Like(c *gin.Context) {
	wantLiked, err := strconv.ParseBool(c.Param("isLike"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid like value"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	liked, err := h.likeService.SetLike(userID.(string), c.Param("id"), wantLiked)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LikeStateResponse{Liked: liked})
}

// AuthorLikesTotal returns the summed like count across an author's reviews
// GET /review/like/author/:userId
func (h *ReviewHandler) AuthorLikesTotal(c *gin.Context) {
	authorID := c.Param("userId")

	total, err := h.reviewService.AuthorLikesTotal(authorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AuthorLikesResponse{AuthorID: authorID, LikesTotal: total})
}

func parsePageParams(c *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return 0, 0, errors.New("invalid page value")
	}
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil {
		return 0, 0, errors.New("invalid limit value")
	}
	return page, limit, nil
}

func (h *ReviewHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrLimitInvalid),
		errors.Is(err, service.ErrPageInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
