package service

import "errors"

var (
	// validation
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 10")
	ErrLimitInvalid     = errors.New("limit must be greater than 0")
	ErrPageInvalid      = errors.New("page must not be negative")

	// not found
	ErrReviewNotFound = errors.New("review not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrUserNotFound   = errors.New("user not found")

	// auth
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)
