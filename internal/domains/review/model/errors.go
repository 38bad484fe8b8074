package model

import (
	"errors"

	"restaurant-review-backend/internal/shared/apperror"
)

// Sentinel errors returned by the repository.
var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// Error codes
const (
	ErrCodeReviewNotFound     = "REV001"
	ErrCodeRatingRequired     = "REV002"
	ErrCodeInvalidRating      = "REV003"
	ErrCodeEditWindowClosed   = "REV004"
	ErrCodeForbidden          = "REV005"
	ErrCodeRestaurantNotFound = "REV006"
	ErrCodeInvalidBody        = "REV007"
	ErrCodeStore              = "REV500"
)

// Error constructors
func NewReviewNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeReviewNotFound, "Review not found for the specified restaurant.")
}

func NewRatingRequiredError() *apperror.Error {
	return apperror.Validation(ErrCodeRatingRequired, "rating is required.")
}

func NewInvalidRatingError() *apperror.Error {
	return apperror.Validation(ErrCodeInvalidRating, "rating must be a number between 1 and 5.")
}

func NewEditWindowClosedError() *apperror.Error {
	return apperror.TimeWindow(ErrCodeEditWindowClosed, "Time allocation for editing review has passed.")
}

func NewForbiddenError(action string) *apperror.Error {
	return apperror.Forbidden(ErrCodeForbidden,
		"You do not have permission to "+action+" this review or it does not exist.")
}

func NewRestaurantNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeRestaurantNotFound, "Restaurant not found.")
}

func NewInvalidBodyError(message string) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidBody, message)
}

func NewStoreError(message string, err error) *apperror.Error {
	return apperror.Store(ErrCodeStore, message, err)
}
