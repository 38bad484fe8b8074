package model

import (
	"errors"

	"restaurant-review-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeRestaurantNotFound = "RES001"
	ErrCodeForbidden          = "RES002"
	ErrCodeOwnerImmutable     = "RES003"
	ErrCodeInvalidBody        = "RES004"
	ErrCodeStore              = "RES500"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// Error constructors
func NewRestaurantNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeRestaurantNotFound, "Restaurant not found.")
}

func NewForbiddenError(action string) *apperror.Error {
	return apperror.Forbidden(ErrCodeForbidden,
		"You do not have permission to "+action+" this restaurant.")
}

func NewOwnerImmutableError() *apperror.Error {
	return apperror.Validation(ErrCodeOwnerImmutable, "Owner field cannot be modified.")
}

func NewInvalidBodyError(message string) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidBody, message)
}

func NewStoreError(message string, err error) *apperror.Error {
	return apperror.Store(ErrCodeStore, message, err)
}
