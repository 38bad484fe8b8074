package service

import (
	"context"

	"github.com/google/uuid"

	"restaurant-review-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// CreateReview stores a review by author against an existing restaurant.
	CreateReview(ctx context.Context, restaurantID uuid.UUID, author Author, req model.CreateReviewRequest) (*model.Review, error)

	// ListReviews returns one page of a restaurant's reviews.
	ListReviews(ctx context.Context, filter model.ListFilter) (*model.ListReviewsResponse, error)

	// UpdateReview lets the author edit a review while the edit window is open.
	UpdateReview(ctx context.Context, userID, restaurantID, reviewID uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error)

	// DeleteReview lets the author or the restaurant owner remove a review.
	DeleteReview(ctx context.Context, userID, restaurantID, reviewID uuid.UUID) error
}

// Author identifies who writes a review.
type Author struct {
	UserID uuid.UUID
	Name   string
}

// RestaurantChecker answers the restaurant questions the review flows need.
type RestaurantChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	OwnedBy(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error)
}
