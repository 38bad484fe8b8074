package repository

import (
	"context"

	"github.com/google/uuid"

	"restaurant-review-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

type ReviewRepository interface {
	// Create inserts a review. It returns model.ErrRestaurantNotFound when the
	// restaurant does not exist.
	Create(ctx context.Context, review *model.Review) error

	// GetByID returns model.ErrReviewNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// Update applies the non-nil fields of req and returns the stored review.
	Update(ctx context.Context, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error)

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns one page of a restaurant's reviews and the number of
	// reviews matching the same filter.
	List(ctx context.Context, filter model.ListFilter) ([]model.Review, int, error)

	// ListRecent returns up to perRestaurant most recent reviews for each id.
	ListRecent(ctx context.Context, restaurantIDs []uuid.UUID, perRestaurant int) (map[uuid.UUID][]model.Review, error)

	// Stats aggregates all reviews of a restaurant.
	Stats(ctx context.Context, restaurantID uuid.UUID) (model.Stats, error)

	// ========================================
	// OWNERSHIP CHECKS
	// ========================================

	OwnedBy(ctx context.Context, reviewID, userID uuid.UUID) (bool, error)
	BelongsTo(ctx context.Context, reviewID, restaurantID uuid.UUID) (bool, error)
}
