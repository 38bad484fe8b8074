package repository

import (
	"context"

	"github.com/google/uuid"

	"restaurant-review-backend/internal/domains/restaurant/model"
)

// =====================================================
// RESTAURANT REPOSITORY INTERFACE
// =====================================================

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error

	// GetByID returns model.ErrRestaurantNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)

	// Update applies the non-nil fields of req.
	Update(ctx context.Context, id uuid.UUID, req model.UpdateRestaurantRequest) (*model.Restaurant, error)

	// Delete reports whether a row was removed. Reviews go with it.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns one page of restaurants with their computed average
	// rating, and the number of restaurants matching the filter. Reviews are
	// not attached.
	List(ctx context.Context, filter model.ListFilter) ([]model.Summary, int, error)

	// ========================================
	// EXISTENCE CHECKS
	// ========================================

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	OwnedBy(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error)
}
