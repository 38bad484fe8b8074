package service

import (
	"context"

	"github.com/google/uuid"

	"restaurant-review-backend/internal/domains/restaurant/model"
	reviewmodel "restaurant-review-backend/internal/domains/review/model"
)

// =====================================================
// RESTAURANT SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ListRestaurants returns one page of restaurants with their average
	// rating and most recent reviews.
	ListRestaurants(ctx context.Context, filter model.ListFilter) (*model.ListRestaurantsResponse, error)

	// GetRestaurant returns a restaurant with one page of its reviews.
	GetRestaurant(ctx context.Context, id uuid.UUID, q model.DetailQuery) (*model.Detail, error)

	CreateRestaurant(ctx context.Context, ownerID uuid.UUID, req model.CreateRestaurantRequest) (*model.Restaurant, error)

	// UpdateRestaurant and DeleteRestaurant are reserved to the owner.
	UpdateRestaurant(ctx context.Context, userID, id uuid.UUID, req model.UpdateRestaurantRequest) (*model.Restaurant, error)
	DeleteRestaurant(ctx context.Context, userID, id uuid.UUID) error
}

// ReviewReader is the read side of the review store used by restaurant views.
type ReviewReader interface {
	List(ctx context.Context, filter reviewmodel.ListFilter) ([]reviewmodel.Review, int, error)
	ListRecent(ctx context.Context, restaurantIDs []uuid.UUID, perRestaurant int) (map[uuid.UUID][]reviewmodel.Review, error)
	Stats(ctx context.Context, restaurantID uuid.UUID) (reviewmodel.Stats, error)
}
