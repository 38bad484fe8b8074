package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"restaurant-review-backend/internal/domains/restaurant/model"
	reviewmodel "restaurant-review-backend/internal/domains/review/model"
)

type mockRestaurantRepo struct {
	mock.Mock
}

func (m *mockRestaurantRepo) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return m.Called(ctx, restaurant).Error(0)
}

func (m *mockRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	restaurant, _ := args.Get(0).(*model.Restaurant)
	return restaurant, args.Error(1)
}

func (m *mockRestaurantRepo) Update(ctx context.Context, id uuid.UUID, req model.UpdateRestaurantRequest) (*model.Restaurant, error) {
	args := m.Called(ctx, id, req)
	restaurant, _ := args.Get(0).(*model.Restaurant)
	return restaurant, args.Error(1)
}

func (m *mockRestaurantRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRestaurantRepo) List(ctx context.Context, filter model.ListFilter) ([]model.Summary, int, error) {
	args := m.Called(ctx, filter)
	summaries, _ := args.Get(0).([]model.Summary)
	return summaries, args.Int(1), args.Error(2)
}

func (m *mockRestaurantRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRestaurantRepo) OwnedBy(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, restaurantID, userID)
	return args.Bool(0), args.Error(1)
}

type mockReviewReader struct {
	mock.Mock
}

func (m *mockReviewReader) List(ctx context.Context, filter reviewmodel.ListFilter) ([]reviewmodel.Review, int, error) {
	args := m.Called(ctx, filter)
	reviews, _ := args.Get(0).([]reviewmodel.Review)
	return reviews, args.Int(1), args.Error(2)
}

func (m *mockReviewReader) ListRecent(ctx context.Context, ids []uuid.UUID, perRestaurant int) (map[uuid.UUID][]reviewmodel.Review, error) {
	args := m.Called(ctx, ids, perRestaurant)
	recent, _ := args.Get(0).(map[uuid.UUID][]reviewmodel.Review)
	return recent, args.Error(1)
}

func (m *mockReviewReader) Stats(ctx context.Context, restaurantID uuid.UUID) (reviewmodel.Stats, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(reviewmodel.Stats), args.Error(1)
}
