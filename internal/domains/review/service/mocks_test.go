package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"restaurant-review-backend/internal/domains/review/model"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*model.Review)
	return review, args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, id, req)
	review, _ := args.Get(0).(*model.Review)
	return review, args.Error(1)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) List(ctx context.Context, filter model.ListFilter) ([]model.Review, int, error) {
	args := m.Called(ctx, filter)
	reviews, _ := args.Get(0).([]model.Review)
	return reviews, args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) ListRecent(ctx context.Context, ids []uuid.UUID, perRestaurant int) (map[uuid.UUID][]model.Review, error) {
	args := m.Called(ctx, ids, perRestaurant)
	recent, _ := args.Get(0).(map[uuid.UUID][]model.Review)
	return recent, args.Error(1)
}

func (m *mockReviewRepo) Stats(ctx context.Context, restaurantID uuid.UUID) (model.Stats, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(model.Stats), args.Error(1)
}

func (m *mockReviewRepo) OwnedBy(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) BelongsTo(ctx context.Context, reviewID, restaurantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, reviewID, restaurantID)
	return args.Bool(0), args.Error(1)
}

type mockRestaurants struct {
	mock.Mock
}

func (m *mockRestaurants) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRestaurants) OwnedBy(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, restaurantID, userID)
	return args.Bool(0), args.Error(1)
}
