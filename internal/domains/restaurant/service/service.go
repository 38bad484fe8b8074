package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"restaurant-review-backend/internal/domains/restaurant/model"
	"restaurant-review-backend/internal/domains/restaurant/repository"
	reviewmodel "restaurant-review-backend/internal/domains/review/model"
	"restaurant-review-backend/internal/shared/query"
	"restaurant-review-backend/pkg/cache"
)

// RestaurantService implements ServiceInterface.
type RestaurantService struct {
	repo     repository.RestaurantRepository
	reviews  ReviewReader
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewRestaurantService wires the restaurant flows. A nil cache or a zero TTL
// disables caching.
func NewRestaurantService(
	repo repository.RestaurantRepository,
	reviews ReviewReader,
	cache cache.Cache,
	cacheTTL time.Duration,
) ServiceInterface {
	return &RestaurantService{
		repo:     repo,
		reviews:  reviews,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// =====================================================
// LIST
// =====================================================

func (s *RestaurantService) ListRestaurants(ctx context.Context, filter model.ListFilter) (*model.ListRestaurantsResponse, error) {
	cacheKey := model.ListCacheKey(filter)
	var cached model.ListRestaurantsResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	summaries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while fetching restaurants.", err)
	}

	ids := make([]uuid.UUID, len(summaries))
	for i := range summaries {
		ids[i] = summaries[i].ID
	}

	recent, err := s.reviews.ListRecent(ctx, ids, model.RecentReviewCount)
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while fetching restaurants.", err)
	}

	for i := range summaries {
		summaries[i].Reviews = recent[summaries[i].ID]
		if summaries[i].Reviews == nil {
			summaries[i].Reviews = []reviewmodel.Review{}
		}
	}
	if summaries == nil {
		summaries = []model.Summary{}
	}

	result := &model.ListRestaurantsResponse{
		Restaurants: summaries,
		TotalCount:  total,
		TotalPages:  query.TotalPages(total, filter.Page.Limit),
		CurrentPage: filter.Page.Page,
	}

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// =====================================================
// DETAIL
// =====================================================

func (s *RestaurantService) GetRestaurant(ctx context.Context, id uuid.UUID, q model.DetailQuery) (*model.Detail, error) {
	cacheKey := model.DetailCacheKey(id, q)
	var cached model.Detail
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			return nil, model.NewRestaurantNotFoundError()
		}
		return nil, model.NewStoreError("An unexpected error occurred while fetching the restaurant.", err)
	}

	reviews, _, err := s.reviews.List(ctx, q.ReviewFilter(id))
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while fetching the restaurant.", err)
	}
	if reviews == nil {
		reviews = []reviewmodel.Review{}
	}

	// Average and total cover every review, not just the filtered page.
	stats, err := s.reviews.Stats(ctx, id)
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while fetching the restaurant.", err)
	}

	detail := &model.Detail{
		Restaurant:        *restaurant,
		AverageRating:     model.AverageRating(stats.RatingSum, stats.TotalReviews),
		TotalReviews:      stats.TotalReviews,
		Reviews:           reviews,
		ReviewTotalPage:   query.TotalPages(stats.TotalReviews, q.Page.Limit),
		ReviewCurrentPage: q.Page.Page,
		ReviewLimit:       q.Page.Limit,
	}

	s.cacheSet(ctx, cacheKey, detail)
	return detail, nil
}

// =====================================================
// MUTATIONS
// =====================================================

func (s *RestaurantService) CreateRestaurant(
	ctx context.Context,
	ownerID uuid.UUID,
	req model.CreateRestaurantRequest,
) (*model.Restaurant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pictures := req.Pictures
	if pictures == nil {
		pictures = []model.Picture{}
	}

	now := s.now().UTC()
	restaurant := &model.Restaurant{
		ID:        uuid.New(),
		Name:      req.Name,
		Category:  req.Category,
		OwnerID:   ownerID,
		Pictures:  pictures,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while creating the restaurant.", err)
	}

	s.invalidate(ctx)
	return restaurant, nil
}

func (s *RestaurantService) UpdateRestaurant(
	ctx context.Context,
	userID, id uuid.UUID,
	req model.UpdateRestaurantRequest,
) (*model.Restaurant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owned, err := s.repo.OwnedBy(ctx, id, userID)
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while updating the restaurant.", err)
	}
	if !owned {
		return nil, model.NewForbiddenError("update")
	}

	restaurant, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			return nil, model.NewRestaurantNotFoundError()
		}
		return nil, model.NewStoreError("An unexpected error occurred while updating the restaurant.", err)
	}

	s.invalidate(ctx)
	return restaurant, nil
}

func (s *RestaurantService) DeleteRestaurant(ctx context.Context, userID, id uuid.UUID) error {
	owned, err := s.repo.OwnedBy(ctx, id, userID)
	if err != nil {
		return model.NewStoreError("An unexpected error occurred while deleting the restaurant.", err)
	}
	if !owned {
		return model.NewForbiddenError("delete")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return model.NewStoreError("An unexpected error occurred while deleting the restaurant.", err)
	}
	if !deleted {
		return model.NewRestaurantNotFoundError()
	}

	s.invalidate(ctx)
	return nil
}

// =====================================================
// CACHE
// =====================================================

func (s *RestaurantService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *RestaurantService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if !s.cacheEnabled() {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	if found {
		log.Debug().Str("key", key).Msg("cache hit")
	}
	return found
}

func (s *RestaurantService) cacheSet(ctx context.Context, key string, value interface{}) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *RestaurantService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, model.CacheKeyPattern); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate restaurant cache")
	}
}
