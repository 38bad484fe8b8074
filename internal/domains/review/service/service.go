package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	restaurantmodel "restaurant-review-backend/internal/domains/restaurant/model"
	"restaurant-review-backend/internal/domains/review/model"
	"restaurant-review-backend/internal/domains/review/repository"
	"restaurant-review-backend/internal/shared/query"
	"restaurant-review-backend/pkg/cache"
)

type reviewService struct {
	repo        repository.ReviewRepository
	restaurants RestaurantChecker
	cache       cache.Cache
	now         func() time.Time
}

// NewReviewService wires the review flows. cache may be nil.
func NewReviewService(
	repo repository.ReviewRepository,
	restaurants RestaurantChecker,
	cache cache.Cache,
) ServiceInterface {
	return &reviewService{
		repo:        repo,
		restaurants: restaurants,
		cache:       cache,
		now:         time.Now,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *reviewService) CreateReview(
	ctx context.Context,
	restaurantID uuid.UUID,
	author Author,
	req model.CreateReviewRequest,
) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.restaurants.Exists(ctx, restaurantID)
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while creating the review.", err)
	}
	if !exists {
		return nil, model.NewRestaurantNotFoundError()
	}

	now := s.now().UTC()
	pictures := req.Pictures
	if pictures == nil {
		pictures = []model.Picture{}
	}

	review := &model.Review{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		UserID:       author.UserID,
		ReviewerName: author.Name,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Pictures:     pictures,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			return nil, model.NewRestaurantNotFoundError()
		}
		return nil, model.NewStoreError("An unexpected error occurred while creating the review.", err)
	}

	s.invalidate(ctx)
	return review, nil
}

// =====================================================
// LIST
// =====================================================

func (s *reviewService) ListReviews(ctx context.Context, filter model.ListFilter) (*model.ListReviewsResponse, error) {
	reviews, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while retrieving reviews.", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	return &model.ListReviewsResponse{
		Reviews:     reviews,
		TotalCount:  total,
		TotalPages:  query.TotalPages(total, filter.Page.Limit),
		CurrentPage: filter.Page.Page,
	}, nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *reviewService) UpdateReview(
	ctx context.Context,
	userID, restaurantID, reviewID uuid.UUID,
	req model.UpdateReviewRequest,
) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owned, err := s.repo.OwnedBy(ctx, reviewID, userID)
	if err != nil {
		return nil, model.NewStoreError("An unexpected error occurred while updating the review.", err)
	}
	if !owned {
		return nil, model.NewForbiddenError("update")
	}

	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, model.NewStoreError("An unexpected error occurred while updating the review.", err)
	}
	if existing.RestaurantID != restaurantID {
		return nil, model.NewReviewNotFoundError()
	}
	if !existing.EditableAt(s.now()) {
		return nil, model.NewEditWindowClosedError()
	}

	updated, err := s.repo.Update(ctx, reviewID, req)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, model.NewStoreError("An unexpected error occurred while updating the review.", err)
	}

	s.invalidate(ctx)
	return updated, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *reviewService) DeleteReview(ctx context.Context, userID, restaurantID, reviewID uuid.UUID) error {
	belongs, err := s.repo.BelongsTo(ctx, reviewID, restaurantID)
	if err != nil {
		return model.NewStoreError("An unexpected error occurred while deleting the review.", err)
	}
	if !belongs {
		return model.NewReviewNotFoundError()
	}

	var restaurantOwner, reviewOwner bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		restaurantOwner, err = s.restaurants.OwnedBy(gctx, restaurantID, userID)
		return err
	})
	g.Go(func() error {
		var err error
		reviewOwner, err = s.repo.OwnedBy(gctx, reviewID, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.NewStoreError("An unexpected error occurred while deleting the review.", err)
	}
	if !restaurantOwner && !reviewOwner {
		return model.NewForbiddenError("delete")
	}

	deleted, err := s.repo.Delete(ctx, reviewID)
	if err != nil {
		return model.NewStoreError("An unexpected error occurred while deleting the review.", err)
	}
	if !deleted {
		return model.NewReviewNotFoundError()
	}

	s.invalidate(ctx)
	return nil
}

// invalidate drops every cached restaurant view, since averages and embedded
// reviews depend on the review set.
func (s *reviewService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, restaurantmodel.CacheKeyPattern); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate restaurant cache")
	}
}
