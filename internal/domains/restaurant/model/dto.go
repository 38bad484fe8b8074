package model

import (
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	reviewmodel "restaurant-review-backend/internal/domains/review/model"
	"restaurant-review-backend/internal/shared/query"
)

// SortFields maps the orderBy names accepted by the listing to columns.
var SortFields = map[string]string{
	"name":          "name",
	"averageRating": "average_rating",
	"createdAt":     "created_at",
}

// DefaultListOrder is applied when orderBy selects nothing.
var DefaultListOrder = []query.SortField{{Column: "created_at", Desc: true}}

// =====================================================
// LIST / DETAIL DTOs
// =====================================================

// ListFilter selects one page of restaurants.
type ListFilter struct {
	Name          string
	Category      string
	AverageRating *float64
	HasPicture    *bool
	OrderBy       []query.SortField
	Page          query.Page
}

type ListRestaurantsResponse struct {
	Restaurants []Summary `json:"restaurants"`
	TotalCount  int       `json:"totalCount"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}

// DetailQuery controls the review page embedded in a restaurant detail.
type DetailQuery struct {
	Rating  *int
	OrderBy []query.SortField
	Page    query.Page
}

// DefaultReviewOrder sorts embedded reviews newest first.
var DefaultReviewOrder = []query.SortField{{Column: "created_at", Desc: true}}

// ReviewFilter turns q into the review listing filter for restaurant id.
func (q DetailQuery) ReviewFilter(id uuid.UUID) reviewmodel.ListFilter {
	orderBy := q.OrderBy
	if len(orderBy) == 0 {
		orderBy = DefaultReviewOrder
	}
	return reviewmodel.ListFilter{
		RestaurantID: id,
		Rating:       q.Rating,
		OrderBy:      orderBy,
		Page:         q.Page,
	}
}

// =====================================================
// MUTATION DTOs
// =====================================================

type CreateRestaurantRequest struct {
	Name     string
	Category string
	Pictures []Picture
}

func (r *CreateRestaurantRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)

	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Category, validation.Required.Error("category is required")),
		validation.Field(&r.Pictures, validation.Length(0, MaxImages).Error("a maximum of 5 images is allowed")),
	)
	if err != nil {
		return NewInvalidBodyError(err.Error())
	}
	return nil
}

// UpdateRestaurantRequest carries the mutable fields. Owner is only decoded so
// that attempts to change it can be rejected.
type UpdateRestaurantRequest struct {
	Name     *string         `json:"name"`
	Category *string         `json:"category"`
	Pictures *[]Picture      `json:"pictures"`
	Owner    json.RawMessage `json:"owner,omitempty"`
}

func (r *UpdateRestaurantRequest) Validate() error {
	if len(r.Owner) > 0 && string(r.Owner) != "null" {
		return NewOwnerImmutableError()
	}

	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("name must not be empty")),
		validation.Field(&r.Category, validation.NilOrNotEmpty.Error("category must not be empty")),
		validation.Field(&r.Pictures, validation.By(func(value interface{}) error {
			if p, _ := value.(*[]Picture); p != nil && len(*p) > MaxImages {
				return validation.NewError("validation_too_many_images", "a maximum of 5 images is allowed")
			}
			return nil
		})),
	)
	if err != nil {
		return NewInvalidBodyError(err.Error())
	}
	return nil
}
