package model

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"restaurant-review-backend/internal/shared/query"
)

// SortFields maps the orderBy names accepted by the API to columns.
var SortFields = map[string]string{
	"createdAt": "created_at",
	"rating":    "rating",
}

// =====================================================
// QUERY DTOs
// =====================================================

// ListFilter selects one page of a restaurant's reviews.
type ListFilter struct {
	RestaurantID uuid.UUID
	Rating       *int
	OrderBy      []query.SortField
	Page         query.Page
}

// ListReviewsResponse is one page of reviews with its totals.
type ListReviewsResponse struct {
	Reviews     []Review `json:"reviews"`
	TotalCount  int      `json:"totalCount"`
	TotalPages  int      `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
}

// =====================================================
// MUTATION DTOs
// =====================================================

// CreateReviewRequest is the validated form of a review submission.
type CreateReviewRequest struct {
	Rating   int
	Comment  string
	Pictures []Picture
}

func (r *CreateReviewRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Rating,
			validation.Required.ErrorObject(ratingError()),
			validation.Min(MinRating).ErrorObject(ratingError()),
			validation.Max(MaxRating).ErrorObject(ratingError()),
		),
		validation.Field(&r.Pictures, validation.Length(0, MaxImages)),
	)
	return translate(err)
}

// UpdateReviewRequest carries the fields an author may change. Nil fields are
// left untouched.
type UpdateReviewRequest struct {
	Rating   *int       `json:"rating"`
	Comment  *string    `json:"comment"`
	Pictures *[]Picture `json:"pictures"`
}

func (r *UpdateReviewRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Rating, validation.By(func(value interface{}) error {
			if p, _ := value.(*int); p != nil && (*p < MinRating || *p > MaxRating) {
				return ratingError()
			}
			return nil
		})),
		validation.Field(&r.Pictures, validation.By(func(value interface{}) error {
			if p, _ := value.(*[]Picture); p != nil && len(*p) > MaxImages {
				return validation.NewError("validation_too_many_images", "a maximum of 5 images is allowed")
			}
			return nil
		})),
	)
	return translate(err)
}

// ParseRating converts the raw rating form value. An empty value is reported
// as missing, anything that is not an integer as invalid.
func ParseRating(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, NewRatingRequiredError()
	}
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewInvalidRatingError()
	}
	return rating, nil
}

func ratingError() validation.Error {
	return validation.NewError("validation_invalid_rating", "rating must be a number between 1 and 5")
}

// translate turns ozzo validation errors into the domain's apperror values.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(validation.Errors); ok {
		for _, key := range []string{"Rating", "rating"} {
			if _, bad := errs[key]; bad {
				return NewInvalidRatingError()
			}
		}
	}
	return NewInvalidBodyError(err.Error())
}
