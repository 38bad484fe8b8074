package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	reviewmodel "restaurant-review-backend/internal/domains/review/model"
)

const (
	MaxImages = 5

	// RecentReviewCount is how many reviews each listed restaurant embeds.
	RecentReviewCount = 3
)

// Picture is an image of a restaurant: an external URL or a data URI.
type Picture struct {
	Data string `json:"data"`
}

// Restaurant is the stored entity. OwnerID never changes after creation.
type Restaurant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	OwnerID   uuid.UUID `json:"owner"`
	Pictures  []Picture `json:"pictures"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is a restaurant as it appears in listings.
type Summary struct {
	Restaurant
	AverageRating float64              `json:"averageRating"`
	Reviews       []reviewmodel.Review `json:"reviews"`
}

// Detail is a single restaurant with one page of its reviews.
type Detail struct {
	Restaurant
	AverageRating     float64              `json:"averageRating"`
	TotalReviews      int                  `json:"totalReviews"`
	Reviews           []reviewmodel.Review `json:"reviews"`
	ReviewTotalPage   int                  `json:"reviewTotalPage"`
	ReviewCurrentPage int                  `json:"reviewCurrentPage"`
	ReviewLimit       int                  `json:"reviewLimit"`
}

// AverageRating is sum/count rounded to one decimal with ties to even, the
// same rounding the listing query gets from round(float8). No reviews gives 0.
func AverageRating(sum, count int) float64 {
	if count <= 0 {
		return 0
	}
	avg := decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(count))).
		RoundBank(1)
	return avg.InexactFloat64()
}
