package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EditWindow is how long after creation an author may still edit a review.
	EditWindow = 15 * time.Minute

	MinRating = 1
	MaxRating = 5
	MaxImages = 5
)

// Picture is an image attached to a review: an external URL or a data URI.
type Picture struct {
	Data    string `json:"data"`
	Caption string `json:"caption,omitempty"`
}

// Review is a user's rating of a restaurant. ReviewerName is a snapshot of the
// author's name at creation time.
type Review struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	UserID       uuid.UUID `json:"userId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	Pictures     []Picture `json:"pictures"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EditableAt reports whether the edit window is still open at now. A review
// exactly EditWindow old is still editable.
func (r *Review) EditableAt(now time.Time) bool {
	return now.Sub(r.CreatedAt) <= EditWindow
}

// Stats aggregates every review of one restaurant, regardless of filters.
type Stats struct {
	TotalReviews int
	RatingSum    int
}
