package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-review-backend/internal/shared/apperror"
)

func TestCreateReviewRequest_Rating(t *testing.T) {
	tests := []struct {
		rating int
		valid  bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
		{-1, false},
	}

	for _, tt := range tests {
		req := CreateReviewRequest{Rating: tt.rating}
		err := req.Validate()
		if tt.valid {
			assert.NoError(t, err, "rating %d", tt.rating)
			continue
		}
		require.Error(t, err, "rating %d", tt.rating)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		assert.Equal(t, ErrCodeInvalidRating, apperror.From(err).Code)
	}
}

func TestCreateReviewRequest_TooManyPictures(t *testing.T) {
	req := CreateReviewRequest{Rating: 4, Pictures: make([]Picture, MaxImages+1)}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidBody, apperror.From(err).Code)

	req.Pictures = make([]Picture, MaxImages)
	assert.NoError(t, req.Validate())
}

func TestUpdateReviewRequest_Validate(t *testing.T) {
	zero, one, five, six := 0, 1, 5, 6

	assert.NoError(t, (&UpdateReviewRequest{}).Validate())
	assert.NoError(t, (&UpdateReviewRequest{Rating: &one}).Validate())
	assert.NoError(t, (&UpdateReviewRequest{Rating: &five}).Validate())

	for _, bad := range []*int{&zero, &six} {
		err := (&UpdateReviewRequest{Rating: bad}).Validate()
		require.Error(t, err)
		assert.Equal(t, ErrCodeInvalidRating, apperror.From(err).Code)
	}

	pictures := make([]Picture, MaxImages+1)
	err := (&UpdateReviewRequest{Pictures: &pictures}).Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidBody, apperror.From(err).Code)
}

func TestParseRating(t *testing.T) {
	rating, err := ParseRating(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, rating)

	_, err = ParseRating("")
	assert.Equal(t, ErrCodeRatingRequired, apperror.From(err).Code)

	_, err = ParseRating("four")
	assert.Equal(t, ErrCodeInvalidRating, apperror.From(err).Code)
}

func TestReview_EditableAt(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := &Review{CreatedAt: created}

	assert.True(t, r.EditableAt(created.Add(14*time.Minute)))
	assert.True(t, r.EditableAt(created.Add(15*time.Minute)))
	assert.False(t, r.EditableAt(created.Add(15*time.Minute+time.Second)))
	assert.False(t, r.EditableAt(created.Add(16*time.Minute)))
}
