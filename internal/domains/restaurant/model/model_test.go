package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-review-backend/internal/shared/apperror"
	"restaurant-review-backend/internal/shared/query"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name       string
		sum, count int
		want       float64
	}{
		{"no reviews", 0, 0, 0},
		{"single", 4, 1, 4},
		{"3 and 5", 8, 2, 4},
		{"1 and 2", 3, 2, 1.5},
		{"one third rounds down", 7, 3, 2.3},
		{"two thirds rounds up", 8, 3, 2.7},
		{"tie rounds to even below", 9, 4, 2.2},
		{"tie rounds to even above", 47, 20, 2.4},
		{"exact value kept", 13, 5, 2.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageRating(tt.sum, tt.count))
		})
	}
}

func TestListCacheKey(t *testing.T) {
	rating := 4.0
	base := ListFilter{
		Name:          "kfc",
		AverageRating: &rating,
		OrderBy:       []query.SortField{{Column: "name", Desc: true}},
		Page:          query.Page{Page: 1, Limit: 10},
	}

	key := ListCacheKey(base)
	assert.Regexp(t, `^restaurants:list:[0-9a-f]+$`, key)
	assert.Equal(t, key, ListCacheKey(base))

	other := base
	other.Page = query.Page{Page: 2, Limit: 10}
	assert.NotEqual(t, key, ListCacheKey(other))

	asc := base
	asc.OrderBy = []query.SortField{{Column: "name"}}
	assert.NotEqual(t, key, ListCacheKey(asc))
}

func TestListCacheKey_SeparatorInValues(t *testing.T) {
	page := query.Page{Page: 1, Limit: 10}
	a := ListCacheKey(ListFilter{Name: "x|", Page: page})
	b := ListCacheKey(ListFilter{Name: "x", Category: "|", Page: page})
	assert.NotEqual(t, a, b)

	c := ListCacheKey(ListFilter{Name: "a,b", Page: page})
	d := ListCacheKey(ListFilter{Name: "a", Category: "b", Page: page})
	assert.NotEqual(t, c, d)

	assert.Regexp(t, `^restaurants:list:[0-9a-f]{64}$`, a)
}

func TestDetailCacheKey(t *testing.T) {
	id := uuid.MustParse("6f1c1f8e-4a3b-4c55-9d1e-2b8f3d6a7c90")
	key := DetailCacheKey(id, DetailQuery{Page: query.Page{Page: 1, Limit: 10}})
	assert.Regexp(t, `^restaurants:detail:6f1c1f8e-4a3b-4c55-9d1e-2b8f3d6a7c90:[0-9a-f]+$`, key)

	five := 5
	assert.NotEqual(t, key, DetailCacheKey(id, DetailQuery{Rating: &five, Page: query.Page{Page: 1, Limit: 10}}))
}

func TestDetailQuery_ReviewFilter(t *testing.T) {
	id := uuid.New()
	filter := DetailQuery{Page: query.Page{Page: 2, Limit: 5}}.ReviewFilter(id)
	assert.Equal(t, id, filter.RestaurantID)
	assert.Equal(t, DefaultReviewOrder, filter.OrderBy)

	byRating := []query.SortField{{Column: "rating"}}
	filter = DetailQuery{OrderBy: byRating}.ReviewFilter(id)
	assert.Equal(t, byRating, filter.OrderBy)
}

func TestCreateRestaurantRequest_Validate(t *testing.T) {
	req := CreateRestaurantRequest{Name: "  KFC ", Category: "fast food"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "KFC", req.Name)

	missing := CreateRestaurantRequest{Name: "KFC", Category: "   "}
	err := missing.Validate()
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	tooMany := CreateRestaurantRequest{Name: "KFC", Category: "x", Pictures: make([]Picture, MaxImages+1)}
	assert.Error(t, tooMany.Validate())
}

func TestUpdateRestaurantRequest_Validate(t *testing.T) {
	var req UpdateRestaurantRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"New"}`), &req))
	assert.NoError(t, req.Validate())

	var withOwner UpdateRestaurantRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"New","owner":"someone"}`), &withOwner))
	err := withOwner.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeOwnerImmutable, apperror.From(err).Code)

	empty := ""
	err = (&UpdateRestaurantRequest{Name: &empty}).Validate()
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
