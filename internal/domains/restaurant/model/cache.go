package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"restaurant-review-backend/internal/shared/query"
)

const (
	CacheKeyPattern = "restaurants:*"

	listCachePrefix   = "restaurants:list"
	detailCachePrefix = "restaurants:detail"
)

type listKeyFields struct {
	Name          string   `json:"n"`
	Category      string   `json:"c"`
	AverageRating *float64 `json:"r"`
	HasPicture    *bool    `json:"p"`
	OrderBy       []string `json:"o"`
	Page          int      `json:"pg"`
	Limit         int      `json:"l"`
}

type detailKeyFields struct {
	Rating  *int     `json:"r"`
	OrderBy []string `json:"o"`
	Page    int      `json:"pg"`
	Limit   int      `json:"l"`
}

// ListCacheKey derives a short key from every field that shapes a listing.
// Fields are JSON encoded before hashing so no two filters share an input.
func ListCacheKey(f ListFilter) string {
	return listCachePrefix + ":" + digest(listKeyFields{
		Name:          f.Name,
		Category:      f.Category,
		AverageRating: f.AverageRating,
		HasPicture:    f.HasPicture,
		OrderBy:       sortTerms(f.OrderBy),
		Page:          f.Page.Page,
		Limit:         f.Page.Limit,
	})
}

// DetailCacheKey keys a detail view by restaurant and review query.
func DetailCacheKey(id uuid.UUID, q DetailQuery) string {
	return strings.Join([]string{detailCachePrefix, id.String(), digest(detailKeyFields{
		Rating:  q.Rating,
		OrderBy: sortTerms(q.OrderBy),
		Page:    q.Page.Page,
		Limit:   q.Page.Limit,
	})}, ":")
}

func digest(v any) string {
	// Structs of strings, numbers and pointers to them always marshal.
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func sortTerms(fields []query.SortField) []string {
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = f.Column
		if f.Desc {
			terms[i] += "-"
		}
	}
	return terms
}
