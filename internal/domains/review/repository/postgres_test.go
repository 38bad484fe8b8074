package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-review-backend/internal/domains/review/model"
	"restaurant-review-backend/internal/shared/query"
)

var reviewRowColumns = []string{
	"id", "restaurant_id", "user_id", "reviewer_name", "rating", "comment", "pictures", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)

	now := time.Now()
	review := &model.Review{
		ID:           uuid.New(),
		RestaurantID: uuid.New(),
		UserID:       uuid.New(),
		ReviewerName: "alice",
		Rating:       4,
		Pictures:     []model.Picture{{Data: "https://img/1.png"}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(review.ID, review.RestaurantID, review.UserID, "alice", 4, (*string)(nil),
			[]byte(`[{"data":"https://img/1.png"}]`), now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), review))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_MissingRestaurant(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)

	mock.ExpectExec(`INSERT INTO reviews`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), &model.Review{ID: uuid.New(), Rating: 3})
	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM reviews WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(reviewRowColumns))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

func TestList_RatingFilterAppliesToCount(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)

	restaurantID := uuid.New()
	rating := 5
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM reviews WHERE restaurant_id = $1 AND rating = $2`)).
		WithArgs(restaurantID, 5).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reviews WHERE restaurant_id = $1 AND rating = $2 ORDER BY "rating" DESC, "id" ASC LIMIT $3 OFFSET $4`)).
		WithArgs(restaurantID, 5, 10, 10).
		WillReturnRows(pgxmock.NewRows(reviewRowColumns).
			AddRow(uuid.NewString(), restaurantID.String(), uuid.NewString(), "bob", 5, "great", []byte(`[]`), created, created))

	reviews, total, err := repo.List(context.Background(), model.ListFilter{
		RestaurantID: restaurantID,
		Rating:       &rating,
		OrderBy:      []query.SortField{{Column: "rating", Desc: true}},
		Page:         query.Page{Page: 2, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, reviews, 1)
	assert.Equal(t, "great", reviews[0].Comment)
	assert.Equal(t, restaurantID, reviews[0].RestaurantID)
	assert.Empty(t, reviews[0].Pictures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyDefaultsToCreatedAtAscending(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)
	restaurantID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WithArgs(restaurantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY "created_at" ASC, "id" ASC LIMIT $2 OFFSET $3`)).
		WithArgs(restaurantID, 10, 0).
		WillReturnRows(pgxmock.NewRows(reviewRowColumns))

	reviews, total, err := repo.List(context.Background(), model.ListFilter{
		RestaurantID: restaurantID,
		Page:         query.Page{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.Zero(t, total)
}

func TestListRecent_GroupsByRestaurant(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)

	a, b := uuid.New(), uuid.New()
	created := time.Now()

	mock.ExpectQuery(`ROW_NUMBER\(\) OVER`).
		WithArgs([]string{a.String(), b.String()}, 3).
		WillReturnRows(pgxmock.NewRows(reviewRowColumns).
			AddRow(uuid.NewString(), a.String(), uuid.NewString(), "x", 5, "", []byte(`[]`), created, created).
			AddRow(uuid.NewString(), a.String(), uuid.NewString(), "y", 3, "", []byte(`[]`), created, created).
			AddRow(uuid.NewString(), b.String(), uuid.NewString(), "z", 1, "", []byte(`[{"data":"u","caption":"c"}]`), created, created))

	recent, err := repo.ListRecent(context.Background(), []uuid.UUID{a, b}, 3)
	require.NoError(t, err)
	assert.Len(t, recent[a], 2)
	require.Len(t, recent[b], 1)
	assert.Equal(t, "c", recent[b][0].Pictures[0].Caption)
}

func TestListRecent_NoIDs(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)

	recent, err := repo.ListRecent(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(rating\), 0\) FROM reviews`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(2, 8))

	stats, err := repo.Stats(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{TotalReviews: 2, RatingSum: 8}, stats)
}

func TestOwnershipChecks(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)
	reviewID, userID, restaurantID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM reviews WHERE id = \$1 AND user_id = \$2\)`).
		WithArgs(reviewID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM reviews WHERE id = \$1 AND restaurant_id = \$2\)`).
		WithArgs(reviewID, restaurantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	owned, err := repo.OwnedBy(context.Background(), reviewID, userID)
	require.NoError(t, err)
	assert.True(t, owned)

	belongs, err := repo.BelongsTo(context.Background(), reviewID, restaurantID)
	require.NoError(t, err)
	assert.False(t, belongs)
}

func TestDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(errors.New("connection reset"))

	deleted, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.Delete(context.Background(), id)
	assert.ErrorContains(t, err, "failed to delete review")
}

func TestUpdate_PassesOnlyProvidedFields(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresReviewRepository(mock)

	id := uuid.New()
	rating := 2
	created := time.Now()

	mock.ExpectQuery(`UPDATE reviews SET`).
		WithArgs(id, &rating, (*string)(nil), []byte(nil)).
		WillReturnRows(pgxmock.NewRows(reviewRowColumns).
			AddRow(id.String(), uuid.NewString(), uuid.NewString(), "x", 2, "", []byte(`[]`), created, created))

	review, err := repo.Update(context.Background(), id, model.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 2, review.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}
