package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"restaurant-review-backend/internal/domains/review/model"
	"restaurant-review-backend/internal/infrastructure/database"
	"restaurant-review-backend/internal/shared/query"
)

const foreignKeyViolation = "23503"

const reviewColumns = `id, restaurant_id, user_id, reviewer_name, rating, COALESCE(comment, ''), pictures, created_at, updated_at`

var defaultOrder = []query.SortField{{Column: "created_at"}}

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	db database.Querier
}

func NewPostgresReviewRepository(db database.Querier) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	pictures, err := encodePictures(review.Pictures)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reviews (
			id, restaurant_id, user_id, reviewer_name,
			rating, comment, pictures,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Exec(ctx, query,
		review.ID,
		review.RestaurantID,
		review.UserID,
		review.ReviewerName,
		review.Rating,
		nullableString(review.Comment),
		pictures,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return model.ErrRestaurantNotFound
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (r *postgresReviewRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error) {
	var pictures []byte
	if req.Pictures != nil {
		encoded, err := encodePictures(*req.Pictures)
		if err != nil {
			return nil, err
		}
		pictures = encoded
	}

	query := `
		UPDATE reviews SET
			rating = COALESCE($2::smallint, rating),
			comment = COALESCE($3::text, comment),
			pictures = COALESCE($4::jsonb, pictures),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reviewColumns

	review, err := scanReview(r.db.QueryRow(ctx, query, id, req.Rating, req.Comment, pictures))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresReviewRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Review, int, error) {
	where := &query.Where{}
	where.Add("restaurant_id = %s", filter.RestaurantID)
	if filter.Rating != nil {
		where.Add("rating = %s", *filter.Rating)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM reviews` + where.SQL()
	if err := r.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	listQuery := `SELECT ` + reviewColumns + ` FROM reviews` + where.SQL() +
		query.OrderByClause(filter.OrderBy, defaultOrder, "id") +
		fmt.Sprintf(" LIMIT %s OFFSET %s", where.Arg(filter.Page.Limit), where.Arg(filter.Page.Offset()))

	rows, err := r.db.Query(ctx, listQuery, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0, filter.Page.Limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) ListRecent(
	ctx context.Context,
	restaurantIDs []uuid.UUID,
	perRestaurant int,
) (map[uuid.UUID][]model.Review, error) {
	result := make(map[uuid.UUID][]model.Review, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(restaurantIDs))
	for i, id := range restaurantIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT ` + reviewColumns + `
		FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY restaurant_id ORDER BY created_at DESC, id DESC
			) AS rn
			FROM reviews
			WHERE restaurant_id = ANY($1::uuid[])
		) ranked
		WHERE rn <= $2
		ORDER BY restaurant_id, rn
	`

	rows, err := r.db.Query(ctx, query, ids, perRestaurant)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		result[review.RestaurantID] = append(result[review.RestaurantID], *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent reviews: %w", err)
	}

	return result, nil
}

// =====================================================
// STATISTICS
// =====================================================

func (r *postgresReviewRepository) Stats(ctx context.Context, restaurantID uuid.UUID) (model.Stats, error) {
	var stats model.Stats
	query := `SELECT COUNT(*), COALESCE(SUM(rating), 0) FROM reviews WHERE restaurant_id = $1`

	if err := r.db.QueryRow(ctx, query, restaurantID).Scan(&stats.TotalReviews, &stats.RatingSum); err != nil {
		return model.Stats{}, fmt.Errorf("failed to get review stats: %w", err)
	}
	return stats, nil
}

// =====================================================
// OWNERSHIP CHECKS
// =====================================================

func (r *postgresReviewRepository) OwnedBy(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE id = $1 AND user_id = $2)`, reviewID, userID)
}

func (r *postgresReviewRepository) BelongsTo(ctx context.Context, reviewID, restaurantID uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE id = $1 AND restaurant_id = $2)`, reviewID, restaurantID)
}

func (r *postgresReviewRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return ok, nil
}

// =====================================================
// HELPERS
// =====================================================

func scanReview(row pgx.Row) (*model.Review, error) {
	var review model.Review
	var pictures []byte

	err := row.Scan(
		&review.ID,
		&review.RestaurantID,
		&review.UserID,
		&review.ReviewerName,
		&review.Rating,
		&review.Comment,
		&pictures,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.Pictures = []model.Picture{}
	if len(pictures) > 0 {
		if err := json.Unmarshal(pictures, &review.Pictures); err != nil {
			return nil, fmt.Errorf("failed to decode pictures: %w", err)
		}
	}
	return &review, nil
}

func encodePictures(pictures []model.Picture) ([]byte, error) {
	if pictures == nil {
		pictures = []model.Picture{}
	}
	data, err := json.Marshal(pictures)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pictures: %w", err)
	}
	return data, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
