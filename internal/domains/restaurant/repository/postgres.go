package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"restaurant-review-backend/internal/domains/restaurant/model"
	"restaurant-review-backend/internal/infrastructure/database"
	"restaurant-review-backend/internal/shared/query"
)

const restaurantColumns = `id, name, category, owner_id, pictures, created_at, updated_at`

// averageRatingExpr rounds to one decimal with ties to even: round(float8)
// rounds half to even, unlike ROUND(numeric, n).
const averageRatingExpr = `COALESCE(round((AVG(rv.rating) * 10)::float8) / 10, 0)`

// ratedRestaurants joins every restaurant with its reviews and exposes the
// rounded average as average_rating (0 without reviews).
const ratedRestaurants = `
	WITH rated AS (
		SELECT r.id, r.name, r.category, r.owner_id, r.pictures, r.created_at, r.updated_at,
			` + averageRatingExpr + ` AS average_rating
		FROM restaurants r
		LEFT JOIN reviews rv ON rv.restaurant_id = r.id
		GROUP BY r.id
	)`

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRestaurantRepository struct {
	db database.Querier
}

func NewPostgresRestaurantRepository(db database.Querier) RestaurantRepository {
	return &postgresRestaurantRepository{db: db}
}

// =====================================================
// CRUD
// =====================================================

func (r *postgresRestaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	pictures, err := encodePictures(restaurant.Pictures)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO restaurants (`+restaurantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		restaurant.ID,
		restaurant.Name,
		restaurant.Category,
		restaurant.OwnerID,
		pictures,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

func (r *postgresRestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	row := r.db.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)

	restaurant, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return restaurant, nil
}

func (r *postgresRestaurantRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	req model.UpdateRestaurantRequest,
) (*model.Restaurant, error) {
	var pictures []byte
	if req.Pictures != nil {
		encoded, err := encodePictures(*req.Pictures)
		if err != nil {
			return nil, err
		}
		pictures = encoded
	}

	row := r.db.QueryRow(ctx, `
		UPDATE restaurants SET
			name = COALESCE($2::text, name),
			category = COALESCE($3::text, category),
			pictures = COALESCE($4::jsonb, pictures),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+restaurantColumns,
		id, req.Name, req.Category, pictures,
	)

	restaurant, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return restaurant, nil
}

func (r *postgresRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresRestaurantRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Summary, int, error) {
	where := buildListWhere(filter)

	var total int
	countSQL := ratedRestaurants + ` SELECT COUNT(*) FROM rated` + where.SQL()
	if err := r.db.QueryRow(ctx, countSQL, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	listSQL := ratedRestaurants +
		` SELECT ` + restaurantColumns + `, average_rating FROM rated` + where.SQL() +
		query.OrderByClause(filter.OrderBy, model.DefaultListOrder, "id") +
		fmt.Sprintf(" LIMIT %s OFFSET %s", where.Arg(filter.Page.Limit), where.Arg(filter.Page.Offset()))

	rows, err := r.db.Query(ctx, listSQL, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.Summary, 0, filter.Page.Limit)
	for rows.Next() {
		var summary model.Summary
		var pictures []byte
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Category,
			&summary.OwnerID,
			&pictures,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.AverageRating,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		if summary.Pictures, err = decodePictures(pictures); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate restaurants: %w", err)
	}

	return summaries, total, nil
}

func buildListWhere(filter model.ListFilter) *query.Where {
	where := &query.Where{}
	if filter.Name != "" {
		where.Add(`name ILIKE %s ESCAPE '\'`, query.ContainsPattern(filter.Name))
	}
	if filter.Category != "" {
		where.Add(`category ILIKE %s ESCAPE '\'`, query.ContainsPattern(filter.Category))
	}
	if filter.AverageRating != nil {
		where.Add(`average_rating >= %s AND average_rating < %s`, *filter.AverageRating, *filter.AverageRating+1)
	}
	if filter.HasPicture != nil {
		if *filter.HasPicture {
			where.Add(`jsonb_array_length(pictures) > 0`)
		} else {
			where.Add(`jsonb_array_length(pictures) = 0`)
		}
	}
	return where
}

// =====================================================
// EXISTENCE CHECKS
// =====================================================

func (r *postgresRestaurantRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = $1)`, id)
}

func (r *postgresRestaurantRepository) OwnedBy(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = $1 AND owner_id = $2)`, restaurantID, userID)
}

func (r *postgresRestaurantRepository) exists(ctx context.Context, sql string, args ...interface{}) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check restaurant: %w", err)
	}
	return ok, nil
}

// =====================================================
// HELPERS
// =====================================================

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	var pictures []byte

	err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Category,
		&restaurant.OwnerID,
		&pictures,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if restaurant.Pictures, err = decodePictures(pictures); err != nil {
		return nil, err
	}
	return &restaurant, nil
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

func decodePictures(data []byte) ([]model.Picture, error) {
	pictures := []model.Picture{}
	if len(data) == 0 {
		return pictures, nil
	}
	if err := json.Unmarshal(data, &pictures); err != nil {
		return nil, fmt.Errorf("failed to decode pictures: %w", err)
	}
	return pictures, nil
}
