package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"restaurant-review-backend/internal/config"
	restaurantmodel "restaurant-review-backend/internal/domains/restaurant/model"
	restaurantRepo "restaurant-review-backend/internal/domains/restaurant/repository"
	reviewmodel "restaurant-review-backend/internal/domains/review/model"
	reviewRepo "restaurant-review-backend/internal/domains/review/repository"
	"restaurant-review-backend/internal/infrastructure/database"
	pkgdb "restaurant-review-backend/pkg/database"
	"restaurant-review-backend/pkg/jwt"
	"restaurant-review-backend/pkg/logger"
)

// defaultSeedUserID owns every seeded restaurant and writes every review.
const defaultSeedUserID = "67f3d798-3ff6-4240-8012-661eef000001"

type seedReview struct {
	rating  int
	comment string
	picture string
}

type seedRestaurant struct {
	name     string
	category string
	picture  string
	reviews  []seedReview
}

var seedData = []seedRestaurant{
	{"Shake Shack", "Fast Food", "shakeshack1.jpg", []seedReview{
		{4, "Tasty burgers!", "shake1.jpg"},
		{5, "Loved the fries!", "fries.jpg"},
	}},
	{"KFC", "Fast Food", "kfc1.jpg", []seedReview{{3, "Chicken was too salty.", "kfc.jpg"}}},
	{"McDonald's", "Fast Food", "mcdonalds1.jpg", []seedReview{{4, "Fast service!", "mcdonalds.jpg"}}},
	{"Olive Garden", "Italian", "olivegarden1.jpg", []seedReview{{5, "Pasta was amazing!", "pasta.jpg"}}},
	{"Pizza Hut", "Italian", "pizzahut1.jpg", []seedReview{{4, "Good pizza but crust was hard.", "pizza.jpg"}}},
	{"Din Tai Fung", "Chinese", "dintaifung1.jpg", []seedReview{{5, "Best dumplings I've ever had!", "dumplings.jpg"}}},
	{"Panda Express", "Chinese", "pandaexpress1.jpg", []seedReview{{4, "Nice Orange Chicken.", "orangechicken.jpg"}}},
	{"Starbucks", "Cafe", "starbucks1.jpg", []seedReview{{5, "Best coffee!", "coffee.jpg"}}},
	{"Coffee Bean", "Cafe", "coffeebean1.jpg", []seedReview{{3, "Average experience.", "coffee2.jpg"}}},
	{"Baskin Robbins", "Desserts", "baskinrobbins1.jpg", []seedReview{{4, "Ice cream was good but too sweet.", "icecream.jpg"}}},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate")
	}

	userID := uuid.MustParse(defaultSeedUserID)
	if cfg.Auth.DevUserID != "" {
		userID = uuid.MustParse(cfg.Auth.DevUserID)
	}
	userName := cfg.Auth.DevUserName

	err = pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		return seed(ctx, tx, userID, userName, time.Now().UTC())
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Int("restaurants", len(seedData)).Msg("Seed data inserted")

	token, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry).GenerateAccessToken(userID.String(), userName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue token")
	}
	fmt.Printf("Bearer token for %s (%s):\n%s\n", userName, userID, token)
}

// seed clears both tables and inserts seedData through the repositories.
func seed(ctx context.Context, q database.Querier, userID uuid.UUID, userName string, now time.Time) error {
	if _, err := q.Exec(ctx, `DELETE FROM reviews`); err != nil {
		return fmt.Errorf("clear reviews: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM restaurants`); err != nil {
		return fmt.Errorf("clear restaurants: %w", err)
	}

	restaurants := restaurantRepo.NewPostgresRestaurantRepository(q)
	reviews := reviewRepo.NewPostgresReviewRepository(q)

	for i, r := range seedData {
		// Spread creation times so the default newest-first order is stable.
		createdAt := now.Add(-time.Duration(len(seedData)-i) * time.Minute)
		restaurant := &restaurantmodel.Restaurant{
			ID:        uuid.New(),
			Name:      r.name,
			Category:  r.category,
			OwnerID:   userID,
			Pictures:  []restaurantmodel.Picture{{Data: r.picture}},
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := restaurants.Create(ctx, restaurant); err != nil {
			return fmt.Errorf("insert %s: %w", r.name, err)
		}

		for j, rv := range r.reviews {
			reviewedAt := createdAt.Add(time.Duration(j+1) * time.Second)
			review := &reviewmodel.Review{
				ID:           uuid.New(),
				RestaurantID: restaurant.ID,
				UserID:       userID,
				ReviewerName: userName,
				Rating:       rv.rating,
				Comment:      rv.comment,
				Pictures:     []reviewmodel.Picture{{Data: rv.picture}},
				CreatedAt:    reviewedAt,
				UpdatedAt:    reviewedAt,
			}
			if err := reviews.Create(ctx, review); err != nil {
				return fmt.Errorf("insert review for %s: %w", r.name, err)
			}
		}
	}
	return nil
}
