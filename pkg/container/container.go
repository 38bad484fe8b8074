package container

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"restaurant-review-backend/internal/config"
	restaurantHandler "restaurant-review-backend/internal/domains/restaurant/handler"
	restaurantRepo "restaurant-review-backend/internal/domains/restaurant/repository"
	restaurantService "restaurant-review-backend/internal/domains/restaurant/service"
	reviewHandler "restaurant-review-backend/internal/domains/review/handler"
	reviewRepo "restaurant-review-backend/internal/domains/review/repository"
	reviewService "restaurant-review-backend/internal/domains/review/service"
	infraCache "restaurant-review-backend/internal/infrastructure/cache"
	"restaurant-review-backend/internal/infrastructure/database"
	"restaurant-review-backend/internal/infrastructure/storage"
	"restaurant-review-backend/internal/shared/middleware"
	"restaurant-review-backend/pkg/cache"
	"restaurant-review-backend/pkg/jwt"
	"restaurant-review-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the application's dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache // nil when caching is disabled or Redis is unreachable
	JWTManager *jwt.Manager
	Images     *storage.ImageEncoder
	DevAuth    middleware.DevIdentity

	// Repositories
	RestaurantRepo restaurantRepo.RestaurantRepository
	ReviewRepo     reviewRepo.ReviewRepository

	// Services
	RestaurantService restaurantService.ServiceInterface
	ReviewService     reviewService.ServiceInterface

	// Handlers
	RestaurantHandler *restaurantHandler.RestaurantHandler
	ReviewHandler     *reviewHandler.ReviewHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.Images = storage.NewImageEncoder(cfg.Upload.MaxFileSize)
	if err := c.initDevIdentity(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Debug("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := database.Migrate(ctx, db.Pool); err != nil {
		db.Close()
		return err
	}

	c.DB = db
	return nil
}

// initCache leaves c.Cache nil when caching is off. A Redis outage is not
// fatal: the API keeps serving straight from the database.
func (c *Container) initCache() {
	if !c.Config.CacheEnabled() {
		log.Info().Msg("[CACHE] Disabled (CACHE_TTL=0)")
		return
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("[CACHE] Redis unavailable, continuing without cache")
		_ = redisCache.Close()
		return
	}
	c.Cache = redisCache
}

func (c *Container) initDevIdentity() error {
	auth := c.Config.Auth
	if auth.DevToken == "" {
		return nil
	}

	userID, err := uuid.Parse(auth.DevUserID)
	if err != nil {
		return fmt.Errorf("invalid AUTH_DEV_USER_ID: %w", err)
	}
	c.DevAuth = middleware.DevIdentity{
		Token:    auth.DevToken,
		Identity: middleware.Identity{UserID: userID, Name: auth.DevUserName},
	}
	log.Warn().Str("user_id", userID.String()).Msg("[AUTH] Development token enabled")
	return nil
}

func (c *Container) initRepositories() {
	c.RestaurantRepo = restaurantRepo.NewPostgresRestaurantRepository(c.DB.Pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(c.DB.Pool)
}

// initServices wires the two domains to each other through narrow
// interfaces: restaurants read reviews, reviews check restaurants.
func (c *Container) initServices() {
	c.RestaurantService = restaurantService.NewRestaurantService(
		c.RestaurantRepo,
		c.ReviewRepo,
		c.Cache,
		c.Config.Redis.TTL,
	)
	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.RestaurantRepo,
		c.Cache,
	)
}

func (c *Container) initHandlers() {
	c.RestaurantHandler = restaurantHandler.NewRestaurantHandler(c.RestaurantService, c.Images)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService, c.Images)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases the pool and the Redis client. Called on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		} else {
			log.Info().Msg("[CACHE] Redis connections closed")
		}
	}
}
