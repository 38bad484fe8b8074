package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"restaurant-review-backend/internal/shared/middleware"
	"restaurant-review-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = c.Config.Upload.MaxMemory

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.SecureHeaders(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	auth := middleware.AuthMiddleware(c.JWTManager, c.DevAuth)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupRestaurantRoutes(v1, c, auth)
		setupReviewRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// RESTAURANT ROUTES
// ========================================
func setupRestaurantRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	restaurants := v1.Group("/restaurants")
	{
		restaurants.GET("", c.RestaurantHandler.ListRestaurants)
		restaurants.GET("/:id", c.RestaurantHandler.GetRestaurant)

		restaurants.POST("", auth, c.RestaurantHandler.CreateRestaurant)
		restaurants.PUT("/:id", auth, c.RestaurantHandler.UpdateRestaurant)
		restaurants.DELETE("/:id", auth, c.RestaurantHandler.DeleteRestaurant)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	reviews := v1.Group("/restaurants/:id/review")
	{
		reviews.GET("", c.ReviewHandler.ListReviews)

		reviews.POST("", auth, c.ReviewHandler.CreateReview)
		reviews.PUT("/:reviewId", auth, c.ReviewHandler.UpdateReview)
		reviews.DELETE("/:reviewId", auth, c.ReviewHandler.DeleteReview)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		var pool interface{}
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if dbStatus = componentStatus("database", appCtx.DB.HealthCheck(ctx)); dbStatus != "ok" {
				health["status"] = "degraded"
			}
			pool = appCtx.DB.Stats()
		}

		redisStatus := "disabled"
		if appCtx.Cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			redisStatus = componentStatus("redis", appCtx.Cache.Ping(ctx))
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"pool":     pool,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

// componentStatus keeps failure details in the log; the public body only says "error".
func componentStatus(component string, err error) string {
	if err == nil {
		return "ok"
	}
	log.Error().Err(err).Str("component", component).Msg("Health check failed")
	return "error"
}
