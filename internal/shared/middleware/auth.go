package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"restaurant-review-backend/internal/shared/apperror"
	"restaurant-review-backend/internal/shared/response"
	"restaurant-review-backend/pkg/jwt"
)

const identityKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID uuid.UUID
	Name   string
}

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// DevIdentity lets a fixed token authenticate as a fixed user. A zero value
// disables it.
type DevIdentity struct {
	Token    string
	Identity Identity
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's Identity in the context.
func AuthMiddleware(validator TokenValidator, dev DevIdentity) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FromError(c, apperror.Unauthenticated("MISSING_TOKEN", "Access Denied. No token provided."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.FromError(c, apperror.Unauthenticated("MISSING_TOKEN", "Access Denied. No token provided."))
			return
		}
		token := parts[1]

		if dev.Token != "" && token == dev.Token {
			c.Set(identityKey, dev.Identity)
			c.Next()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("token rejected")
			response.FromError(c, apperror.Unauthenticated("INVALID_TOKEN", "Invalid token."))
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.FromError(c, apperror.Unauthenticated("INVALID_TOKEN", "Invalid user ID in token."))
			return
		}

		c.Set(identityKey, Identity{UserID: userID, Name: claims.Name})
		c.Next()
	}
}

// CurrentUser returns the identity set by AuthMiddleware.
func CurrentUser(c *gin.Context) (Identity, error) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, apperror.Unauthenticated("MISSING_TOKEN", "Access Denied. No token provided.")
	}
	identity, ok := value.(Identity)
	if !ok {
		return Identity{}, apperror.Unauthenticated("INVALID_TOKEN", "Invalid token.")
	}
	return identity, nil
}
