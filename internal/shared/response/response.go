package response

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"restaurant-review-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// ErrorResponse aborts the chain with an error envelope.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// FromError writes err using the status of its apperror kind. Store failures
// are logged and their cause is never exposed to the client.
func FromError(c *gin.Context, err error) {
	appErr := apperror.From(err)

	if appErr.Kind == apperror.KindStore {
		log.Error().
			Err(appErr.Err).
			Str("code", appErr.Code).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
	}

	ErrorResponse(c, appErr.Kind.HTTPStatus(), appErr.Code, appErr.Message)
}
