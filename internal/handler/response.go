package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

// ContextUserID is the gin context key under which the auth middleware
// stores the authenticated account id.
const ContextUserID = "user_id"

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// AccountID returns the authenticated account id set by the auth
// middleware. Handlers behind the middleware can rely on it being set.
func AccountID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// RespondError translates a service error into the HTTP response. Typed
// application errors carry their own status; anything else is logged and
// reported as an opaque 500.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}

	log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}
