package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muyik/smartschool/pkg/apperrors"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes an error envelope with the given status code.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	})
}

// FromError maps an application error to its HTTP status and writes the
// envelope. Unknown errors become 500 without leaking internals.
func FromError(ctx *gin.Context, err error) {
	var ve *apperrors.ValidationError
	var ie *apperrors.InvariantError
	switch {
	case apperrors.IsNotFound(err):
		Error(ctx, http.StatusNotFound, "resource not found", nil)
	case errors.Is(err, apperrors.ErrVersionConflict):
		Error(ctx, http.StatusConflict, "the record was modified by another request, reload and retry", nil)
	case errors.As(err, &ve):
		Error(ctx, http.StatusBadRequest, "validation failed", ve.Violations)
	case errors.As(err, &ie):
		Error(ctx, http.StatusBadRequest, "validation failed", map[string]string{ie.Field: ie.Reason})
	default:
		Error(ctx, http.StatusInternalServerError, "internal server error", nil)
	}
}
