package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
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

func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.JSON(status, resp)
	return resp
}

// FromError translates a domain error into an HTTP error response. Storage
// failure detail is only exposed outside release mode.
func FromError(ctx *gin.Context, err error) APIResponse[any] {
	status := apperrors.HTTPStatus(err)
	msg := err.Error()
	var detail interface{}
	if apperrors.KindOf(err) == apperrors.KindStore {
		msg = "internal server error"
		if gin.Mode() != gin.ReleaseMode {
			detail = err.Error()
		}
	}
	return Error[any](ctx, status, msg, detail)
}
