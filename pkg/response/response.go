package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope. Data is always serialized, so a nil
// payload is sent as null.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorBody carries the status code and the underlying error text.
type ErrorBody struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   ErrorBody `json:"error"`
}

// Success writes the success envelope with the given status.
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewError builds the failure envelope without writing it.
func NewError(status int, message, description string) ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return ErrorResponse{
		Success: false,
		Message: message,
		Error:   ErrorBody{Code: status, Description: description},
	}
}

// Error writes the failure envelope using err's text as the description.
func Error(ctx *gin.Context, status int, message string, err error) {
	description := ""
	if err != nil {
		description = err.Error()
	}
	resp := NewError(status, message, description)
	ctx.JSON(resp.Error.Code, resp)
}

// Abort writes the failure envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message, description string) {
	resp := NewError(status, message, description)
	ctx.AbortWithStatusJSON(resp.Error.Code, resp)
}
