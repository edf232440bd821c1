package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes carried in the response envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnpaid       = "PAYMENT_NOT_COMPLETED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is an error that is safe to show to the client.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func BadRequest(format string, args ...any) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *AppError {
	return &AppError{Status: http.StatusConflict, Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func PaymentFailed(message string, err error) *AppError {
	return &AppError{Status: http.StatusPaymentRequired, Code: CodeUnpaid, Message: message, Err: err}
}

// AsAppError reports whether err carries an AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
					Success: false,
					Message: "An unexpected error occurred. Please try again later.",
					Code:    CodeInternal,
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err as an envelope. Errors that are not AppErrors are
// logged and reported with a generic message.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		if appErr.Status >= http.StatusInternalServerError {
			GetLogger().Error(appErr.Message, zap.Error(appErr.Err))
		}
		c.AbortWithStatusJSON(appErr.Status, Envelope{Success: false, Message: appErr.Message, Code: appErr.Code})
		return
	}
	GetLogger().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "Something went wrong. Please try again later.",
		Code:    CodeInternal,
	})
}
