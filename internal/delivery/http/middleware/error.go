package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/suawasthi/job-recom/internal/pkg/response"
)

// AppError carries an HTTP status alongside the wrapped cause so handlers
// can decide the client-facing shape at the point of failure.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct{}

func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// Middleware converts every error leaving a handler into the response
// envelope. Server-side failures are masked to a generic 500; client errors
// keep their status and message. Panics are recovered and masked too.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				err = internalError(c)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}
		return render(c, err)
	}
}

func render(c fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return internalError(c)
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return response.Error(c, status, msg, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return internalError(c)
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return response.Error(c, status, msg, nil)
	}

	return internalError(c)
}

func internalError(c fiber.Ctx) error {
	return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
}
