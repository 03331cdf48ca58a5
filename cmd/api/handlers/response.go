package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"car-blog/cmd/api/auth"
	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/services"
	"car-blog/internal/logger"
)

var statusByCode = map[string]int{
	dto.CodeUnauthorized:         http.StatusUnauthorized,
	dto.CodeForbidden:            http.StatusForbidden,
	dto.CodeValidationFailed:     http.StatusBadRequest,
	dto.CodeNotFound:             http.StatusNotFound,
	dto.CodeConflict:             http.StatusConflict,
	dto.CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	dto.CodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	dto.CodeTooManyRequests:      http.StatusTooManyRequests,
	dto.CodeInternal:             http.StatusInternalServerError,
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err *services.Error) int {
	if err.Status != 0 {
		return err.Status
	}
	if status, ok := statusByCode[err.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as a failure envelope. Internal causes are logged
// and never sent to the client.
func respondError(c *gin.Context, err error) {
	svcErr := services.AsError(err)
	status := StatusFor(svcErr)

	if status >= http.StatusInternalServerError {
		logger.ErrorWithFields("request failed", logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
			"request_id": c.Request.Header.Get("X-Request-Id"),
			"span_id":    c.Request.Header.Get("X-Span-Id"),
		})
		c.JSON(status, dto.Fail("Internal server error", dto.CodeInternal, "Internal server error"))
		return
	}

	env := dto.Fail(svcErr.Message, svcErr.Code, svcErr.Message)
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		env.Error.Fields = fieldErrors(fields)
	}
	c.JSON(status, env)
}

// bindError wraps a request decoding failure. Oversized bodies become
// payload_too_large, everything else validation_failed.
func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return &services.Error{Code: dto.CodePayloadTooLarge, Message: "Request body too large", Err: err}
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return &services.Error{Code: dto.CodeValidationFailed, Message: "Invalid request fields", Err: err}
	}
	return &services.Error{Code: dto.CodeValidationFailed, Message: "Invalid request body", Err: err}
}

func fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[name] = "is required"
		case "email":
			out[name] = "must be a valid email"
		case "min":
			out[name] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "max":
			out[name] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			out[name] = "is invalid"
		}
	}
	return out
}

// tokenFrom returns the request credential or "" when none was sent.
func tokenFrom(c *gin.Context) string {
	token, err := auth.ExtractToken(c)
	if err != nil {
		return ""
	}
	return token
}
