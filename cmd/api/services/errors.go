package services

import (
	"errors"
	"fmt"

	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/upload"
)

// Error is returned by every service operation. Code is one of the dto.Code*
// values and decides the HTTP status at the handler boundary unless Status
// is set.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code so callers can test errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrUnauthorized         = &Error{Code: dto.CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden            = &Error{Code: dto.CodeForbidden, Message: "forbidden"}
	ErrValidationFailed     = &Error{Code: dto.CodeValidationFailed, Message: "validation failed"}
	ErrNotFound             = &Error{Code: dto.CodeNotFound, Message: "not found"}
	ErrConflict             = &Error{Code: dto.CodeConflict, Message: "conflict"}
	ErrUnsupportedMediaType = &Error{Code: dto.CodeUnsupportedMediaType, Message: "unsupported media type"}
	ErrPayloadTooLarge      = &Error{Code: dto.CodePayloadTooLarge, Message: "payload too large"}
	ErrInternal             = &Error{Code: dto.CodeInternal, Message: "internal server error"}
)

func newError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func internalError(err error) *Error {
	return newError(dto.CodeInternal, "Internal server error", err)
}

// uploadError translates upload sentinels into service errors.
func uploadError(err error) *Error {
	switch {
	case errors.Is(err, upload.ErrUnsupportedMediaType):
		return newError(dto.CodeUnsupportedMediaType, upload.ErrUnsupportedMediaType.Error(), err)
	case errors.Is(err, upload.ErrPayloadTooLarge):
		return newError(dto.CodePayloadTooLarge, upload.ErrPayloadTooLarge.Error(), err)
	case errors.Is(err, upload.ErrTooManyFiles):
		return newError(dto.CodeValidationFailed, upload.ErrTooManyFiles.Error(), err)
	default:
		return internalError(fmt.Errorf("store image: %w", err))
	}
}

// AsError returns err as *Error, wrapping anything else as internal.
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return internalError(err)
}
