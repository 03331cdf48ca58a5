package dto

// Error codes carried in the envelope's error payload.
const (
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeValidationFailed     = "validation_failed"
	CodeNotFound             = "not_found"
	CodeConflict             = "conflict"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodePayloadTooLarge      = "payload_too_large"
	CodeTooManyRequests      = "too_many_requests"
	CodeInternal             = "internal"
)

// Envelope is the uniform response shape returned by every endpoint.
type Envelope struct {
	Success bool              `json:"success" example:"true"`
	Message string            `json:"message" example:"Blog created successfully"`
	Data    any               `json:"data,omitempty"`
	Error   *ErrorResponseDTO `json:"error,omitempty"`
}

// ErrorResponseDTO carries a stable code plus a human readable message.
type ErrorResponseDTO struct {
	Code    string            `json:"code" example:"validation_failed"`
	Message string            `json:"message" example:"All fields are required"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Fail(message, code, detail string) Envelope {
	return Envelope{Success: false, Message: message, Error: &ErrorResponseDTO{Code: code, Message: detail}}
}
