package domain

import "errors"

// InvalidInputMessage is the fixed body returned for a malformed chat request.
const InvalidInputMessage = "No messages provided or invalid format"

// ErrInvalidInput reports a request whose messages are missing, empty or
// not a list.
var ErrInvalidInput = errors.New("no messages provided or invalid format")

// ExternalServiceError wraps any failure returned by the model provider.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewErrorResponse renders err for the caller. Invalid input always gets
// the fixed message; anything else is surfaced verbatim.
func NewErrorResponse(err error) ErrorResponse {
	if errors.Is(err, ErrInvalidInput) {
		return ErrorResponse{Error: InvalidInputMessage}
	}
	return ErrorResponse{Error: err.Error()}
}
