package apperrors

// Typed errors carried from services up to the HTTP error handler.
// The handler maps each type to a status class; the message is returned
// verbatim in the {"error": ...} body.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFound(message string) error {
	return &NotFoundError{Message: message}
}

// ExternalServiceError wraps failures of outbound collaborators (the LLM
// gateway). No persistence happens after one of these.
type ExternalServiceError struct {
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func NewExternal(message string, err error) error {
	return &ExternalServiceError{Message: message, Err: err}
}
