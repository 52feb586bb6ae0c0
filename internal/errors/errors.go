package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on any login failure. Unknown
	// username and wrong password deliberately share it so callers cannot
	// enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// expired or carries a bad signature.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden is returned when an authenticated user lacks the role or
	// ownership an action requires.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrDuplicateCaseNumber is returned when a generated case number collides
	// with an existing one; the caller may retry with a fresh number.
	ErrDuplicateCaseNumber = errors.New("case number already exists")

	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrClientNotFound is returned when a client lookup misses.
	ErrClientNotFound = errors.New("client not found")
	// ErrCaseNotFound is returned when a case lookup misses.
	ErrCaseNotFound = errors.New("case not found")
	// ErrCaseNoteNotFound is returned when a case note lookup misses.
	ErrCaseNoteNotFound = errors.New("note not found")
	// ErrTaskNotFound is returned when a task lookup misses.
	ErrTaskNotFound = errors.New("task not found")
	// ErrDocumentNotFound is returned when a document lookup misses.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInteractionNotFound is returned when an interaction lookup misses.
	ErrInteractionNotFound = errors.New("interaction not found")
)

// ValidationError marks caller input that failed validation (missing or
// malformed required fields).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// HTTPError is a domain error resolved to an HTTP status and stable code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// an internal failure and deliberately surfaces a generic message so store
// diagnostics do not leak to callers.
func MapErrorToHTTP(err error) *HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: vErr.Message, Code: "VALIDATION_ERROR"}
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: err.Error(), Code: "INVALID_CREDENTIALS"}
	case errors.Is(err, ErrInvalidToken):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: err.Error(), Code: "UNAUTHORIZED"}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{StatusCode: http.StatusForbidden, Message: err.Error(), Code: "FORBIDDEN"}
	case errors.Is(err, ErrDuplicateUser), errors.Is(err, ErrDuplicateCaseNumber):
		return &HTTPError{StatusCode: http.StatusConflict, Message: err.Error(), Code: "CONFLICT"}
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrClientNotFound),
		errors.Is(err, ErrCaseNotFound),
		errors.Is(err, ErrCaseNoteNotFound),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrDocumentNotFound),
		errors.Is(err, ErrInteractionNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: err.Error(), Code: "NOT_FOUND"}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error", Code: "INTERNAL_ERROR"}
	}
}
