package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already used by another user.
	ErrEmailTaken = errors.New("email already in use")
	// ErrAmbiguousLookup is returned when both user_id and user_email filters are given.
	ErrAmbiguousLookup = errors.New("ambiguous user lookup")
	// ErrInvalidUserData is returned when a create/update payload is missing required fields.
	ErrInvalidUserData = errors.New("invalid user data")
	// ErrNoFilePart is returned when the multipart request has no "file" part.
	ErrNoFilePart = errors.New("no file part")
	// ErrEmptyFilename is returned when the uploaded file has an empty filename.
	ErrEmptyFilename = errors.New("no selected file")
	// ErrUndecodableImage is returned when the uploaded bytes are not a decodable image.
	ErrUndecodableImage = errors.New("undecodable image")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Messages for the user
// lookup and payload errors match the wire contract verbatim.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, "Email already in use", "EMAIL_TAKEN")
	case errors.Is(err, ErrAmbiguousLookup):
		return NewHTTPError(http.StatusBadRequest, "Provide either user_id or user_email, not both", "AMBIGUOUS_LOOKUP")
	case errors.Is(err, ErrInvalidUserData):
		return NewHTTPError(http.StatusBadRequest, "Invalid User Data", "INVALID_USER_DATA")
	case errors.Is(err, ErrNoFilePart):
		return NewHTTPError(http.StatusBadRequest, "No file part", "NO_FILE_PART")
	case errors.Is(err, ErrEmptyFilename):
		return NewHTTPError(http.StatusBadRequest, "No selected file", "EMPTY_FILENAME")
	case errors.Is(err, ErrUndecodableImage):
		return NewHTTPError(http.StatusBadRequest, "Unsupported or corrupt image", "UNDECODABLE_IMAGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
