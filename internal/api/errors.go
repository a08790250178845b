package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/pngme/pkg/png"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrImageNotFound  = errors.New("image not found")
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// statusFor maps codec and store errors onto HTTP status codes and error types.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrImageNotFound), errors.Is(err, png.ErrChunkNotFound):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, png.ErrNonUTF8Payload):
		return http.StatusUnprocessableEntity, "unprocessable_error"
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, png.ErrInvalidTypeCode),
		errors.Is(err, png.ErrBadSignature),
		errors.Is(err, png.ErrTruncatedChunk),
		errors.Is(err, png.ErrChecksumMismatch),
		errors.Is(err, png.ErrLengthMismatch):
		return http.StatusBadRequest, "invalid_request_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
