package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nikogura/interview-coach/pkg/session"
	"github.com/pkg/errors"
)

// ErrValidation indicates a request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrTooLarge indicates a request body above MaxBodyBytes.
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var ve *ErrValidation
	var sve *session.ValidationError
	var tl *ErrTooLarge
	switch {
	case errors.As(err, &ve), errors.As(err, &sve):
		return http.StatusBadRequest
	case errors.As(err, &tl):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output into an ErrValidation for the
// first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: fe.Namespace(), Message: "failed " + fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
