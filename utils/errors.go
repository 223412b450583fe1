package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Kind classifies a domain error so the transport layer can pick the
// matching HTTP status without inspecting message strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuthorization
	KindAuth
)

// DomainError carries a user-facing message plus its classification.
type DomainError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

func ValidationError(msg string) error {
	return &DomainError{Kind: KindValidation, Message: msg}
}

func ConflictError(msg string) error {
	return &DomainError{Kind: KindConflict, Message: msg}
}

func NotFoundError(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func AuthorizationError(msg string) error {
	return &DomainError{Kind: KindAuthorization, Message: msg}
}

func AuthError(msg string) error {
	return &DomainError{Kind: KindAuth, Message: msg}
}

// KindOf returns the classification of err, or KindInternal for
// anything that is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code the API reports.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindAuth:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RenderError writes the JSON error body for err. Unexpected failures
// get an opaque message so internal state never leaks to the caller.
func RenderError(c *fiber.Ctx, err error) error {
	status := HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(ErrorResponse{
			Message: "Internal server error",
		})
	}
	var de *DomainError
	errors.As(err, &de)
	return c.Status(status).JSON(ErrorResponse{
		Message: de.Message,
	})
}
