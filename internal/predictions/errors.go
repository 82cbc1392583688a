package predictions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/palmer/internal/features"
	"github.com/JaimeStill/palmer/pkg/repository"
)

// Domain errors for prediction operations.
var (
	ErrUnknownModel  = errors.New("model not found")
	ErrMalformedBody = errors.New("malformed request body")
	ErrBodyTooLarge  = errors.New("request body too large")
	ErrPrediction    = errors.New("prediction failed")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrAuditDisabled = errors.New("prediction audit log disabled")
)

// UnknownModelError names the requested model and the models that exist.
type UnknownModelError struct {
	Name      string
	Available []string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("model %q not found", e.Name)
}

func (e *UnknownModelError) Unwrap() error {
	return ErrUnknownModel
}

// Details adds the available model names to error responses.
func (e *UnknownModelError) Details() map[string]any {
	return map[string]any{"available_models": e.Available}
}

// MapHTTPStatus maps prediction domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownModel):
		return http.StatusNotFound
	case errors.Is(err, ErrMalformedBody),
		errors.Is(err, ErrBodyTooLarge),
		errors.Is(err, ErrInvalidFilter),
		errors.Is(err, features.ErrMissingColumns),
		errors.Is(err, features.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuditDisabled):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrSchemaMissing),
		errors.Is(err, repository.ErrTimeout):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
