package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/service"
	"github.com/sustainamine/sustainamine/pkg/requestid"
)

// WriteError writes an Error body carrying the request id.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	apiErr := v1alpha1.Error{Message: message}
	if id := requestid.FromRequest(r); id != "" {
		apiErr.RequestId = &id
	}
	render.Status(r, status)
	render.JSON(w, r, apiErr)
}

// statusFor maps service errors to response codes. Anything unknown is an internal error.
func statusFor(err error) int {
	var (
		invalidInput *service.ErrInvalidInput
		unsupported  *service.ErrUnsupportedFormat
	)
	switch {
	case errors.As(err, &invalidInput), errors.As(err, &unsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
