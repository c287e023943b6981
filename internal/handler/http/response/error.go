package response

import (
	"errors"
	"net/http"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/auth"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Anything unrecognized
// becomes an opaque 500; the real error stays in the request log.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	case errors.Is(err, user.ErrNotAnEmployee),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, err.Error())

	case errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, err.Error())

	case errors.Is(err, user.ErrManagerNotFound):
		ValidationError(w, map[string]string{"manager_email": err.Error()})

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
