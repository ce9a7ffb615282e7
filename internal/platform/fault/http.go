package fault

import (
	"errors"
	"net/http"
)

// HTTPStatus maps an error's kind to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound, KindClinicNotFound:
		return http.StatusNotFound
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// DisplayMessage returns the user-safe text for an error. Store failures
// collapse to a generic message so internals never leak to the caller.
func DisplayMessage(err error) string {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind != KindStore {
		return fe.Msg
	}
	return "something went wrong, please try again"
}
