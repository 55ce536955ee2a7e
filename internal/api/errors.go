package api

import (
	"errors"
	"net/http"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/utils"
)

// getApiError maps service errors onto the HTTP taxonomy. Anything outside
// the known business errors is reported as an opaque 500.
func getApiError(err error) utils.ApiError {
	switch {
	case errors.Is(err, models.ErrFlightNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return utils.ApiError{StatusCode: http.StatusNotFound, Msg: err.Error()}
	case errors.Is(err, models.ErrInsufficientSeats),
		errors.Is(err, models.ErrDuplicateBooking),
		errors.Is(err, models.ErrDuplicateFlightNumber),
		errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrInvalidUUID):
		return utils.ApiError{StatusCode: http.StatusBadRequest, Msg: err.Error()}
	case errors.Is(err, models.ErrInvalidCredentials):
		return utils.ApiError{StatusCode: http.StatusUnauthorized, Msg: err.Error()}
	default:
		return utils.NewInternalServerError("internal server error")
	}
}
