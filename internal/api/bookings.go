package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/ports"
	"github.com/skyfarehq/skyfare/internal/utils"
	"github.com/skyfarehq/skyfare/internal/validator"
)

// CreateBookingHandler books a flight for the authenticated user.
func CreateBookingHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok || principal.Role != models.RoleUser {
			ae := utils.NewForbidden("only users can book flights")
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		var req models.BookFlightRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		booking, err := service.BookFlight(r.Context(), principal.ID, &req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusCreated, booking)
	}
}

// CancelBookingHandler deletes a booking and restores its seats. Admin only,
// enforced by route middleware.
func CancelBookingHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ae := getApiError(models.ErrInvalidUUID)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		if err := service.CancelBooking(r.Context(), id); err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
	}
}

// ListBookingsHandler serves the admin dashboard's joined, filtered,
// paginated booking view.
func ListBookingsHandler(service ports.QueryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := service.ListBookings(r.Context(), utils.ParsePageRequest(r))
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, page)
	}
}

// RecommendationsHandler returns flight recommendations for the
// authenticated user; strategy comes from the query string and defaults to
// popular.
func RecommendationsHandler(service ports.QueryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			ae := utils.NewUnauthorized("no principal")
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		strategy := models.RecommendStrategy(r.URL.Query().Get("strategy"))
		flights, err := service.RecommendFlights(r.Context(), principal.ID, strategy)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		if flights == nil {
			flights = []models.Flight{}
		}
		utils.RenderResponse(w, http.StatusOK, flights)
	}
}
