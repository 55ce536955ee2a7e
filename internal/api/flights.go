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

// ListFlightsHandler serves the paginated flight browse view. The public
// variant defaults to a smaller page size than the admin one.
func ListFlightsHandler(service ports.QueryService, public bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := service.ListFlights(r.Context(), utils.ParsePageRequest(r), public)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, page)
	}
}

func GetFlightHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ae := getApiError(models.ErrInvalidUUID)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		flight, err := service.GetFlight(r.Context(), id)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, flight)
	}
}

func CreateFlightHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeFlightRequest(w, r)
		if !ok {
			return
		}

		flight, err := service.CreateFlight(r.Context(), req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusCreated, flight)
	}
}

func UpdateFlightHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ae := getApiError(models.ErrInvalidUUID)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		req, ok := decodeFlightRequest(w, r)
		if !ok {
			return
		}

		flight, err := service.UpdateFlight(r.Context(), id, req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, flight)
	}
}

// DeleteFlightHandler goes through the booking service so the bookings
// cascade is explicit rather than a storage-side effect.
func DeleteFlightHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ae := getApiError(models.ErrInvalidUUID)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		if err := service.DeleteFlight(r.Context(), id); err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, map[string]string{"message": "flight and associated bookings deleted"})
	}
}

func decodeFlightRequest(w http.ResponseWriter, r *http.Request) (*models.FlightRequest, bool) {
	var req models.FlightRequest
	if err := utils.JsonDecodeBody(r, &req); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderResponse(w, ae.StatusCode, ae)
		return nil, false
	}

	v := validator.NewCustomValidator()
	if err := v.Validate(req); err != nil {
		ae := utils.NewBadRequest(err.Error())
		utils.RenderResponse(w, ae.StatusCode, ae)
		return nil, false
	}
	return &req, true
}
