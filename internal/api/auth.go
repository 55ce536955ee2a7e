package api

import (
	"net/http"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/ports"
	"github.com/skyfarehq/skyfare/internal/utils"
	"github.com/skyfarehq/skyfare/internal/validator"
)

// RegisterHandler creates an account with the given role. The admin variant
// is mounted behind admin-gated middleware.
func RegisterHandler(service ports.AuthService, role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
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

		user, err := service.Register(r.Context(), &req, role)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusCreated, user)
	}
}

func LoginHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
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

		resp, err := service.Login(r.Context(), &req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, resp)
	}
}
