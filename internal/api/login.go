package api

import (
	"errors"
	"net/http"

	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/models/dtos"
	"iwannabeavolunteer/portal/internal/services"
)

// PasswordChecker verifies the admin-area password for a client
type PasswordChecker interface {
	Login(client string, password any) error
}

// LoginHandler handles POST /admin/login
func LoginHandler(svc PasswordChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.LoginReq
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		err := svc.Login(common.ClientIP(r), req.Password)
		switch {
		case err == nil:
			common.WriteJSON(w, http.StatusOK, dtos.LoginResponse{Success: true})
		case errors.Is(err, services.ErrPasswordRequired):
			common.WriteJSON(w, http.StatusBadRequest, dtos.LoginResponse{Error: err.Error()})
		case errors.Is(err, services.ErrIncorrectPassword):
			common.WriteJSON(w, http.StatusUnauthorized, dtos.LoginResponse{Error: err.Error()})
		case errors.Is(err, services.ErrTooManyAttempts):
			common.WriteJSON(w, http.StatusTooManyRequests, dtos.LoginResponse{Error: err.Error()})
		default:
			respondWithError(w, r, err)
		}
	}
}
