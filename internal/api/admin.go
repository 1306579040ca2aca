package api

import (
	"context"
	"net/http"

	"iwannabeavolunteer/portal/internal/models/dtos"
)

// AdminManager is the admin-account lifecycle used by the handlers
type AdminManager interface {
	CreateAdmin(ctx context.Context, req dtos.CreateAdminReq) (*dtos.CreateAdminResponse, error)
	ListAdmins(ctx context.Context) (*dtos.ListAdminsResponse, error)
	DeleteAdmin(ctx context.Context, req dtos.DeleteAdminReq) error
}

// CreateAdminHandler handles POST /api/create-admin. Caller identity and role are checked
// by the route's middleware.
func CreateAdminHandler(svc AdminManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateAdminReq
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		resp, err := svc.CreateAdmin(r.Context(), req)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithSuccess(w, resp)
	}
}

// ListAdminsHandler handles GET /api/list-admins
func ListAdminsHandler(svc AdminManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.ListAdmins(r.Context())
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithSuccess(w, resp)
	}
}

// DeleteAdminHandler handles POST /api/delete-admin
func DeleteAdminHandler(svc AdminManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.DeleteAdminReq
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		if err := svc.DeleteAdmin(r.Context(), req); err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithSuccess(w, dtos.SuccessResponse{Success: true})
	}
}
