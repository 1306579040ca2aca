package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"iwannabeavolunteer/portal/internal/auth"
	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/middleware"
	"iwannabeavolunteer/portal/internal/models/dtos"
	"iwannabeavolunteer/portal/internal/providers/supabase"
	"iwannabeavolunteer/portal/internal/services"
)

func respondWithSuccess(w http.ResponseWriter, data any) {
	common.WriteJSON(w, http.StatusOK, data)
}

// respondWithError maps err onto a status and the {"error": message} envelope
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError || body.PartialFailure != "" {
		userID := ""
		if id := auth.GetIdentity(r.Context()); id != nil {
			userID = id.UserID
		}
		logging.WithRequest(middleware.GetRequestID(r.Context()), userID, r.URL.Path).
			Errorw("Request failed", "status", status, "error", err)
	}
	common.WriteJSON(w, status, body)
}

func errorResponse(err error) (int, dtos.ErrorResponse) {
	if errors.Is(err, auth.ErrUnauthorized) {
		return http.StatusUnauthorized, dtos.ErrorResponse{Error: constants.MsgUnauthorized}
	}
	if errors.Is(err, services.ErrForbidden) {
		return http.StatusForbidden, dtos.ErrorResponse{Error: err.Error()}
	}

	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, dtos.ErrorResponse{Error: ve.Message}
	}

	var partial string
	var pfe *services.PartialFailureError
	if errors.As(err, &pfe) {
		partial = pfe.ResidualSummary()
	}

	var pe *supabase.ProviderError
	if errors.As(err, &pe) {
		return http.StatusBadRequest, dtos.ErrorResponse{Error: pe.Message, PartialFailure: partial}
	}
	if pfe != nil {
		return http.StatusBadRequest, dtos.ErrorResponse{Error: pfe.Err.Error(), PartialFailure: partial}
	}

	msg := constants.MsgInternalServerError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return http.StatusInternalServerError, dtos.ErrorResponse{Error: msg}
}

// decodeJSON reads a JSON request body into dst. A malformed body is a 500 carrying the
// decoder's message.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

const maxBodyBytes = 1 << 20
