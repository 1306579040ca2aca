package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/models/dtos"
	"iwannabeavolunteer/portal/internal/providers/wheel"
	"iwannabeavolunteer/portal/internal/services"
)

// WheelMaker creates picker wheels from raw request bodies
type WheelMaker interface {
	CreateWheel(ctx context.Context, rawBody []byte) (*dtos.WheelResponse, error)
}

// WheelHandler handles POST /api/wheel
func WheelHandler(svc WheelMaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			raw = nil
		}

		resp, err := svc.CreateWheel(r.Context(), raw)
		if err != nil {
			var apiErr *wheel.APIError
			if errors.As(err, &apiErr) {
				common.WriteJSON(w, apiErr.Status, dtos.WheelErrorResponse{
					Error:   apiErr.Message,
					Details: apiErr.Details,
					Status:  apiErr.ProviderStatus,
				})
				return
			}
			if errors.Is(err, services.ErrWheelNotConfigured) {
				common.WriteError(w, http.StatusInternalServerError, err.Error())
				return
			}
			respondWithError(w, r, err)
			return
		}
		respondWithSuccess(w, resp)
	}
}
