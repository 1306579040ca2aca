package api

import (
	"context"
	"net/http"
	"time"

	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/models/entities"
)

// HealthCheck probes one dependency
type HealthCheck struct {
	Name    string
	Details string
	Check   func(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck. Any failing check turns the overall status
// down and the response 503.
func HealthCheckHandler(upSince time.Time, checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus, len(checks))
		overallStatus := string(constants.APIStatusOk)

		for _, c := range checks {
			status := entities.ServiceStatus{Status: string(constants.APIStatusOk), Details: c.Details}
			if err := c.Check(ctx); err != nil {
				status = entities.ServiceStatus{Status: string(constants.APIStatusDown), Details: err.Error()}
				overallStatus = string(constants.APIStatusDown)
			}
			services[c.Name] = status
		}

		resp := entities.HealthCheckResponse{
			Status:   overallStatus,
			Services: services,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != string(constants.APIStatusOk) {
			code = http.StatusServiceUnavailable
		}
		common.WriteJSON(w, code, resp)
	}
}
