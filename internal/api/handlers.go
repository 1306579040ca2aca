package api

import "net/http"

// Handlers binds every HTTP handler to its dependencies
type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

func (h *Handlers) CreateAdmin() http.HandlerFunc { return CreateAdminHandler(h.deps.Services.Admin) }
func (h *Handlers) ListAdmins() http.HandlerFunc  { return ListAdminsHandler(h.deps.Services.Admin) }
func (h *Handlers) DeleteAdmin() http.HandlerFunc { return DeleteAdminHandler(h.deps.Services.Admin) }
func (h *Handlers) Wheel() http.HandlerFunc       { return WheelHandler(h.deps.Services.Wheel) }
func (h *Handlers) Login() http.HandlerFunc       { return LoginHandler(h.deps.Services.PasswordGate) }

func (h *Handlers) HealthCheck() http.HandlerFunc {
	return HealthCheckHandler(h.deps.UpSince, h.deps.HealthChecks()...)
}
