package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"iwannabeavolunteer/portal/internal/models/dtos"
	"iwannabeavolunteer/portal/internal/providers/supabase"
	"iwannabeavolunteer/portal/internal/providers/wheel"
	"iwannabeavolunteer/portal/internal/services"
)

// Mock AdminManager
type mockAdminManager struct {
	createFunc func(ctx context.Context, req dtos.CreateAdminReq) (*dtos.CreateAdminResponse, error)
	listFunc   func(ctx context.Context) (*dtos.ListAdminsResponse, error)
	deleteFunc func(ctx context.Context, req dtos.DeleteAdminReq) error
}

func (m *mockAdminManager) CreateAdmin(ctx context.Context, req dtos.CreateAdminReq) (*dtos.CreateAdminResponse, error) {
	return m.createFunc(ctx, req)
}

func (m *mockAdminManager) ListAdmins(ctx context.Context) (*dtos.ListAdminsResponse, error) {
	return m.listFunc(ctx)
}

func (m *mockAdminManager) DeleteAdmin(ctx context.Context, req dtos.DeleteAdminReq) error {
	return m.deleteFunc(ctx, req)
}

type mockWheelMaker struct {
	createFunc func(ctx context.Context, raw []byte) (*dtos.WheelResponse, error)
}

func (m *mockWheelMaker) CreateWheel(ctx context.Context, raw []byte) (*dtos.WheelResponse, error) {
	return m.createFunc(ctx, raw)
}

type mockPasswordChecker struct {
	loginFunc func(client string, password any) error
}

func (m *mockPasswordChecker) Login(client string, password any) error {
	return m.loginFunc(client, password)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestCreateAdminHandler_Success(t *testing.T) {
	var got dtos.CreateAdminReq
	svc := &mockAdminManager{
		createFunc: func(ctx context.Context, req dtos.CreateAdminReq) (*dtos.CreateAdminResponse, error) {
			got = req
			return &dtos.CreateAdminResponse{Success: true, Admin: dtos.AdminSummary{ID: "u-1", Email: req.Email}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/create-admin", strings.NewReader(`{"email":"a@x.org","password":"secret1","councilId":"c-9"}`))
	rec := httptest.NewRecorder()
	CreateAdminHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Email != "a@x.org" || got.Password != "secret1" || got.CouncilID == nil || *got.CouncilID != "c-9" {
		t.Errorf("Unexpected request passed to service: %+v", got)
	}
	body := decodeBody(t, rec)
	admin, _ := body["admin"].(map[string]any)
	if body["success"] != true || admin["id"] != "u-1" || admin["email"] != "a@x.org" {
		t.Errorf("Unexpected body: %v", body)
	}
}

func TestCreateAdminHandler_InvalidBody(t *testing.T) {
	called := false
	svc := &mockAdminManager{
		createFunc: func(ctx context.Context, req dtos.CreateAdminReq) (*dtos.CreateAdminResponse, error) {
			called = true
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/create-admin", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	CreateAdminHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if called {
		t.Error("Service should not be called for an unreadable body")
	}
	msg, _ := decodeBody(t, rec)["error"].(string)
	if !strings.Contains(msg, "invalid character") {
		t.Errorf("Expected the decoder's message, got %q", msg)
	}
}

func TestDeleteAdminHandler_InvalidBody(t *testing.T) {
	svc := &mockAdminManager{
		deleteFunc: func(ctx context.Context, req dtos.DeleteAdminReq) error {
			t.Error("Service should not be called for an unreadable body")
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/delete-admin", strings.NewReader(``))
	rec := httptest.NewRecorder()
	DeleteAdminHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "EOF" {
		t.Errorf("Expected EOF, got %v", body["error"])
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantPartial string
	}{
		{
			name:       "validation",
			err:        services.NewValidationError("Email and password are required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Email and password are required",
		},
		{
			name:       "provider message relayed verbatim",
			err:        &supabase.ProviderError{Status: 422, Message: "A user with this email address has already been registered"},
			wantStatus: http.StatusBadRequest,
			wantError:  "A user with this email address has already been registered",
		},
		{
			name: "wrapped provider error",
			err: errors.Join(errors.New("insert_council_admin"),
				&supabase.ProviderError{Status: 409, Message: "duplicate key value"}),
			wantStatus: http.StatusBadRequest,
			wantError:  "duplicate key value",
		},
		{
			name: "partial failure",
			err: &services.PartialFailureError{
				Operation: "create_admin",
				Step:      "insert_council_admin",
				Err:       &supabase.ProviderError{Message: "insert failed"},
				Residual:  []string{"auth user u-1 still exists"},
			},
			wantStatus:  http.StatusBadRequest,
			wantError:   "insert failed",
			wantPartial: "auth user u-1 still exists",
		},
		{
			name:       "forbidden",
			err:        services.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantError:  "forbidden",
		},
		{
			name:       "unknown",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAdminManager{
				listFunc: func(ctx context.Context) (*dtos.ListAdminsResponse, error) {
					return nil, tt.err
				},
			}
			req := httptest.NewRequest(http.MethodGet, "/api/list-admins", nil)
			rec := httptest.NewRecorder()
			ListAdminsHandler(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantError {
				t.Errorf("Expected error %q, got %v", tt.wantError, body["error"])
			}
			partial, _ := body["partial_failure"].(string)
			if partial != tt.wantPartial {
				t.Errorf("Expected partial_failure %q, got %q", tt.wantPartial, partial)
			}
		})
	}
}

func TestListAdminsHandler_Success(t *testing.T) {
	svc := &mockAdminManager{
		listFunc: func(ctx context.Context) (*dtos.ListAdminsResponse, error) {
			return &dtos.ListAdminsResponse{Admins: []dtos.AdminWithEmail{}}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/list-admins", nil)
	rec := httptest.NewRecorder()
	ListAdminsHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"admins":[]}` {
		t.Errorf("Empty list should encode as an array, got %s", rec.Body.String())
	}
}

func TestDeleteAdminHandler(t *testing.T) {
	var got dtos.DeleteAdminReq
	svc := &mockAdminManager{
		deleteFunc: func(ctx context.Context, req dtos.DeleteAdminReq) error {
			got = req
			return nil
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/delete-admin", strings.NewReader(`{"adminId":"row-1","userId":"u-1"}`))
	rec := httptest.NewRecorder()
	DeleteAdminHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got.AdminID != "row-1" || got.UserID != "u-1" {
		t.Errorf("Unexpected request: %+v", got)
	}
	if body := decodeBody(t, rec); body["success"] != true {
		t.Errorf("Unexpected body: %v", body)
	}
}

func TestWheelHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var raw string
		svc := &mockWheelMaker{createFunc: func(ctx context.Context, b []byte) (*dtos.WheelResponse, error) {
			raw = string(b)
			return &dtos.WheelResponse{ID: "abc-123", URL: wheel.PublicBaseURL + "abc-123"}, nil
		}}
		req := httptest.NewRequest(http.MethodPost, "/api/wheel", strings.NewReader(`{"entries":["a"]}`))
		rec := httptest.NewRecorder()
		WheelHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if raw != `{"entries":["a"]}` {
			t.Errorf("Raw body not passed through: %q", raw)
		}
		body := decodeBody(t, rec)
		if body["id"] != "abc-123" || body["url"] != "https://wheelofnames.com/abc-123" {
			t.Errorf("Unexpected body: %v", body)
		}
	})

	t.Run("provider error keeps status and details", func(t *testing.T) {
		svc := &mockWheelMaker{createFunc: func(ctx context.Context, b []byte) (*dtos.WheelResponse, error) {
			return nil, &wheel.APIError{
				Status:         http.StatusBadGateway,
				ProviderStatus: http.StatusBadGateway,
				Message:        "Failed to create wheel",
				Details:        map[string]any{"raw": "upstream down"},
			}
		}}
		req := httptest.NewRequest(http.MethodPost, "/api/wheel", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		WheelHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("Expected 502, got %d", rec.Code)
		}
		body := decodeBody(t, rec)
		details, _ := body["details"].(map[string]any)
		if body["error"] != "Failed to create wheel" || details["raw"] != "upstream down" || body["status"] != float64(502) {
			t.Errorf("Unexpected body: %v", body)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		svc := &mockWheelMaker{createFunc: func(ctx context.Context, b []byte) (*dtos.WheelResponse, error) {
			return nil, services.ErrWheelNotConfigured
		}}
		req := httptest.NewRequest(http.MethodPost, "/api/wheel", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		WheelHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("Expected 500, got %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != services.ErrWheelNotConfigured.Error() {
			t.Errorf("Unexpected error: %v", body["error"])
		}
	})
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginErr   error
		wantStatus int
	}{
		{"success", `{"password":"hunter2"}`, nil, http.StatusOK},
		{"missing", `{}`, services.ErrPasswordRequired, http.StatusBadRequest},
		{"incorrect", `{"password":"nope"}`, services.ErrIncorrectPassword, http.StatusUnauthorized},
		{"blocked", `{"password":"nope"}`, services.ErrTooManyAttempts, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var client string
			svc := &mockPasswordChecker{loginFunc: func(c string, password any) error {
				client = c
				return tt.loginErr
			}}
			req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body))
			req.RemoteAddr = "203.0.113.7:51234"
			req.Header.Set("X-Forwarded-For", "198.51.100.1")
			rec := httptest.NewRecorder()
			LoginHandler(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if client != "203.0.113.7" {
				t.Errorf("Expected client 203.0.113.7, got %q", client)
			}
			body := decodeBody(t, rec)
			if tt.loginErr == nil {
				if body["success"] != true {
					t.Errorf("Unexpected body: %v", body)
				}
			} else if body["error"] != tt.loginErr.Error() {
				t.Errorf("Expected error %q, got %v", tt.loginErr.Error(), body["error"])
			}
		})
	}
}

func TestLoginHandler_UnreadableBody(t *testing.T) {
	called := false
	svc := &mockPasswordChecker{loginFunc: func(c string, password any) error {
		called = true
		return nil
	}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`garbage`))
	rec := httptest.NewRecorder()
	LoginHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if called {
		t.Error("Password check should not run for an unreadable body")
	}
}

func TestHealthCheckHandler(t *testing.T) {
	upSince := time.Now().Add(-time.Minute)
	ok := HealthCheck{Name: "provider_auth", Check: func(ctx context.Context) error { return nil }}
	down := HealthCheck{Name: "postgres", Check: func(ctx context.Context) error { return errors.New("dial tcp: refused") }}

	t.Run("all up", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthCheckHandler(upSince, ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["status"] != "ok" {
			t.Errorf("Unexpected status: %v", body["status"])
		}
	})

	t.Run("one down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthCheckHandler(upSince, ok, down).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d", rec.Code)
		}
		body := decodeBody(t, rec)
		svcs, _ := body["services"].(map[string]any)
		pg, _ := svcs["postgres"].(map[string]any)
		if body["status"] != "down" || pg["details"] != "dial tcp: refused" {
			t.Errorf("Unexpected body: %v", body)
		}
	})
}
