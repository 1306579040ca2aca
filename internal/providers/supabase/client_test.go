package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/metrics"
	"iwannabeavolunteer/portal/internal/models/entities"
)

func newTestClient(url string) *Client {
	return New(Options{BaseURL: url + "/", ServiceRoleKey: "service-key"})
}

func TestClient_GetUser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("Expected path /auth/v1/user, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer user-token" {
			t.Errorf("Expected user bearer, got %q", got)
		}
		if got := r.Header.Get("apikey"); got != "service-key" {
			t.Errorf("Expected apikey header, got %q", got)
		}
		json.NewEncoder(w).Encode(entities.AuthUser{ID: "u-1", Email: "a@example.com"})
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).GetUser(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID != "u-1" || user.Email != "a@example.com" {
		t.Errorf("Unexpected user %+v", user)
	}
}

func TestClient_GetUser_EmptyTokenMakesNoCall(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).GetUser(context.Background(), ""); err == nil {
		t.Error("Expected error for empty token")
	}
	if calls != 0 {
		t.Errorf("Expected no provider call, got %d", calls)
	}
}

func TestClient_GetUser_InvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401,"error_code":"bad_jwt","msg":"invalid JWT"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetUser(context.Background(), "bad")

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if pe.Status != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", pe.Status)
	}
	if pe.Message != "invalid JWT" {
		t.Errorf("Expected provider message, got %q", pe.Message)
	}
}

func TestClient_CreateUser_RelaysProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-key" {
			t.Errorf("Expected service-role bearer, got %q", got)
		}
		var body CreateUserParams
		json.NewDecoder(r.Body).Decode(&body)
		if !body.EmailConfirm {
			t.Error("Expected email_confirm true")
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":422,"error_code":"email_exists","msg":"A user with this email address has already been registered"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreateUser(context.Background(), CreateUserParams{
		Email: "dup@example.com", Password: "secret", EmailConfirm: true,
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "A user with this email address has already been registered" {
		t.Errorf("Expected verbatim message, got %q", err.Error())
	}
}

func TestClient_ListUsers_Paginates(t *testing.T) {
	var pages []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		var users []entities.AuthUser
		if page == "1" {
			for i := 0; i < listUsersPerPage; i++ {
				users = append(users, entities.AuthUser{ID: "p1"})
			}
		} else {
			users = []entities.AuthUser{{ID: "last"}}
		}
		json.NewEncoder(w).Encode(map[string]any{"users": users})
	}))
	defer server.Close()

	users, err := newTestClient(server.URL).ListUsers(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(users) != listUsersPerPage+1 {
		t.Errorf("Expected %d users, got %d", listUsersPerPage+1, len(users))
	}
	if strings.Join(pages, ",") != "1,2" {
		t.Errorf("Expected pages 1,2 got %v", pages)
	}
}

func TestClient_DeleteUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/admin/users/u-9" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":404,"error_code":"user_not_found","msg":"User not found"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).DeleteUser(context.Background(), "u-9")
	if !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestClient_Select_BuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/rest/v1/council_admins" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if q.Get("user_id") != "eq.u-1" {
			t.Errorf("Expected user_id filter, got %q", q.Get("user_id"))
		}
		if q.Get("order") != "created_at.desc" {
			t.Errorf("Expected order created_at.desc, got %q", q.Get("order"))
		}
		if q.Get("select") != "*" {
			t.Errorf("Expected select *, got %q", q.Get("select"))
		}
		w.Write([]byte(`[{"id":"a-1","user_id":"u-1","council_id":null,"role":"superuser","created_at":"2025-01-01T00:00:00+00:00"}]`))
	}))
	defer server.Close()

	var rows []entities.CouncilAdmin
	err := newTestClient(server.URL).Select(context.Background(), constants.TableCouncilAdmins, Query{
		Filters: []Filter{Eq("user_id", "u-1")},
		Order:   &Order{Column: "created_at"},
	}, &rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rows) != 1 || rows[0].Role != constants.RoleSuperuser || rows[0].CouncilID != nil {
		t.Errorf("Unexpected rows %+v", rows)
	}
}

func TestSelectSingle_RowCounts(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "none", body: `[]`, wantCode: constants.ErrCodeNoRows},
		{name: "many", body: `[{"id":"a"},{"id":"b"}]`, wantCode: constants.ErrCodeMultipleRows},
		{name: "one", body: `[{"id":"a"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("limit") != "2" {
					t.Errorf("Expected limit 2, got %q", r.URL.Query().Get("limit"))
				}
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			row, err := SelectSingle[entities.CouncilAdmin](context.Background(), newTestClient(server.URL), constants.TableCouncilAdmins, Query{})
			if tt.wantCode == "" {
				if err != nil || row == nil || row.ID != "a" {
					t.Fatalf("Expected single row, got %v / %v", row, err)
				}
				return
			}
			var pe *ProviderError
			if !errors.As(err, &pe) || pe.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestClient_Delete_ReturnsCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE, got %s", r.Method)
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("Expected representation preference, got %q", r.Header.Get("Prefer"))
		}
		if r.URL.Query().Get("id") != "eq.a-1" {
			t.Errorf("Expected id filter, got %q", r.URL.Query().Get("id"))
		}
		w.Write([]byte(`[{"id":"a-1"}]`))
	}))
	defer server.Close()

	n, err := newTestClient(server.URL).Delete(context.Background(), constants.TableCouncilAdmins, Eq("id", "a-1"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 deleted row, got %d", n)
	}
}

func TestClient_Delete_RequiresFilter(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:0"})
	if _, err := c.Delete(context.Background(), constants.TableCouncilAdmins); err == nil {
		t.Error("Expected error for unfiltered delete")
	}
}

func TestClient_Insert_TableErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"23503","details":null,"hint":null,"message":"insert or update on table \"council_admins\" violates foreign key constraint"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Insert(context.Background(), constants.TableCouncilAdmins, entities.NewCouncilAdmin{UserID: "u", Role: constants.RoleAdmin})

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if !strings.Contains(pe.Message, "violates foreign key constraint") {
		t.Errorf("Expected table message, got %q", pe.Message)
	}
	if pe.Code != constants.ErrCodeBadRequest {
		t.Errorf("Expected code %s, got %s", constants.ErrCodeBadRequest, pe.Code)
	}
}

func TestClient_RecordsMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	c := New(Options{BaseURL: server.URL, ServiceRoleKey: "k", Metrics: m})

	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := testutil.ToFloat64(m.ProviderCallsTotal.WithLabelValues(providerName, "auth.health", "success"))
	if got != 1 {
		t.Errorf("Expected 1 recorded call, got %v", got)
	}
}

func TestShared_ReturnsSameInstance(t *testing.T) {
	a := Shared(Options{BaseURL: "http://one"})
	b := Shared(Options{BaseURL: "http://two"})
	if a != b {
		t.Error("Expected the same shared client")
	}
}
