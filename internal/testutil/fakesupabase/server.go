// Package fakesupabase serves an in-memory subset of the provider's auth and table APIs
// over httptest, enough to exercise the admin-account flows end to end.
package fakesupabase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/models/entities"
)

// ServiceKey is the service-role key the fake expects on admin and table calls
const ServiceKey = "test-service-role-key"

// Server is a fake provider. All exported knobs must be set before requests are made.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	users  []entities.AuthUser
	tokens map[string]string
	admins []entities.CouncilAdmin
	calls  []string
	clock  time.Time

	// InsertError makes every council_admins insert fail with this message
	InsertError string
	// DeleteUserError makes every admin delete-user call fail with this message
	DeleteUserError string
	// ListUsersError makes the admin listing fail with this message
	ListUsersError string
	// SelectError makes every council_admins select fail with this message
	SelectError string
}

// New starts a fake provider that is closed when the test ends
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		tokens: make(map[string]string),
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/health", s.handleHealth)
	mux.HandleFunc("/auth/v1/user", s.handleGetUser)
	mux.HandleFunc("/auth/v1/admin/users", s.handleAdminUsers)
	mux.HandleFunc("/auth/v1/admin/users/", s.handleAdminUser)
	mux.HandleFunc("/rest/v1/"+constants.TableCouncilAdmins, s.handleCouncilAdmins)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Server.Close)

	return s
}

// ============================================================================
// Seeding and inspection
// ============================================================================

// AddUser creates an auth user directly and returns it
func (s *Server) AddUser(email string) entities.AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email)
}

func (s *Server) addUserLocked(email string) entities.AuthUser {
	u := entities.AuthUser{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      "authenticated",
		CreatedAt: s.tick(),
	}
	s.users = append(s.users, u)
	return u
}

// IssueToken returns an access token that resolves to userID
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := "token-" + uuid.NewString()
	s.tokens[token] = userID
	return token
}

// AddCouncilAdmin inserts a council_admins row directly
func (s *Server) AddCouncilAdmin(userID string, councilID *string, role constants.AdminRole) entities.CouncilAdmin {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := entities.CouncilAdmin{
		ID:        uuid.NewString(),
		UserID:    userID,
		CouncilID: councilID,
		Role:      role,
		CreatedAt: s.tick(),
	}
	s.admins = append(s.admins, row)
	return row
}

// NewAdmin seeds an auth user with a council_admins row and returns a token for it
func (s *Server) NewAdmin(email string, role constants.AdminRole) (entities.AuthUser, entities.CouncilAdmin, string) {
	u := s.AddUser(email)
	row := s.AddCouncilAdmin(u.ID, nil, role)
	return u, row, s.IssueToken(u.ID)
}

// Users returns a snapshot of the auth users
func (s *Server) Users() []entities.AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.AuthUser(nil), s.users...)
}

// UserByEmail looks an auth user up by email
func (s *Server) UserByEmail(email string) (entities.AuthUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return entities.AuthUser{}, false
}

// Admins returns a snapshot of the council_admins rows
func (s *Server) Admins() []entities.CouncilAdmin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.CouncilAdmin(nil), s.admins...)
}

// Calls returns "METHOD /path" for every request received
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// tick hands out strictly increasing timestamps so created_at ordering is deterministic
func (s *Server) tick() string {
	s.clock = s.clock.Add(time.Minute)
	return s.clock.Format("2006-01-02T15:04:05.000000+00:00")
}

// ============================================================================
// Auth API
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"name": "GoTrue", "version": "fake"})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), constants.BearerPrefix)

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		writeAuthError(w, http.StatusUnauthorized, "bad_jwt", "invalid JWT: unable to parse or verify signature")
		return
	}
	for _, u := range s.users {
		if u.ID == userID {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeAuthError(w, http.StatusForbidden, "user_not_found", "User from sub claim in JWT does not exist")
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if !s.authorizedService(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if s.ListUsersError != "" {
			writeAuthError(w, http.StatusInternalServerError, "unexpected_failure", s.ListUsersError)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 50
		}
		start := (page - 1) * perPage
		end := start + perPage
		users := []entities.AuthUser{}
		if start < len(s.users) {
			if end > len(s.users) {
				end = len(s.users)
			}
			users = append(users, s.users[start:end]...)
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": users, "aud": "authenticated"})

	case http.MethodPost:
		var body struct {
			Email        string `json:"email"`
			Password     string `json:"password"`
			EmailConfirm bool   `json:"email_confirm"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeAuthError(w, http.StatusBadRequest, "bad_json", "Could not parse request body as JSON")
			return
		}
		if body.Password == "" || len(body.Password) < 6 {
			writeAuthError(w, http.StatusUnprocessableEntity, "weak_password", "Password should be at least 6 characters.")
			return
		}
		for _, u := range s.users {
			if strings.EqualFold(u.Email, body.Email) {
				writeAuthError(w, http.StatusUnprocessableEntity, "email_exists", "A user with this email address has already been registered")
				return
			}
		}
		u := s.addUserLocked(body.Email)
		if body.EmailConfirm {
			confirmed := u.CreatedAt
			u.EmailConfirmedAt = &confirmed
			s.users[len(s.users)-1] = u
		}
		writeJSON(w, http.StatusOK, u)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminUser(w http.ResponseWriter, r *http.Request) {
	if !s.authorizedService(w, r) {
		return
	}
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/auth/v1/admin/users/")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteUserError != "" {
		writeAuthError(w, http.StatusInternalServerError, "unexpected_failure", s.DeleteUserError)
		return
	}
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
	}
	writeAuthError(w, http.StatusNotFound, "user_not_found", "User not found")
}

// ============================================================================
// Table API
// ============================================================================

func (s *Server) handleCouncilAdmins(w http.ResponseWriter, r *http.Request) {
	if !s.authorizedService(w, r) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()

	switch r.Method {
	case http.MethodGet:
		if s.SelectError != "" {
			writeTableError(w, http.StatusBadRequest, "42P01", s.SelectError)
			return
		}
		rows := s.filterLocked(q)
		if order := q.Get("order"); order != "" {
			col, dir, _ := strings.Cut(order, ".")
			if col == "created_at" {
				sort.SliceStable(rows, func(i, j int) bool {
					if dir == "asc" {
						return rows[i].CreatedAt < rows[j].CreatedAt
					}
					return rows[i].CreatedAt > rows[j].CreatedAt
				})
			}
		}
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit < len(rows) {
			rows = rows[:limit]
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		if s.InsertError != "" {
			writeTableError(w, http.StatusBadRequest, "23503", s.InsertError)
			return
		}
		var row entities.NewCouncilAdmin
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			writeTableError(w, http.StatusBadRequest, "PGRST102", "Empty or invalid json")
			return
		}
		if !row.Role.Valid() {
			writeTableError(w, http.StatusBadRequest, "22P02", fmt.Sprintf("invalid input value for enum admin_role: %q", row.Role))
			return
		}
		for _, a := range s.admins {
			if a.UserID == row.UserID {
				writeTableError(w, http.StatusConflict, "23505", `duplicate key value violates unique constraint "council_admins_user_id_key"`)
				return
			}
		}
		s.admins = append(s.admins, entities.CouncilAdmin{
			ID:        uuid.NewString(),
			UserID:    row.UserID,
			CouncilID: row.CouncilID,
			Role:      row.Role,
			CreatedAt: s.tick(),
		})
		w.WriteHeader(http.StatusCreated)

	case http.MethodDelete:
		matched := s.filterLocked(q)
		if len(matched) == 0 && len(filters(q)) == 0 {
			writeTableError(w, http.StatusBadRequest, "21000", "DELETE requires a WHERE clause")
			return
		}
		kept := s.admins[:0:0]
		for _, a := range s.admins {
			if !containsID(matched, a.ID) {
				kept = append(kept, a)
			}
		}
		s.admins = kept
		writeJSON(w, http.StatusOK, matched)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) filterLocked(q map[string][]string) []entities.CouncilAdmin {
	fs := filters(q)
	out := []entities.CouncilAdmin{}
	for _, a := range s.admins {
		if matches(a, fs) {
			out = append(out, a)
		}
	}
	return out
}

func filters(q map[string][]string) map[string]string {
	fs := map[string]string{}
	for key, vals := range q {
		switch key {
		case "select", "order", "limit":
			continue
		}
		for _, v := range vals {
			if strings.HasPrefix(v, "eq.") {
				fs[key] = strings.TrimPrefix(v, "eq.")
			}
		}
	}
	return fs
}

func matches(a entities.CouncilAdmin, fs map[string]string) bool {
	for col, want := range fs {
		var got string
		switch col {
		case "id":
			got = a.ID
		case "user_id":
			got = a.UserID
		case "role":
			got = string(a.Role)
		case "council_id":
			if a.CouncilID != nil {
				got = *a.CouncilID
			}
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}

func containsID(rows []entities.CouncilAdmin, id string) bool {
	for _, r := range rows {
		if r.ID == id {
			return true
		}
	}
	return false
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Server) authorizedService(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("apikey") != ServiceKey || r.Header.Get("Authorization") != constants.BearerPrefix+ServiceKey {
		writeAuthError(w, http.StatusUnauthorized, "no_authorization", "This endpoint requires a valid service role key")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeAuthError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{"code": status, "error_code": code, "msg": msg})
}

func writeTableError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{"code": code, "details": nil, "hint": nil, "message": msg})
}
