package services

import (
	"context"
	"fmt"
	"strings"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/db/repositories"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/metrics"
	"iwannabeavolunteer/portal/internal/models/dtos"
	"iwannabeavolunteer/portal/internal/models/entities"
	"iwannabeavolunteer/portal/internal/providers/supabase"
)

const (
	opCreateAdmin = "create_admin"
	opListAdmins  = "list_admins"
	opDeleteAdmin = "delete_admin"
)

// AuthAdmin is the provider's admin user management
type AuthAdmin interface {
	CreateUser(ctx context.Context, params supabase.CreateUserParams) (*entities.AuthUser, error)
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]entities.AuthUser, error)
}

// AdminService manages admin accounts: an auth user plus its council_admins row
type AdminService struct {
	users   AuthAdmin
	admins  repositories.CouncilAdminRepository
	metrics *metrics.MetricsRegistry
}

func NewAdminService(users AuthAdmin, admins repositories.CouncilAdminRepository, m *metrics.MetricsRegistry) *AdminService {
	return &AdminService{
		users:   users,
		admins:  admins,
		metrics: m,
	}
}

func (s *AdminService) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.AdminOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// CreateAdmin provisions a confirmed auth user and grants it the admin role. If the grant
// fails the auth user is deleted again.
func (s *AdminService) CreateAdmin(ctx context.Context, req dtos.CreateAdminReq) (resp *dtos.CreateAdminResponse, err error) {
	defer func() { s.record(opCreateAdmin, err) }()

	if req.Email == "" || req.Password == "" {
		return nil, NewValidationError(constants.MsgEmailPasswordNeeded)
	}

	var councilID *string
	if req.CouncilID != nil && *req.CouncilID != "" {
		id := *req.CouncilID
		councilID = &id
	}

	var user *entities.AuthUser
	saga := &Saga{
		Operation: opCreateAdmin,
		Metrics:   s.metrics,
		Steps: []SagaStep{
			{
				Name: "create_auth_user",
				Do: func(ctx context.Context) error {
					created, err := s.users.CreateUser(ctx, supabase.CreateUserParams{
						Email:        req.Email,
						Password:     req.Password,
						EmailConfirm: true,
					})
					if err != nil {
						return err
					}
					user = created
					return nil
				},
				Compensate: func(ctx context.Context) error {
					return s.users.DeleteUser(ctx, user.ID)
				},
				Residual: func() string {
					return fmt.Sprintf("auth user %s (%s) has no council_admins row", user.ID, user.Email)
				},
			},
			{
				Name: "insert_council_admin",
				Do: func(ctx context.Context) error {
					return s.admins.Insert(ctx, entities.NewCouncilAdmin{
						UserID:    user.ID,
						CouncilID: councilID,
						Role:      constants.RoleAdmin,
					})
				},
			},
		},
	}

	if err := saga.Run(ctx); err != nil {
		return nil, err
	}

	logging.Info("Admin account created",
		"user_id", user.ID,
		"council_id", councilID,
	)

	return &dtos.CreateAdminResponse{
		Success: true,
		Admin:   dtos.AdminSummary{ID: user.ID, Email: user.Email},
	}, nil
}

// ListAdmins returns every council_admins row, newest first, with the auth user's email
func (s *AdminService) ListAdmins(ctx context.Context) (resp *dtos.ListAdminsResponse, err error) {
	defer func() { s.record(opListAdmins, err) }()

	rows, err := s.admins.ListOrderedByCreatedAtDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list council admins: %w", err)
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auth users: %w", err)
	}

	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	admins := make([]dtos.AdminWithEmail, 0, len(rows))
	for _, row := range rows {
		email := strings.TrimSpace(emails[row.UserID])
		if email == "" {
			email = constants.MsgUnknownEmail
		}
		admins = append(admins, dtos.AdminWithEmail{CouncilAdmin: row, Email: email})
	}

	return &dtos.ListAdminsResponse{Admins: admins}, nil
}

// DeleteAdmin removes the council_admins row and then the auth user. adminId and userId
// are trusted to belong together.
func (s *AdminService) DeleteAdmin(ctx context.Context, req dtos.DeleteAdminReq) (err error) {
	defer func() { s.record(opDeleteAdmin, err) }()

	if req.AdminID == "" || req.UserID == "" {
		return NewValidationError(constants.MsgAdminUserIDsNeeded)
	}

	saga := &Saga{
		Operation: opDeleteAdmin,
		Metrics:   s.metrics,
		Steps: []SagaStep{
			{
				Name: "delete_council_admin",
				Do: func(ctx context.Context) error {
					return s.admins.DeleteByID(ctx, req.AdminID)
				},
				Residual: func() string {
					return fmt.Sprintf("auth user %s has no council_admins row (row %s deleted)", req.UserID, req.AdminID)
				},
			},
			{
				Name: "delete_auth_user",
				Do: func(ctx context.Context) error {
					return s.users.DeleteUser(ctx, req.UserID)
				},
			},
		},
	}

	if err := saga.Run(ctx); err != nil {
		return err
	}

	logging.Info("Admin account deleted",
		"admin_id", req.AdminID,
		"user_id", req.UserID,
	)
	return nil
}
