package services

import (
	"context"
	"errors"
	"testing"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/models/entities"
)

func TestRoleAuthorizer_Authorize(t *testing.T) {
	tests := []struct {
		name string
		row  *entities.CouncilAdmin
		err  error
		want Decision
	}{
		{name: "superuser", row: &entities.CouncilAdmin{Role: constants.RoleSuperuser}, want: Allowed},
		{name: "admin", row: &entities.CouncilAdmin{Role: constants.RoleAdmin}, want: Denied},
		{name: "unknown role", row: &entities.CouncilAdmin{Role: "owner"}, want: Denied},
		{name: "lookup error", err: errors.New("no rows"), want: Denied},
		{name: "nil row", want: Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCouncilAdminRepo{
				findByUserIDFunc: func(ctx context.Context, userID string) (*entities.CouncilAdmin, error) {
					return tt.row, tt.err
				},
			}

			got := NewRoleAuthorizer(repo).Authorize(context.Background(), "u-1")
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRoleAuthorizer_EmptyUserID(t *testing.T) {
	repo := &mockCouncilAdminRepo{
		findByUserIDFunc: func(ctx context.Context, userID string) (*entities.CouncilAdmin, error) {
			t.Error("Lookup must not run for an empty user id")
			return nil, nil
		},
	}

	if got := NewRoleAuthorizer(repo).Authorize(context.Background(), ""); got != Denied {
		t.Errorf("Expected denied, got %s", got)
	}
}
