package services

import (
	"context"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/models/entities"
)

// Decision is the outcome of an authorization check. There is no third state: any doubt is Denied.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// AdminLookup finds the council_admins row of a user
type AdminLookup interface {
	FindByUserID(ctx context.Context, userID string) (*entities.CouncilAdmin, error)
}

// RoleAuthorizer grants access to holders of the superuser role
type RoleAuthorizer struct {
	admins AdminLookup
}

func NewRoleAuthorizer(admins AdminLookup) *RoleAuthorizer {
	return &RoleAuthorizer{admins: admins}
}

// Authorize requires exactly one council_admins row for userID with role superuser.
// Lookup errors are logged and reported as Denied.
func (a *RoleAuthorizer) Authorize(ctx context.Context, userID string) Decision {
	if userID == "" {
		return Denied
	}

	row, err := a.admins.FindByUserID(ctx, userID)
	if err != nil {
		logging.Warn("Superuser lookup failed",
			"user_id", userID,
			"error", err,
		)
		return Denied
	}
	if row == nil || row.Role != constants.RoleSuperuser {
		return Denied
	}
	return Allowed
}
