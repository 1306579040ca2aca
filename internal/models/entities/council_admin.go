package entities

import "iwannabeavolunteer/portal/internal/constants"

// CouncilAdmin associates a provider auth user with a council and an admin role.
// CreatedAt is kept as the provider's textual timestamp so rows pass through unchanged.
type CouncilAdmin struct {
	ID        string              `json:"id" db:"id"`
	UserID    string              `json:"user_id" db:"user_id"`
	CouncilID *string             `json:"council_id" db:"council_id"`
	Role      constants.AdminRole `json:"role" db:"role"`
	CreatedAt string              `json:"created_at" db:"created_at"`
}

// NewCouncilAdmin is the insert payload for council_admins
type NewCouncilAdmin struct {
	UserID    string              `json:"user_id"`
	CouncilID *string             `json:"council_id"`
	Role      constants.AdminRole `json:"role"`
}
