package dtos

import "iwannabeavolunteer/portal/internal/models/entities"

type ErrorResponse struct {
	Error          string `json:"error"`
	PartialFailure string `json:"partial_failure,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type AdminSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CreateAdminResponse struct {
	Success bool         `json:"success"`
	Admin   AdminSummary `json:"admin"`
}

// AdminWithEmail flattens a council_admins row and adds the auth user's email
type AdminWithEmail struct {
	entities.CouncilAdmin
	Email string `json:"email"`
}

type ListAdminsResponse struct {
	Admins []AdminWithEmail `json:"admins"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
