package entities

// AuthUser is the subset of the provider's user record the portal reads.
type AuthUser struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Role             string         `json:"role,omitempty"`
	EmailConfirmedAt *string        `json:"email_confirmed_at,omitempty"`
	CreatedAt        string         `json:"created_at,omitempty"`
	LastSignInAt     *string        `json:"last_sign_in_at,omitempty"`
	AppMetadata      map[string]any `json:"app_metadata,omitempty"`
}
