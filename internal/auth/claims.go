package auth

import "github.com/golang-jwt/jwt/v5"

// Identity is the authenticated caller of a request
type Identity struct {
	UserID string
	Email  string
	Source string
}

// Sources of an Identity
const (
	SourceProvider = "PROVIDER"
)

// AccessClaims are the claims carried by provider-issued access tokens
type AccessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
