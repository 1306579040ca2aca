package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/models/entities"
)

// ErrUnauthorized is returned for every failed verification. The cause is only logged.
var ErrUnauthorized = errors.New(constants.MsgUnauthorized)

// UserLookup resolves an access token at the provider
type UserLookup interface {
	GetUser(ctx context.Context, accessToken string) (*entities.AuthUser, error)
}

// Verifier turns an Authorization header into an Identity
type Verifier struct {
	users     UserLookup
	jwtSecret []byte
}

// NewVerifier creates a verifier. With a non-empty jwtSecret, tokens are checked offline
// (HS256 signature and expiry) before the provider is asked.
func NewVerifier(users UserLookup, jwtSecret string) *Verifier {
	v := &Verifier{users: users}
	if jwtSecret != "" {
		v.jwtSecret = []byte(jwtSecret)
	}
	return v
}

// BearerToken strips the "Bearer " prefix. A header without the prefix is used as is.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
}

// Verify authenticates authorizationHeader. A missing header or empty token never reaches
// the provider.
func (v *Verifier) Verify(ctx context.Context, authorizationHeader string) (*Identity, error) {
	if authorizationHeader == "" {
		return nil, ErrUnauthorized
	}
	token := BearerToken(authorizationHeader)
	if token == "" {
		return nil, ErrUnauthorized
	}

	var claims *AccessClaims
	if v.jwtSecret != nil {
		parsed, err := v.parse(token)
		if err != nil {
			logging.Debug("Access token rejected offline", "error", err)
			return nil, ErrUnauthorized
		}
		claims = parsed
	}

	user, err := v.users.GetUser(ctx, token)
	if err != nil {
		logging.Debug("Access token rejected by provider", "error", err)
		return nil, ErrUnauthorized
	}
	if user == nil || user.ID == "" {
		return nil, ErrUnauthorized
	}
	if claims != nil && claims.Subject != "" && claims.Subject != user.ID {
		logging.Warn("Access token subject does not match provider user", "subject", claims.Subject, "user_id", user.ID)
		return nil, ErrUnauthorized
	}

	return &Identity{UserID: user.ID, Email: user.Email, Source: SourceProvider}, nil
}

func (v *Verifier) parse(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}
