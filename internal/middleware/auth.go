package middleware

import (
	"context"
	"net/http"

	"iwannabeavolunteer/portal/internal/auth"
	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/constants"
)

// IdentityVerifier authenticates an Authorization header
type IdentityVerifier interface {
	Verify(ctx context.Context, authorizationHeader string) (*auth.Identity, error)
}

// AuthMiddleware answers 401 {"error":"Unauthorized"} unless the bearer token resolves to a user
func AuthMiddleware(verifier IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := verifier.Verify(r.Context(), r.Header.Get(constants.HeaderAuthorization))
			if err != nil || identity == nil {
				common.WriteError(w, http.StatusUnauthorized, constants.MsgUnauthorized)
				return
			}

			ctx := auth.SetIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
