package middleware

import (
	"context"
	"fmt"
	"net/http"

	"iwannabeavolunteer/portal/internal/auth"
	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/services"
)

// Authorizer decides whether a user may manage admin accounts
type Authorizer interface {
	Authorize(ctx context.Context, userID string) services.Decision
}

// RequireSuperuser must run after AuthMiddleware. action names the operation in the 403 message.
func RequireSuperuser(authorizer Authorizer, action string) func(http.Handler) http.Handler {
	forbidden := fmt.Sprintf("Only superusers can %s admin accounts", action)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := auth.GetIdentity(r.Context())
			if identity == nil {
				common.WriteError(w, http.StatusUnauthorized, constants.MsgUnauthorized)
				return
			}

			if authorizer.Authorize(r.Context(), identity.UserID) != services.Allowed {
				common.WriteError(w, http.StatusForbidden, forbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
