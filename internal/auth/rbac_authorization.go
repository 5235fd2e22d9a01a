package auth

import (
	"net/http"
	"slices"

	"github.com/frahmantamala/leave-management/internal"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	"github.com/frahmantamala/leave-management/internal/transport"
)

// RBACAuthorization rejects requests early when the actor lacks a role. The
// services repeat the check.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(baseHandler *transport.BaseHandler) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: baseHandler}
}

func (ra *RBACAuthorization) RequireRole(roles ...coreuser.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := internal.ActorFromContext(r.Context())
			if !ok {
				ra.Logger.Warn("authorization check failed: actor not found in context", "path", r.URL.Path)
				ra.HandleServiceError(w, internal.ErrInvalidToken)
				return
			}

			if !slices.Contains(roles, actor.Role) {
				ra.Logger.WarnContext(r.Context(), "access denied: role not allowed",
					"username", actor.Username,
					"role", actor.Role,
					"required_roles", roles)
				ra.HandleServiceError(w, internal.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(coreuser.RoleAdmin)
}
