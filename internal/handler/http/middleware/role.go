package middleware

import (
	"net/http"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the admin role. Services re-check this; the
// middleware keeps unauthorized requests out of the handlers entirely.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := identity.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !actor.IsAdmin() {
			response.HandleError(w, identity.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireEmployee requires the employee role.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := identity.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if actor.Role != identity.RoleEmployee {
			response.HandleError(w, identity.ErrEmployeeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
