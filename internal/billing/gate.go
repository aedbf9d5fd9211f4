// AngelaMos | 2026
// gate.go

package billing

import (
	"net/http"

	"github.com/liftingtracker/backend/internal/core"
	"github.com/liftingtracker/backend/internal/middleware"
)

// RequireActiveSubscription gates a route group behind a paid plan.
// The check reads the locally stored status, which can lag the provider
// until the next webhook reconciliation.
func RequireActiveSubscription(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := middleware.GetUserID(r.Context())
			if userID == "" {
				core.Unauthorized(w, "")
				return
			}

			active, err := service.HasActiveSubscription(r.Context(), userID)
			if err != nil {
				core.InternalServerError(w, err)
				return
			}
			if !active {
				core.JSONError(w, core.ForbiddenError("active subscription required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
