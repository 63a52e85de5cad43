package http

import (
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// RequireUser runs the auth gate and rejects the request with 401 unless it
// carries a valid access token for an existing user.
func RequireUser(gate *service.Gate) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				writeAppError(w, r, err)
				return
			}

			ctx := service.WithUser(r.Context(), user)
			ctx = httpx.WithUserID(ctx, user.ID)
			ctx = slogx.With(ctx, "user_id", user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
