// Package api implements the daybook REST API using chi.
package api

import (
	"net/http"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/identity"
)

// AuthMiddleware resolves the caller through auth and puts the principal
// and the presented token on the request context. Browsers cannot set
// headers on an EventSource, so an access_token query parameter is
// accepted as well.
func AuthMiddleware(auth identity.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := identity.BearerToken(r)
			if err == nil && token == "" {
				token = r.URL.Query().Get("access_token")
			}
			var p identity.Principal
			if err == nil {
				p, err = auth.Authenticate(token)
			}
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody(apperr.Message(apperr.ErrUnauthenticated)))
				return
			}
			ctx := identity.WithToken(identity.WithPrincipal(r.Context(), p), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
