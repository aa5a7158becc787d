package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/taskman-io/taskman/internal/api/response"
	"github.com/taskman-io/taskman/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that extracts the Bearer token from the
// Authorization header and verifies it with the token issuer. Missing or
// invalid tokens return 401.
func Auth(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required", requestID)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must use the Bearer scheme", requestID)
				return
			}

			claims, err := issuer.Parse(parts[1])
			if err != nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", requestID)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", requestID)
				return
			}

			identity := &auth.Identity{UserID: userID, Email: claims.Email}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a context carrying the given Identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
