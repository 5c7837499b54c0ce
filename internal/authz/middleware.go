package authz

import (
	"log/slog"
	"net/http"
	"strings"
)

// TokenVerifier validates a raw bearer token and returns the embedded
// principal. Implemented by token.Codec.
type TokenVerifier interface {
	Verify(raw string) (Principal, error)
}

// Authenticator extracts the Authorization bearer token, verifies it and
// stores the principal in the request context. It never rejects: many
// routes are public, so a missing or invalid token simply leaves the
// request unauthenticated and each handler decides between 401 and 403.
func Authenticator(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			principal, err := verifier.Verify(raw)
			if err != nil {
				if logger != nil {
					logger.Debug("token verification failed", slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
