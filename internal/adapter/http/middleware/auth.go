package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iho/finledger/internal/infrastructure/auth"
	"github.com/iho/finledger/internal/infrastructure/logger"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ClaimsContextKey is the context key for the verified token claims
	ClaimsContextKey ContextKey = "claims"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware creates an authentication middleware. Safe methods need the
// read scope, everything else needs write. failures may be nil.
func AuthMiddleware(verifier TokenVerifier, failures *prometheus.CounterVec) func(http.Handler) http.Handler {
	fail := func(w http.ResponseWriter, status int, reason, msg string) {
		if failures != nil {
			failures.WithLabelValues(reason).Inc()
		}
		writeJSONError(w, status, msg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				fail(w, http.StatusUnauthorized, "missing", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				fail(w, http.StatusUnauthorized, "malformed", "invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				reason := "invalid"
				if errors.Is(err, auth.ErrExpiredToken) {
					reason = "expired"
				}
				fail(w, http.StatusUnauthorized, reason, "invalid or expired token")
				return
			}

			if !claims.Scope.Allows(requiredScope(r.Method)) {
				fail(w, http.StatusForbidden, "scope", "insufficient scope")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			ctx = logger.WithSubject(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requiredScope(method string) auth.Scope {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return auth.ScopeRead
	default:
		return auth.ScopeWrite
	}
}

// GetClaimsFromContext extracts the verified claims from context
func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
