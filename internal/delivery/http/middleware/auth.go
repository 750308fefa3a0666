package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "holidayplanner/internal/delivery/http/helpers"
	"holidayplanner/internal/domain"
)

type contextKey string

const claimKey contextKey = "claim"

// WithClaim returns a context carrying the verified claim.
func WithClaim(ctx context.Context, claim domain.Claim) context.Context {
	return context.WithValue(ctx, claimKey, claim)
}

// ClaimFromContext returns the claim set by RequireAuth, if present.
func ClaimFromContext(ctx context.Context) (domain.Claim, bool) {
	c, ok := ctx.Value(claimKey).(domain.Claim)
	return c, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and stores its claim in the
// request context. A missing or invalid token gets a 401 and next is not called.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			claim, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(WithClaim(r.Context(), claim)))
		}
	}
}
