package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// TokenVerifier validates a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

type contextKeyPrincipal struct{}
type contextKeyHolder struct{}

// principalHolder lets an outer middleware see who an inner RequireAuth admitted.
type principalHolder struct {
	p   domain.Principal
	set bool
}

func withPrincipalHolder(ctx context.Context, h *principalHolder) context.Context {
	return context.WithValue(ctx, contextKeyHolder{}, h)
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal{}, p)
}

// PrincipalFromContext returns the identity attached by RequireAuth.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(contextKeyPrincipal{}).(domain.Principal)
	return p, ok
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>"
// header with 401. Malformed, wrongly signed, and expired tokens all get the
// same response. On success the principal is stored in the request context.
// No role check is made: any authenticated staff member may call any route.
func RequireAuth(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.WarnContext(ctx, "unauthorized access - missing token",
					"path", r.URL.Path,
					"request_id", chimiddleware.GetReqID(ctx),
				)
				writeError(w, r, log, http.StatusUnauthorized, "Unauthorized")
				return
			}

			p, err := verifier.Verify(token)
			if err != nil {
				log.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"path", r.URL.Path,
					"request_id", chimiddleware.GetReqID(ctx),
				)
				writeError(w, r, log, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if h, ok := ctx.Value(contextKeyHolder{}).(*principalHolder); ok {
				h.p, h.set = p, true
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
		})
	}
}

// bearerToken extracts the credential from an Authorization header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
