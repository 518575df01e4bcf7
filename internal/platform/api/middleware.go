package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/auth"
	"go.storegate.dev/internal/platform/messages"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/principal"
)

// ContextKey is a type for context keys
type ContextKey string

// ContextKeyPrincipal is the key for the authenticated principal
const ContextKeyPrincipal ContextKey = "principal"

// AuthMiddleware resolves bearer tokens into principals
type AuthMiddleware struct {
	tokens      *auth.TokenService
	revocations *auth.RevocationStore
	principals  principal.Repository
}

// NewAuthMiddleware creates a new auth middleware. revocations and
// principals may be nil; the corresponding check is then skipped.
func NewAuthMiddleware(tokens *auth.TokenService, revocations *auth.RevocationStore, principals principal.Repository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revocations: revocations, principals: principals}
}

// Authenticate resolves the bearer token when one is present. It never
// rejects the request itself: a missing, malformed, or revoked token simply
// leaves no principal in the context, and the pipeline raises the proper
// taxonomy error for actions that require one.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		rt, err := m.tokens.Resolve(token)
		if err != nil {
			slog.Debug("Token resolution failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if m.revocations != nil && rt.TokenID != "" {
			revoked, err := m.revocations.IsRevoked(r.Context(), rt.TokenID)
			if err != nil {
				slog.Error("Revocation check failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if revoked {
				slog.Debug("Revoked token presented", "tokenId", rt.TokenID)
				next.ServeHTTP(w, r)
				return
			}
		}

		p := rt.Principal

		// Refresh a valid caller from storage so role and permission
		// changes apply without reissuing the token. Expired tokens keep
		// their claims as-is; the pipeline reports expiry either way.
		if m.principals != nil && p.TokenState == principal.TokenValid {
			stored, err := m.principals.FindByID(r.Context(), p.ID)
			switch {
			case err == nil && stored.Active:
				stored.TokenState = principal.TokenValid
				p = stored
			case err == nil:
				slog.Debug("Inactive principal presented a token", "principalId", p.ID)
				next.ServeHTTP(w, r)
				return
			case errors.Is(err, repository.ErrNotFound):
				slog.Debug("Token for unknown principal", "principalId", p.ID)
				next.ServeHTTP(w, r)
				return
			default:
				slog.Error("Principal lookup failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
		}

		ctx := context.WithValue(r.Context(), ContextKeyPrincipal, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ResolveLanguage picks the response language from Accept-Language and
// stores it for the pipeline. Only the primary subtag matters; unsupported
// languages fall back to the default.
func ResolveLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := primaryLanguage(r.Header.Get("Accept-Language"))
		if lang != "" {
			r = r.WithContext(pipeline.WithLanguage(r.Context(), lang))
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal returns the authenticated principal from the context
func GetPrincipal(ctx context.Context) *principal.Principal {
	p, _ := ctx.Value(ContextKeyPrincipal).(*principal.Principal)
	return p
}

// extractBearerToken extracts the token from the Authorization header
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// primaryLanguage reduces an Accept-Language header to a supported language
// code, or "" when nothing matches.
func primaryLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.IndexAny(tag, ";-"); i >= 0 {
			tag = tag[:i]
		}
		switch strings.ToLower(tag) {
		case messages.LanguageEN:
			return messages.LanguageEN
		case messages.LanguageFR:
			return messages.LanguageFR
		}
	}
	return ""
}
