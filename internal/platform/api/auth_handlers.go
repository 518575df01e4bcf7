package api

import (
	"log/slog"
	"net/http"
	"time"

	"go.storegate.dev/internal/platform/auth"
)

// AuthHandler exposes the session endpoints.
type AuthHandler struct {
	tokens      *auth.TokenService
	revocations *auth.RevocationStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens *auth.TokenService, revocations *auth.RevocationStore) *AuthHandler {
	return &AuthHandler{tokens: tokens, revocations: revocations}
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := GetPrincipal(r.Context())
	if p == nil {
		WriteJSON(w, http.StatusUnauthorized, map[string]any{
			"code":    "auth.unauthenticated",
			"message": "Authentication required",
		})
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// Logout handles POST /auth/logout: the presented token is revoked for the
// remainder of its lifetime. Logout without a usable token still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	raw := extractBearerToken(r)
	if raw != "" {
		if rt, err := h.tokens.Resolve(raw); err == nil && rt.TokenID != "" {
			ttl := time.Until(rt.ExpiresAt)
			if ttl > 0 {
				if err := h.revocations.Revoke(r.Context(), rt.TokenID, ttl); err != nil {
					slog.Error("Failed to revoke token", "error", err)
					WriteJSON(w, http.StatusInternalServerError, map[string]any{
						"code":    "auth.logout_failed",
						"message": "Logout failed",
					})
					return
				}
			}
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
