package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go.storegate.dev/internal/platform/principal"
	"go.storegate.dev/internal/platform/txn"
)

type contextKey string

const languageKey contextKey = "language"

// WithLanguage stores the caller's resolved language in a Go context, to be
// picked up by the pipeline when the invocation starts.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// LanguageFrom extracts the resolved language from a context, falling back
// to the given default.
func LanguageFrom(ctx context.Context, fallback string) string {
	if lang, ok := ctx.Value(languageKey).(string); ok && lang != "" {
		return lang
	}
	return fallback
}

// ExecContext is the per-invocation scratch state passed through every
// stage. It is created when the invocation starts and discarded when it
// ends; it is never shared between invocations.
type ExecContext struct {
	// ExecutionID uniquely identifies this invocation.
	ExecutionID string

	// Language is the resolved language for localized messages.
	Language string

	// Principal is the authenticated caller. Nil for anonymous invocations.
	Principal *principal.Principal

	// Tx is the open transaction scope. Nil until the coordinator opens one,
	// and always nil for query-only actions.
	Tx *txn.Scope

	// StartedAt is when the invocation began.
	StartedAt time.Time
}

func newExecContext(p *principal.Principal, lang string) *ExecContext {
	return &ExecContext{
		ExecutionID: "exec-" + uuid.NewString(),
		Language:    lang,
		Principal:   p,
		StartedAt:   time.Now(),
	}
}
