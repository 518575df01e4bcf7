package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.storegate.dev/internal/common/metrics"
	"go.storegate.dev/internal/platform/authz"
	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/principal"
	"go.storegate.dev/internal/platform/txn"
)

// Invoker executes one registered action: validation, authorization,
// transactional execution, and outcome shaping. The returned Result is
// always either a normalized success or a translated, localized error;
// a raw error never escapes.
type Invoker func(ctx context.Context, p *principal.Principal, args Args) envelope.Result

// Pipeline wires the stages together. Invocations are independent and share
// no per-call state; the registries and catalog behind the stages are
// immutable after startup.
type Pipeline struct {
	engine      *authz.Engine
	coordinator *txn.Coordinator
	normalizer  *envelope.Normalizer
	translator  *envelope.Translator
	defaultLang string
	logger      *slog.Logger
}

// New creates a pipeline.
func New(
	engine *authz.Engine,
	coordinator *txn.Coordinator,
	normalizer *envelope.Normalizer,
	translator *envelope.Translator,
	defaultLang string,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		engine:      engine,
		coordinator: coordinator,
		normalizer:  normalizer,
		translator:  translator,
		defaultLang: defaultLang,
		logger:      logger,
	}
}

// Wrap binds a handler to its action descriptor.
//
// Stage order is fixed for every invocation:
// validate -> authorize -> transaction open (mutating only) -> handler ->
// commit/rollback -> normalize/translate. Pre-condition failures
// (validation, authorization) are raised before a transaction exists and
// therefore never trigger a rollback.
func (pl *Pipeline) Wrap(action Action, handler Handler) Invoker {
	return func(ctx context.Context, p *principal.Principal, args Args) envelope.Result {
		start := time.Now()
		lang := LanguageFrom(ctx, pl.defaultLang)
		exec := newExecContext(p, lang)

		result := pl.execute(ctx, exec, action, handler, args)

		outcome := "success"
		if result.IsFailure() {
			outcome = result.Err().ErrorCode
		}
		metrics.PipelineInvocations.WithLabelValues(action.Name, outcome).Inc()
		metrics.PipelineDuration.WithLabelValues(action.Name).Observe(time.Since(start).Seconds())
		return result
	}
}

func (pl *Pipeline) execute(
	ctx context.Context,
	exec *ExecContext,
	action Action,
	handler Handler,
	args Args,
) envelope.Result {
	// 1. Validation gate.
	if s := validateRequired(action, args); s != nil {
		return pl.fail(exec, action, s)
	}

	// 2. Authorization: built-in checks, then the custom predicate.
	req := authz.Requirement{
		Action:           action.Name,
		RequireAuth:      action.RequireAuth,
		Roles:            action.Roles,
		Permissions:      action.Permissions,
		CheckOwnership:   action.CheckOwnership,
		CheckTenantScope: action.CheckTenantScope,
	}
	target := authz.Target{AccountID: args.AccountID(), StoreID: args.StoreID()}
	if s := pl.engine.Authorize(exec.Principal, req, target); s != nil {
		metrics.AuthDenials.WithLabelValues(s.Code).Inc()
		return pl.fail(exec, action, s)
	}
	if action.Custom != nil && !action.Custom(exec, args) {
		s := envelope.NewSentinel(envelope.CodeUnauthorized).WithDetail("custom check failed")
		metrics.AuthDenials.WithLabelValues(s.Code).Inc()
		return pl.fail(exec, action, s)
	}

	// 3. Transaction open, mutations only.
	hctx := ctx
	if action.Mutating {
		scope, err := pl.coordinator.Begin(ctx)
		if err != nil {
			pl.logger.Error("Failed to open transaction", "action", action.Name, "error", err)
			return pl.fail(exec, action, err)
		}
		exec.Tx = scope
		hctx = scope.Context()
	}

	// 4. Handler.
	raw, err := pl.invokeHandler(hctx, exec, action, handler, args)

	// 5. Exactly one commit or rollback while a transaction is open.
	if err != nil {
		if exec.Tx != nil {
			exec.Tx.Rollback(ctx)
			metrics.PipelineRollbacks.WithLabelValues(action.Name).Inc()
		}
		return pl.fail(exec, action, err)
	}
	if exec.Tx != nil {
		if cerr := exec.Tx.Commit(ctx); cerr != nil {
			pl.logger.Error("Transaction commit failed", "action", action.Name, "error", cerr)
			exec.Tx.Rollback(ctx)
			metrics.PipelineRollbacks.WithLabelValues(action.Name).Inc()
			return pl.fail(exec, action, cerr)
		}
	}

	// 6. Success shaping.
	return pl.normalizer.Normalize(raw, exec.Language)
}

// invokeHandler runs the business handler, converting a panic into an error
// so the envelope contract holds even for defective handlers.
func (pl *Pipeline) invokeHandler(
	ctx context.Context,
	exec *ExecContext,
	action Action,
	handler Handler,
	args Args,
) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			pl.logger.Error("Handler panicked",
				"action", action.Name,
				"execution_id", exec.ExecutionID,
				"panic", r)
			raw = nil
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, exec, args)
}

func (pl *Pipeline) fail(exec *ExecContext, action Action, err error) envelope.Result {
	e := pl.translator.Translate(err, exec.Language)
	pl.logger.Debug("Invocation failed",
		"action", action.Name,
		"execution_id", exec.ExecutionID,
		"code", e.ErrorCode)
	return envelope.Failure(e)
}
