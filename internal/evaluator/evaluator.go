package evaluator

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cardeval/internal/domain"
	"cardeval/internal/evaluator/metrics"
	"cardeval/internal/evaluator/ports"
	"cardeval/internal/validator"
)

const (
	tracerName = "cardeval/internal/evaluator"

	entrypointEvaluate         = "evaluate"
	entrypointEvaluateUsingOut = "evaluate_using_out"
)

// ErrValidatorRequired is returned by New when no validator is supplied.
var ErrValidatorRequired = errors.New("frequent flyer validator is required")

// Evaluator decides credit-card applications. It is safe for concurrent use
// as long as the collaborators are.
type Evaluator struct {
	validator ports.FrequentFlyerValidator
	fraud     ports.FraudLookup
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer

	lookups atomic.Int64
}

type Option func(*Evaluator)

// WithFraudLookup enables the fraud check. nil disables it.
func WithFraudLookup(lookup ports.FraudLookup) Option {
	return func(e *Evaluator) {
		e.fraud = lookup
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Evaluator) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// New creates an Evaluator and subscribes it to the validator's lookup
// notifications for its whole lifetime.
func New(v ports.FrequentFlyerValidator, opts ...Option) (*Evaluator, error) {
	if v == nil {
		return nil, ErrValidatorRequired
	}

	e := &Evaluator{
		validator: v,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}

	v.OnLookupPerformed(e.recordLookup)
	return e, nil
}

// LookupCount returns how many lookups the validator has reported since the
// Evaluator was created.
func (e *Evaluator) LookupCount() int64 {
	return e.lookups.Load()
}

func (e *Evaluator) recordLookup() {
	e.lookups.Add(1)
	e.metrics.IncrementLookups()
}

// Evaluate runs the full rule chain and returns the decision.
func (e *Evaluator) Evaluate(ctx context.Context, app domain.Application) domain.Decision {
	return e.Explain(ctx, app).Decision
}

// Explain runs the full rule chain and reports which rule decided.
func (e *Evaluator) Explain(ctx context.Context, app domain.Application) Outcome {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "evaluator.Evaluate",
		trace.WithAttributes(attribute.String("application_id", app.ID.String())),
	)
	defer span.End()

	outcome := e.evaluate(ctx, app)
	e.observe(ctx, span, entrypointEvaluate, app, outcome, start)
	return outcome
}

// evaluate applies the rule chain.
// Rule priority (fail-fast):
//  1. Fraud risk (when a fraud lookup is configured) - refer
//  2. High income - accept without any validator call
//  3. Expired validator license - refer without a lookup
//  4. Frequent flyer lookup, then the post-lookup rules
func (e *Evaluator) evaluate(ctx context.Context, app domain.Application) Outcome {
	if e.fraud != nil && e.fraud.IsFraudRisk(ctx, app) {
		return Outcome{Decision: domain.DecisionReferredToHumanFraudRisk, Reason: ReasonFraudRisk}
	}

	if isHighIncome(app) {
		return Outcome{Decision: domain.DecisionAutoAccepted, Reason: ReasonHighIncome}
	}

	if e.validator.ServiceInformation().License.IsExpired() {
		return Outcome{Decision: domain.DecisionReferredToHuman, Reason: ReasonLicenseExpired}
	}

	// The mode is set even when the lookup below fails.
	e.validator.SetValidationMode(validationModeFor(app))

	valid, err := e.validator.IsValid(ctx, app.FrequentFlyerNumber)
	if err != nil {
		// Faults are never propagated or retried.
		e.recordFault(ctx, app, err)
		return Outcome{Decision: domain.DecisionReferredToHuman, Reason: ReasonValidatorFault}
	}

	return decideAfterLookup(app, valid)
}

// EvaluateUsingOut runs the reduced rule chain through the validator's
// output-parameter calling convention: no fraud check, no license check and
// no validation mode. A validator fault is not recovered and panics.
func (e *Evaluator) EvaluateUsingOut(ctx context.Context, app domain.Application) domain.Decision {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "evaluator.EvaluateUsingOut",
		trace.WithAttributes(attribute.String("application_id", app.ID.String())),
	)
	defer span.End()

	var outcome Outcome
	if isHighIncome(app) {
		outcome = Outcome{Decision: domain.DecisionAutoAccepted, Reason: ReasonHighIncome}
	} else {
		var valid bool
		e.outParamValidator(ctx).IsValidOut(app.FrequentFlyerNumber, &valid)
		outcome = decideAfterLookup(app, valid)
	}

	e.observe(ctx, span, entrypointEvaluateUsingOut, app, outcome, start)
	return outcome.Decision
}

func (e *Evaluator) outParamValidator(ctx context.Context) ports.OutParamValidator {
	if out, ok := e.validator.(ports.OutParamValidator); ok {
		return out
	}
	return ports.OutParam(ctx, e.validator)
}

func (e *Evaluator) recordFault(ctx context.Context, app domain.Application, err error) {
	category := validator.GetCategory(err)
	e.metrics.IncrementFaults(string(category))

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, "frequent flyer validation failed")

	if e.logger != nil {
		e.logger.WarnContext(ctx, "frequent flyer validation failed, treating number as invalid",
			"application_id", app.ID.String(),
			"category", string(category),
			"retryable", validator.IsRetryable(err),
			"error", err,
		)
	}
}

func (e *Evaluator) observe(ctx context.Context, span trace.Span, entrypoint string, app domain.Application, outcome Outcome, start time.Time) {
	span.SetAttributes(
		attribute.String("entrypoint", entrypoint),
		attribute.String("decision", outcome.Decision.String()),
		attribute.String("reason", string(outcome.Reason)),
		attribute.Bool("referred", outcome.Decision.IsReferral()),
	)
	e.metrics.IncrementOutcome(outcome.Decision.String(), entrypoint)
	e.metrics.ObserveEvaluateLatency(time.Since(start))

	if e.logger != nil {
		e.logger.DebugContext(ctx, "application evaluated",
			"application_id", app.ID.String(),
			"entrypoint", entrypoint,
			"decision", outcome.Decision.String(),
			"reason", string(outcome.Reason),
			"referred", outcome.Decision.IsReferral(),
		)
	}
}
