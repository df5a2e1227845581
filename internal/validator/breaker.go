package validator

import (
	"context"
	"log/slog"

	"cardeval/internal/domain"
	"cardeval/internal/evaluator/ports"
	"cardeval/pkg/platform/circuit"
	"cardeval/pkg/platform/sentinel"
)

// Breaker decorates a FrequentFlyerValidator with a circuit breaker. Once the
// wrapped service has failed enough times in a row, IsValid fails fast with
// ErrorUnavailable until the cooldown passes. A fail-fast call performs no
// lookup and so raises no lookup notification.
//
// Only service faults move the circuit. A caller whose context is done, or a
// request the service rejects as bad data, says nothing about service health.
//
// Breaker has no output-parameter form of its own; callers adapt it with
// ports.OutParam so their context reaches the wrapped validator.
type Breaker struct {
	next    ports.FrequentFlyerValidator
	breaker *circuit.Breaker
	logger  *slog.Logger
}

var _ ports.FrequentFlyerValidator = (*Breaker)(nil)

// BreakerOption configures a Breaker.
type BreakerOption func(*Breaker)

// WithBreakerLogger logs circuit transitions.
func WithBreakerLogger(logger *slog.Logger) BreakerOption {
	return func(b *Breaker) {
		b.logger = logger
	}
}

// NewBreaker wraps next with cb.
func NewBreaker(next ports.FrequentFlyerValidator, cb *circuit.Breaker, opts ...BreakerOption) *Breaker {
	b := &Breaker{next: next, breaker: cb}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) IsValid(ctx context.Context, frequentFlyerNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, NewError(ErrorTimeout, "caller gave up before lookup", err)
	}
	if !b.breaker.Allow() {
		return false, NewError(ErrorUnavailable, "circuit open, lookup skipped", sentinel.ErrUnavailable)
	}

	valid, err := b.next.IsValid(ctx, frequentFlyerNumber)
	if err != nil {
		if callerFault(ctx, err) {
			return false, err
		}
		if _, change := b.breaker.RecordFailure(); change.Opened && b.logger != nil {
			b.logger.WarnContext(ctx, "frequent flyer validator circuit opened",
				"breaker", b.breaker.Name(),
				"error", err,
			)
		}
		return false, err
	}

	if _, change := b.breaker.RecordSuccess(); change.Closed && b.logger != nil {
		b.logger.InfoContext(ctx, "frequent flyer validator circuit closed",
			"breaker", b.breaker.Name(),
		)
	}
	return valid, nil
}

func (b *Breaker) ServiceInformation() ports.ServiceInformation {
	return b.next.ServiceInformation()
}

func (b *Breaker) ValidationMode() domain.ValidationMode {
	return b.next.ValidationMode()
}

func (b *Breaker) SetValidationMode(mode domain.ValidationMode) {
	b.next.SetValidationMode(mode)
}

func (b *Breaker) OnLookupPerformed(fn func()) {
	b.next.OnLookupPerformed(fn)
}

// State exposes the circuit position.
func (b *Breaker) State() circuit.State {
	return b.breaker.State()
}

// callerFault reports failures caused by the request rather than the service.
func callerFault(ctx context.Context, err error) bool {
	return ctx.Err() != nil || GetCategory(err) == ErrorBadData
}
