// Package app wires a ready-to-use Evaluator from configuration and a concrete
// frequent flyer validator.
package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"cardeval/internal/evaluator"
	"cardeval/internal/evaluator/metrics"
	"cardeval/internal/evaluator/ports"
	"cardeval/internal/fraud"
	"cardeval/internal/platform/config"
	"cardeval/internal/platform/logger"
	"cardeval/internal/validator"
	"cardeval/pkg/platform/circuit"
)

const validatorBreakerName = "frequent_flyer_validator"

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	fraud      ports.FraudLookup
}

type Option func(*options)

// WithLogger replaces the logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegisterer enables metrics, registered with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithFraudLookup replaces the default fraud strategy. It has no effect when
// the fraud check is disabled in the configuration.
func WithFraudLookup(l ports.FraudLookup) Option {
	return func(o *options) {
		o.fraud = l
	}
}

// New builds an Evaluator around v. When the breaker is enabled, v is wrapped
// so a failing service is not called on every evaluation.
func New(cfg config.Config, v ports.FrequentFlyerValidator, opts ...Option) (*evaluator.Evaluator, error) {
	if v == nil {
		return nil, fmt.Errorf("build evaluator: %w", evaluator.ErrValidatorRequired)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.New(cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.Breaker.Enabled() {
		cb := circuit.New(validatorBreakerName,
			circuit.WithFailureThreshold(cfg.Breaker.FailureThreshold),
			circuit.WithSuccessThreshold(cfg.Breaker.SuccessThreshold),
			circuit.WithCooldown(cfg.Breaker.Cooldown),
		)
		v = validator.NewBreaker(v, cb, validator.WithBreakerLogger(o.logger))
	}

	evalOpts := []evaluator.Option{evaluator.WithLogger(o.logger)}
	if cfg.FraudCheck {
		lookup := o.fraud
		if lookup == nil {
			lookup = fraud.NewLookup()
		}
		evalOpts = append(evalOpts, evaluator.WithFraudLookup(lookup))
	}
	if o.registerer != nil {
		evalOpts = append(evalOpts, evaluator.WithMetrics(metrics.New(o.registerer)))
	}

	e, err := evaluator.New(v, evalOpts...)
	if err != nil {
		return nil, fmt.Errorf("build evaluator: %w", err)
	}

	o.logger.Debug("evaluator ready",
		"fraud_check", cfg.FraudCheck,
		"breaker", cfg.Breaker.Enabled(),
		"metrics", o.registerer != nil,
	)
	return e, nil
}
