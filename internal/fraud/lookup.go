// Package fraud holds fraud-risk strategies for the application evaluator.
package fraud

import (
	"context"

	"cardeval/internal/domain"
	"cardeval/internal/evaluator/ports"
)

// DefaultFlaggedLastName is the last name the default check flags. It is a
// placeholder until a real risk source is wired in.
const DefaultFlaggedLastName = "Smith"

// CheckFunc adapts a plain function to ports.FraudLookup.
type CheckFunc func(ctx context.Context, application domain.Application) bool

func (f CheckFunc) IsFraudRisk(ctx context.Context, application domain.Application) bool {
	return f(ctx, application)
}

// Lookup is the default fraud-risk strategy. Its check can be replaced with
// WithCheck while keeping the Lookup type in place.
type Lookup struct {
	check CheckFunc
}

var _ ports.FraudLookup = (*Lookup)(nil)

// Option configures a Lookup.
type Option func(*Lookup)

// WithCheck replaces the default last-name check.
func WithCheck(check CheckFunc) Option {
	return func(l *Lookup) {
		if check != nil {
			l.check = check
		}
	}
}

// NewLookup returns a Lookup that flags applicants named DefaultFlaggedLastName
// unless another check is supplied.
func NewLookup(opts ...Option) *Lookup {
	l := &Lookup{check: checkLastName}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lookup) IsFraudRisk(ctx context.Context, application domain.Application) bool {
	return l.check(ctx, application)
}

func checkLastName(_ context.Context, application domain.Application) bool {
	return application.LastName == DefaultFlaggedLastName
}
