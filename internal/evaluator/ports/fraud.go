package ports

//go:generate mockgen -source=fraud.go -destination=../mocks/fraud.go -package=mocks

import (
	"context"

	"cardeval/internal/domain"
)

// FraudLookup flags applications that must bypass the normal rules and go to
// human review. Risk logic belongs to the implementation.
type FraudLookup interface {
	IsFraudRisk(ctx context.Context, application domain.Application) bool
}
