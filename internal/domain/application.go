package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Application is a snapshot of one applicant's inputs. It is passed by value
// and never modified during evaluation.
type Application struct {
	// ID correlates logs and traces for one application. Optional.
	ID uuid.UUID

	// GrossAnnualIncome is non-negative.
	GrossAnnualIncome decimal.Decimal

	// Age is in whole years and non-negative.
	Age int

	// FrequentFlyerNumber may be empty; the validator decides what an empty
	// number means.
	FrequentFlyerNumber string

	LastName string
}
