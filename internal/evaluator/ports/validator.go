package ports

//go:generate mockgen -source=validator.go -destination=../mocks/validator.go -package=mocks

import (
	"context"

	"cardeval/internal/domain"
)

// LicenseKeyExpired is the license key a validator reports when its service
// must no longer be used.
const LicenseKeyExpired = "EXPIRED"

// License describes the validator's usage license.
type License struct {
	Key string
}

// IsExpired reports whether the license forbids further lookups.
func (l License) IsExpired() bool {
	return l.Key == LicenseKeyExpired
}

// ServiceInformation is read-only metadata about the validation service.
type ServiceInformation struct {
	License License
}

// FrequentFlyerValidator checks frequent flyer numbers against an external
// loyalty-program service. The service is slow, billed per call and fails
// often, so the evaluator only depends on this port.
type FrequentFlyerValidator interface {
	// IsValid looks the number up. Any error is an external-service fault.
	IsValid(ctx context.Context, frequentFlyerNumber string) (bool, error)

	// ServiceInformation returns the service metadata, including its license.
	ServiceInformation() ServiceInformation

	// ValidationMode returns the mode used for the next lookup.
	ValidationMode() domain.ValidationMode

	// SetValidationMode selects how thoroughly the next lookup is performed.
	SetValidationMode(mode domain.ValidationMode)

	// OnLookupPerformed registers fn to be called synchronously every time the
	// implementation performs a lookup. Listeners cannot be removed.
	OnLookupPerformed(fn func())
}
