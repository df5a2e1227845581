package evaluator

import (
	"github.com/shopspring/decimal"

	"cardeval/internal/domain"
)

// Rule thresholds. Fixed by policy, not configurable.
const (
	HighIncomeThreshold = 100_000
	LowIncomeThreshold  = 20_000
	AutoReferralMaxAge  = 20

	// detailedLookupMinAge is the age from which lookups run in detailed mode.
	detailedLookupMinAge = 30
)

var (
	highIncomeThreshold = decimal.NewFromInt(HighIncomeThreshold)
	lowIncomeThreshold  = decimal.NewFromInt(LowIncomeThreshold)
)

// Reason names the rule that produced a decision.
type Reason string

const (
	ReasonFraudRisk            Reason = "fraud_risk"
	ReasonHighIncome           Reason = "high_income"
	ReasonLicenseExpired       Reason = "license_expired"
	ReasonValidatorFault       Reason = "validator_fault"
	ReasonInvalidFrequentFlyer Reason = "invalid_frequent_flyer"
	ReasonAutoReferralAge      Reason = "auto_referral_age"
	ReasonLowIncome            Reason = "low_income"
	ReasonManualReview         Reason = "manual_review"
)

// Outcome is a decision together with the rule that produced it.
type Outcome struct {
	Decision domain.Decision
	Reason   Reason
}

func isHighIncome(app domain.Application) bool {
	return app.GrossAnnualIncome.GreaterThanOrEqual(highIncomeThreshold)
}

func validationModeFor(app domain.Application) domain.ValidationMode {
	if app.Age >= detailedLookupMinAge {
		return domain.ValidationModeDetailed
	}
	return domain.ValidationModeQuick
}

// decideAfterLookup applies the rules that follow the frequent flyer lookup.
// This is pure domain logic - no I/O, no side effects.
// Rule priority (fail-fast):
//  1. Invalid frequent flyer number - refer
//  2. Young applicant - refer
//  3. Low income - decline
//  4. Everything else - refer
func decideAfterLookup(app domain.Application, validFrequentFlyer bool) Outcome {
	if !validFrequentFlyer {
		return Outcome{Decision: domain.DecisionReferredToHuman, Reason: ReasonInvalidFrequentFlyer}
	}

	if app.Age <= AutoReferralMaxAge {
		return Outcome{Decision: domain.DecisionReferredToHuman, Reason: ReasonAutoReferralAge}
	}

	if app.GrossAnnualIncome.LessThan(lowIncomeThreshold) {
		return Outcome{Decision: domain.DecisionAutoDeclined, Reason: ReasonLowIncome}
	}

	return Outcome{Decision: domain.DecisionReferredToHuman, Reason: ReasonManualReview}
}
