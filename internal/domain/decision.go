package domain

// Decision enumerates the outcomes of a credit-card application evaluation.
// Values carry no ordering; compare them only for equality.
type Decision int

const (
	// DecisionUnknown is the zero value. A completed evaluation never returns it.
	DecisionUnknown Decision = iota
	DecisionAutoAccepted
	DecisionAutoDeclined
	DecisionReferredToHuman
	DecisionReferredToHumanFraudRisk
)

var decisionNames = map[Decision]string{
	DecisionUnknown:                  "unknown",
	DecisionAutoAccepted:             "auto_accepted",
	DecisionAutoDeclined:             "auto_declined",
	DecisionReferredToHuman:          "referred_to_human",
	DecisionReferredToHumanFraudRisk: "referred_to_human_fraud_risk",
}

// String returns the snake-case label used in logs and metrics.
func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return "unknown"
}

// IsReferral reports whether the decision routes the application to a person.
func (d Decision) IsReferral() bool {
	return d == DecisionReferredToHuman || d == DecisionReferredToHumanFraudRisk
}

// ValidationMode hints how thoroughly the frequent flyer service should look
// a number up. The evaluator only chooses the mode; the service interprets it.
type ValidationMode int

const (
	ValidationModeQuick ValidationMode = iota
	ValidationModeDetailed
)

// String returns the lower-case mode name.
func (m ValidationMode) String() string {
	switch m {
	case ValidationModeQuick:
		return "quick"
	case ValidationModeDetailed:
		return "detailed"
	default:
		return "unknown"
	}
}
