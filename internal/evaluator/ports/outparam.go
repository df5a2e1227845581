package ports

//go:generate mockgen -source=outparam.go -destination=../mocks/outparam.go -package=mocks

import (
	"context"
	"fmt"
)

// OutParamValidator is the legacy calling convention of the validator: the
// result is written through isValid instead of being returned. It has no
// error path; implementations are assumed not to fail.
type OutParamValidator interface {
	IsValidOut(frequentFlyerNumber string, isValid *bool)
}

// OutParam adapts a FrequentFlyerValidator to the output-parameter form. The
// form cannot report errors, so a fault from IsValid panics and reaches the
// caller of the evaluation. ctx is passed through to every IsValid call.
func OutParam(ctx context.Context, v FrequentFlyerValidator) OutParamValidator {
	return outParamAdapter{ctx: ctx, validator: v}
}

type outParamAdapter struct {
	ctx       context.Context
	validator FrequentFlyerValidator
}

func (a outParamAdapter) IsValidOut(frequentFlyerNumber string, isValid *bool) {
	valid, err := a.validator.IsValid(a.ctx, frequentFlyerNumber)
	if err != nil {
		panic(fmt.Errorf("frequent flyer lookup failed: %w", err))
	}
	*isValid = valid
}
