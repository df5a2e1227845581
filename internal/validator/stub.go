package validator

import (
	"context"
	"sync"

	"cardeval/internal/domain"
	"cardeval/internal/evaluator/ports"
	"cardeval/pkg/platform/sentinel"
)

// Stub stands in for the remote frequent flyer service, which is billed per
// call, slow, unreliable and has no test environment. It never performs a
// lookup: IsValid always fails with ErrorNotImplemented, so an evaluator wired
// to it refers every application that reaches the lookup to a person.
type Stub struct {
	mu       sync.Mutex
	mode     domain.ValidationMode
	notifier Notifier
}

var (
	_ ports.FrequentFlyerValidator = (*Stub)(nil)
	_ ports.OutParamValidator      = (*Stub)(nil)
)

func NewStub() *Stub {
	return &Stub{}
}

func (s *Stub) IsValid(_ context.Context, _ string) (bool, error) {
	return false, NewError(ErrorNotImplemented, "remote lookup is not implemented", sentinel.ErrNotImplemented)
}

// IsValidOut panics: the output-parameter form has no way to report the fault.
func (s *Stub) IsValidOut(_ string, _ *bool) {
	panic(NewError(ErrorNotImplemented, "remote lookup is not implemented", sentinel.ErrNotImplemented))
}

// ServiceInformation reports an empty license key.
func (s *Stub) ServiceInformation() ports.ServiceInformation {
	return ports.ServiceInformation{}
}

func (s *Stub) ValidationMode() domain.ValidationMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Stub) SetValidationMode(mode domain.ValidationMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// OnLookupPerformed registers fn; the stub never performs a lookup, so fn is
// never called.
func (s *Stub) OnLookupPerformed(fn func()) {
	s.notifier.Subscribe(fn)
}
