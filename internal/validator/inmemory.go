package validator

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"cardeval/internal/domain"
	"cardeval/internal/evaluator/ports"
)

// InMemory validates numbers against a fixed set of known members. It is the
// offline counterpart of the remote service: every IsValid call that gets past
// context cancellation and the number check counts as a performed lookup.
type InMemory struct {
	mu         sync.RWMutex
	members    map[string]struct{}
	licenseKey string
	mode       domain.ValidationMode
	notifier   Notifier
}

var (
	_ ports.FrequentFlyerValidator = (*InMemory)(nil)
	_ ports.OutParamValidator      = (*InMemory)(nil)
)

// NewInMemory creates a validator that accepts exactly the given numbers.
// Numbers are compared case-insensitively after trimming spaces.
func NewInMemory(licenseKey string, numbers ...string) *InMemory {
	members := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		if key := normalize(n); key != "" {
			members[key] = struct{}{}
		}
	}
	return &InMemory{
		members:    members,
		licenseKey: licenseKey,
	}
}

// IsValid performs a lookup. An empty number is never valid; a number with
// control characters is rejected with ErrorBadData.
func (v *InMemory) IsValid(ctx context.Context, frequentFlyerNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, NewError(ErrorTimeout, "lookup cancelled", err)
	}
	if err := checkNumber(frequentFlyerNumber); err != nil {
		return false, err
	}
	return v.lookup(frequentFlyerNumber), nil
}

// IsValidOut panics on a number IsValid would reject.
func (v *InMemory) IsValidOut(frequentFlyerNumber string, isValid *bool) {
	if err := checkNumber(frequentFlyerNumber); err != nil {
		panic(err)
	}
	*isValid = v.lookup(frequentFlyerNumber)
}

func (v *InMemory) lookup(frequentFlyerNumber string) bool {
	v.mu.RLock()
	_, ok := v.members[normalize(frequentFlyerNumber)]
	v.mu.RUnlock()

	v.notifier.Notify()
	return ok
}

func (v *InMemory) ServiceInformation() ports.ServiceInformation {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return ports.ServiceInformation{License: ports.License{Key: v.licenseKey}}
}

// SetLicenseKey replaces the reported license key.
func (v *InMemory) SetLicenseKey(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.licenseKey = key
}

func (v *InMemory) ValidationMode() domain.ValidationMode {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mode
}

func (v *InMemory) SetValidationMode(mode domain.ValidationMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

func (v *InMemory) OnLookupPerformed(fn func()) {
	v.notifier.Subscribe(fn)
}

func checkNumber(number string) error {
	if strings.IndexFunc(number, unicode.IsControl) >= 0 {
		return NewError(ErrorBadData, "number contains control characters", nil)
	}
	return nil
}

func normalize(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
