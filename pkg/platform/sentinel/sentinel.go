package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Validators and other adapters
// return these (optionally wrapped) so callers can classify failures with
// errors.Is without knowing the concrete adapter.
//
// - ErrUnavailable: the service is temporarily not being called or not reachable
// - ErrNotImplemented: the adapter exists only as a placeholder
var (
	ErrUnavailable    = errors.New("unavailable")
	ErrNotImplemented = errors.New("not implemented")
)
