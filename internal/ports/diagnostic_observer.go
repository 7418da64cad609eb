package ports

import "insertion-route-service/internal/domain"

// Receives constraint diagnostics emitted while routes are checked.
// Implementations must not block; they never influence construction.
type DiagnosticObserver interface {
	Observe(d domain.Diagnostic)
}
