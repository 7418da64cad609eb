package services

import (
	"sync"

	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/ports"

	"github.com/rs/zerolog"
)

var diagnosticMessages = map[domain.ConstraintKind]string{
	domain.ConstraintCapacity:  "vehicle capacity has exceeded for route",
	domain.ConstraintSchedule:  "schedule issue for route",
	domain.ConstraintFleetSize: "vehicle count has exceeded for route",
}

// Collector keeps every diagnostic it observes, in emission order.
type Collector struct {
	mu          sync.Mutex
	diagnostics []domain.Diagnostic
}

func (c *Collector) Observe(d domain.Diagnostic) {
	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, d)
	c.mu.Unlock()
}

func (c *Collector) Diagnostics() []domain.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Count returns how many diagnostics of the given kind were observed.
func (c *Collector) Count(kind domain.ConstraintKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// LogObserver writes each diagnostic as a warning.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) Observe(d domain.Diagnostic) {
	o.Logger.Warn().
		Str("constraint", string(d.Kind)).
		Ints("route", d.Route).
		Msg(diagnosticMessages[d.Kind])
}

// MultiObserver fans a diagnostic out to several observers; nil entries are skipped.
type MultiObserver []ports.DiagnosticObserver

func (m MultiObserver) Observe(d domain.Diagnostic) {
	for _, o := range m {
		if o != nil {
			o.Observe(d)
		}
	}
}
