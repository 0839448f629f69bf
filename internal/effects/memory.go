package effects

import (
	"context"
	"sync"

	"lankaconnect/internal/events/models"
)

// MemoryPublisher records effects in memory. Used in tests and in
// single-process deployments that run without a broker.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []models.Effect
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, batch []models.Effect) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, batch...)
	return nil
}

// Published returns a copy of everything published so far.
func (p *MemoryPublisher) Published() []models.Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Effect, len(p.events))
	copy(out, p.events)
	return out
}

// OfKind filters published effects by kind.
func (p *MemoryPublisher) OfKind(kind models.EffectKind) []models.Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []models.Effect
	for _, e := range p.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears recorded effects. Use between test cases.
func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
