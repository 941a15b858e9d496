// pkg/mem/plan_cache.go
package mem

import (
	"sync"
	"time"

	"tripsmith/internal/models/trip_models"
)

// PlanCache keeps recently computed plans keyed by request fingerprint, so
// identical discovery payloads do not re-run the whole engine.
type PlanCache interface {
	Set(fingerprint string, plan *trip_models.PlanResult, ttl time.Duration)

	// Peek reads without consuming; the same plan may be served many times
	// until it expires.
	Peek(fingerprint string) (*trip_models.PlanResult, bool)
}

type entry struct {
	plan      *trip_models.PlanResult
	expiresAt time.Time
}

type PlanResults struct {
	mu   sync.RWMutex
	data map[string]entry
	// optional: a background janitor could be added if you want
}

func NewPlanResults() *PlanResults {
	return &PlanResults{
		data: make(map[string]entry),
	}
}

func (s *PlanResults) Set(fingerprint string, plan *trip_models.PlanResult, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[fingerprint] = entry{
		plan:      plan,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *PlanResults) Peek(fingerprint string) (*trip_models.PlanResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[fingerprint]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.plan, true
}
