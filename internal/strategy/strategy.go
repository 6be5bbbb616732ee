// Package strategy provides the pluggable scoring strategies that turn a
// (candidate, job) pair into a 0-100 match score, and the registry the
// orchestration engine selects them from.
package strategy

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Bapt252/Commitment--sub002/internal/types"
	"github.com/Bapt252/Commitment--sub002/internal/weighting"
)

// Registered strategy names.
const (
	NameSkills        = "skills"
	NameGeography     = "geography"
	NameSemantic      = "semantic"
	NameRemote        = "remote"
	NameComprehensive = "comprehensive"
)

// Strategy is one pluggable scoring algorithm. Score must be deterministic
// for identical inputs; only the remote strategy is exempt, since its
// answer depends on collaborator-side state.
type Strategy interface {
	Name() string
	Score(ctx context.Context, candidate types.Candidate, job types.JobOffer, weights weighting.Profile) (types.MatchScore, error)
}

// UnavailableError reports that a single strategy could not produce a
// score. The orchestrator recovers from it by falling back or by excluding
// the strategy from consensus.
type UnavailableError struct {
	Strategy string
	Message  string
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("strategy %s unavailable: %s: %v", e.Strategy, e.Message, e.Cause)
	}
	return fmt.Sprintf("strategy %s unavailable: %s", e.Strategy, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// Registry holds strategies keyed by name.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register adds a strategy. Registering the same name twice is an error.
func (r *Registry) Register(s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("strategy %q already registered", name)
	}
	r.strategies[name] = s
	return nil
}

// Get returns the strategy registered under name.
func (r *Registry) Get(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[name]
	return s, ok
}

// Has reports whether a strategy is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
