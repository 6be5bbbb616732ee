package engine

import "fmt"

// Phase is one step of the per-pair orchestration state machine.
type Phase int

const (
	// PhaseSelecting runs the algorithm selection policy.
	PhaseSelecting Phase = iota
	// PhaseExecuting runs the selected strategy or consensus fan-out.
	PhaseExecuting
	// PhaseDegraded handles partial strategy failure and the fallback.
	PhaseDegraded
	// PhaseAggregating blends the surviving scores.
	PhaseAggregating
	// PhaseDone is terminal.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseExecuting:
		return "executing"
	case PhaseDegraded:
		return "degraded"
	case PhaseAggregating:
		return "aggregating"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// phaseTransitions lists the valid moves from each phase.
var phaseTransitions = map[Phase][]Phase{
	PhaseSelecting:   {PhaseExecuting},
	PhaseExecuting:   {PhaseAggregating, PhaseDegraded},
	PhaseDegraded:    {PhaseAggregating},
	PhaseAggregating: {PhaseDone},
	PhaseDone:        {},
}

func containsPhase(phases []Phase, phase Phase) bool {
	for _, p := range phases {
		if p == phase {
			return true
		}
	}
	return false
}

// pairRun tracks the state machine for one (candidate, job) evaluation.
type pairRun struct {
	phase Phase
}

func newPairRun() *pairRun {
	return &pairRun{phase: PhaseSelecting}
}

// transition moves to the next phase, rejecting moves the table does not
// allow. A rejected move is a programming error, not an input condition.
func (r *pairRun) transition(to Phase) error {
	if !containsPhase(phaseTransitions[r.phase], to) {
		return fmt.Errorf("invalid phase transition %s -> %s", r.phase, to)
	}
	r.phase = to
	return nil
}
