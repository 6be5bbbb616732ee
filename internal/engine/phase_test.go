package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairRunHappyPath(t *testing.T) {
	run := newPairRun()

	require.NoError(t, run.transition(PhaseExecuting))
	require.NoError(t, run.transition(PhaseAggregating))
	require.NoError(t, run.transition(PhaseDone))
	assert.Equal(t, PhaseDone, run.phase)
}

func TestPairRunDegradedPath(t *testing.T) {
	run := newPairRun()

	require.NoError(t, run.transition(PhaseExecuting))
	require.NoError(t, run.transition(PhaseDegraded))
	require.NoError(t, run.transition(PhaseAggregating))
	require.NoError(t, run.transition(PhaseDone))
}

func TestPairRunRejectsSkippingExecution(t *testing.T) {
	run := newPairRun()

	err := run.transition(PhaseAggregating)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid phase transition selecting -> aggregating")
}

func TestPairRunRejectsDegradedBeforeExecution(t *testing.T) {
	run := newPairRun()

	assert.Error(t, run.transition(PhaseDegraded))
}

func TestPairRunDoneIsTerminal(t *testing.T) {
	run := &pairRun{phase: PhaseDone}

	assert.Error(t, run.transition(PhaseSelecting))
	assert.Error(t, run.transition(PhaseExecuting))
	assert.Error(t, run.transition(PhaseAggregating))
}

func TestPhaseStrings(t *testing.T) {
	assert.Equal(t, "selecting", PhaseSelecting.String())
	assert.Equal(t, "executing", PhaseExecuting.String())
	assert.Equal(t, "degraded", PhaseDegraded.String())
	assert.Equal(t, "aggregating", PhaseAggregating.String())
	assert.Equal(t, "done", PhaseDone.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
