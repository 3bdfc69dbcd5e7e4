package howard

import (
	"testing"

	"github.com/pflow-go/petrinet/petri"
	"github.com/stretchr/testify/require"
)

func TestS6FindCriticalCycleOfSimpleLoop(t *testing.T) {
	n := petri.New(petri.TimedGraphEvent)
	t0 := n.AddTransition(0, 0)
	t1 := n.AddTransition(1, 1)
	p0 := n.AddPlace(0.5, 0, 1)
	p1 := n.AddPlace(0.5, 1, 1)
	n.AddArc(t0.Ref(), p0.Ref(), 3, true)
	n.AddArc(p0.Ref(), t1.Ref(), 0, true)
	n.AddArc(t1.Ref(), p1.Ref(), 5, true)
	n.AddArc(p1.Ref(), t0.Ref(), 0, true)
	n.RebuildAdjacency()

	result, err := FindCriticalCycle(n)
	require.NoError(t, err)
	require.Len(t, result.CycleTime, 2)
	require.InDelta(t, 4.0, result.CycleTime[0], 1e-9)
	require.InDelta(t, 4.0, result.CycleTime[1], 1e-9)
	require.NotEmpty(t, result.Arcs)
}

func TestFindCriticalCycleRejectsOpenNet(t *testing.T) {
	n := petri.New(petri.TimedGraphEvent)
	t0 := n.AddTransition(0, 0) // source: no input arc
	t1 := n.AddTransition(1, 1)
	p0 := n.AddPlace(0.5, 0, 1)
	n.AddArc(t0.Ref(), p0.Ref(), 1, true)
	n.AddArc(p0.Ref(), t1.Ref(), 0, true)
	n.RebuildAdjacency()

	_, err := FindCriticalCycle(n)
	require.ErrorIs(t, err, ErrOpenEventGraph)
}
