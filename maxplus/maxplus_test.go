package maxplus

import (
	"testing"

	"github.com/pflow-go/petrinet/petri"
	"github.com/stretchr/testify/require"
)

func buildLoop(t0Duration, t1Duration float64, p0Tokens, p1Tokens uint64) *petri.Net {
	n := petri.New(petri.TimedGraphEvent)
	t0 := n.AddTransition(0, 0)
	t1 := n.AddTransition(1, 1)
	p0 := n.AddPlace(0.5, 0, p0Tokens)
	p1 := n.AddPlace(0.5, 1, p1Tokens)
	n.AddArc(t0.Ref(), p0.Ref(), t0Duration, true)
	n.AddArc(p0.Ref(), t1.Ref(), 0, true)
	n.AddArc(t1.Ref(), p1.Ref(), t1Duration, true)
	n.AddArc(p1.Ref(), t0.Ref(), 0, true)
	n.RebuildAdjacency()
	return n
}

func TestS4AdjacencyMatricesOfSimpleLoop(t *testing.T) {
	n := buildLoop(2, 3, 1, 0)
	N, T, err := AdjacencyMatrices(n)
	require.NoError(t, err)
	require.Equal(t, 1.0, N.Get(1, 0))
	require.Equal(t, 0.0, N.Get(0, 1))
	require.Equal(t, 2.0, T.Get(1, 0))
	require.Equal(t, 3.0, T.Get(0, 1))
}

func TestAdjacencyMatricesFailsOnNonEventGraph(t *testing.T) {
	n := petri.New(petri.Petri)
	p := n.AddPlace(0, 0, 0)
	tr := n.AddTransition(1, 1)
	n.AddArc(p.Ref(), tr.Ref(), 0, true)
	n.RebuildAdjacency()

	_, _, err := AdjacencyMatrices(n)
	require.ErrorIs(t, err, ErrNotEventGraph)
}

func TestS5SysLinClassification(t *testing.T) {
	// t0(input) -[1]-> p0(0) -> t1(state) -[5]-> p1(1) -> t2(state) -[7]-> p2(0) -> t3(output).
	// p1 sits between two interior transitions so it survives canonicalization
	// untouched, giving an unambiguous state-to-state (A) entry alongside the
	// boundary-adjacent B and C entries.
	n := petri.New(petri.TimedGraphEvent)
	t0 := n.AddTransition(0, 0)
	t1 := n.AddTransition(1, 0)
	t2 := n.AddTransition(2, 0)
	t3 := n.AddTransition(3, 0)
	p0 := n.AddPlace(0.5, 0, 0)
	p1 := n.AddPlace(1.5, 0, 1)
	p2 := n.AddPlace(2.5, 0, 0)
	n.AddArc(t0.Ref(), p0.Ref(), 1, true)
	n.AddArc(p0.Ref(), t1.Ref(), 0, true)
	n.AddArc(t1.Ref(), p1.Ref(), 5, true)
	n.AddArc(p1.Ref(), t2.Ref(), 0, true)
	n.AddArc(t2.Ref(), p2.Ref(), 7, true)
	n.AddArc(p2.Ref(), t3.Ref(), 0, true)
	n.RebuildAdjacency()

	D, A, B, C, err := SysLin(n)
	require.NoError(t, err)
	require.Equal(t, 1.0, B.Get(0, 0))
	require.Equal(t, 5.0, A.Get(1, 0))
	require.Equal(t, 7.0, C.Get(0, 1))
	require.Empty(t, D.I)
}

func TestCounterAndDaterEquationRenderNonEmptyText(t *testing.T) {
	n := buildLoop(2, 3, 1, 0)
	counter, err := CounterEquation(n, true, true)
	require.NoError(t, err)
	require.NotEmpty(t, counter)

	dater, err := DaterEquation(n, true, true)
	require.NoError(t, err)
	require.NotEmpty(t, dater)
}
