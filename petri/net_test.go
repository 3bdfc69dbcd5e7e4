package petri

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddPlaceAndTransitionAssignDenseIDs(t *testing.T) {
	n := New(Petri)
	p0 := n.AddPlace(0, 0, 0)
	p1 := n.AddPlace(1, 1, 0)
	require.Equal(t, 0, p0.ID)
	require.Equal(t, 1, p1.ID)

	tr0 := n.AddTransition(0, 0)
	require.Equal(t, 0, tr0.ID)
}

func TestAddArcRejectsDuplicate(t *testing.T) {
	n := New(Petri)
	p := n.AddPlace(0, 0, 1)
	tr := n.AddTransition(1, 1)
	_, _, ok := n.AddArc(p.Ref(), tr.Ref(), 0, true)
	require.True(t, ok)
	_, _, ok = n.AddArc(p.Ref(), tr.Ref(), 0, true)
	require.False(t, ok)
}

func TestAddArcStrictRejectsSameType(t *testing.T) {
	n := New(Petri)
	p0 := n.AddPlace(0, 0, 0)
	p1 := n.AddPlace(1, 1, 0)
	_, _, ok := n.AddArc(p0.Ref(), p1.Ref(), 0, true)
	require.False(t, ok)
}

func TestAddArcTolerantBridgesSameType(t *testing.T) {
	// Invariant 8: tolerant addArc inserts a bridging node and both new
	// arcs preserve the requested duration.
	n := New(TimedPetri)
	p0 := n.AddPlace(0, 0, 0)
	p1 := n.AddPlace(10, 0, 0)
	arc, bridged, ok := n.AddArc(p0.Ref(), p1.Ref(), 3.5, false)
	require.True(t, ok)
	require.NotEmpty(t, bridged)
	require.NotNil(t, arc)
	require.Len(t, n.Transitions, 1)
	for _, a := range n.Arcs {
		require.Equal(t, 3.5, a.Duration)
	}
}

func TestRemoveNodeSwapsLastIntoSlotAndRewritesArcs(t *testing.T) {
	// Invariant 2: place ids stay dense after removal, and arcs that
	// pointed at the moved node follow it to its new slot.
	n := New(Petri)
	p0 := n.AddPlace(0, 0, 0)
	_ = n.AddPlace(1, 1, 0)
	p2 := n.AddPlace(2, 2, 5)
	tr := n.AddTransition(0, 0)
	n.AddArc(p2.Ref(), tr.Ref(), 0, true)

	ok := n.RemoveNode(p0.Ref())
	require.True(t, ok)
	require.Len(t, n.Places, 2)

	moved, found := n.FindPlace(0)
	require.True(t, found)
	require.Equal(t, uint64(5), moved.Tokens)

	found = false
	for _, a := range n.Arcs {
		if a.From.Kind == PlaceNode && a.From.ID == 0 {
			found = true
		}
	}
	require.True(t, found, "arc should follow the moved place to id 0")
}

func TestRebuildAdjacencyMatchesArcList(t *testing.T) {
	n := New(Petri)
	p := n.AddPlace(0, 0, 1)
	tr := n.AddTransition(1, 1)
	n.Arcs = append(n.Arcs, Arc{From: p.Ref(), To: tr.Ref()})
	n.RebuildAdjacency()

	place, _ := n.FindPlace(0)
	require.Equal(t, []int{0}, place.ArcsOut)
	transition, _ := n.FindTransition(0)
	require.Equal(t, []int{0}, transition.ArcsIn)
}

func TestIsEventGraph(t *testing.T) {
	n := New(TimedGraphEvent)
	p := n.AddPlace(0, 0, 1)
	t0 := n.AddTransition(0, 0)
	t1 := n.AddTransition(1, 1)
	n.AddArc(t0.Ref(), p.Ref(), 1, true)
	n.AddArc(p.Ref(), t1.Ref(), 1, true)

	require.True(t, n.IsEventGraph(nil))

	p.Tokens = 1
	n.AddArc(p.Ref(), t0.Ref(), 0, true) // second output arc breaks the predicate
	var bad []*Arc
	require.False(t, n.IsEventGraph(&bad))
	require.NotEmpty(t, bad)
}

func TestClearResetsEverything(t *testing.T) {
	n := New(Petri)
	n.AddPlace(0, 0, 1)
	n.AddTransition(0, 0)
	n.Clear()
	require.Empty(t, n.Places)
	require.Empty(t, n.Transitions)
	require.Empty(t, n.Arcs)
	require.False(t, n.Modified)
}

func TestSetTokensRejectsLengthMismatch(t *testing.T) {
	n := New(Petri)
	n.AddPlace(0, 0, 0)
	err := n.SetTokens([]uint64{1, 2})
	require.ErrorIs(t, err, ErrMarksMismatch)
}

func TestChangeTypeOfNetClampsGrafcetTokens(t *testing.T) {
	n := New(Petri)
	n.AddPlace(0, 0, 5)
	n.ChangeTypeOfNet(GRAFCET)
	require.Equal(t, uint64(1), n.Places[0].Tokens)
	require.Equal(t, uint64(1), n.Settings.MaxTokens)
}
