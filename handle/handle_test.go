package handle

import (
	"bytes"
	"testing"

	"github.com/pflow-go/petrinet/petri"
	"github.com/stretchr/testify/require"
)

func TestCreateGetDestroy(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.Petri)
	require.Equal(t, 0, h)

	n, ok := tbl.Get(h)
	require.True(t, ok)
	require.NotNil(t, n)

	require.True(t, tbl.Destroy(h))
	_, ok = tbl.Get(h)
	require.False(t, ok)

	// Destroyed handles are never reused; the next Create grows the table.
	h2 := tbl.Create(petri.Petri)
	require.Equal(t, 1, h2)

	require.False(t, tbl.Destroy(h))
	require.False(t, tbl.Destroy(99))
}

func TestInvalidHandleFailsEveryCall(t *testing.T) {
	tbl := NewTable()
	require.Equal(t, -1, tbl.CountPlaces(42))
	require.Equal(t, -1, tbl.CountTransitions(42))
	require.Equal(t, -1, tbl.AddPlace(42, 0, 0, 0))
	require.False(t, tbl.RemovePlace(42, 0))
	require.False(t, tbl.SetMarks(42, nil))
	_, ok := tbl.GetMarks(42)
	require.False(t, ok)
	require.Equal(t, int64(-1), tbl.GetTokens(42, 0))
	require.Equal(t, -1, tbl.Copy(42))
	require.Equal(t, -1, tbl.ToCanonical(42))
	require.ErrorIs(t, tbl.Editor(42), ErrInvalidHandle)
}

func TestPlacesAndTransitions(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.Petri)

	p0 := tbl.AddPlace(h, 1, 2, 3)
	p1 := tbl.AddPlace(h, 4, 5, 0)
	t0 := tbl.AddTransition(h, 10, 20)
	require.Equal(t, 0, p0)
	require.Equal(t, 1, p1)
	require.Equal(t, 0, t0)

	require.Equal(t, 2, tbl.CountPlaces(h))
	require.Equal(t, 1, tbl.CountTransitions(h))

	places, ok := tbl.GetPlaces(h)
	require.True(t, ok)
	require.Len(t, places, 2)
	require.Equal(t, uint64(3), places[0].Tokens)

	rec, ok := tbl.GetPlace(h, p0)
	require.True(t, ok)
	require.Equal(t, 1.0, rec.X)

	_, ok = tbl.GetPlace(h, 99)
	require.False(t, ok)

	require.Equal(t, int64(3), tbl.GetTokens(h, p0))
	require.True(t, tbl.SetTokens(h, p0, 7))
	require.Equal(t, int64(7), tbl.GetTokens(h, p0))

	require.True(t, tbl.RemovePlace(h, p1))
	require.Equal(t, 1, tbl.CountPlaces(h))
	require.False(t, tbl.RemovePlace(h, 99))
}

func TestMarksRoundTrip(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.Petri)
	tbl.AddPlace(h, 0, 0, 1)
	tbl.AddPlace(h, 0, 0, 2)

	marks, ok := tbl.GetMarks(h)
	require.True(t, ok)
	require.Equal(t, []uint64{1, 2}, marks)

	require.True(t, tbl.SetMarks(h, []uint64{5, 6}))
	marks, ok = tbl.GetMarks(h)
	require.True(t, ok)
	require.Equal(t, []uint64{5, 6}, marks)

	require.False(t, tbl.SetMarks(h, []uint64{1}))
}

func TestArcsAndEventGraph(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.TimedGraphEvent)
	tbl.AddTransition(h, 0, 0)
	tbl.AddTransition(h, 10, 0)
	tbl.AddPlace(h, 5, 0, 1)
	tbl.AddPlace(h, 5, 10, 1)

	require.Equal(t, 0, tbl.AddArc(h, "T0", "P0", 3))
	require.Equal(t, 1, tbl.AddArc(h, "P0", "T1", 0))
	require.Equal(t, 2, tbl.AddArc(h, "T1", "P1", 5))
	require.Equal(t, 3, tbl.AddArc(h, "P1", "T0", 0))
	require.Equal(t, -1, tbl.AddArc(h, "T0", "P0", 1)) // duplicate
	require.Equal(t, -1, tbl.AddArc(h, "P9", "T0", 1)) // unknown

	eg, ok := tbl.IsEventGraph(h)
	require.True(t, ok)
	require.True(t, eg)

	require.True(t, tbl.RemoveArc(h, "T0", "P0"))
	require.False(t, tbl.RemoveArc(h, "T0", "P0"))
}

func TestCopyAndToCanonical(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.TimedGraphEvent)
	t0 := tbl.AddTransition(h, 0, 0)
	tbl.AddPlace(h, 5, 0, 3)
	tbl.AddArc(h, "T0", "P0", 2)
	tbl.AddArc(h, "P0", "T0", 0)
	_ = t0

	copyH := tbl.Copy(h)
	require.Equal(t, 1, copyH)
	require.Equal(t, 1, tbl.CountPlaces(copyH))
	require.Equal(t, int64(3), tbl.GetTokens(copyH, 0))
	require.Equal(t, int64(-1), tbl.GetTokens(99, 0))

	canonH := tbl.ToCanonical(h)
	require.GreaterOrEqual(t, canonH, 0)
	eg, ok := tbl.IsEventGraph(canonH)
	require.True(t, ok)
	require.True(t, eg)
	places, ok := tbl.GetPlaces(canonH)
	require.True(t, ok)
	for _, p := range places {
		require.LessOrEqual(t, p.Tokens, uint64(1))
	}
}

func TestAnalysisAndSaveLoad(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.TimedGraphEvent)
	tbl.AddTransition(h, 0, 0)
	tbl.AddTransition(h, 10, 0)
	tbl.AddPlace(h, 5, 0, 1)
	tbl.AddPlace(h, 5, 10, 0)
	tbl.AddArc(h, "T0", "P0", 2)
	tbl.AddArc(h, "P0", "T1", 0)
	tbl.AddArc(h, "T1", "P1", 3)
	tbl.AddArc(h, "P1", "T0", 0)

	N, D, ok := tbl.ToAdjacencyMatrices(h)
	require.True(t, ok)
	require.NotNil(t, N)
	require.NotNil(t, D)

	sD, sA, sB, sC, ok := tbl.ToSysLin(h)
	require.True(t, ok)
	require.NotNil(t, sD)
	require.NotNil(t, sA)
	require.NotNil(t, sB)
	require.NotNil(t, sC)

	text, ok := tbl.DaterForm(h, false, true)
	require.True(t, ok)
	require.Contains(t, text, "dater equation")

	text, ok = tbl.CounterForm(h, false, true)
	require.True(t, ok)
	require.Contains(t, text, "counter equation")

	cycle, ok := tbl.CriticalCycle(h)
	require.True(t, ok)
	require.NotEmpty(t, cycle.CycleTime)

	var buf bytes.Buffer
	require.True(t, tbl.Save(h, &buf))

	h2 := tbl.Create(petri.Petri)
	require.True(t, tbl.Load(h2, &buf))
	require.Equal(t, 2, tbl.CountPlaces(h2))
}

func TestResetAndIsEmpty(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.Petri)
	empty, ok := tbl.IsEmpty(h)
	require.True(t, ok)
	require.True(t, empty)

	tbl.AddPlace(h, 0, 0, 0)
	empty, ok = tbl.IsEmpty(h)
	require.True(t, ok)
	require.False(t, empty)

	require.True(t, tbl.Reset(h))
	empty, ok = tbl.IsEmpty(h)
	require.True(t, ok)
	require.True(t, empty)
}

func TestEditorNotSupported(t *testing.T) {
	tbl := NewTable()
	h := tbl.Create(petri.Petri)
	require.ErrorIs(t, tbl.Editor(h), ErrNotSupported)
}
