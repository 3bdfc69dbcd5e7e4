package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pflow-go/petrinet/petri"
	"github.com/stretchr/testify/require"
)

// buildLoop returns a two-transition timed event graph: t0 -[3]-> p0 -> t1
// -[5]-> p1 -> t0, both places holding one token. Used across writers that
// need an event graph (Julia); the rest also accept it since it is a
// perfectly ordinary timed net.
func buildLoop() *petri.Net {
	n := petri.New(petri.TimedGraphEvent)
	n.Name = "loop"
	t0 := n.AddTransition(0, 0)
	t1 := n.AddTransition(10, 0)
	p0 := n.AddPlace(5, 0, 1)
	p1 := n.AddPlace(5, 10, 1)
	n.AddArc(t0.Ref(), p0.Ref(), 3, true)
	n.AddArc(p0.Ref(), t1.Ref(), 0, true)
	n.AddArc(t1.Ref(), p1.Ref(), 5, true)
	n.AddArc(p1.Ref(), t0.Ref(), 0, true)
	n.RebuildAdjacency()
	return n
}

func TestWriteGraphviz(t *testing.T) {
	n := buildLoop()
	var buf bytes.Buffer
	require.NoError(t, WriteGraphviz(n, &buf))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph G {"))
	require.Contains(t, out, "P0")
	require.Contains(t, out, "T0")
	require.Contains(t, out, "T0 -> P0 [label=\"3\"]")
}

func TestWriteLaTeX(t *testing.T) {
	n := buildLoop()
	var buf bytes.Buffer
	require.NoError(t, WriteLaTeX(n, &buf))
	out := buf.String()
	require.Contains(t, out, "\\documentclass")
	require.Contains(t, out, "\\node[place")
	require.Contains(t, out, "\\node[transition")
	require.Contains(t, out, "\\end{document}")
}

func TestWriteDrawIO(t *testing.T) {
	n := buildLoop()
	var buf bytes.Buffer
	require.NoError(t, WriteDrawIO(n, &buf))
	out := buf.String()
	require.Contains(t, out, "<mxfile")
	require.Contains(t, out, "<mxCell")
	require.Contains(t, out, `id="P0"`)
	require.Contains(t, out, `id="T0"`)
}

func TestWriteSymfonyYAML(t *testing.T) {
	n := buildLoop()
	var buf bytes.Buffer
	require.NoError(t, WriteSymfonyYAML(n, &buf))
	out := buf.String()
	require.Contains(t, out, "framework:")
	require.Contains(t, out, "loop:")
	require.Contains(t, out, "P0")
	require.Contains(t, out, "T0")
}

func TestWritePNEditor(t *testing.T) {
	n := buildLoop()
	var pns, pnl, pnkp, pnk bytes.Buffer
	require.NoError(t, WritePNEditor(n, &pns, &pnl, &pnkp, &pnk))
	require.NotEmpty(t, pns.Bytes())
	require.NotEmpty(t, pnl.Bytes())
	require.Equal(t, "P0\nP1\n", pnkp.String())
	require.Equal(t, "T0\nT1\n", pnk.String())
}

func TestWriteGrafcetCpp(t *testing.T) {
	n := buildLoop()
	var buf bytes.Buffer
	require.NoError(t, WriteGrafcetCpp(n, &buf))
	out := buf.String()
	require.Contains(t, out, "namespace loop {")
	require.Contains(t, out, "void step()")
	require.Contains(t, out, "doActions();")
	require.Contains(t, out, "bool T0() const;")
	require.Contains(t, out, "void P0(bool activated);")
}

func TestWriteJulia(t *testing.T) {
	n := buildLoop()
	var buf bytes.Buffer
	require.NoError(t, WriteJulia(n, &buf))
	out := buf.String()
	require.Contains(t, out, "using MaxPlus, SparseArrays")
	require.Contains(t, out, "N = sparse(")
	require.Contains(t, out, "D = sparse(")
	require.Contains(t, out, "S = MPSysLin(A, B, C, D)")
}

func TestWriteJuliaRejectsNonEventGraph(t *testing.T) {
	n := petri.New(petri.TimedPetri)
	t0 := n.AddTransition(0, 0)
	t1 := n.AddTransition(1, 0)
	p0 := n.AddPlace(0, 0, 0)
	n.AddArc(t0.Ref(), p0.Ref(), 1, true)
	n.AddArc(t1.Ref(), p0.Ref(), 1, true)
	n.RebuildAdjacency()

	var buf bytes.Buffer
	err := WriteJulia(n, &buf)
	require.ErrorIs(t, err, ErrNotEventGraph)
}
