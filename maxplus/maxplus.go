// Package maxplus translates a timed event graph into its Max-Plus
// adjacency-matrix and dater-form linear-system representations.
package maxplus

import (
	"fmt"

	"github.com/pflow-go/petrinet/matrix"
	"github.com/pflow-go/petrinet/petri"
)

// AdjacencyMatrices builds the (N, T) matrices of shape
// |transitions| x |transitions|: for each place with single predecessor u
// and single successor v, N[v,u] += tokens and T[v,u] += duration. Rows and
// columns are transposed relative to a naive reading because the
// downstream convention is a column-vector product M*x.
func AdjacencyMatrices(net *petri.Net) (N, T *matrix.SparseMatrix, err error) {
	if !net.IsEventGraph(nil) {
		return nil, nil, fmt.Errorf("AdjacencyMatrices: %w", ErrNotEventGraph)
	}
	size := len(net.Transitions)
	N = &matrix.SparseMatrix{}
	N.Dim(size, size)
	T = &matrix.SparseMatrix{}
	T.Dim(size, size)

	for i := range net.Places {
		p := &net.Places[i]
		if len(p.ArcsIn) != 1 || len(p.ArcsOut) != 1 {
			return nil, nil, fmt.Errorf("AdjacencyMatrices: %w", ErrNotEventGraph)
		}
		inArc := &net.Arcs[p.ArcsIn[0]]
		outArc := &net.Arcs[p.ArcsOut[0]]
		if inArc.From.Kind != petri.TransitionNode || outArc.To.Kind != petri.TransitionNode {
			return nil, nil, fmt.Errorf("AdjacencyMatrices: %w", ErrNotEventGraph)
		}
		from, to := inArc.From.ID, outArc.To.ID
		T.Add(to, from, inArc.Duration)
		N.Add(to, from, float64(p.Tokens))
	}
	return N, T, nil
}

// SysLin builds the canonical form of net and derives its dater-form
// linear system (D, A, B, C): D and A are nb_states x nb_states, B is
// nb_states x nb_inputs, C is nb_outputs x nb_states.
func SysLin(net *petri.Net) (D, A, B, C *matrix.SparseMatrix, err error) {
	if !net.IsEventGraph(nil) {
		return nil, nil, nil, nil, fmt.Errorf("SysLin: %w", ErrNotEventGraph)
	}
	var canonical petri.Net
	net.ToCanonicalForm(&canonical)

	nbInputs, nbStates, nbOutputs := 0, 0, 0
	for i := range canonical.Transitions {
		t := &canonical.Transitions[i]
		switch {
		case t.IsInput():
			t.Index = nbInputs
			nbInputs++
		case t.IsOutput():
			t.Index = nbOutputs
			nbOutputs++
		default:
			t.Index = nbStates
			nbStates++
		}
	}

	D = &matrix.SparseMatrix{}
	D.Dim(nbStates, nbStates)
	A = &matrix.SparseMatrix{}
	A.Dim(nbStates, nbStates)
	B = &matrix.SparseMatrix{}
	B.Dim(nbStates, nbInputs)
	C = &matrix.SparseMatrix{}
	C.Dim(nbOutputs, nbStates)

	for _, arc := range canonical.Arcs {
		if arc.From.Kind == petri.PlaceNode {
			continue
		}
		t, ok := canonical.FindTransition(arc.From.ID)
		if !ok {
			continue
		}
		p, ok := canonical.FindPlace(arc.To.ID)
		if !ok {
			continue
		}
		for _, ao := range p.ArcsOut {
			outgoing := canonical.Arcs[ao]
			td, ok := canonical.FindTransition(outgoing.To.ID)
			if !ok {
				continue
			}
			switch {
			case t.IsInput():
				B.Add(td.Index, t.Index, arc.Duration)
			case td.IsState():
				if p.Tokens == 1 {
					A.Add(td.Index, t.Index, arc.Duration)
				} else {
					D.Add(td.Index, t.Index, arc.Duration)
				}
			case td.IsOutput():
				C.Add(td.Index, t.Index, arc.Duration)
			}
		}
	}
	return D, A, B, C, nil
}
