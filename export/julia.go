package export

import (
	"fmt"
	"io"

	"github.com/pflow-go/petrinet/maxplus"
	"github.com/pflow-go/petrinet/petri"
)

// WriteJulia writes net's Max-Plus state-space realization as a Julia
// script targeting the MaxPlus package: it canonicalizes a copy of net,
// emits the token/duration adjacency matrices, the counter and dater
// equations as comments, and the D/A/B/C dater-form system as
// sparse(...) triplets. Fails with ErrNotEventGraph if net has a place
// with more than one input or output arc. Grounded on original_source's
// exportToJulia.
func WriteJulia(net *petri.Net, w io.Writer) error {
	if !net.IsEventGraph(nil) {
		return fmt.Errorf("WriteJulia: %w", ErrNotEventGraph)
	}

	var canonic petri.Net
	net.ToCanonicalForm(&canonic)

	e := &errWriter{w: w}
	e.printf("# This file has been generated\n\n")
	e.printf("using MaxPlus, SparseArrays\n\n")

	e.printf("## Petri transitions:\n")
	nbInputs, nbStates, nbOutputs := 0, 0, 0
	for i := range canonic.Transitions {
		t := &canonic.Transitions[i]
		if t.IsInput() {
			nbInputs++
			e.printf("# %s: input (U%d)\n", t.Key(), nbInputs)
		}
	}
	for i := range canonic.Transitions {
		t := &canonic.Transitions[i]
		if t.IsState() {
			nbStates++
			e.printf("# %s: state (X%d)\n", t.Key(), nbStates)
		}
	}
	for i := range canonic.Transitions {
		t := &canonic.Transitions[i]
		if t.IsOutput() {
			nbOutputs++
			e.printf("# %s: output (Y%d)\n", t.Key(), nbOutputs)
		}
	}

	e.printf("\n## Timed event graph depicted as two adjacency matrices:\n")
	e.printf("# Nodes are transitions, arcs are places carrying tokens and durations\n")
	if e.err != nil {
		return e.err
	}
	N, T, err := maxplus.AdjacencyMatrices(&canonic)
	if err != nil {
		return fmt.Errorf("WriteJulia: %w", err)
	}
	for i := range canonic.Places {
		p := &canonic.Places[i]
		if len(p.ArcsIn) != 1 || len(p.ArcsOut) != 1 {
			continue
		}
		from, fromOK := canonic.FindTransition(canonic.Arcs[p.ArcsIn[0]].From.ID)
		to, toOK := canonic.FindTransition(canonic.Arcs[p.ArcsOut[0]].To.ID)
		if !fromOK || !toOK {
			continue
		}
		e.printf("# Arc %s: %s -> %s (Duration: %g, Tokens: %d)\n",
			p.Key(), from.Key(), to.Key(), canonic.Arcs[p.ArcsIn[0]].Duration, p.Tokens)
	}
	if e.err != nil {
		return e.err
	}
	if err := N.WriteJuliaTriplet(w, "N"); err != nil {
		return err
	}
	if err := T.WriteJuliaTriplet(w, "T"); err != nil {
		return err
	}

	e.printf("\n")
	if counter, err := maxplus.CounterEquation(net, false, false); err == nil {
		e.printf("%s", commentLines(counter))
	}
	if dater, err := maxplus.DaterEquation(net, false, false); err == nil {
		e.printf("%s", commentLines(dater))
	}
	if e.err != nil {
		return e.err
	}

	D, A, B, C, err := maxplus.SysLin(net)
	if err != nil {
		return fmt.Errorf("WriteJulia: %w", err)
	}
	e.printf("\n## Max-Plus implicit linear dynamic system of the dater equation:\n")
	e.printf("# X(n) = D X(n) (+) A X(n-1) (+) B U(n)\n")
	e.printf("# Y(n) = C X(n)\n")
	if e.err != nil {
		return e.err
	}
	if err := D.WriteJuliaTriplet(w, "D"); err != nil {
		return err
	}
	if err := A.WriteJuliaTriplet(w, "A"); err != nil {
		return err
	}
	if err := B.WriteJuliaTriplet(w, "B"); err != nil {
		return err
	}
	if err := C.WriteJuliaTriplet(w, "C"); err != nil {
		return err
	}
	_, err = io.WriteString(w, "S = MPSysLin(A, B, C, D)\n")
	return err
}

// commentLines prefixes every line of text with "# " for embedding inside
// a Julia script.
func commentLines(text string) string {
	var b []byte
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b = append(b, "# "...)
			b = append(b, text[start:i+1]...)
			start = i + 1
		}
	}
	if start < len(text) {
		b = append(b, "# "...)
		b = append(b, text[start:]...)
		b = append(b, '\n')
	}
	return string(b)
}
