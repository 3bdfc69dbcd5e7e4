package handle

import (
	"fmt"
	"io"

	"github.com/pflow-go/petrinet/howard"
	"github.com/pflow-go/petrinet/matrix"
	"github.com/pflow-go/petrinet/maxplus"
	"github.com/pflow-go/petrinet/petri"
	"github.com/pflow-go/petrinet/serialize"
)

// Copy allocates a new handle owning a clone of h's net and returns it, or
// -1 if h is invalid.
func (t *Table) Copy(h int) int {
	t.mu.Lock()
	if !t.validLocked(h) {
		t.logger.Error("copy: invalid handle", "handle", h)
		t.mu.Unlock()
		return -1
	}
	clone := t.slots[h].net.Clone()
	clone.SetLogger(t.logger)
	nh := len(t.slots)
	t.slots = append(t.slots, slot{net: clone})
	t.mu.Unlock()
	t.logger.Info("handle copied", "from", h, "to", nh)
	return nh
}

// Reset clears h's net back to empty, keeping its type and settings.
func (t *Table) Reset(h int) bool {
	return t.with(h, "reset", func(n *petri.Net) { n.Clear() })
}

// IsEmpty reports whether h's net has no places and no transitions.
func (t *Table) IsEmpty(h int) (empty bool, ok bool) {
	ok = t.with(h, "is_empty", func(n *petri.Net) {
		empty = len(n.Places) == 0 && len(n.Transitions) == 0
	})
	return
}

// CountPlaces returns h's place count, or -1 if h is invalid.
func (t *Table) CountPlaces(h int) int {
	count := -1
	t.with(h, "count_places", func(n *petri.Net) { count = len(n.Places) })
	return count
}

// CountTransitions returns h's transition count, or -1 if h is invalid.
func (t *Table) CountTransitions(h int) int {
	count := -1
	t.with(h, "count_transitions", func(n *petri.Net) { count = len(n.Transitions) })
	return count
}

// GetPlaces returns a plain snapshot of every place in h's net.
func (t *Table) GetPlaces(h int) ([]PlaceRecord, bool) {
	var out []PlaceRecord
	ok := t.with(h, "get_places", func(n *petri.Net) {
		out = make([]PlaceRecord, len(n.Places))
		for i := range n.Places {
			p := &n.Places[i]
			out[i] = PlaceRecord{ID: p.ID, X: p.X, Y: p.Y, Tokens: p.Tokens, Caption: p.Caption}
		}
	})
	return out, ok
}

// GetPlace returns place id's plain record.
func (t *Table) GetPlace(h, id int) (PlaceRecord, bool) {
	var rec PlaceRecord
	var found bool
	ok := t.with(h, "get_place", func(n *petri.Net) {
		if p, exists := n.FindPlace(id); exists {
			rec = PlaceRecord{ID: p.ID, X: p.X, Y: p.Y, Tokens: p.Tokens, Caption: p.Caption}
			found = true
		}
	})
	return rec, ok && found
}

// GetTransitions returns a plain snapshot of every transition in h's net.
func (t *Table) GetTransitions(h int) ([]TransitionRecord, bool) {
	var out []TransitionRecord
	ok := t.with(h, "get_transitions", func(n *petri.Net) {
		out = make([]TransitionRecord, len(n.Transitions))
		for i := range n.Transitions {
			tr := &n.Transitions[i]
			out[i] = TransitionRecord{ID: tr.ID, X: tr.X, Y: tr.Y, Angle: tr.Angle, Caption: tr.Caption}
		}
	})
	return out, ok
}

// GetTransition returns transition id's plain record.
func (t *Table) GetTransition(h, id int) (TransitionRecord, bool) {
	var rec TransitionRecord
	var found bool
	ok := t.with(h, "get_transition", func(n *petri.Net) {
		if tr, exists := n.FindTransition(id); exists {
			rec = TransitionRecord{ID: tr.ID, X: tr.X, Y: tr.Y, Angle: tr.Angle, Caption: tr.Caption}
			found = true
		}
	})
	return rec, ok && found
}

// SetMarks overwrites every place's token count from marks, indexed by
// place id. Fails if h is invalid or marks' length mismatches.
func (t *Table) SetMarks(h int, marks []uint64) bool {
	var setErr error
	ok := t.with(h, "set_marks", func(n *petri.Net) { setErr = n.SetTokens(marks) })
	return ok && setErr == nil
}

// GetMarks returns the token count of every place, indexed by place id.
func (t *Table) GetMarks(h int) ([]uint64, bool) {
	var marks []uint64
	ok := t.with(h, "get_marks", func(n *petri.Net) { marks = n.Tokens() })
	return marks, ok
}

// GetTokens returns place id's token count, or -1 if h is invalid or id is
// unknown.
func (t *Table) GetTokens(h, id int) int64 {
	result := int64(-1)
	t.with(h, "get_tokens", func(n *petri.Net) {
		if p, ok := n.FindPlace(id); ok {
			result = int64(p.Tokens)
		}
	})
	return result
}

// SetTokens overwrites place id's token count, clamped to the net's
// MaxTokens setting.
func (t *Table) SetTokens(h, id int, tokens uint64) bool {
	var found bool
	ok := t.with(h, "set_tokens", func(n *petri.Net) {
		if p, exists := n.FindPlace(id); exists {
			if tokens > n.Settings.MaxTokens {
				tokens = n.Settings.MaxTokens
			}
			p.Tokens = tokens
			found = true
		}
	})
	return ok && found
}

// AddPlace appends a place and returns its id, or -1 if h is invalid.
func (t *Table) AddPlace(h int, x, y float64, tokens uint64) int {
	id := -1
	t.with(h, "add_place", func(n *petri.Net) { id = n.AddPlace(x, y, tokens).ID })
	return id
}

// AddTransition appends a transition and returns its id, or -1 if h is
// invalid.
func (t *Table) AddTransition(h int, x, y float64) int {
	id := -1
	t.with(h, "add_transition", func(n *petri.Net) { id = n.AddTransition(x, y).ID })
	return id
}

// RemovePlace removes place id from h's net.
func (t *Table) RemovePlace(h, id int) bool {
	var removed bool
	ok := t.with(h, "remove_place", func(n *petri.Net) {
		removed = n.RemoveNode(petri.NodeRef{Kind: petri.PlaceNode, ID: id})
	})
	return ok && removed
}

// RemoveTransition removes transition id from h's net.
func (t *Table) RemoveTransition(h, id int) bool {
	var removed bool
	ok := t.with(h, "remove_transition", func(n *petri.Net) {
		removed = n.RemoveNode(petri.NodeRef{Kind: petri.TransitionNode, ID: id})
	})
	return ok && removed
}

// AddArc connects from to to (keys like "P0"/"T1") in strict bipartite
// mode and returns the new arc's index, or -1 on failure.
func (t *Table) AddArc(h int, from, to string, duration float64) int {
	index := -1
	t.with(h, "add_arc", func(n *petri.Net) {
		fromRef, ok1 := n.FindNode(from)
		toRef, ok2 := n.FindNode(to)
		if !ok1 || !ok2 {
			return
		}
		if _, _, ok := n.AddArc(fromRef, toRef, duration, true); ok {
			index = len(n.Arcs) - 1
		}
	})
	return index
}

// RemoveArc disconnects from -> to (keys like "P0"/"T1").
func (t *Table) RemoveArc(h int, from, to string) bool {
	var removed bool
	ok := t.with(h, "remove_arc", func(n *petri.Net) {
		fromRef, ok1 := n.FindNode(from)
		toRef, ok2 := n.FindNode(to)
		if !ok1 || !ok2 {
			return
		}
		removed = n.RemoveArcBetween(fromRef, toRef)
	})
	return ok && removed
}

// Save writes h's net to w in the flat save format.
func (t *Table) Save(h int, w io.Writer) bool {
	var saveErr error
	ok := t.with(h, "save", func(n *petri.Net) { saveErr = serialize.Save(n, w) })
	return ok && saveErr == nil
}

// Load replaces h's net wholesale with the document read from r.
func (t *Table) Load(h int, r io.Reader) bool {
	var loadErr error
	ok := t.with(h, "load", func(n *petri.Net) { loadErr = serialize.Load(n, r) })
	return ok && loadErr == nil
}

// IsEventGraph reports whether every place in h's net has exactly one
// input and one output arc.
func (t *Table) IsEventGraph(h int) (result bool, ok bool) {
	ok = t.with(h, "is_event_graph", func(n *petri.Net) { result = n.IsEventGraph(nil) })
	return
}

// ToCanonical allocates a new handle holding h's net in canonical form and
// returns it, or -1 if h is invalid or not an event graph.
func (t *Table) ToCanonical(h int) int {
	t.mu.Lock()
	if !t.validLocked(h) {
		t.logger.Error("to_canonical: invalid handle", "handle", h)
		t.mu.Unlock()
		return -1
	}
	src := t.slots[h].net
	if !src.IsEventGraph(nil) {
		t.logger.Error("to_canonical: not an event graph", "handle", h)
		t.mu.Unlock()
		return -1
	}
	dst := petri.New(src.Type)
	dst.SetLogger(t.logger)
	src.ToCanonicalForm(dst)
	nh := len(t.slots)
	t.slots = append(t.slots, slot{net: dst})
	t.mu.Unlock()
	t.logger.Info("canonical form built", "from", h, "to", nh)
	return nh
}

// ToAdjacencyMatrices returns h's token and duration adjacency matrices.
func (t *Table) ToAdjacencyMatrices(h int) (N, D *matrix.SparseMatrix, ok bool) {
	var err error
	valid := t.with(h, "to_adjacency_matrices", func(n *petri.Net) {
		N, D, err = maxplus.AdjacencyMatrices(n)
	})
	return N, D, valid && err == nil
}

// ToSysLin returns h's dater-form linear system (D, A, B, C).
func (t *Table) ToSysLin(h int) (D, A, B, C *matrix.SparseMatrix, ok bool) {
	var err error
	valid := t.with(h, "to_sys_lin", func(n *petri.Net) {
		D, A, B, C, err = maxplus.SysLin(n)
	})
	return D, A, B, C, valid && err == nil
}

// DaterForm renders h's dater equation as text.
func (t *Table) DaterForm(h int, useCaption, maxPlusNotation bool) (string, bool) {
	var text string
	var err error
	valid := t.with(h, "dater_form", func(n *petri.Net) {
		text, err = maxplus.DaterEquation(n, useCaption, maxPlusNotation)
	})
	return text, valid && err == nil
}

// CounterForm renders h's counter equation as text.
func (t *Table) CounterForm(h int, useCaption, minPlusNotation bool) (string, bool) {
	var text string
	var err error
	valid := t.with(h, "counter_form", func(n *petri.Net) {
		text, err = maxplus.CounterEquation(n, useCaption, minPlusNotation)
	})
	return text, valid && err == nil
}

// CriticalCycle runs Semi-Howard on h's net, which must be a closed timed
// event graph. Not part of spec §6's named list; exposed alongside the
// rest of the numerical API because it needs nothing the table doesn't
// already provide.
func (t *Table) CriticalCycle(h int) (*howard.CriticalCycleResult, bool) {
	var res *howard.CriticalCycleResult
	var err error
	valid := t.with(h, "critical_cycle", func(n *petri.Net) {
		res, err = howard.FindCriticalCycle(n)
	})
	return res, valid && err == nil
}

// Editor always fails: the interactive renderer it would block on is an
// external collaborator this engine never implements (spec §1).
func (t *Table) Editor(h int) error {
	t.mu.Lock()
	valid := t.validLocked(h)
	t.mu.Unlock()
	if !valid {
		return fmt.Errorf("Editor: %w", ErrInvalidHandle)
	}
	return fmt.Errorf("Editor: %w", ErrNotSupported)
}
