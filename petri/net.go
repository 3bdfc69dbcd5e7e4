package petri

import "fmt"

// AddPlace appends a new Place with an automatically assigned id (one past
// the highest existing place id, which is the next contiguous slot while
// ids are dense) and returns it.
func (n *Net) AddPlace(x, y float64, tokens uint64) *Place {
	if tokens > n.Settings.MaxTokens {
		tokens = n.Settings.MaxTokens
	}
	id := len(n.Places)
	for i := range n.Places {
		if n.Places[i].ID >= id {
			id = n.Places[i].ID + 1
		}
	}
	n.Places = append(n.Places, Place{ID: id, Caption: fmt.Sprintf("P%d", id), X: x, Y: y, Tokens: tokens})
	n.Modified = true
	return &n.Places[len(n.Places)-1]
}

// AddPlaceWithID appends a Place with an explicit id and caption, used when
// loading a net whose records already carry ids. The next auto-assigned id
// is bumped past id if needed, even if this leaves a gap.
func (n *Net) AddPlaceWithID(id int, caption string, x, y float64, tokens uint64) *Place {
	if tokens > n.Settings.MaxTokens {
		tokens = n.Settings.MaxTokens
	}
	if caption == "" {
		caption = fmt.Sprintf("P%d", id)
	}
	n.Places = append(n.Places, Place{ID: id, Caption: caption, X: x, Y: y, Tokens: tokens})
	n.Modified = true
	return &n.Places[len(n.Places)-1]
}

// AddTransition appends a new Transition with an automatically assigned id.
// Receptivity is born true only for TimedPetri nets, false otherwise.
func (n *Net) AddTransition(x, y float64) *Transition {
	id := len(n.Transitions)
	n.Transitions = append(n.Transitions, Transition{
		ID: id, Caption: fmt.Sprintf("T%d", id), X: x, Y: y,
		Receptivity: n.Type == TimedPetri,
	})
	n.Modified = true
	return &n.Transitions[id]
}

// AddTransitionWithID appends a Transition with an explicit id, caption and
// angle, used when loading a net from a save file.
func (n *Net) AddTransitionWithID(id int, caption string, x, y float64, angle int) *Transition {
	if caption == "" {
		caption = fmt.Sprintf("T%d", id)
	}
	n.Transitions = append(n.Transitions, Transition{
		ID: id, Caption: caption, X: x, Y: y, Angle: angle,
		Receptivity: n.Type == TimedPetri,
	})
	n.Modified = true
	return &n.Transitions[len(n.Transitions)-1]
}

// FindPlace returns the place with the given id, if any.
func (n *Net) FindPlace(id int) (*Place, bool) {
	for i := range n.Places {
		if n.Places[i].ID == id {
			return &n.Places[i], true
		}
	}
	return nil, false
}

// FindTransition returns the transition with the given id, if any.
func (n *Net) FindTransition(id int) (*Transition, bool) {
	for i := range n.Transitions {
		if n.Transitions[i].ID == id {
			return &n.Transitions[i], true
		}
	}
	return nil, false
}

// FindNode dispatches to FindPlace or FindTransition by the key's leading
// letter ('P' or 'T').
func (n *Net) FindNode(key string) (NodeRef, bool) {
	if len(key) < 2 {
		return NodeRef{}, false
	}
	var id int
	if _, err := fmt.Sscanf(key[1:], "%d", &id); err != nil {
		return NodeRef{}, false
	}
	switch key[0] {
	case 'P':
		if _, ok := n.FindPlace(id); ok {
			return NodeRef{Kind: PlaceNode, ID: id}, true
		}
	case 'T':
		if _, ok := n.FindTransition(id); ok {
			return NodeRef{Kind: TransitionNode, ID: id}, true
		}
	}
	return NodeRef{}, false
}

func (n *Net) nodeExists(r NodeRef) bool {
	if r.Kind == PlaceNode {
		_, ok := n.FindPlace(r.ID)
		return ok
	}
	_, ok := n.FindTransition(r.ID)
	return ok
}

// FindArc returns the arc with the given endpoints, if any.
func (n *Net) FindArc(from, to NodeRef) (*Arc, bool) {
	for i := range n.Arcs {
		if n.Arcs[i].From == from && n.Arcs[i].To == to {
			return &n.Arcs[i], true
		}
	}
	return nil, false
}

// AddArc connects from to to. If a duplicate arc already exists, or either
// endpoint is missing, it fails. If both endpoints share a kind: in strict
// mode it fails; in tolerant mode it inserts a bridging node of the
// opposite kind at the arc's midpoint and creates the two arcs needed to
// preserve bipartiteness, both carrying the requested duration. bridged
// reports the inserted node's key, empty when no bridging occurred.
func (n *Net) AddArc(from, to NodeRef, duration float64, strict bool) (arc *Arc, bridged string, ok bool) {
	if _, exists := n.FindArc(from, to); exists {
		n.diagnose(fmt.Sprintf("addArc: duplicate arc %s -> %s", from.Key(), to.Key()))
		return nil, "", false
	}
	if !n.nodeExists(from) || !n.nodeExists(to) {
		n.diagnose(fmt.Sprintf("addArc: unknown endpoint %s or %s", from.Key(), to.Key()))
		return nil, "", false
	}
	if from.Kind != to.Kind {
		n.Arcs = append(n.Arcs, Arc{From: from, To: to, Duration: duration})
		a := &n.Arcs[len(n.Arcs)-1]
		n.linkArc(len(n.Arcs)-1)
		n.Modified = true
		return a, "", true
	}
	if strict {
		n.diagnose(fmt.Sprintf("addArc: %s and %s share a type", from.Key(), to.Key()))
		return nil, "", false
	}

	// Tolerant mode: insert a bridging node of the opposite kind at the
	// midpoint, wired from -> bridge -> to, both hops carrying duration.
	var midX, midY float64
	if from.Kind == PlaceNode {
		p1, _ := n.FindPlace(from.ID)
		p2, _ := n.FindPlace(to.ID)
		midX, midY = (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	} else {
		t1, _ := n.FindTransition(from.ID)
		t2, _ := n.FindTransition(to.ID)
		midX, midY = (t1.X+t2.X)/2, (t1.Y+t2.Y)/2
	}

	var bridge NodeRef
	if from.Kind == PlaceNode {
		t := n.AddTransition(midX, midY)
		bridge = t.Ref()
	} else {
		p := n.AddPlace(midX, midY, 0)
		bridge = p.Ref()
	}

	n.Arcs = append(n.Arcs, Arc{From: from, To: bridge, Duration: duration})
	n.linkArc(len(n.Arcs) - 1)
	n.Arcs = append(n.Arcs, Arc{From: bridge, To: to, Duration: duration})
	n.linkArc(len(n.Arcs) - 1)
	n.Modified = true
	return &n.Arcs[len(n.Arcs)-1], bridge.Key(), true
}

// linkArc appends arc index i to its endpoints' secondary indices without a
// full rebuild, matching the "both sides updated on success" contract of
// AddArc.
func (n *Net) linkArc(i int) {
	a := n.Arcs[i]
	if from, ok := n.findMutable(a.From); ok {
		*from = append(*from, i)
	}
	if to, ok := n.findMutableIn(a.To); ok {
		*to = append(*to, i)
	}
}

func (n *Net) findMutable(r NodeRef) (*[]int, bool) {
	if r.Kind == PlaceNode {
		if p, ok := n.FindPlace(r.ID); ok {
			return &p.ArcsOut, true
		}
		return nil, false
	}
	if t, ok := n.FindTransition(r.ID); ok {
		return &t.ArcsOut, true
	}
	return nil, false
}

func (n *Net) findMutableIn(r NodeRef) (*[]int, bool) {
	if r.Kind == PlaceNode {
		if p, ok := n.FindPlace(r.ID); ok {
			return &p.ArcsIn, true
		}
		return nil, false
	}
	if t, ok := n.FindTransition(r.ID); ok {
		return &t.ArcsIn, true
	}
	return nil, false
}

// RemoveArc swap-removes the given arc from the arc list. Adjacency
// indices are not incrementally updated; callers invoke RebuildAdjacency
// when they next need consistent arcsIn/arcsOut.
func (n *Net) RemoveArc(a *Arc) bool {
	return n.RemoveArcBetween(a.From, a.To)
}

// RemoveArcBetween swap-removes the arc from -> to, if it exists.
func (n *Net) RemoveArcBetween(from, to NodeRef) bool {
	for i := len(n.Arcs) - 1; i >= 0; i-- {
		if n.Arcs[i].From == from && n.Arcs[i].To == to {
			last := len(n.Arcs) - 1
			n.Arcs[i] = n.Arcs[last]
			n.Arcs = n.Arcs[:last]
			n.Modified = true
			return true
		}
	}
	return false
}

// removeArcsIncidentTo swap-removes every arc touching ref, in place.
func (n *Net) removeArcsIncidentTo(ref NodeRef) {
	for i := len(n.Arcs) - 1; i >= 0; i-- {
		if n.Arcs[i].From == ref || n.Arcs[i].To == ref {
			last := len(n.Arcs) - 1
			n.Arcs[i] = n.Arcs[last]
			n.Arcs = n.Arcs[:last]
		}
	}
}

// rewriteArcEndpoints replaces every arc endpoint equal to old with neu,
// used after a swap-remove moves the last node into a vacated slot.
func (n *Net) rewriteArcEndpoints(old, neu NodeRef) {
	for i := range n.Arcs {
		if n.Arcs[i].From == old {
			n.Arcs[i].From = neu
		}
		if n.Arcs[i].To == old {
			n.Arcs[i].To = neu
		}
	}
}

// RemoveNode swap-removes every arc incident to ref, then swaps the last
// node of the same kind into ref's vacated slot (rewriting arcs that
// pointed at the moved node), decrements the next-id counter, and rebuilds
// adjacency. Returns false if ref does not exist.
func (n *Net) RemoveNode(ref NodeRef) bool {
	if !n.nodeExists(ref) {
		return false
	}
	n.removeArcsIncidentTo(ref)

	if ref.Kind == PlaceNode {
		n.removePlaceSlot(ref.ID)
	} else {
		n.removeTransitionSlot(ref.ID)
	}
	n.RebuildAdjacency()
	n.Modified = true
	return true
}

func (n *Net) removePlaceSlot(id int) {
	idx := -1
	for i := range n.Places {
		if n.Places[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	last := len(n.Places) - 1
	if idx != last {
		moved := n.Places[last]
		oldRef := moved.Ref()
		caption := moved.Caption
		if caption == fmt.Sprintf("P%d", moved.ID) {
			caption = fmt.Sprintf("P%d", id)
		}
		n.Places[idx] = Place{ID: id, Caption: caption, X: moved.X, Y: moved.Y, Tokens: moved.Tokens}
		n.rewriteArcEndpoints(oldRef, n.Places[idx].Ref())
	}
	n.Places = n.Places[:last]
}

func (n *Net) removeTransitionSlot(id int) {
	idx := -1
	for i := range n.Transitions {
		if n.Transitions[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	last := len(n.Transitions) - 1
	if idx != last {
		moved := n.Transitions[last]
		oldRef := moved.Ref()
		caption := moved.Caption
		if caption == fmt.Sprintf("T%d", moved.ID) {
			caption = fmt.Sprintf("T%d", id)
		}
		n.Transitions[idx] = Transition{
			ID: id, Caption: caption, X: moved.X, Y: moved.Y, Angle: moved.Angle,
			Receptivity: moved.Receptivity,
		}
		n.rewriteArcEndpoints(oldRef, n.Transitions[idx].Ref())
	}
	n.Transitions = n.Transitions[:last]
}

// RebuildAdjacency clears every node's arcsIn/arcsOut and rescans the arc
// list to repopulate them. O(|arcs| * |nodes|) is acceptable per spec.
func (n *Net) RebuildAdjacency() {
	for i := range n.Places {
		n.Places[i].ArcsIn = nil
		n.Places[i].ArcsOut = nil
	}
	for i := range n.Transitions {
		n.Transitions[i].ArcsIn = nil
		n.Transitions[i].ArcsOut = nil
	}
	for i := range n.Arcs {
		n.linkArc(i)
	}
}

// IsEventGraph reports whether every place has exactly one input and one
// output arc. When it returns false and errOut is non-nil, *errOut is set
// to the offending arcs (those touching a place of the wrong degree).
func (n *Net) IsEventGraph(errOut *[]*Arc) bool {
	ok := true
	var bad []*Arc
	for i := range n.Places {
		p := &n.Places[i]
		if len(p.ArcsIn) != 1 || len(p.ArcsOut) != 1 {
			ok = false
			for _, ai := range p.ArcsIn {
				bad = append(bad, &n.Arcs[ai])
			}
			for _, ai := range p.ArcsOut {
				bad = append(bad, &n.Arcs[ai])
			}
		}
	}
	if errOut != nil {
		*errOut = bad
	}
	return ok
}

// Clear removes every place, transition and arc, resets both id counters
// (implicit in the now-empty slices) and the modified flag.
func (n *Net) Clear() {
	n.Places = nil
	n.Transitions = nil
	n.Arcs = nil
	n.Diagnostics = nil
	n.Modified = false
}

// Tokens returns the token count of every place, indexed by place id.
func (n *Net) Tokens() []uint64 {
	out := make([]uint64, len(n.Places))
	for i := range n.Places {
		out[i] = n.Places[i].Tokens
	}
	return out
}

// SetTokens overwrites every place's token count from marks, indexed by
// place id, clamping each to Settings.MaxTokens. Fails if the lengths
// differ.
func (n *Net) SetTokens(marks []uint64) error {
	if len(marks) != len(n.Places) {
		n.diagnose(ErrMarksMismatch.Error())
		return fmt.Errorf("SetTokens: %w", ErrMarksMismatch)
	}
	for i, v := range marks {
		if v > n.Settings.MaxTokens {
			v = n.Settings.MaxTokens
		}
		n.Places[i].Tokens = v
	}
	return nil
}

// ArcTokensIn returns a pointer to the token count of a's source place,
// valid only when a.From is a Place.
func (n *Net) ArcTokensIn(a *Arc) (*uint64, bool) {
	if a.From.Kind != PlaceNode {
		return nil, false
	}
	p, ok := n.FindPlace(a.From.ID)
	if !ok {
		return nil, false
	}
	return &p.Tokens, true
}

// ArcTokensOut returns a pointer to the token count of a's destination
// place, valid only when a.To is a Place.
func (n *Net) ArcTokensOut(a *Arc) (*uint64, bool) {
	if a.To.Kind != PlaceNode {
		return nil, false
	}
	p, ok := n.FindPlace(a.To.ID)
	if !ok {
		return nil, false
	}
	return &p.Tokens, true
}
