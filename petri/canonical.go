package petri

// ToCanonicalForm copies n into dst and rewrites it so every place holds at
// most one token and no place is adjacent to a source or sink transition.
// Places with k > 1 tokens are exploded into a chain of k single-token
// places linked by fresh transitions, inheriting the original arc's
// duration on the first hop only (spec's explicit contract; intermediate
// and later hops default to zero duration). Any resulting single-token
// place whose predecessor is a source transition, or whose successor is a
// sink transition, gets a token-less place and intermediate transition
// spliced in to push the token away from the boundary.
func (n *Net) ToCanonicalForm(dst *Net) {
	*dst = *n.Clone()

	// Explode multi-token places into single-token chains. Exploding a place
	// swaps the last place into its slot, so rescan until none is left.
	for exploded := true; exploded; {
		exploded = false
		for i := range dst.Places {
			if dst.Places[i].Tokens > 1 {
				explodePlace(dst, dst.Places[i].ID)
				exploded = true
				break
			}
		}
	}

	// Push single tokens away from source/sink-adjacent boundaries.
	for _, id := range placeIDsSnapshot(dst) {
		p, ok := dst.FindPlace(id)
		if !ok || p.Tokens != 1 {
			continue
		}
		if len(p.ArcsIn) != 1 || len(p.ArcsOut) != 1 {
			continue
		}
		inArc := dst.Arcs[p.ArcsIn[0]]
		outArc := dst.Arcs[p.ArcsOut[0]]
		pred, predOK := dst.FindTransition(inArc.From.ID)
		succ, succOK := dst.FindTransition(outArc.To.ID)
		if (predOK && pred.IsInput()) || (succOK && succ.IsOutput()) {
			pushAwayFromBoundary(dst, id)
		}
	}
}

func placeIDsSnapshot(n *Net) []int {
	ids := make([]int, len(n.Places))
	for i := range n.Places {
		ids[i] = n.Places[i].ID
	}
	return ids
}

// explodePlace replaces place id (which holds k>1 tokens) with a chain of k
// single-token places joined by fresh transitions. The arc feeding the
// original place is rewired onto the first new place, carrying the
// original duration; every later hop gets zero duration. The arc leaving
// the original place is rewired from the last new place in the chain.
func explodePlace(n *Net, id int) {
	p, ok := n.FindPlace(id)
	if !ok {
		return
	}
	k := int(p.Tokens)
	x, y := p.X, p.Y

	var inArc, outArc *Arc
	if len(p.ArcsIn) == 1 {
		a := n.Arcs[p.ArcsIn[0]]
		inArc = &a
	}
	if len(p.ArcsOut) == 1 {
		a := n.Arcs[p.ArcsOut[0]]
		outArc = &a
	}

	origDuration := 0.0
	if inArc != nil {
		origDuration = inArc.Duration
	}
	var predecessor NodeRef
	hasPredecessor := inArc != nil
	if hasPredecessor {
		predecessor = inArc.From
	}
	var successor NodeRef
	hasSuccessor := outArc != nil
	if hasSuccessor {
		successor = outArc.To
	}

	if inArc != nil {
		n.RemoveArcBetween(inArc.From, inArc.To)
	}
	if outArc != nil {
		n.RemoveArcBetween(outArc.From, outArc.To)
	}
	n.RemoveNode(NodeRef{Kind: PlaceNode, ID: id})

	cur := predecessor
	for i := 0; i < k; i++ {
		np := n.AddPlace(x, y, 1)
		duration := 0.0
		if i == 0 {
			duration = origDuration
		}
		if hasPredecessor || i > 0 {
			n.AddArc(cur, np.Ref(), duration, true)
		}
		if i < k-1 {
			nt := n.AddTransition(x, y)
			n.AddArc(np.Ref(), nt.Ref(), 0, true)
			cur = nt.Ref()
		} else if hasSuccessor {
			n.AddArc(np.Ref(), successor, 0, true)
		}
	}
	n.RebuildAdjacency()
}

// pushAwayFromBoundary splices a token-less place and an intermediate
// transition between id's boundary-adjacent side(s) and id itself.
func pushAwayFromBoundary(n *Net, id int) {
	p, ok := n.FindPlace(id)
	if !ok {
		return
	}
	x, y := p.X, p.Y
	inArc := n.Arcs[p.ArcsIn[0]]
	outArc := n.Arcs[p.ArcsOut[0]]

	pred, predOK := n.FindTransition(inArc.From.ID)
	succ, succOK := n.FindTransition(outArc.To.ID)

	if predOK && pred.IsInput() {
		// from(transition) -> buffer(place) -> bridge(transition) -> p.
		// The original duration lived on a transition-origin arc (from -> p);
		// only a transition-origin arc is ever read back out of a dater
		// system, so it is carried forward on from -> buffer, not on the
		// place-origin middle hop where it would be inert.
		n.RemoveArcBetween(inArc.From, inArc.To)
		buffer := n.AddPlace(x, y, 0)
		bridge := n.AddTransition(x, y)
		n.AddArc(inArc.From, buffer.Ref(), inArc.Duration, true)
		n.AddArc(buffer.Ref(), bridge.Ref(), 0, true)
		n.AddArc(bridge.Ref(), NodeRef{Kind: PlaceNode, ID: id}, 0, true)
	}
	if succOK && succ.IsOutput() {
		// p -> bridge(transition) -> buffer(place) -> to(transition). The
		// original p -> to arc was place-origin and carried no meaningful
		// timing, so every hop here is zero except where outArc.Duration
		// (already zero in practice) is preserved verbatim.
		n.RemoveArcBetween(outArc.From, outArc.To)
		bridge := n.AddTransition(x, y)
		buffer := n.AddPlace(x, y, 0)
		n.AddArc(NodeRef{Kind: PlaceNode, ID: id}, bridge.Ref(), 0, true)
		n.AddArc(bridge.Ref(), buffer.Ref(), outArc.Duration, true)
		n.AddArc(buffer.Ref(), outArc.To, 0, true)
	}
	n.RebuildAdjacency()
}
