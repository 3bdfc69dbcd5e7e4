package petri

import (
	"math/rand/v2"
)

// shuffleRand is the process-wide generator used for transition shuffling.
// It is lazily seeded on first use and never reseeded, matching the
// concurrency model's "one true-random seed, reused forever" contract.
var shuffleRand *rand.Rand

func rng() *rand.Rand {
	if shuffleRand == nil {
		shuffleRand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return shuffleRand
}

// Enabled reports whether t can be considered for firing this step: either
// it is a source (no input arcs) or every one of its input places holds at
// least one token.
func (n *Net) Enabled(t *Transition) bool {
	if len(t.ArcsIn) == 0 {
		return true
	}
	for _, ai := range t.ArcsIn {
		tok, ok := n.ArcTokensIn(&n.Arcs[ai])
		if !ok || *tok == 0 {
			return false
		}
	}
	return true
}

// BurnableTokens returns how many tokens t would burn if fired right now,
// before the firing policy's OneByOne/MaxPossible cap is applied: zero if
// receptivity is false, one for a receptive source, otherwise the minimum
// token count across its input places.
func (n *Net) BurnableTokens(t *Transition) uint64 {
	if !t.Receptivity {
		return 0
	}
	if len(t.ArcsIn) == 0 {
		return 1
	}
	var min uint64
	first := true
	for _, ai := range t.ArcsIn {
		tok, ok := n.ArcTokensIn(&n.Arcs[ai])
		if !ok {
			return 0
		}
		if first || *tok < min {
			min = *tok
			first = false
		}
	}
	return min
}

func (n *Net) shuffleTransitions(reset bool) []int {
	if reset || n.shuffled == nil {
		n.shuffled = make([]int, len(n.Transitions))
		for i := range n.shuffled {
			n.shuffled[i] = i
		}
	}
	rng().Shuffle(len(n.shuffled), func(i, j int) {
		n.shuffled[i], n.shuffled[j] = n.shuffled[j], n.shuffled[i]
	})
	return n.shuffled
}

// Step performs one complete pass over all transitions in shuffled order,
// firing every enabled and receptive one, and returns how many fired.
// GRAFCET nets keep every receptivity true by default (no external boolean
// evaluator is wired into this engine) and saturate every place at 1 token
// afterwards.
func (n *Net) Step() int {
	if n.Type == GRAFCET {
		for i := range n.Transitions {
			n.Transitions[i].Receptivity = true
		}
	}

	fired := 0
	order := n.shuffleTransitions(true)
	for _, ti := range order {
		t := &n.Transitions[ti]
		if !n.Enabled(t) {
			continue
		}
		k := n.BurnableTokens(t)
		if k == 0 {
			continue
		}
		if n.Settings.Firing == OneByOne {
			k = 1
		}

		for _, ai := range t.ArcsIn {
			tok, _ := n.ArcTokensIn(&n.Arcs[ai])
			*tok -= k
		}
		if t.IsInput() {
			t.Receptivity = false
		}
		for _, ao := range t.ArcsOut {
			tok, _ := n.ArcTokensOut(&n.Arcs[ao])
			*tok += k
			if *tok > n.Settings.MaxTokens {
				*tok = n.Settings.MaxTokens
			}
		}
		fired++
		n.logger.Debug("transition fired", "id", n.id, "transition", t.Key(), "burned", k)
	}

	if n.Type == GRAFCET {
		for i := range n.Places {
			if n.Places[i].Tokens > 1 {
				n.Places[i].Tokens = 1
			}
		}
	}
	return fired
}
