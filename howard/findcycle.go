package howard

import (
	"fmt"

	"github.com/pflow-go/petrinet/petri"
)

// CriticalCycleResult reports the maximum-throughput cycle of a closed
// timed event graph, alongside the arcs that realize it.
type CriticalCycleResult struct {
	CycleTime []float64
	Bias      []float64
	Policy    []int
	Arcs      []*petri.Arc
	Message   string
}

// FindCriticalCycle runs Semi-Howard policy iteration directly on net
// (no canonicalization: places already carry the duration/token pairs the
// algorithm needs). net must be a closed timed event graph — every place
// has exactly one input and one output arc, and every transition has both,
// so there is no boundary transition to bias the cycle-time computation.
func FindCriticalCycle(net *petri.Net) (*CriticalCycleResult, error) {
	var arcErrs []*petri.Arc
	if !net.IsEventGraph(&arcErrs) {
		return nil, fmt.Errorf("FindCriticalCycle: %w", petri.ErrNotEventGraph)
	}
	for i := range net.Transitions {
		t := &net.Transitions[i]
		if len(t.ArcsIn) == 0 || len(t.ArcsOut) == 0 {
			return nil, fmt.Errorf("FindCriticalCycle: %w", ErrOpenEventGraph)
		}
	}

	nnodes := len(net.Transitions)
	narcs := len(net.Places)
	ij := make([]int, 0, 2*narcs)
	durations := make([]float64, 0, narcs)
	tokens := make([]float64, 0, narcs)

	for i := range net.Places {
		p := &net.Places[i]
		inArc := &net.Arcs[p.ArcsIn[0]]
		outArc := &net.Arcs[p.ArcsOut[0]]
		from, ok := net.FindTransition(inArc.From.ID)
		if !ok {
			return nil, fmt.Errorf("FindCriticalCycle: %w", petri.ErrUnknownNode)
		}
		to, ok := net.FindTransition(outArc.To.ID)
		if !ok {
			return nil, fmt.Errorf("FindCriticalCycle: %w", petri.ErrUnknownNode)
		}
		// The Howard graph runs opposite the Petri arc direction: node to's
		// value depends on node from's value one step (token) back, so to is
		// the source of the corresponding Howard arc.
		ij = append(ij, to.ID, from.ID)
		durations = append(durations, inArc.Duration)
		tokens = append(tokens, float64(p.Tokens))
	}

	res, err := SemiHoward(ij, durations, tokens, nnodes)
	if err != nil {
		return nil, fmt.Errorf("FindCriticalCycle: %w", err)
	}

	result := &CriticalCycleResult{
		CycleTime: res.CycleTime,
		Bias:      res.Bias,
		Policy:    res.Policy,
	}
	for to := 0; to < nnodes; to++ {
		from := res.Policy[to]
		tFrom, ok := net.FindTransition(from)
		if !ok {
			continue
		}
		for _, ai := range tFrom.ArcsOut {
			outArc := &net.Arcs[ai]
			p, ok := net.FindPlace(outArc.To.ID)
			if !ok || len(p.ArcsOut) == 0 {
				continue
			}
			consumerArc := &net.Arcs[p.ArcsOut[0]]
			if consumerArc.To.ID == to {
				result.Arcs = append(result.Arcs, outArc, consumerArc)
				break
			}
		}
	}
	result.Message = fmt.Sprintf("critical cycle time %.6g", res.CycleTime[0])
	return result, nil
}
