// Package howard implements Semi-Howard policy iteration for the maximum
// mean cycle (Max-Plus spectral radius) of a weighted, token-labeled
// directed graph — the algorithm the original editor calls Semi_Howard.
package howard

import "fmt"

// Result is the outcome of a converged policy-iteration run.
type Result struct {
	Bias      []float64
	CycleTime []float64
	Policy    []int
	Components int
	Iterations int
}

type arc struct {
	to             int
	weight, height float64
}

const tolerance = 1e-9

// SemiHoward finds, for the graph described by ij/durations/tokens, the
// policy that maximizes the mean cycle ratio (sum of weights / sum of
// heights) reachable from every node, following Cochet-Terrasson/Cohen/
// Gaubert/Gunawardena-style policy iteration for Max-Plus systems.
//
// ij is a flat array of 2*len(durations) node ids: arc k runs from ij[2k] to ij[2k+1],
// with weight durations[k] and height tokens[k]. Every node must own at
// least one outgoing arc.
func SemiHoward(ij []int, durations, tokens []float64, nnodes int) (*Result, error) {
	narcs := len(durations)
	if nnodes <= 0 || narcs == 0 || len(ij) != 2*narcs || len(tokens) != narcs {
		return nil, ErrNoInput
	}

	outArcs := make([][]arc, nnodes)
	for k := 0; k < narcs; k++ {
		from, to := ij[2*k], ij[2*k+1]
		outArcs[from] = append(outArcs[from], arc{to: to, weight: durations[k], height: tokens[k]})
	}
	for i := 0; i < nnodes; i++ {
		if len(outArcs[i]) == 0 {
			return nil, fmt.Errorf("%w: node %d", ErrDanglingNode, i)
		}
	}

	policy := make([]int, nnodes) // policy[i] = index into outArcs[i]
	for i := range policy {
		best, bestRatio := 0, ratio(outArcs[i][0])
		for k, a := range outArcs[i] {
			if r := ratio(a); r > bestRatio {
				best, bestRatio = k, r
			}
		}
		policy[i] = best
	}

	var (
		v          []float64
		chi        []float64
		components int
		iterations int
	)
	maxIterations := nnodes*narcs + 32
	for iterations = 0; iterations < maxIterations; iterations++ {
		var err error
		v, chi, components, err = evaluatePolicy(outArcs, policy, nnodes)
		if err != nil {
			return nil, err
		}

		improved := false
		for i := 0; i < nnodes; i++ {
			bestK, bestVal := policy[i], v[i]
			for k, a := range outArcs[i] {
				candidate := a.weight - chi[i]*a.height + v[a.to]
				if candidate > bestVal+tolerance {
					bestK, bestVal = k, candidate
				}
			}
			if bestK != policy[i] {
				policy[i] = bestK
				improved = true
			}
		}
		if !improved {
			break
		}
	}

	result := &Result{
		Bias:       v,
		CycleTime:  chi,
		Policy:     make([]int, nnodes),
		Components: components,
		Iterations: iterations,
	}
	for i := 0; i < nnodes; i++ {
		result.Policy[i] = outArcs[i][policy[i]].to
	}
	return result, nil
}

func ratio(a arc) float64 {
	if a.height <= 0 {
		if a.weight > 0 {
			return a.weight * 1e12
		}
		return a.weight
	}
	return a.weight / a.height
}

// evaluatePolicy decomposes the functional graph induced by policy into its
// cyclic components, computes each component's cycle-time (mean weight over
// mean height along its cycle), and propagates a bias value outward from
// each cycle to every node that eventually reaches it.
func evaluatePolicy(outArcs [][]arc, policy []int, nnodes int) (v, chi []float64, components int, err error) {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, nnodes)
	comp := make([]int, nnodes)
	cycleMember := make([]bool, nnodes)
	for i := range comp {
		comp[i] = -1
	}
	v = make([]float64, nnodes)
	chi = make([]float64, nnodes)

	next := func(i int) arc { return outArcs[i][policy[i]] }

	for start := 0; start < nnodes; start++ {
		if color[start] != white {
			continue
		}
		path := []int{}
		cur := start
		for color[cur] == white {
			color[cur] = gray
			path = append(path, cur)
			cur = next(cur).to
		}
		if color[cur] == gray {
			// Found a fresh cycle starting at cur within this path.
			cycleStart := indexOf(path, cur)
			cycle := path[cycleStart:]
			var sumW, sumH float64
			for _, n := range cycle {
				a := next(n)
				sumW += a.weight
				sumH += a.height
			}
			if sumH <= 0 {
				return nil, nil, 0, fmt.Errorf("howard: cycle through node %d carries zero total tokens", cur)
			}
			c := sumW / sumH
			for _, n := range cycle {
				comp[n] = components
				chi[n] = c
				cycleMember[n] = true
			}
			v[cycle[0]] = 0
			for k := 1; k < len(cycle); k++ {
				prev, n := cycle[k-1], cycle[k]
				a := next(prev)
				v[n] = v[prev] + a.weight - c*a.height
			}
			components++
			// Tail of path leading into the cycle (if any) is handled below
			// with the rest of the tree nodes.
		}
		for _, n := range path {
			if comp[n] == -1 {
				comp[n] = comp[cur]
			}
		}
		for _, n := range path {
			color[n] = black
		}
	}

	// Propagate bias outward from cycle nodes to tree nodes: v[i] depends on
	// v[next(i)], which is known once next(i) has been resolved.
	resolved := cycleMember
	progress := true
	for progress {
		progress = false
		for i := 0; i < nnodes; i++ {
			if resolved[i] {
				continue
			}
			j := next(i).to
			if resolved[j] {
				a := next(i)
				chi[i] = chi[j]
				v[i] = a.weight - chi[i]*a.height + v[j]
				resolved[i] = true
				progress = true
			}
		}
	}
	return v, chi, components, nil
}

func indexOf(path []int, node int) int {
	for i, n := range path {
		if n == node {
			return i
		}
	}
	return 0
}
