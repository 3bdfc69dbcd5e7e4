package howard

import "errors"

var (
	// ErrDanglingNode is returned when a node has no outgoing arc; Semi-Howard
	// requires every row of the weighted graph to have at least one finite
	// entry.
	ErrDanglingNode = errors.New("howard: node has no outgoing arc")
	// ErrNoInput is returned when nnodes or the arc arrays are empty.
	ErrNoInput = errors.New("howard: empty graph")
	// ErrOpenEventGraph is returned by FindCriticalCycle when net has a
	// source or sink transition; critical-cycle analysis only applies to a
	// closed (purely cyclic) timed event graph.
	ErrOpenEventGraph = errors.New("howard: net has a source or sink transition")
)
