package maxplus

import "errors"

// ErrNotEventGraph is returned by every translation in this package when
// the supplied net fails the event-graph predicate (petri.IsEventGraph).
var ErrNotEventGraph = errors.New("maxplus: net is not an event graph")
