package export

import "errors"

// ErrNotEventGraph is returned by WriteJulia when the net has a place with
// more than one input or output arc.
var ErrNotEventGraph = errors.New("export: net is not an event graph")
