// Package petri implements the core Petri net data structures: places,
// transitions, arcs, and the structural and firing operations that act on
// them. A Petri net is a bipartite directed graph of places (state) and
// transitions (events) through which tokens flow.
package petri

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// NodeKind distinguishes the two node families of a bipartite Petri net.
type NodeKind int

const (
	PlaceNode NodeKind = iota
	TransitionNode
)

func (k NodeKind) String() string {
	if k == PlaceNode {
		return "P"
	}
	return "T"
}

// NetType selects the firing/receptivity discipline a Net operates under.
type NetType int

const (
	Petri NetType = iota
	TimedPetri
	TimedGraphEvent
	GRAFCET
)

func (t NetType) String() string {
	switch t {
	case Petri:
		return "Petri net"
	case TimedPetri:
		return "Timed Petri net"
	case TimedGraphEvent:
		return "Timed event graph"
	case GRAFCET:
		return "GRAFCET"
	default:
		return "unknown net type"
	}
}

// FiringPolicy controls how many tokens an enabled transition burns per step.
type FiringPolicy int

const (
	OneByOne FiringPolicy = iota
	MaxPossible
)

// Settings carries the firing parameters that used to be process globals in
// the source this engine is modeled on. They live on the Net instance so a
// handle table can hold nets of different flavors safely in one process.
type Settings struct {
	MaxTokens uint64
	Firing    FiringPolicy
}

func settingsFor(t NetType) Settings {
	if t == GRAFCET {
		return Settings{MaxTokens: 1, Firing: OneByOne}
	}
	return Settings{MaxTokens: math.MaxUint64, Firing: OneByOne}
}

// NodeRef identifies a node by kind and id, never by address. Ids are
// rewritten on removal (see RemoveNode); a NodeRef captured before a
// removal may point at a different node afterwards, same as the id itself.
type NodeRef struct {
	Kind NodeKind
	ID   int
}

// Key returns the derived string identifier, e.g. "P3" or "T0".
func (r NodeRef) Key() string {
	return fmt.Sprintf("%s%d", r.Kind, r.ID)
}

// Place holds a non-negative token count bounded by Net.Settings.MaxTokens.
type Place struct {
	ID      int
	Caption string
	X, Y    float64
	Tokens  uint64

	ArcsIn  []int // indices into Net.Arcs, secondary index, rebuilt on demand
	ArcsOut []int
}

func (p *Place) Ref() NodeRef { return NodeRef{Kind: PlaceNode, ID: p.ID} }
func (p *Place) Key() string  { return p.Ref().Key() }

// Transition fires when its input places each hold enough tokens. Role is
// derived from incidence, not stored: input if it has output arcs but no
// input arcs, output if it has input arcs but no output arcs, state if it
// has both. A transition with no arcs at all has none of the three roles.
type Transition struct {
	ID          int
	Caption     string
	X, Y        float64
	Angle       int
	Receptivity bool

	// Index is scratch space set during Max-Plus translation (maxplus
	// package); it has no meaning outside that computation.
	Index int

	ArcsIn  []int
	ArcsOut []int
}

func (t *Transition) Ref() NodeRef { return NodeRef{Kind: TransitionNode, ID: t.ID} }
func (t *Transition) Key() string  { return t.Ref().Key() }

func (t *Transition) IsInput() bool  { return len(t.ArcsIn) == 0 && len(t.ArcsOut) > 0 }
func (t *Transition) IsOutput() bool { return len(t.ArcsIn) > 0 && len(t.ArcsOut) == 0 }
func (t *Transition) IsState() bool  { return len(t.ArcsIn) > 0 && len(t.ArcsOut) > 0 }

// Arc is a directed edge between a Place and a Transition (in either
// direction). Duration is meaningful only on Transition->Place arcs in the
// timed flavors; it is otherwise carried but unused.
type Arc struct {
	From, To NodeRef
	Duration float64
}

// Net owns the places, transitions and arcs of one Petri net instance,
// plus the per-instance firing settings, diagnostic buffer, and identity
// used to correlate log lines across a handle table.
type Net struct {
	Type     NetType
	Name     string
	Settings Settings

	Places      []Place
	Transitions []Transition
	Arcs        []Arc

	Modified bool

	// Diagnostics is the out-of-band message buffer spec'd for the
	// engine boundary. AddArc and SetTokens append a message here when
	// they fail; SetTokens also returns a typed error, while AddArc
	// reports failure only as ok == false. Errors returned by other
	// packages (serialize, export, maxplus, howard) are not written
	// here. Clear empties the buffer.
	Diagnostics []string

	id     uuid.UUID
	logger *slog.Logger

	shuffled []int // scratch: transition indices, reused across Step calls
}

// New creates an empty Net of the given type with default settings for
// that type (GRAFCET starts at MaxTokens=1; the rest are unbounded).
func New(t NetType) *Net {
	n := &Net{
		Type:     t,
		Settings: settingsFor(t),
		id:       uuid.New(),
		logger:   slog.Default(),
	}
	n.logger.Info("petri net created", "id", n.id, "type", t)
	return n
}

// ID returns this net's identity, stamped once at construction.
func (n *Net) ID() uuid.UUID { return n.id }

// SetID overrides this net's identity, used by Load to restore a save
// file's optional id field. Nets built directly with New keep their
// freshly generated id unless this is called.
func (n *Net) SetID(id uuid.UUID) { n.id = id }

// SetLogger overrides the default logger (slog.Default()) used for
// lifecycle and step-tracing messages. Passing nil restores the default.
func (n *Net) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	n.logger = l
}

func (n *Net) diagnose(msg string) {
	n.Diagnostics = append(n.Diagnostics, msg)
}

// ChangeTypeOfNet switches the net's flavor, resets its firing settings to
// the defaults for the new type, and resets every transition's
// receptivity (false for Petri/GRAFCET, true otherwise). GRAFCET also
// clamps every place's tokens down to the new MaxTokens.
func (n *Net) ChangeTypeOfNet(t NetType) {
	n.Type = t
	n.Settings = settingsFor(t)
	n.resetReceptivities()
	if t == GRAFCET {
		for i := range n.Places {
			if n.Places[i].Tokens > n.Settings.MaxTokens {
				n.Places[i].Tokens = n.Settings.MaxTokens
			}
		}
	}
	n.Modified = true
	n.logger.Info("net type changed", "id", n.id, "type", t)
}

func (n *Net) resetReceptivities() {
	value := n.Type != Petri && n.Type != GRAFCET
	for i := range n.Transitions {
		n.Transitions[i].Receptivity = value
	}
}
