// Package handle implements the handle-table façade over petri.Net: an
// ordered, monotonically-growing sequence of owned nets addressed by
// non-negative integer handle. It is the Go shape of the numerical FFI
// surface the original engine exposes to its Julia/PetriEditor bindings,
// intended to be held as one process-wide instance (cmd/pflow holds
// exactly one) even though nothing here prevents constructing several.
package handle

import (
	"log/slog"
	"sync"

	"github.com/pflow-go/petrinet/petri"
)

type slot struct {
	net       *petri.Net
	destroyed bool
}

// Table is a mutex-guarded slice of owned nets. The mutex is defense in
// depth: callers are still expected to serialize access to a single net
// logically, matching the single-threaded engine's resource model.
type Table struct {
	mu     sync.Mutex
	slots  []slot
	logger *slog.Logger
}

// NewTable returns an empty table, logging through slog.Default() unless
// overridden with SetLogger.
func NewTable() *Table {
	return &Table{logger: slog.Default()}
}

// SetLogger overrides the default logger used for handle lifecycle and
// invalid-access messages. Passing nil restores the default.
func (t *Table) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger = l
}

// Create allocates a new empty net of type typ and returns its handle.
func (t *Table) Create(typ petri.NetType) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := petri.New(typ)
	n.SetLogger(t.logger)
	h := len(t.slots)
	t.slots = append(t.slots, slot{net: n})
	t.logger.Info("handle created", "handle", h, "type", typ)
	return h
}

// Destroy tombstones h: the net is released and the slot is never reused,
// so h subsequently behaves as invalid. Returns false for an
// already-invalid handle.
func (t *Table) Destroy(h int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.validLocked(h) {
		t.logger.Error("destroy: invalid handle", "handle", h)
		return false
	}
	t.slots[h].net = nil
	t.slots[h].destroyed = true
	t.logger.Info("handle destroyed", "handle", h)
	return true
}

// Get returns the net owned by h, or (nil, false) if h is invalid.
func (t *Table) Get(h int) (*petri.Net, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.validLocked(h) {
		return nil, false
	}
	return t.slots[h].net, true
}

// Size returns the table's current length, including destroyed slots.
func (t *Table) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

func (t *Table) validLocked(h int) bool {
	return h >= 0 && h < len(t.slots) && !t.slots[h].destroyed
}

// with runs fn against h's net under the table's lock, logging and
// reporting invalidity uniformly for every numerical API entry point.
func (t *Table) with(h int, op string, fn func(n *petri.Net)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.validLocked(h) {
		t.logger.Error(op+": invalid handle", "handle", h)
		return false
	}
	fn(t.slots[h].net)
	return true
}
