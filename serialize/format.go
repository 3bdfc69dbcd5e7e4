// Package serialize implements the flat-text save/load format for a
// petri.Net: a hand-tokenized, JSON-shaped record of a type tag and three
// comma-joined record arrays (places, transitions, arcs).
package serialize

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pflow-go/petrinet/petri"
)

// Save writes net as a bracket-structured record: a "type" string, an
// optional "id" string (net.ID(), round-tripped by Load but not required
// by it), followed by three arrays of comma-joined fields, one record per
// place ("Pid,caption,x,y,tokens"), transition ("Tid,caption,x,y,angle")
// and arc ("fromKey,toKey,duration"). Fails on an empty net.
func Save(net *petri.Net, w io.Writer) error {
	start := time.Now()
	if len(net.Places) == 0 && len(net.Transitions) == 0 {
		return fmt.Errorf("Save: %w", ErrEmptyNet)
	}

	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"type\": %q,\n", net.Type.String())
	fmt.Fprintf(&b, "  \"id\": %q,\n", net.ID().String())

	b.WriteString("  \"places\": [\n")
	for i := range net.Places {
		p := &net.Places[i]
		fmt.Fprintf(&b, "    \"P%d,%s,%g,%g,%d\"", p.ID, p.Caption, p.X, p.Y, p.Tokens)
		writeSep(&b, i, len(net.Places))
	}
	b.WriteString("  ],\n")

	b.WriteString("  \"transitions\": [\n")
	for i := range net.Transitions {
		t := &net.Transitions[i]
		fmt.Fprintf(&b, "    \"T%d,%s,%g,%g,%d\"", t.ID, t.Caption, t.X, t.Y, t.Angle)
		writeSep(&b, i, len(net.Transitions))
	}
	b.WriteString("  ],\n")

	b.WriteString("  \"arcs\": [\n")
	for i := range net.Arcs {
		a := &net.Arcs[i]
		fmt.Fprintf(&b, "    \"%s,%s,%g\"", a.From.Key(), a.To.Key(), a.Duration)
		writeSep(&b, i, len(net.Arcs))
	}
	b.WriteString("  ]\n}\n")

	_, err := w.Write([]byte(b.String()))
	if err == nil {
		slog.Default().Debug("net saved", "id", net.ID(), "places", len(net.Places),
			"transitions", len(net.Transitions), "duration", time.Since(start))
	}
	return err
}

func writeSep(b *strings.Builder, i, n int) {
	if i < n-1 {
		b.WriteString(",\n")
	} else {
		b.WriteString("\n")
	}
}

type placeRecord struct {
	id      int
	caption string
	x, y    float64
	tokens  uint64
}

type transitionRecord struct {
	id      int
	caption string
	x, y    float64
	angle   int
}

type arcRecord struct {
	fromKey, toKey string
	duration       float64
}

// Load parses r into net, replacing its structure wholesale. Any malformed
// record aborts the load and leaves net cleared. net's logger is kept; its
// identity is replaced by the document's "id" field when one is present
// and kept otherwise.
func Load(net *petri.Net, r io.Reader) error {
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}
	tokens, err := tokenize(data)
	if err != nil {
		net.Clear()
		return fmt.Errorf("Load: %w", err)
	}

	p := &parser{tokens: tokens}
	netType, id, hasID, places, transitions, arcs, err := p.parseDocument()
	if err != nil {
		net.Clear()
		return fmt.Errorf("Load: %w", err)
	}

	net.Clear()
	net.ChangeTypeOfNet(netType)
	if hasID {
		net.SetID(id)
	}
	known := make(map[string]bool, len(places)+len(transitions))
	for _, pr := range places {
		net.AddPlaceWithID(pr.id, pr.caption, pr.x, pr.y, pr.tokens)
		known[fmt.Sprintf("P%d", pr.id)] = true
	}
	for _, tr := range transitions {
		net.AddTransitionWithID(tr.id, tr.caption, tr.x, tr.y, tr.angle)
		known[fmt.Sprintf("T%d", tr.id)] = true
	}
	for _, ar := range arcs {
		if ar.duration < 0 {
			net.Clear()
			return fmt.Errorf("Load: %w", ErrNegativeDuration)
		}
		from, ok1 := net.FindNode(ar.fromKey)
		to, ok2 := net.FindNode(ar.toKey)
		if !ok1 || !ok2 {
			net.Clear()
			return fmt.Errorf("Load: %w: %s -> %s", ErrUnknownNode, ar.fromKey, ar.toKey)
		}
		if _, _, ok := net.AddArc(from, to, ar.duration, true); !ok {
			net.Clear()
			return fmt.Errorf("Load: %w: %s -> %s", ErrMalformed, ar.fromKey, ar.toKey)
		}
	}
	net.RebuildAdjacency()
	slog.Default().Debug("net loaded", "id", net.ID(), "places", len(net.Places),
		"transitions", len(net.Transitions), "duration", time.Since(start))
	return nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("%w: unexpected token %q", ErrMalformed, t.text)
	}
	return t, nil
}

// key reads either a bare identifier or a quoted string as an object key.
func (p *parser) key() (string, error) {
	t := p.next()
	if t.kind != tokIdent && t.kind != tokString {
		return "", fmt.Errorf("%w: expected key, got %q", ErrMalformed, t.text)
	}
	return t.text, nil
}

// parseDocument reads the top-level object. "id" is accepted but optional:
// a save file written by a version of this package that predates it, or
// one authored by hand, still loads cleanly.
func (p *parser) parseDocument() (netType petri.NetType, id uuid.UUID, hasID bool, places []placeRecord, transitions []transitionRecord, arcs []arcRecord, err error) {
	var sawType, sawPlaces, sawTrans, sawArcs bool

	if _, err = p.expect(tokLBrace); err != nil {
		return
	}
	for p.peek().kind != tokRBrace {
		var key string
		key, err = p.key()
		if err != nil {
			return
		}
		if _, err = p.expect(tokColon); err != nil {
			return
		}
		switch key {
		case "type":
			var v token
			v, err = p.expect(tokString)
			if err != nil {
				return
			}
			netType, err = parseNetType(v.text)
			if err != nil {
				return
			}
			sawType = true
		case "id":
			var v token
			v, err = p.expect(tokString)
			if err != nil {
				return
			}
			id, err = uuid.Parse(v.text)
			if err != nil {
				err = fmt.Errorf("%w: bad id %q", ErrMalformed, v.text)
				return
			}
			hasID = true
		case "places":
			var records []string
			records, err = p.stringArray()
			if err != nil {
				return
			}
			for _, rec := range records {
				var pr placeRecord
				pr, err = parsePlaceRecord(rec)
				if err != nil {
					return
				}
				places = append(places, pr)
			}
			sawPlaces = true
		case "transitions":
			var records []string
			records, err = p.stringArray()
			if err != nil {
				return
			}
			for _, rec := range records {
				var tr transitionRecord
				tr, err = parseTransitionRecord(rec)
				if err != nil {
					return
				}
				transitions = append(transitions, tr)
			}
			sawTrans = true
		case "arcs":
			var records []string
			records, err = p.stringArray()
			if err != nil {
				return
			}
			for _, rec := range records {
				var ar arcRecord
				ar, err = parseArcRecord(rec)
				if err != nil {
					return
				}
				arcs = append(arcs, ar)
			}
			sawArcs = true
		default:
			err = fmt.Errorf("%w: unknown field %q", ErrMalformed, key)
			return
		}
		if p.peek().kind == tokComma {
			p.next()
		}
	}
	if _, err = p.expect(tokRBrace); err != nil {
		return
	}
	if !sawType || !sawPlaces || !sawTrans || !sawArcs {
		err = fmt.Errorf("%w: missing required field", ErrMalformed)
		return
	}
	return
}

// stringArray reads a "[" STRING ("," STRING)* "]" sequence.
func (p *parser) stringArray() ([]string, error) {
	if _, err := p.expect(tokLBracket); err != nil {
		return nil, err
	}
	var out []string
	for p.peek().kind != tokRBracket {
		v, err := p.expect(tokString)
		if err != nil {
			return nil, err
		}
		out = append(out, v.text)
		if p.peek().kind == tokComma {
			p.next()
		}
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	return out, nil
}

func parseNetType(s string) (petri.NetType, error) {
	for _, t := range []petri.NetType{petri.Petri, petri.TimedPetri, petri.TimedGraphEvent, petri.GRAFCET} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown net type %q", ErrMalformed, s)
}

func parsePlaceRecord(rec string) (placeRecord, error) {
	fields := strings.Split(rec, ",")
	if len(fields) != 5 {
		return placeRecord{}, fmt.Errorf("%w: place record %q wants 5 fields, got %d", ErrMalformed, rec, len(fields))
	}
	id, err := parseKeyID('P', fields[0])
	if err != nil {
		return placeRecord{}, err
	}
	x, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return placeRecord{}, fmt.Errorf("%w: place x %q", ErrMalformed, fields[2])
	}
	y, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return placeRecord{}, fmt.Errorf("%w: place y %q", ErrMalformed, fields[3])
	}
	tokens, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return placeRecord{}, fmt.Errorf("%w: place tokens %q", ErrMalformed, fields[4])
	}
	return placeRecord{id: id, caption: fields[1], x: x, y: y, tokens: tokens}, nil
}

func parseTransitionRecord(rec string) (transitionRecord, error) {
	fields := strings.Split(rec, ",")
	if len(fields) != 5 {
		return transitionRecord{}, fmt.Errorf("%w: transition record %q wants 5 fields, got %d", ErrMalformed, rec, len(fields))
	}
	id, err := parseKeyID('T', fields[0])
	if err != nil {
		return transitionRecord{}, err
	}
	x, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return transitionRecord{}, fmt.Errorf("%w: transition x %q", ErrMalformed, fields[2])
	}
	y, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return transitionRecord{}, fmt.Errorf("%w: transition y %q", ErrMalformed, fields[3])
	}
	angle, err := strconv.Atoi(fields[4])
	if err != nil {
		return transitionRecord{}, fmt.Errorf("%w: transition angle %q", ErrMalformed, fields[4])
	}
	return transitionRecord{id: id, caption: fields[1], x: x, y: y, angle: angle}, nil
}

func parseArcRecord(rec string) (arcRecord, error) {
	fields := strings.Split(rec, ",")
	if len(fields) != 3 {
		return arcRecord{}, fmt.Errorf("%w: arc record %q wants 3 fields, got %d", ErrMalformed, rec, len(fields))
	}
	duration, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return arcRecord{}, fmt.Errorf("%w: arc duration %q", ErrMalformed, fields[2])
	}
	return arcRecord{fromKey: fields[0], toKey: fields[1], duration: duration}, nil
}

func parseKeyID(want byte, key string) (int, error) {
	if len(key) < 2 || key[0] != want {
		return 0, fmt.Errorf("%w: expected key starting with %q, got %q", ErrMalformed, string(want), key)
	}
	id, err := strconv.Atoi(key[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: bad id in key %q", ErrMalformed, key)
	}
	return id, nil
}
