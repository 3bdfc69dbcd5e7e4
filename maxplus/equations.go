package maxplus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pflow-go/petrinet/petri"
)

// name picks a transition or place's caption or key depending on
// useCaption.
func name(caption, key string, useCaption bool) string {
	if useCaption {
		return caption
	}
	return key
}

// CounterEquation renders the per-transition min-plus counter recurrence
// as text, walking the original net's arcsIn/arcsOut chains (not the
// canonical form). Recovered from original_source's showCounterEquation;
// spec.md's distillation dropped it, but it is a natural, low-cost
// companion to SysLin.
func CounterEquation(net *petri.Net, useCaption, minPlusNotation bool) (string, error) {
	if !net.IsEventGraph(nil) {
		return "", fmt.Errorf("CounterEquation: %w", ErrNotEventGraph)
	}
	var b strings.Builder
	header := "Timed event graph represented as counter equation"
	if minPlusNotation {
		header += " (min-plus algebra):"
	} else {
		header += ":"
	}
	b.WriteString(header)
	b.WriteByte('\n')

	for i := range net.Transitions {
		t := &net.Transitions[i]
		if len(t.ArcsIn) == 0 {
			continue
		}
		b.WriteString(name(t.Caption, t.Key(), useCaption))
		b.WriteString("(t) = ")
		if !minPlusNotation {
			b.WriteString("min(")
		}
		sep1 := ""
		for _, ai := range t.ArcsIn {
			inArc := &net.Arcs[ai]
			b.WriteString(sep1)
			p, ok := net.FindPlace(inArc.From.ID)
			if !ok {
				continue
			}
			if p.Tokens != 0 {
				b.WriteString(strconv.FormatUint(p.Tokens, 10))
				if minPlusNotation {
					b.WriteString(" ")
				} else {
					b.WriteString(" + ")
				}
			}
			sep2 := ""
			for _, aoIdx := range p.ArcsIn {
				predArc := &net.Arcs[aoIdx]
				pred, ok := net.FindTransition(predArc.From.ID)
				if !ok {
					continue
				}
				b.WriteString(sep2)
				b.WriteString(name(pred.Caption, pred.Key(), useCaption))
				if predArc.Duration != 0 {
					b.WriteString(fmt.Sprintf("(t - %g)", predArc.Duration))
				} else {
					b.WriteString("(t)")
				}
				if minPlusNotation {
					sep2 = " ⨁ "
				} else {
					sep2 = ", "
				}
			}
			if minPlusNotation {
				sep1 = " ⨁ "
			} else {
				sep1 = ", "
			}
		}
		if !minPlusNotation {
			b.WriteString(")")
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// DaterEquation renders the per-transition max-plus dater recurrence as
// text. Recovered from original_source's showDaterEquation.
func DaterEquation(net *petri.Net, useCaption, maxPlusNotation bool) (string, error) {
	if !net.IsEventGraph(nil) {
		return "", fmt.Errorf("DaterEquation: %w", ErrNotEventGraph)
	}
	var b strings.Builder
	header := "Timed event graph represented as dater equation"
	if maxPlusNotation {
		header += " (max-plus algebra):"
	} else {
		header += ":"
	}
	b.WriteString(header)
	b.WriteByte('\n')

	for i := range net.Transitions {
		t := &net.Transitions[i]
		if len(t.ArcsIn) == 0 {
			continue
		}
		b.WriteString(name(t.Caption, t.Key(), useCaption))
		b.WriteString("(n) = ")
		if !maxPlusNotation {
			b.WriteString("max(")
		}
		sep1 := ""
		for _, ai := range t.ArcsIn {
			inArc := &net.Arcs[ai]
			b.WriteString(sep1)
			p, ok := net.FindPlace(inArc.From.ID)
			if !ok {
				continue
			}
			sep2 := ""
			for _, aoIdx := range p.ArcsIn {
				predArc := &net.Arcs[aoIdx]
				pred, ok := net.FindTransition(predArc.From.ID)
				if !ok {
					continue
				}
				b.WriteString(sep2)
				if predArc.Duration != 0 {
					b.WriteString(fmt.Sprintf("%g + ", predArc.Duration))
				}
				b.WriteString(name(pred.Caption, pred.Key(), useCaption))
				b.WriteString("(n")
				if p.Tokens != 0 {
					b.WriteString(fmt.Sprintf(" - %d", p.Tokens))
				}
				b.WriteString(")")
				if maxPlusNotation {
					sep2 = " ⨁ "
				} else {
					sep2 = ", "
				}
			}
			if maxPlusNotation {
				sep1 = " ⨁ "
			} else {
				sep1 = ", "
			}
		}
		if !maxPlusNotation {
			b.WriteString(")")
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
