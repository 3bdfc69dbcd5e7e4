package export

import (
	"fmt"
	"io"

	"github.com/pflow-go/petrinet/petri"
)

// WriteGraphviz writes net as a DOT digraph: circular blue places (labeled
// with their token count when non-zero), boxed red transitions (green when
// currently fireable), and arcs labeled with duration on the
// transition-origin side. Grounded on original_source's exportToGraphviz.
func WriteGraphviz(net *petri.Net, w io.Writer) error {
	if _, err := io.WriteString(w, "digraph G {\n"); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "node [shape=circle, color=blue]\n"); err != nil {
		return err
	}
	for i := range net.Places {
		p := &net.Places[i]
		if p.Tokens > 0 {
			if _, err := fmt.Fprintf(w, "  %s [label=\"%s\\n%d\\u2022\"];\n", p.Key(), p.Caption, p.Tokens); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "  %s [label=\"%s\"];\n", p.Key(), p.Caption); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "node [shape=box, color=red]\n"); err != nil {
		return err
	}
	for i := range net.Transitions {
		t := &net.Transitions[i]
		if net.Enabled(t) && t.Receptivity {
			if _, err := fmt.Fprintf(w, "  %s [label=\"%s\", color=green];\n", t.Key(), t.Caption); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "  %s [label=\"%s\"];\n", t.Key(), t.Caption); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "edge [style=\"\"]\n"); err != nil {
		return err
	}
	for i := range net.Arcs {
		a := &net.Arcs[i]
		if a.From.Kind == petri.TransitionNode {
			if _, err := fmt.Fprintf(w, "  %s -> %s [label=\"%g\"];\n", a.From.Key(), a.To.Key(), a.Duration); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "  %s -> %s;\n", a.From.Key(), a.To.Key()); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}
