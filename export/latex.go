package export

import (
	"fmt"
	"io"

	"github.com/pflow-go/petrinet/petri"
)

// WriteLaTeX writes net as a standalone tikz/petri document: one \node per
// place and transition positioned at its stored (x, y), and one \draw per
// arc labeled with duration on the transition-origin side. Grounded on
// original_source's exportToPetriLaTeX.
func WriteLaTeX(net *petri.Net, w io.Writer) error {
	header := "\\documentclass[border = 0.2cm]{standalone}\n" +
		"\\usepackage{tikz}\n" +
		"\\usetikzlibrary{petri,positioning}\n" +
		"\\begin{document}\n" +
		"\\begin{tikzpicture}\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n% Places\n"); err != nil {
		return err
	}
	for i := range net.Places {
		p := &net.Places[i]
		_, err := fmt.Fprintf(w, "\\node[place, label=above:$%s$, fill=blue!25, draw=blue!75, tokens=%d] (%s) at (%d, %d) {};\n",
			p.Caption, p.Tokens, p.Key(), int(p.X), int(-p.Y))
		if err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\n% Transitions\n"); err != nil {
		return err
	}
	for i := range net.Transitions {
		t := &net.Transitions[i]
		color := "red"
		if net.Enabled(t) && t.Receptivity {
			color = "green"
		}
		_, err := fmt.Fprintf(w, "\\node[transition, label=above:$%s$, fill=%s!25, draw=%s!75] (%s) at (%d, %d) {};\n",
			t.Caption, color, color, t.Key(), int(t.X), int(-t.Y))
		if err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\n% Arcs\n"); err != nil {
		return err
	}
	for i := range net.Arcs {
		a := &net.Arcs[i]
		if a.From.Kind == petri.TransitionNode {
			_, err := fmt.Fprintf(w, "\\draw[-latex, thick] (%s) -- node[midway, above right] {%.2f} (%s);\n",
				a.From.Key(), a.Duration, a.To.Key())
			if err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "\\draw[-latex, thick] (%s) -- (%s);\n", a.From.Key(), a.To.Key()); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "\n\\end{tikzpicture}\n\\end{document}\n")
	return err
}
