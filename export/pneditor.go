package export

import (
	"encoding/binary"
	"io"

	"github.com/pflow-go/petrinet/petri"
)

// WritePNEditor writes net as the four PN-Editor files: pns (little-endian
// int32 logical contents: token counts then, per transition, its outgoing
// then incoming arc endpoint ids), pnl (little-endian float32 layout: every
// transition's (x, y) then every place's (x, y)), pnkp (newline-separated
// place captions) and pnk (newline-separated transition captions).
// Grounded on original_source's exportToPNEditor.
func WritePNEditor(net *petri.Net, pns, pnl, pnkp, pnk io.Writer) error {
	if err := writePNS(net, pns); err != nil {
		return err
	}
	if err := writePNL(net, pnl); err != nil {
		return err
	}
	for i := range net.Places {
		if _, err := io.WriteString(pnkp, net.Places[i].Caption+"\n"); err != nil {
			return err
		}
	}
	for i := range net.Transitions {
		if _, err := io.WriteString(pnk, net.Transitions[i].Caption+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeInt32(w io.Writer, v int) error {
	return binary.Write(w, binary.LittleEndian, int32(v))
}

func writeFloat32(w io.Writer, v float64) error {
	return binary.Write(w, binary.LittleEndian, float32(v))
}

func writePNS(net *petri.Net, w io.Writer) error {
	if err := writeInt32(w, len(net.Places)); err != nil {
		return err
	}
	for i := range net.Places {
		if err := writeInt32(w, int(net.Places[i].Tokens)); err != nil {
			return err
		}
	}

	if err := writeInt32(w, len(net.Transitions)); err != nil {
		return err
	}
	for i := range net.Transitions {
		t := &net.Transitions[i]
		if err := writeInt32(w, len(t.ArcsOut)); err != nil {
			return err
		}
		for _, ao := range t.ArcsOut {
			if err := writeInt32(w, net.Arcs[ao].To.ID); err != nil {
				return err
			}
		}
		if err := writeInt32(w, len(t.ArcsIn)); err != nil {
			return err
		}
		for _, ai := range t.ArcsIn {
			if err := writeInt32(w, net.Arcs[ai].From.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePNL(net *petri.Net, w io.Writer) error {
	for i := range net.Transitions {
		t := &net.Transitions[i]
		if err := writeFloat32(w, t.X); err != nil {
			return err
		}
		if err := writeFloat32(w, t.Y); err != nil {
			return err
		}
	}
	for i := range net.Places {
		p := &net.Places[i]
		if err := writeFloat32(w, p.X); err != nil {
			return err
		}
		if err := writeFloat32(w, p.Y); err != nil {
			return err
		}
	}
	return nil
}
