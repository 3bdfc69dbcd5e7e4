package export

import (
	"encoding/xml"
	"io"

	"github.com/pflow-go/petrinet/petri"
)

const (
	transWidth  = 25.0
	transHeight = transWidth / 2.0
	placeRadius = transWidth / 2.0
	drawioScale = 2.0
)

type mxFile struct {
	XMLName xml.Name  `xml:"mxfile"`
	Host    string    `xml:"host,attr"`
	Diagram mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	Name  string       `xml:"name,attr"`
	ID    string       `xml:"id,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	Grid    int    `xml:"grid,attr"`
	Page    int    `xml:"page,attr"`
	Connect int    `xml:"connect,attr"`
	Root    mxRoot `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X        float64   `xml:"x,attr,omitempty"`
	Y        float64   `xml:"y,attr,omitempty"`
	Width    float64   `xml:"width,attr,omitempty"`
	Height   float64   `xml:"height,attr,omitempty"`
	Relative string    `xml:"relative,attr,omitempty"`
	As       string    `xml:"as,attr"`
	Points   []mxPoint `xml:"mxPoint,omitempty"`
}

type mxPoint struct {
	X  float64 `xml:"x,attr"`
	Y  float64 `xml:"y,attr"`
	As string  `xml:"as,attr"`
}

// WriteDrawIO writes net as a draw.io mxfile document: an ellipse cell per
// place, a rectangle cell per transition, and a source/target edge cell per
// arc. Built with encoding/xml struct marshaling rather than string
// concatenation, so the document skeleton is always well-formed. Grounded
// on original_source's exportToDrawIO.
func WriteDrawIO(net *petri.Net, w io.Writer) error {
	cells := []mxCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}

	for i := range net.Places {
		p := &net.Places[i]
		cells = append(cells, mxCell{
			ID:     p.Key(),
			Value:  p.Caption,
			Style:  "ellipse;whiteSpace=wrap;html=1;aspect=fixed;",
			Vertex: "1",
			Parent: "1",
			Geometry: &mxGeometry{
				X: p.X, Y: p.Y,
				Width: placeRadius * drawioScale, Height: placeRadius * drawioScale,
				As: "geometry",
			},
		})
	}

	for i := range net.Transitions {
		t := &net.Transitions[i]
		cells = append(cells, mxCell{
			ID:     t.Key(),
			Value:  t.Caption,
			Style:  "whiteSpace=wrap;html=1;aspect=fixed;",
			Vertex: "1",
			Parent: "1",
			Geometry: &mxGeometry{
				X: t.X, Y: t.Y,
				Width: transWidth * drawioScale, Height: transHeight * drawioScale,
				As: "geometry",
			},
		})
	}

	for i := range net.Arcs {
		a := &net.Arcs[i]
		fromX, fromY := endpointXY(net, a.From)
		toX, toY := endpointXY(net, a.To)
		cells = append(cells, mxCell{
			ID:     a.From.Key() + a.To.Key(),
			Style:  "endArrow=classic;html=1;rounded=0;exitX=0.5;exitY=1;exitDx=0;exitDy=0;entryX=0.5;entryY=0;entryDx=0;entryDy=0;",
			Edge:   "1",
			Parent: "1",
			Source: a.From.Key(),
			Target: a.To.Key(),
			Geometry: &mxGeometry{
				Width: 50, Height: 50, Relative: "1", As: "geometry",
				Points: []mxPoint{
					{X: fromX, Y: fromY, As: "sourcePoint"},
					{X: toX, Y: toY, As: "targetPoint"},
				},
			},
		})
	}

	doc := mxFile{
		Host: "petrinet",
		Diagram: mxDiagram{
			Name: "Page-1",
			ID:   "page-1",
			Model: mxGraphModel{
				Grid: 1, Page: 1, Connect: 1,
				Root: mxRoot{Cells: cells},
			},
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func endpointXY(net *petri.Net, ref petri.NodeRef) (float64, float64) {
	if ref.Kind == petri.PlaceNode {
		if p, ok := net.FindPlace(ref.ID); ok {
			return p.X, p.Y
		}
	} else if t, ok := net.FindTransition(ref.ID); ok {
		return t.X, t.Y
	}
	return 0, 0
}
