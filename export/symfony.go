package export

import (
	"io"

	"github.com/pflow-go/petrinet/petri"
	"gopkg.in/yaml.v3"
)

type symfonyTransition struct {
	From []string `yaml:"from"`
	To   []string `yaml:"to"`
}

type symfonyWorkflow struct {
	Type         string                       `yaml:"type"`
	AuditTrail   map[string]bool              `yaml:"audit_trail"`
	MarkingStore map[string]string            `yaml:"marking_store"`
	InitialMark  []string                     `yaml:"initial_marking"`
	Places       []string                     `yaml:"places"`
	Transitions  map[string]symfonyTransition `yaml:"transitions"`
}

type symfonyDocument struct {
	Framework struct {
		Workflows map[string]symfonyWorkflow `yaml:"workflows"`
	} `yaml:"framework"`
}

// WriteSymfonyYAML writes net as a Symfony workflow-component config: one
// workflow named after net.Name, its places and initially-marked places
// listed by caption, and one from/to transition entry per net transition
// derived from its incident arcs. Grounded on original_source's
// exportToSymfony, using a real YAML marshaler instead of hand-built text.
func WriteSymfonyYAML(net *petri.Net, w io.Writer) error {
	name := net.Name
	if name == "" {
		name = "petrinet"
	}

	wf := symfonyWorkflow{
		Type:         "workflow",
		AuditTrail:   map[string]bool{"enabled": true},
		MarkingStore: map[string]string{"type": "method", "property": "currentPlace"},
		Transitions:  make(map[string]symfonyTransition, len(net.Transitions)),
	}

	for i := range net.Places {
		p := &net.Places[i]
		wf.Places = append(wf.Places, p.Caption)
		if p.Tokens > 0 {
			wf.InitialMark = append(wf.InitialMark, p.Caption)
		}
	}

	for i := range net.Transitions {
		t := &net.Transitions[i]
		var st symfonyTransition
		for _, ai := range t.ArcsIn {
			if from, ok := net.FindPlace(net.Arcs[ai].From.ID); ok {
				st.From = append(st.From, from.Caption)
			}
		}
		for _, ao := range t.ArcsOut {
			if to, ok := net.FindPlace(net.Arcs[ao].To.ID); ok {
				st.To = append(st.To, to.Caption)
			}
		}
		wf.Transitions[t.Caption] = st
	}

	var doc symfonyDocument
	doc.Framework.Workflows = map[string]symfonyWorkflow{name: wf}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(4)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
