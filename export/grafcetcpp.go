package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pflow-go/petrinet/petri"
)

// errWriter accumulates the first write error so a long sequence of
// Fprintf calls can be written without checking each one individually.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// WriteGrafcetCpp writes net as a self-contained C++ header declaring a
// Grafcet class: step() runs doActions -> readInputs -> setTransitions ->
// setSteps, T<id>() is the receptivity hook for transition <id>, P<id>()
// is the action hook for step <id>. Sensor/actuator wiring and the MQTT
// collaborator contract (publish/subscribe/onConnected/onMessageReceived)
// are left to the implementer of the .cpp file and are referenced only by
// name in the generated comments. Grounded on original_source's
// exportToGrafcetCpp.
func WriteGrafcetCpp(net *petri.Net, w io.Writer) error {
	name := net.Name
	if name == "" {
		name = "grafcet"
	}
	namespace := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	guard := strings.ToUpper(namespace)

	e := &errWriter{w: w}

	e.printf("// This file has been generated and should not be edited by hand.\n")
	e.printf("// The code generator is experimental.\n\n")
	e.printf("#ifndef GENERATED_GRAFCET_%s_HPP\n", guard)
	e.printf("#define GENERATED_GRAFCET_%s_HPP\n\n", guard)
	e.printf("#ifndef GRAFCET_SENSOR_TYPE\n#define GRAFCET_SENSOR_TYPE bool\n#endif\n\n")
	e.printf("namespace %s {\n\n", namespace)

	e.printf("// A generated GRAFCET sequencer. doActions/readInputs/setTransitions/\n")
	e.printf("// setSteps run once per step() call. A collaborator wires transport\n")
	e.printf("// (e.g. MQTT publish/subscribe/onConnected/onMessageReceived) around it.\n")
	e.printf("class Grafcet\n{\npublic:\n")
	e.printf("    Grafcet() { initInputGPIOs(); initOutputGPIOs(); reset(); }\n\n")

	e.printf("    // Restore every step to its initial marking.\n")
	e.printf("    void reset()\n    {\n")
	e.printf("        init_ = true;\n")
	for i := range net.Places {
		p := &net.Places[i]
		val := "false"
		if p.Tokens > 0 {
			val = "true"
		}
		e.printf("        X[%d] = %s;\n", p.ID, val)
	}
	e.printf("    }\n\n")

	e.printf("    // One GRAFCET cycle: doActions -> readInputs -> setTransitions -> setSteps.\n")
	e.printf("    void step()\n    {\n")
	e.printf("        doActions();\n")
	e.printf("        readInputs();\n")
	e.printf("        setTransitions();\n")
	e.printf("        setSteps();\n")
	e.printf("        init_ = false;\n")
	e.printf("    }\n\n")

	e.printf("private:\n\n")
	e.printf("    // Publish current step outputs. Wire a transport collaborator's\n")
	e.printf("    // publish() here if steps drive remote actuators.\n")
	e.printf("    void doActions()\n    {\n")
	for i := range net.Places {
		e.printf("        P%d(X[%d]);\n", net.Places[i].ID, net.Places[i].ID)
	}
	e.printf("    }\n\n")

	e.printf("    // Pull sensor state. Wire a transport collaborator's subscribe()/\n")
	e.printf("    // onMessageReceived() here if sensors arrive asynchronously.\n")
	e.printf("    void readInputs() {}\n\n")

	e.printf("    // T[n] = X[n] . R[n] for every transition.\n")
	e.printf("    void setTransitions()\n    {\n")
	for i := range net.Transitions {
		t := &net.Transitions[i]
		e.printf("        T[%d] = ", t.ID)
		sep := ""
		for _, ai := range t.ArcsIn {
			if p, ok := net.FindPlace(net.Arcs[ai].From.ID); ok {
				e.printf("%sX[%d]", sep, p.ID)
				sep = " && "
			}
		}
		e.printf("%s%s(); // %s\n", sep, t.Key(), t.Caption)
	}
	e.printf("    }\n\n")

	e.printf("    // X[n] = T[n-1] | (X[n] & !T[n]), latched by init_ for initially marked steps.\n")
	e.printf("    void setSteps()\n    {\n")
	for i := range net.Places {
		p := &net.Places[i]
		e.printf("        X[%d] = ", p.ID)
		sep := ""
		for _, ai := range p.ArcsIn {
			if t, ok := net.FindTransition(net.Arcs[ai].From.ID); ok {
				e.printf("%sT[%d]", sep, t.ID)
				sep = " || "
			}
		}
		if len(p.ArcsOut) == 0 {
			e.printf("%sX[%d]", sep, p.ID)
		} else {
			if sep != "" {
				e.printf(" || ")
			}
			e.printf("(X[%d]", p.ID)
			for _, ao := range p.ArcsOut {
				if t, ok := net.FindTransition(net.Arcs[ao].To.ID); ok {
					e.printf(" && !T[%d]", t.ID)
				}
			}
			e.printf(")")
		}
		if p.Tokens > 0 {
			e.printf(" || init_")
		}
		e.printf("; // Step %d: %s\n", p.ID, p.Caption)
	}
	e.printf("    }\n\n")

	e.printf("    void initInputGPIOs();\n")
	e.printf("    void initOutputGPIOs();\n\n")

	for i := range net.Transitions {
		t := &net.Transitions[i]
		e.printf("    // Receptivity of transition %d: %s\n", t.ID, t.Caption)
		e.printf("    bool %s() const;\n", t.Key())
	}
	e.printf("\n")
	for i := range net.Places {
		p := &net.Places[i]
		e.printf("    // Action associated with step %d: %s\n", p.ID, p.Caption)
		e.printf("    void P%d(bool activated);\n", p.ID)
	}

	e.printf("\n    bool T[%d] = {};\n", len(net.Transitions))
	e.printf("    bool X[%d] = {};\n", len(net.Places))
	e.printf("    bool init_ = true;\n")
	e.printf("};\n\n")
	e.printf("} // namespace %s\n", namespace)
	e.printf("#endif // GENERATED_GRAFCET_%s_HPP\n", guard)
	return e.err
}
