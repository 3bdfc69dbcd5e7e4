package serialize

import (
	"strings"
	"testing"

	"github.com/pflow-go/petrinet/petri"
	"github.com/stretchr/testify/require"
)

func buildSample() *petri.Net {
	n := petri.New(petri.TimedPetri)
	p0 := n.AddPlace(10, 20, 3)
	t0 := n.AddTransition(30, 40)
	n.AddArc(p0.Ref(), t0.Ref(), 1.5, true)
	n.RebuildAdjacency()
	return n
}

func TestSaveThenLoadIsIsomorphic(t *testing.T) {
	n := buildSample()
	var buf strings.Builder
	require.NoError(t, Save(n, &buf))

	loaded := petri.New(petri.Petri)
	require.NoError(t, Load(loaded, strings.NewReader(buf.String())))

	require.True(t, n.Equal(loaded))
}

func TestSaveThenLoadRoundTripsID(t *testing.T) {
	n := buildSample()
	var buf strings.Builder
	require.NoError(t, Save(n, &buf))
	require.Contains(t, buf.String(), n.ID().String())

	loaded := petri.New(petri.Petri)
	require.NoError(t, Load(loaded, strings.NewReader(buf.String())))
	require.Equal(t, n.ID(), loaded.ID())
}

func TestLoadWithoutIDKeepsFreshID(t *testing.T) {
	doc := `{
  "type": "Petri net",
  "places": ["P0,P0,0,0,1"],
  "transitions": [],
  "arcs": []
}`
	n := petri.New(petri.Petri)
	original := n.ID()
	require.NoError(t, Load(n, strings.NewReader(doc)))
	require.Equal(t, original, n.ID())
}

func TestSaveRejectsEmptyNet(t *testing.T) {
	n := petri.New(petri.Petri)
	var buf strings.Builder
	err := Save(n, &buf)
	require.ErrorIs(t, err, ErrEmptyNet)
}

func TestLoadRejectsNegativeDuration(t *testing.T) {
	doc := `{
  "type": "Petri net",
  "places": ["P0,P0,0,0,1"],
  "transitions": ["T0,T0,0,0,0"],
  "arcs": ["P0,T0,-2"]
}`
	n := petri.New(petri.TimedPetri)
	err := Load(n, strings.NewReader(doc))
	require.ErrorIs(t, err, ErrNegativeDuration)
	require.Empty(t, n.Places)
	require.Empty(t, n.Transitions)
}

func TestLoadRejectsWrongFieldCount(t *testing.T) {
	doc := `{
  "type": "Petri net",
  "places": ["P0,OnlyThreeFields,0"],
  "transitions": [],
  "arcs": []
}`
	n := petri.New(petri.TimedPetri)
	err := Load(n, strings.NewReader(doc))
	require.ErrorIs(t, err, ErrMalformed)
	require.Empty(t, n.Places)
}

func TestLoadRejectsUnknownArcEndpoint(t *testing.T) {
	doc := `{
  "type": "Petri net",
  "places": ["P0,P0,0,0,0"],
  "transitions": [],
  "arcs": ["P0,T9,0"]
}`
	n := petri.New(petri.TimedPetri)
	err := Load(n, strings.NewReader(doc))
	require.ErrorIs(t, err, ErrUnknownNode)
	require.Empty(t, n.Places)
}

func TestLoadRejectsMissingField(t *testing.T) {
	doc := `{
  "type": "Petri net",
  "places": [],
  "transitions": []
}`
	n := petri.New(petri.TimedPetri)
	err := Load(n, strings.NewReader(doc))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestLoadRejectsUnterminatedString(t *testing.T) {
	doc := `{"type": "Petri net`
	n := petri.New(petri.TimedPetri)
	err := Load(n, strings.NewReader(doc))
	require.ErrorIs(t, err, ErrMalformed)
}
