package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedWeights(t *testing.T) {
	for _, persona := range []Persona{PersonaRecruiter, PersonaHiringManager, PersonaPeer} {
		t.Run(string(persona), func(t *testing.T) {
			weights := NormalizedWeights(persona)

			require.Len(t, weights, len(Dimensions))
			total := 0.0
			for _, w := range weights {
				assert.GreaterOrEqual(t, w, 0.0)
				total += w
			}
			assert.InDelta(t, 1.0, total, 1e-9)
		})
	}

	assert.Equal(t, NormalizedWeights(PersonaHiringManager), NormalizedWeights("unknown"))
	assert.NotEqual(t, NormalizedWeights(PersonaRecruiter), NormalizedWeights(PersonaPeer))
}

func TestPersonaNormalize(t *testing.T) {
	cases := map[Persona]Persona{
		"recruiter":        PersonaRecruiter,
		" Hiring-Manager ": PersonaHiringManager,
		"PEER":             PersonaPeer,
		"":                 DefaultPersona,
		"chief exec":       DefaultPersona,
	}

	for in, want := range cases {
		assert.Equal(t, want, in.Normalize(), "persona %q", in)
	}
}

func TestRedFlagCatalog(t *testing.T) {
	seen := make(map[string]bool)
	for _, flag := range RedFlags {
		assert.False(t, seen[flag.Name], "duplicate flag %s", flag.Name)
		seen[flag.Name] = true
		assert.Less(t, flag.Penalty, 0, flag.Name)
		assert.GreaterOrEqual(t, flag.Penalty, -20, flag.Name)
		assert.True(t, len(flag.Keywords) > 0 || flag.Condition != nil, flag.Name)
	}

	_, ok := FindRedFlag("no-such-flag")
	assert.False(t, ok)
}

func TestPriorityOrderCoversDimensions(t *testing.T) {
	require.Len(t, PriorityOrder, len(Dimensions))
	for _, d := range Dimensions {
		assert.Contains(t, PriorityOrder, d.Name)
	}
}

func TestRequirementsUnmarshal(t *testing.T) {
	var single Requirements
	require.NoError(t, single.UnmarshalJSON([]byte(`"Go and Kubernetes"`)))
	assert.Equal(t, Requirements{"Go and Kubernetes"}, single)

	var list Requirements
	require.NoError(t, list.UnmarshalJSON([]byte(`["Go","SQL"]`)))
	assert.Equal(t, Requirements{"Go", "SQL"}, list)

	var blank Requirements
	require.NoError(t, blank.UnmarshalJSON([]byte(`"  "`)))
	assert.Empty(t, blank)

	var bad Requirements
	assert.Error(t, bad.UnmarshalJSON([]byte(`{"a":1}`)))
}
