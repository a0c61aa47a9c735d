package summaries

import (
	"strings"
	"testing"

	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scores(low map[scorer.Dimension]int) map[scorer.Dimension]int {
	out := make(map[scorer.Dimension]int)
	for _, d := range scorer.Dimensions {
		out[d.Name] = 75
	}
	for d, v := range low {
		out[d] = v
	}
	return out
}

func TestSummarizeImprovements(t *testing.T) {
	tests := []struct {
		name        string
		subscores   map[scorer.Dimension]int
		flags       []string
		persona     scorer.Persona
		wantTargets []scorer.Dimension
		wantCTAs    []string
		wantSummary string
	}{
		{
			name:        "flag ctas lead",
			subscores:   scores(map[scorer.Dimension]int{scorer.DimOutcome: 20, scorer.DimRole: 30}),
			flags:       []string{"NO_METRIC"},
			persona:     scorer.PersonaHiringManager,
			wantTargets: []scorer.Dimension{scorer.DimOutcome, scorer.DimRole},
			wantCTAs:    []string{"Add KPI", "Show before/after", "Say what you owned"},
			wantSummary: "To strengthen this answer for a hiring manager, add a before/after metric and state the measurable outcome. Start with outcome, currently 20/100.",
		},
		{
			name:        "persona filler fills the gap",
			subscores:   scores(map[scorer.Dimension]int{scorer.DimCompany: 10, scorer.DimClarity: 40}),
			persona:     scorer.PersonaRecruiter,
			wantTargets: []scorer.Dimension{scorer.DimCompany, scorer.DimClarity},
			wantCTAs:    []string{"Reference a company value", "Shorten sentences", "Highlight culture fit"},
			wantSummary: "To strengthen this answer for a recruiter, connect it to the company's values and tighten your sentences. Start with company, currently 10/100.",
		},
		{
			name:        "partial subscores rank only what was sent",
			subscores:   map[scorer.Dimension]int{scorer.DimStructure: 90},
			flags:       []string{"NO_METRIC"},
			persona:     scorer.PersonaPeer,
			wantTargets: []scorer.Dimension{scorer.DimStructure},
			wantCTAs:    []string{"Add KPI", "Use STAR order", "Show how you collaborate"},
			wantSummary: "To strengthen this answer for a peer, add a before/after metric and follow the STAR structure. Start with structure, currently 90/100.",
		},
		{
			name:        "flags only",
			flags:       []string{"overconfidence", "dismissive_language", "unknown-flag"},
			persona:     scorer.PersonaPeer,
			wantTargets: []scorer.Dimension{},
			wantCTAs:    []string{"Credit the team", "Drop the blame", "Show how you collaborate"},
			wantSummary: "To strengthen this answer for a peer, credit the team alongside your own role and describe other people neutrally.",
		},
		{
			name:        "empty input",
			persona:     "",
			wantTargets: []scorer.Dimension{},
			wantCTAs:    []string{"Show technical depth"},
			wantSummary: GenericSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := SummarizeImprovements(tt.subscores, tt.flags, tt.persona)

			assert.Equal(t, tt.wantTargets, imp.Targeted)
			assert.Equal(t, tt.wantCTAs, imp.CTAs)
			assert.Equal(t, tt.wantSummary, imp.Summary)
		})
	}
}

func TestSummarizeImprovements_CapsCTAs(t *testing.T) {
	imp := SummarizeImprovements(
		scores(map[scorer.Dimension]int{scorer.DimRisks: 0}),
		[]string{"missing-result", "no-metric", "vague-claims", "buzzword-heavy", "overconfidence"},
		scorer.PersonaPeer,
	)

	require.Len(t, imp.CTAs, maxCTAs)
	assert.Equal(t, []string{"Credit the team", "Name specifics", "Cut buzzwords"}, imp.CTAs)
	assert.LessOrEqual(t, strings.Count(imp.Summary, "."), 2)
}

func TestSummarizeImprovements_Deterministic(t *testing.T) {
	subs := scores(map[scorer.Dimension]int{scorer.DimSpecificity: 40, scorer.DimOutcome: 40})
	first := SummarizeImprovements(subs, []string{"no-metric", "vague-claims"}, scorer.PersonaRecruiter)
	second := SummarizeImprovements(subs, []string{"vague-claims", "no-metric"}, scorer.PersonaRecruiter)

	assert.Equal(t, first, second)
	assert.Equal(t, []scorer.Dimension{scorer.DimSpecificity, scorer.DimOutcome}, first.Targeted)
}

func TestNormalizeFlag(t *testing.T) {
	assert.Equal(t, "no-metric", NormalizeFlag(" NO_METRIC "))
	assert.Equal(t, "overconfidence", NormalizeFlag("Overconfidence"))
}
