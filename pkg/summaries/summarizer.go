package summaries

import (
	"fmt"
	"strings"

	"github.com/nikogura/interview-coach/pkg/scorer"
)

const (
	targetCount = 2
	maxClauses  = 2
	maxCTAs     = 3
)

// GenericSummary is returned when there is nothing specific to improve on.
const GenericSummary = "Good foundation. Keep rehearsing: tell the story in STAR order and close with a measurable result."

// SummarizeImprovements turns subscores and flags into a short summary and up
// to three calls to action. Empty inputs yield a generic summary.
func SummarizeImprovements(subscores map[scorer.Dimension]int, flags []string, persona scorer.Persona) (imp Improvements) {
	persona = persona.Normalize()
	imp.Targeted = make([]scorer.Dimension, 0, targetCount)
	for _, d := range scorer.RankDimensions(subscores) {
		if len(imp.Targeted) == targetCount {
			break
		}
		// Dimensions the caller did not send carry no signal
		if _, ok := subscores[d]; ok {
			imp.Targeted = append(imp.Targeted, d)
		}
	}

	known := knownFlags(flags)

	// Clauses: flags first, then dimensions
	clauses := make([]string, 0, maxClauses)
	for _, f := range known {
		clauses = appendUnique(clauses, FlagPhrases[f].Clause, maxClauses)
	}
	for _, d := range imp.Targeted {
		clauses = appendUnique(clauses, DimensionPhrases[d].Clause, maxClauses)
	}

	if len(clauses) == 0 {
		imp.Summary = GenericSummary
	} else {
		imp.Summary = fmt.Sprintf("To strengthen this answer for a %s, %s.", personaLabel(persona), strings.Join(clauses, " and "))
		if len(imp.Targeted) > 0 {
			lowest := imp.Targeted[0]
			imp.Summary += fmt.Sprintf(" Start with %s, currently %d/100.", lowest, subscores[lowest])
		}
	}

	// Calls to action: flags, dimensions, then one persona filler
	imp.CTAs = make([]string, 0, maxCTAs)
	for _, f := range known {
		imp.CTAs = appendUnique(imp.CTAs, FlagPhrases[f].CTA, maxCTAs)
	}
	for _, d := range imp.Targeted {
		imp.CTAs = appendUnique(imp.CTAs, DimensionPhrases[d].CTA, maxCTAs)
	}
	imp.CTAs = appendUnique(imp.CTAs, PersonaFiller[persona], maxCTAs)

	return imp
}

// NormalizeFlag maps variants such as NO_METRIC to catalog names.
func NormalizeFlag(name string) (normalized string) {
	normalized = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	return normalized
}

// knownFlags returns the recognized flags in catalog order.
func knownFlags(flags []string) (known []string) {
	set := make(map[string]bool, len(flags))
	for _, f := range flags {
		set[NormalizeFlag(f)] = true
	}
	for _, rf := range scorer.RedFlags {
		if _, ok := FlagPhrases[rf.Name]; ok && set[rf.Name] {
			known = append(known, rf.Name)
		}
	}
	return known
}

func appendUnique(list []string, item string, limit int) []string {
	if item == "" || len(list) >= limit {
		return list
	}
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

func personaLabel(p scorer.Persona) string {
	return strings.ReplaceAll(string(p), "-", " ")
}
