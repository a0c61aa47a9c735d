package summaries

import "github.com/nikogura/interview-coach/pkg/scorer"

// Improvements is a short coaching summary for one scored answer.
type Improvements struct {
	Summary  string             `json:"summary"`
	CTAs     []string           `json:"ctas"`
	Targeted []scorer.Dimension `json:"targeted"`
}

// Phrase holds the summary clause and call-to-action for one weakness.
type Phrase struct {
	Clause string
	CTA    string
}

// FlagPhrases maps red-flag names to their coaching phrases.
//
//nolint:gochecknoglobals // Coaching copy
var FlagPhrases = map[string]Phrase{
	scorer.FlagIncompleteAnswer:   {"expand it into a complete story", "Expand to full STAR"},
	scorer.FlagOverconfidence:     {"credit the team alongside your own role", "Credit the team"},
	scorer.FlagDismissiveLanguage: {"describe other people neutrally", "Drop the blame"},
	scorer.FlagVagueClaims:        {"replace generic claims with specifics", "Name specifics"},
	scorer.FlagBuzzwordHeavy:      {"swap buzzwords for plain language", "Cut buzzwords"},
	scorer.FlagNoMetric:           {"add a before/after metric", "Add KPI"},
	scorer.FlagMissingResult:      {"finish with the result", "State the result"},
}

// DimensionPhrases maps dimensions to their coaching phrases.
//
//nolint:gochecknoglobals // Coaching copy
var DimensionPhrases = map[scorer.Dimension]Phrase{
	scorer.DimStructure:   {"follow the STAR structure", "Use STAR order"},
	scorer.DimSpecificity: {"add concrete numbers and tools", "Quantify impact"},
	scorer.DimOutcome:     {"state the measurable outcome", "Show before/after"},
	scorer.DimRole:        {"show your direct impact", "Say what you owned"},
	scorer.DimCompany:     {"connect it to the company's values", "Reference a company value"},
	scorer.DimPersona:     {"pitch the depth at your interviewer", "Match the interviewer"},
	scorer.DimRisks:       {"remove risky language", "Remove red flags"},
	scorer.DimClarity:     {"tighten your sentences", "Shorten sentences"},
}

// PersonaFiller is the closing call-to-action for each persona.
//
//nolint:gochecknoglobals // Coaching copy
var PersonaFiller = map[scorer.Persona]string{
	scorer.PersonaRecruiter:     "Highlight culture fit",
	scorer.PersonaHiringManager: "Show technical depth",
	scorer.PersonaPeer:          "Show how you collaborate",
}
