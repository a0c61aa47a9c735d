package followup

import (
	"fmt"
	"strings"

	"github.com/nikogura/interview-coach/pkg/scorer"
)

// Prompt count bounds.
const (
	MinPrompts = 2
	MaxPrompts = 3
)

// Extra prompt kinds, used in IDs and source keys.
const (
	ExtraValuesUnused    = "values_unused"
	ExtraJDUnused        = "jd_unused"
	ExtraCommunityUnused = "community_unused"
)

// jdUnusedOverlap is the JD keyword overlap below which the JD counts as unused.
const jdUnusedOverlap = 0.2

const maxQuoteLen = 80

// PromptItem is one follow-up instruction for the candidate.
type PromptItem struct {
	ID         string             `json:"id"`
	Text       string             `json:"text"`
	Targets    []scorer.Dimension `json:"targets"`
	SourceKeys []string           `json:"source_keys"`
}

// Scoring is the part of a scoring result the builder needs.
type Scoring struct {
	Subscores map[scorer.Dimension]int `json:"subscores"`
	Flags     []string                 `json:"flags"`
}

// GapTags returns one no_<signal> tag per missing contextual signal.
func GapTags(ctx scorer.Context) (tags []string) {
	present := scorer.SignalPresence(ctx)
	tags = make([]string, 0, len(scorer.SignalSlots))
	for _, slot := range scorer.SignalSlots {
		if !present[slot] {
			tags = append(tags, "no_"+slot)
		}
	}
	return tags
}

// BuildFollowUpPrompts picks the two weakest dimensions, plus at most one
// prompt for unused context, and returns between MinPrompts and MaxPrompts items.
func BuildFollowUpPrompts(ctx scorer.Context, s Scoring) (prompts []PromptItem) {
	gaps := GapTags(ctx)
	persona := ctx.Persona.Normalize()
	prompts = make([]PromptItem, 0, MaxPrompts)
	targeted := make(map[scorer.Dimension]bool)

	// Primary targets
	for _, dim := range scorer.RankDimensions(s.Subscores) {
		if len(prompts) == MinPrompts {
			break
		}
		if dim == scorer.DimCompany && !ctx.HasCompanyValues() {
			continue
		}
		targeted[dim] = true
		prompts = append(prompts, PromptItem{
			ID:         "followup_" + string(dim),
			Text:       dimensionText(dim, ctx, persona, s.Flags),
			Targets:    []scorer.Dimension{dim},
			SourceKeys: append([]string{"low_" + string(dim)}, gaps...),
		})
	}

	// One additional prompt for context the answer leaves unused
	if len(prompts) < MaxPrompts {
		h := scorer.AnalyzeAnswerHeuristics(ctx)
		for _, extra := range extraCandidates(ctx, h) {
			if targeted[extra.dim] {
				continue
			}
			prompts = append(prompts, PromptItem{
				ID:         "followup_extra_" + extra.kind,
				Text:       extra.text,
				Targets:    []scorer.Dimension{extra.dim},
				SourceKeys: append([]string{extra.kind}, gaps...),
			})
			break
		}
	}

	if len(prompts) > MaxPrompts {
		prompts = prompts[:MaxPrompts]
	}
	return prompts
}

type extraCandidate struct {
	kind string
	dim  scorer.Dimension
	text string
}

func extraCandidates(ctx scorer.Context, h scorer.Heuristics) (candidates []extraCandidate) {
	if ctx.HasCompanyValues() && len(h.ValuesMatched) == 0 {
		candidates = append(candidates, extraCandidate{
			kind: ExtraValuesUnused,
			dim:  scorer.DimCompany,
			text: fmt.Sprintf("You have the company values but the answer never uses them. Work in %q with a concrete example.",
				quote(firstNonBlank(ctx.CompanyValues))),
		})
	}

	if ctx.HasJD() && h.JDOverlap() < jdUnusedOverlap {
		candidates = append(candidates, extraCandidate{
			kind: ExtraJDUnused,
			dim:  scorer.DimRole,
			text: fmt.Sprintf("The answer barely touches the job description. Mirror a requirement such as %q in the actions you describe.",
				quote(firstNonBlank(ctx.JDCore))),
		})
	}

	if ctx.HasCommunityTopics() && h.CommunityMatched == 0 {
		candidates = append(candidates, extraCandidate{
			kind: ExtraCommunityUnused,
			dim:  scorer.DimPersona,
			text: fmt.Sprintf("Bring in a community topic such as %q to show engagement beyond the day job.",
				quote(firstNonBlank(ctx.MatchMatrix.CommunityTopics))),
		})
	}

	return candidates
}

func dimensionText(dim scorer.Dimension, ctx scorer.Context, persona scorer.Persona, flags []string) (text string) {
	switch dim {
	case scorer.DimStructure:
		text = "Split your answer into STAR: one or two sentences each for the situation, your task, the actions you took and the result."
	case scorer.DimSpecificity:
		text = "Quantify impact: name the tools you used and add one concrete number, such as a percentage, a dollar amount or time saved."
	case scorer.DimOutcome:
		text = "Close with the result: state what changed because of your work, ideally as a before/after metric."
	case scorer.DimRole:
		if ctx.HasJD() {
			text = fmt.Sprintf("Tie your actions to the role. Show how what you personally did maps to %q.", quote(firstNonBlank(ctx.JDCore)))
		} else {
			text = "Make your ownership explicit: say what you personally decided and did, using \"I\" where it was your call."
		}
	case scorer.DimCompany:
		text = fmt.Sprintf("Link the story to the company value %q and say how your approach reflects it.", quote(firstNonBlank(ctx.CompanyValues)))
	case scorer.DimPersona:
		text = personaText(persona)
		if ctx.HasInterviewer() && ctx.UserProfile.Interviewer.Name != "" {
			text = fmt.Sprintf("%s Keep %s's focus in mind.", text, ctx.UserProfile.Interviewer.Name)
		}
	case scorer.DimRisks:
		text = risksText(flags)
	default:
		text = "Tighten delivery: keep sentences short and lead with the point before the detail."
	}
	return text
}

func personaText(persona scorer.Persona) (text string) {
	switch persona {
	case scorer.PersonaRecruiter:
		text = "Frame the story for a recruiter: highlight collaboration, motivation and culture fit in plain language."
	case scorer.PersonaPeer:
		text = "Talk to a peer: describe how you worked with teammates and the technical details they would care about."
	default:
		text = "Go one level deeper for the hiring manager: explain the technical trade-offs behind your key decision."
	}
	return text
}

func risksText(flags []string) (text string) {
	for _, f := range flags {
		switch normalizeFlag(f) {
		case scorer.FlagOverconfidence:
			text = "Tone down the superlatives: credit the team and describe your own part with facts instead of claims."
			return text
		case scorer.FlagDismissiveLanguage:
			text = "Reframe any blame: describe the disagreement neutrally and what you did to resolve it."
			return text
		}
	}
	text = "Remove hedges and buzzwords: state what you did plainly and back it with evidence."
	return text
}

func normalizeFlag(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

func firstNonBlank(values []string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func quote(s string) string {
	r := []rune(s)
	if len(r) > maxQuoteLen {
		return strings.TrimSpace(string(r[:maxQuoteLen])) + "..."
	}
	return s
}
