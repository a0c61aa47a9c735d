package scorer

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Ceiling rule names.
const (
	CeilingShortAnswer  = "short-answer"
	CeilingTooManyFlags = "too-many-flags"
	CeilingCriticalFlag = "critical-flag"
)

// Scorer evaluates interview answers against the rule tables.
type Scorer struct {
	opts Options
}

// New creates a scorer. Zero option fields take their default values.
func New(opts Options) (scorer *Scorer) {
	scorer = &Scorer{opts: opts.withDefaults()}
	return scorer
}

// Options returns the effective thresholds.
func (s *Scorer) Options() (opts Options) {
	opts = s.opts
	return opts
}

// ScoreAnswer scores ctx with the default thresholds.
func ScoreAnswer(ctx Context) (result Result) {
	result = New(DefaultOptions()).Score(ctx)
	return result
}

// ceilingRule caps the overall score when its condition holds.
type ceilingRule struct {
	name  string
	check func(h Heuristics, flags []string, opts Options) (limit int, ok bool)
}

func ceilingRules() (rules []ceilingRule) {
	rules = []ceilingRule{
		{
			name: CeilingShortAnswer,
			check: func(h Heuristics, _ []string, opts Options) (int, bool) {
				return opts.ShortAnswerCap, isShort(h, opts)
			},
		},
		{
			name: CeilingTooManyFlags,
			check: func(_ Heuristics, flags []string, opts Options) (int, bool) {
				return opts.FlagCountCap, len(flags) >= opts.FlagCeilingCount
			},
		},
		{
			name: CeilingCriticalFlag,
			check: func(_ Heuristics, flags []string, _ Options) (limit int, ok bool) {
				for _, name := range flags {
					flag, found := FindRedFlag(name)
					if !found || flag.Ceiling <= 0 {
						continue
					}
					if !ok || flag.Ceiling < limit {
						limit = flag.Ceiling
					}
					ok = true
				}
				return limit, ok
			},
		},
	}
	return rules
}

// Score runs heuristics, flags, weighting, penalties and ceilings over ctx.
// It reads only its argument and the static tables.
func (s *Scorer) Score(ctx Context) (result Result) {
	persona := ctx.Persona.Normalize()
	h := AnalyzeAnswerHeuristics(ctx)
	flags := DetectFlagsWith(ctx, h, s.opts)

	subscores := computeSubscores(ctx, persona, h, flags)

	details := make([]FlagDetail, 0, len(flags))
	totalPenalty := 0
	for _, name := range flags {
		flag, _ := FindRedFlag(name)
		penalty := absInt(flag.Penalty)
		totalPenalty += penalty
		details = append(details, FlagDetail{Name: name, Penalty: flag.Penalty})
		if flag.Dimension != "" {
			subscores[flag.Dimension] -= penalty
		}
	}
	for dim, v := range subscores {
		subscores[dim] = clamp(v)
	}

	weights := NormalizedWeights(persona)
	base := 0.0
	for _, d := range Dimensions {
		base += weights[d.Name] * float64(subscores[d.Name])
	}

	overall := int(math.Round(base))
	if totalPenalty > s.opts.MaxPenalty {
		totalPenalty = s.opts.MaxPenalty
	}
	overall -= totalPenalty

	ceilings := make([]string, 0)
	for _, rule := range ceilingRules() {
		limit, ok := rule.check(h, flags, s.opts)
		if !ok {
			continue
		}
		ceilings = append(ceilings, rule.name)
		if overall > limit {
			overall = limit
		}
	}

	result = Result{
		Persona:        persona,
		Overall:        clamp(overall),
		Subscores:      subscores,
		Flags:          flags,
		FlagDetails:    details,
		CeilingApplied: len(ceilings) > 0,
		Ceilings:       ceilings,
		Heuristics:     h,
	}
	result.Confidence = ComputeConfidence(ConfidenceInputs{
		Coverage: DeriveSignalsCoverage(ctx),
		Evidence: EstimateEvidenceQuality(ctx, h),
	})
	result.Reasons = buildReasons(result)

	return result
}

func computeSubscores(ctx Context, persona Persona, h Heuristics, flags []string) (subscores map[Dimension]int) {
	subscores = map[Dimension]int{
		DimStructure:   structureScore(h),
		DimSpecificity: specificityScore(h),
		DimOutcome:     outcomeScore(ctx, h),
		DimRole:        roleScore(ctx, h),
		DimCompany:     companyScore(ctx, h),
		DimPersona:     personaScore(persona, h),
		DimRisks:       100 - 3*min(h.BuzzwordHits+h.HedgeHits, 5) - 5*len(flags),
		DimClarity:     clarityScore(h),
	}
	return subscores
}

func structureScore(h Heuristics) (score int) {
	score = 10 + 20*h.StarCount
	if h.Sentences >= 4 {
		score += 10
	}
	return score
}

func specificityScore(h Heuristics) (score int) {
	score = 15
	if h.HasNumbers {
		score += 25
	}
	if h.HasPercent {
		score += 15
	}
	if h.HasCurrency {
		score += 15
	}
	score += 5*min(h.NumericTokens, 4) + 5*min(h.TechnicalHits, 2)
	score -= 8 * min(h.VagueHits, 5)
	return score
}

func outcomeScore(ctx Context, h Heuristics) (score int) {
	if !h.Star.Result.Present {
		score = 10
		if h.HasNumbers {
			score += 15
		}
		return score
	}

	score = 40
	if h.ResultQuantified {
		score += 30
	}
	if countAny(normalizeText(ctx.Answer), resultCues, true) >= 2 {
		score += 10
	}
	if h.HasPercent || h.HasCurrency {
		score += 10
	}
	return score
}

func roleScore(ctx Context, h Heuristics) (score int) {
	score = 20 + 10*min(h.FirstPersonSingular, 5)
	if h.Star.Action.Present {
		score += 15
	}
	if ctx.HasJD() {
		score += int(math.Round(15 * h.JDOverlap()))
	}
	return score
}

// companyScore never drops below the no-values baseline, so supplying
// company values can only raise it.
func companyScore(ctx Context, h Heuristics) (score int) {
	score = 40
	values := 0
	for _, v := range ctx.CompanyValues {
		if strings.TrimSpace(v) != "" {
			values++
		}
	}
	if values > 0 && len(h.ValuesMatched) > 0 {
		score = 60 + 40*len(h.ValuesMatched)/values
	}
	score += 5 * min(h.CultureHits, 2)
	return score
}

func personaScore(persona Persona, h Heuristics) (score int) {
	score = 30
	switch persona {
	case PersonaRecruiter:
		score += 10 * min(h.CultureHits+h.CollaborationHits, 5)
		if h.Words >= 80 && h.Words <= 350 {
			score += 10
		}
	case PersonaPeer:
		score += 10 * min(h.CollaborationHits, 5)
		if h.TechnicalHits >= 1 {
			score += 10
		}
	default:
		score += 10 * min(h.TechnicalHits, 5)
		if h.Star.Action.Present {
			score += 10
		}
	}
	if h.InterviewerFocusHits > 0 {
		score += 10
	}
	return score
}

func clarityScore(h Heuristics) (score int) {
	if h.Sentences == 0 {
		return score
	}

	score = 85
	avg := h.AvgSentenceWords
	switch {
	case avg < 8:
		score -= int(math.Round(3 * (8 - avg)))
	case avg > 25:
		score -= int(math.Round(3 * (avg - 25)))
	}
	if score < 20 {
		score = 20
	}
	if h.Words < 25 {
		score -= 10
	}
	if h.Sentences >= 3 {
		score += 10
	}
	return score
}

// RankDimensions orders every dimension by score ascending, breaking ties
// with PriorityOrder. Missing scores count as zero.
func RankDimensions(subscores map[Dimension]int) (ranked []Dimension) {
	ranked = make([]Dimension, len(PriorityOrder))
	copy(ranked, PriorityOrder)

	priority := make(map[Dimension]int, len(PriorityOrder))
	for i, d := range PriorityOrder {
		priority[d] = i
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := subscores[ranked[i]], subscores[ranked[j]]
		if si != sj {
			return si < sj
		}
		return priority[ranked[i]] < priority[ranked[j]]
	})
	return ranked
}

func buildReasons(r Result) (reasons []string) {
	reasons = append(reasons, fmt.Sprintf("overall score %d/100 (%s weighting)", r.Overall, r.Persona))

	if dim, score := r.Lowest(); dim != "" {
		reasons = append(reasons, fmt.Sprintf("lowest dimension: %s (%d)", dim, score))
	}

	if len(r.Flags) == 0 {
		reasons = append(reasons, "flags: none")
	} else {
		reasons = append(reasons, "flags: "+strings.Join(r.Flags, ", "))
	}

	if r.CeilingApplied {
		reasons = append(reasons, "ceiling applied: "+strings.Join(r.Ceilings, ", "))
	}
	return reasons
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
