package scorer

import "math"

// Confidence factor weights. Model confidence only counts when supplied.
const (
	CoverageWeight = 0.35
	EvidenceWeight = 0.40
	ModelWeight    = 0.25

	// ConfidenceFloor keeps the geometric mean defined for zero factors.
	ConfidenceFloor = 0.01
)

// Signal slot tags, shared with the follow-up builder's gap tags.
const (
	SignalJD            = "jd"
	SignalCompanyValues = "company_values"
	SignalInterviewer   = "interviewer"
	SignalProfile       = "profile"
	SignalCommunity     = "community"
)

// SignalSlots lists the tracked contextual signals in reporting order.
//
//nolint:gochecknoglobals // Scoring configuration constants
var SignalSlots = []string{SignalJD, SignalCompanyValues, SignalInterviewer, SignalProfile, SignalCommunity}

// ConfidenceInputs are the factors combined into a confidence value.
type ConfidenceInputs struct {
	Coverage float64  `json:"coverage"`
	Evidence float64  `json:"evidence"`
	Model    *float64 `json:"model,omitempty"`
}

// SignalPresence reports which contextual signals ctx carries.
func SignalPresence(ctx Context) (present map[string]bool) {
	present = map[string]bool{
		SignalJD:            ctx.HasJD(),
		SignalCompanyValues: ctx.HasCompanyValues(),
		SignalInterviewer:   ctx.HasInterviewer(),
		SignalProfile:       ctx.HasProfile(),
		SignalCommunity:     ctx.HasCommunityTopics(),
	}
	return present
}

// DeriveSignalsCoverage is the fraction of tracked signal slots present.
func DeriveSignalsCoverage(ctx Context) (coverage float64) {
	present := SignalPresence(ctx)
	n := 0
	for _, slot := range SignalSlots {
		if present[slot] {
			n++
		}
	}
	coverage = float64(n) / float64(len(SignalSlots))
	return coverage
}

// EstimateEvidenceQuality rates how concrete the answer's evidence is.
// A supplied ctx.EvidenceQuality overrides the estimate.
func EstimateEvidenceQuality(ctx Context, h Heuristics) (quality float64) {
	if ctx.EvidenceQuality != nil {
		quality = unit(*ctx.EvidenceQuality)
		return quality
	}

	quality = 0.15
	if h.HasNumbers {
		quality += 0.15
	}
	if h.HasPercent {
		quality += 0.15
	}
	if h.HasCurrency {
		quality += 0.10
	}
	quality += 0.10 * float64(h.StarCount)
	if h.ResultQuantified {
		quality += 0.05
	}
	quality = unit(quality)
	return quality
}

// ComputeConfidence combines the inputs with a weighted geometric mean.
// The result is rounded to three decimals and lies in [ConfidenceFloor, 1].
func ComputeConfidence(in ConfidenceInputs) (confidence float64) {
	type factor struct{ value, weight float64 }
	factors := []factor{
		{in.Coverage, CoverageWeight},
		{in.Evidence, EvidenceWeight},
	}
	if in.Model != nil {
		factors = append(factors, factor{*in.Model, ModelWeight})
	}

	logSum, weightSum := 0.0, 0.0
	for _, f := range factors {
		v := math.Max(unit(f.value), ConfidenceFloor)
		logSum += f.weight * math.Log(v)
		weightSum += f.weight
	}

	confidence = math.Exp(logSum / weightSum)
	confidence = math.Round(confidence*1000) / 1000
	confidence = math.Min(math.Max(confidence, ConfidenceFloor), 1)
	return confidence
}

// ComputeConfidenceFromContext derives coverage and evidence from ctx.
func ComputeConfidenceFromContext(ctx Context, model *float64) (confidence float64) {
	confidence = ComputeConfidence(ConfidenceInputs{
		Coverage: DeriveSignalsCoverage(ctx),
		Evidence: EstimateEvidenceQuality(ctx, AnalyzeAnswerHeuristics(ctx)),
		Model:    model,
	})
	return confidence
}

// unit clamps v into [0,1], mapping NaN to 0.
func unit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
