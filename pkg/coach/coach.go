package coach

import (
	"github.com/nikogura/interview-coach/pkg/followup"
	"github.com/nikogura/interview-coach/pkg/logger"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/nikogura/interview-coach/pkg/summaries"
	"go.uber.org/zap"
)

// Coach runs the full evaluation pipeline for interview answers.
// It holds no mutable state and is safe for concurrent use.
type Coach struct {
	scorer *scorer.Scorer
	logger *zap.Logger
}

// Evaluation is everything produced for one answer.
type Evaluation struct {
	Result       scorer.Result         `json:"result"`
	Prompts      []followup.PromptItem `json:"followups"`
	Improvements summaries.Improvements `json:"improvements"`
}

// ConfidenceReport breaks a confidence value into its factors.
type ConfidenceReport struct {
	Coverage   float64  `json:"coverage"`
	Evidence   float64  `json:"evidence"`
	Model      *float64 `json:"model_confidence,omitempty"`
	Confidence float64  `json:"confidence"`
}

// New creates an evaluator instance. A nil logger disables logging.
func New(opts scorer.Options, log *zap.Logger) (c *Coach) {
	c = &Coach{
		scorer: scorer.New(opts),
		logger: logger.WithFields(log),
	}
	return c
}

// Evaluate scores the answer, then derives follow-up prompts and a summary.
func (c *Coach) Evaluate(ctx scorer.Context) (eval Evaluation) {
	eval.Result = c.scorer.Score(ctx)
	eval.Prompts = followup.BuildFollowUpPrompts(ctx, followup.Scoring{
		Subscores: eval.Result.Subscores,
		Flags:     eval.Result.Flags,
	})
	eval.Improvements = summaries.SummarizeImprovements(eval.Result.Subscores, eval.Result.Flags, eval.Result.Persona)

	c.logger.Info("answer evaluated",
		append(logger.ScoreFields(eval.Result), zap.Int("followups", len(eval.Prompts)))...)
	c.logger.Debug("answer heuristics",
		zap.Int("words", eval.Result.Heuristics.Words),
		zap.Int("star_components", eval.Result.Heuristics.StarCount),
		zap.Bool("has_numbers", eval.Result.Heuristics.HasNumbers),
		zap.String("answer", logger.TruncateForLog(ctx.Answer, 80)),
	)

	return eval
}

// Confidence computes confidence for ctx with an optional model confidence.
func (c *Coach) Confidence(ctx scorer.Context, model *float64) (report ConfidenceReport) {
	h := scorer.AnalyzeAnswerHeuristics(ctx)
	report = ConfidenceReport{
		Coverage: scorer.DeriveSignalsCoverage(ctx),
		Evidence: scorer.EstimateEvidenceQuality(ctx, h),
		Model:    model,
	}
	report.Confidence = scorer.ComputeConfidence(scorer.ConfidenceInputs{
		Coverage: report.Coverage,
		Evidence: report.Evidence,
		Model:    model,
	})

	c.logger.Debug("confidence computed",
		zap.Float64("coverage", report.Coverage),
		zap.Float64("evidence", report.Evidence),
		zap.Float64("confidence", report.Confidence),
	)

	return report
}

// Options returns the scorer thresholds in use.
func (c *Coach) Options() (opts scorer.Options) {
	opts = c.scorer.Options()
	return opts
}
