package logger

import (
	"strings"

	"github.com/nikogura/interview-coach/pkg/scorer"
	"go.uber.org/zap"
)

// Structured log field keys.
const (
	FieldPersona    = "persona"
	FieldOverall    = "overall"
	FieldFlags      = "flags"
	FieldCeiling    = "ceiling_applied"
	FieldConfidence = "confidence"
	FieldLowest     = "lowest_dimension"
	FieldSession    = "session"
)

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ScoreFields summarizes a scoring result as compact zap fields.
func ScoreFields(result scorer.Result) []zap.Field {
	fields := []zap.Field{
		zap.String(FieldPersona, string(result.Persona)),
		zap.Int(FieldOverall, result.Overall),
		zap.Strings(FieldFlags, result.Flags),
		zap.Bool(FieldCeiling, result.CeilingApplied),
		zap.Float64(FieldConfidence, result.Confidence),
	}

	if dim, _ := result.Lowest(); dim != "" && len(result.Subscores) > 0 {
		fields = append(fields, zap.String(FieldLowest, string(dim)))
	}

	return fields
}

// TruncateForLog shortens s to limit runes, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
