package scorer

import "strings"

// DetectFlags returns the names of triggered red flags in catalog order,
// using the default thresholds.
func DetectFlags(ctx Context) (flags []string) {
	flags = DetectFlagsWith(ctx, AnalyzeAnswerHeuristics(ctx), DefaultOptions())
	return flags
}

// DetectFlagsWith evaluates the catalog against precomputed heuristics.
func DetectFlagsWith(ctx Context, h Heuristics, opts Options) (flags []string) {
	opts = opts.withDefaults()
	lower := normalizeText(strings.TrimSpace(ctx.Answer))

	flags = make([]string, 0)
	for _, flag := range RedFlags {
		if flagTriggered(flag, lower, h, opts) {
			flags = append(flags, flag.Name)
		}
	}
	return flags
}

func flagTriggered(flag RedFlag, lower string, h Heuristics, opts Options) bool {
	if len(flag.Keywords) > 0 {
		minHits := flag.MinHits
		if minHits < 1 {
			minHits = 1
		}
		if countAny(lower, flag.Keywords, false) < minHits {
			return false
		}
	}

	if flag.Condition != nil {
		return flag.Condition(h, opts)
	}

	return len(flag.Keywords) > 0
}
