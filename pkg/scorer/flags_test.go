package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFlags(t *testing.T) {
	cases := []struct {
		name   string
		answer string
		want   []string
	}{
		{
			name:   "too short",
			answer: shortAnswer,
			want:   []string{FlagIncompleteAnswer},
		},
		{
			name:   "strong answer",
			answer: strongAnswer,
			want:   []string{},
		},
		{
			name:   "overconfident and dismissive",
			answer: overconfidentAnswer,
			want:   []string{FlagOverconfidence, FlagDismissiveLanguage, FlagNoMetric, FlagMissingResult},
		},
		{
			name:   "vague",
			answer: vagueAnswer,
			want:   []string{FlagVagueClaims, FlagNoMetric},
		},
		{
			name: "buzzwords",
			answer: "To move the needle I had to leverage synergy across the org. I rolled out a new deploy " +
				"process over 6 weeks and as a result releases went from monthly to weekly for 4 teams.",
			want: []string{FlagBuzzwordHeavy},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFlags(Context{Answer: tc.answer}))
		})
	}
}

func TestDetectFlags_CaseInsensitive(t *testing.T) {
	flags := DetectFlags(Context{Answer: "HONESTLY NOBODY ELSE COULD HAVE DONE IT. I AM A GENIUS AND I SAVED 40% OF " +
		"THE BUDGET, A RESULT THE WHOLE COMPANY STILL TALKS ABOUT TODAY."})

	assert.Contains(t, flags, FlagOverconfidence)
}

func TestDetectFlags_VagueNeedsNoNumbers(t *testing.T) {
	answer := "I worked on various things for the billing team, basically rewriting stuff. As a result " +
		"invoices went out 3 days faster and support tickets dropped by 20%."

	assert.NotContains(t, DetectFlags(Context{Answer: answer}), FlagVagueClaims)
}

func TestDetectFlagsWith_Options(t *testing.T) {
	ctx := Context{Answer: strongAnswer}
	h := AnalyzeAnswerHeuristics(ctx)

	assert.Empty(t, DetectFlagsWith(ctx, h, DefaultOptions()))
	assert.Equal(t, []string{FlagIncompleteAnswer}, DetectFlagsWith(ctx, h, Options{MinAnswerWords: 500}))
}
