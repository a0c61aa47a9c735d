package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeAnswerHeuristics_Signals(t *testing.T) {
	cases := []struct {
		name     string
		answer   string
		numbers  bool
		percent  bool
		currency bool
	}{
		{name: "plain", answer: "I talked to the team about it.", numbers: false},
		{name: "digits", answer: "We shipped 3 releases.", numbers: true},
		{name: "percent", answer: "Revenue grew 12% that year.", numbers: true, percent: true},
		{name: "percent word", answer: "Revenue grew 12 percent that year.", numbers: true, percent: true},
		{name: "currency", answer: "It saved $40 per order.", numbers: true, currency: true},
		{name: "euro", answer: "It saved €1.5M.", numbers: true, currency: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := AnalyzeAnswerHeuristics(Context{Answer: tc.answer})

			assert.Equal(t, tc.numbers, h.HasNumbers)
			assert.Equal(t, tc.percent, h.HasPercent)
			assert.Equal(t, tc.currency, h.HasCurrency)
		})
	}
}

func TestAnalyzeAnswerHeuristics_Length(t *testing.T) {
	h := AnalyzeAnswerHeuristics(Context{Answer: "  I did a thing.  "})

	assert.Equal(t, 4, h.Words)
	assert.Equal(t, 14, h.Chars)
	assert.Equal(t, 1, h.Sentences)
	assert.Equal(t, 1, h.Paragraphs)
	assert.Equal(t, 0, h.StarCount)
}

func TestAnalyzeAnswerHeuristics_Empty(t *testing.T) {
	h := AnalyzeAnswerHeuristics(Context{})

	assert.Equal(t, Heuristics{}, h)
}

func TestAnalyzeAnswerHeuristics_Star(t *testing.T) {
	h := AnalyzeAnswerHeuristics(Context{Answer: strongAnswer})

	assert.True(t, h.Star.Situation.Present)
	assert.True(t, h.Star.Task.Present)
	assert.True(t, h.Star.Action.Present)
	assert.True(t, h.Star.Result.Present)
	assert.Equal(t, 4, h.StarCount)
	assert.Equal(t, 0, h.Star.Situation.Start)
	assert.Less(t, h.Star.Action.Start, h.Star.Result.Start)
	assert.Equal(t, len(strongAnswer), h.Star.Result.End)
	assert.True(t, h.ResultQuantified)
	assert.Equal(t, 4, h.Sentences)
}

func TestAnalyzeAnswerHeuristics_SpansIndexRawAnswer(t *testing.T) {
	answer := "  The problem was our team’s “legacy” deploys. As a Result we cut deploy time by 40%.\n"

	h := AnalyzeAnswerHeuristics(Context{Answer: answer})

	require.True(t, h.Star.Situation.Present)
	require.True(t, h.Star.Result.Present)
	assert.Equal(t, "The problem was our team’s “legacy” deploys.", answer[h.Star.Situation.Start:h.Star.Situation.End])
	assert.Equal(t, "As a Result we cut deploy time by 40%.", answer[h.Star.Result.Start:h.Star.Result.End])
	assert.True(t, h.ResultQuantified)
}

func TestAnalyzeAnswerHeuristics_ResultWithoutNumbers(t *testing.T) {
	h := AnalyzeAnswerHeuristics(Context{Answer: "In 2021 I led the rewrite. As a result the team was happier."})

	assert.True(t, h.HasNumbers)
	assert.True(t, h.Star.Result.Present)
	assert.False(t, h.ResultQuantified)
}

func TestAnalyzeAnswerHeuristics_DecimalsDoNotSplitSentences(t *testing.T) {
	h := AnalyzeAnswerHeuristics(Context{Answer: "Latency dropped from 3.2 to 1.1 seconds. Then we shipped!"})

	assert.Equal(t, 2, h.Sentences)
	assert.Equal(t, 2, h.NumericTokens)
}

func TestAnalyzeAnswerHeuristics_FirstPerson(t *testing.T) {
	h := AnalyzeAnswerHeuristics(Context{Answer: "I built it myself, but we shipped it with our team and my manager."})

	assert.Equal(t, 3, h.FirstPersonSingular)
	assert.Equal(t, 2, h.FirstPersonPlural)
}

func TestAnalyzeAnswerHeuristics_ContextOverlap(t *testing.T) {
	ctx := Context{
		Answer:        "I migrated our Kubernetes clusters and kept customers informed throughout.",
		JDCore:        Requirements{"Experience with Kubernetes and Go", "Strong PostgreSQL skills"},
		CompanyValues: []string{"Customer Obsession", "Frugality", " "},
		UserProfile: &UserProfile{
			Interviewer: &Interviewer{Name: "Sam", Focus: []string{"kubernetes", "incident response"}},
		},
		MatchMatrix: &MatchMatrix{CommunityTopics: []string{"cluster migrations", "open source"}},
	}

	h := AnalyzeAnswerHeuristics(ctx)

	assert.Equal(t, 2, h.JDKeywords)
	assert.Equal(t, 1, h.JDMatches)
	assert.InDelta(t, 0.5, h.JDOverlap(), 0.0001)
	assert.Equal(t, []string{"Customer Obsession"}, h.ValuesMatched)
	assert.Equal(t, 1, h.CommunityMatched)
	assert.Equal(t, 1, h.InterviewerFocusHits)
}

func TestCountTerm(t *testing.T) {
	cases := []struct {
		text   string
		term   string
		prefix bool
		want   int
	}{
		{"the team's teamwork", "team", false, 1},
		{"the team's teamwork", "team", true, 2},
		{"a steam engine", "team", true, 0},
		{"some things, something", "some", false, 1},
		{"nobody else, truly nobody else", "nobody else", false, 2},
		{"", "team", false, 0},
		{"team", "", false, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, countTerm(tc.text, tc.term, tc.prefix), "%q in %q", tc.term, tc.text)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("first line\nsecond one. third? yes")

	texts := make([]string, 0, len(got))
	for _, s := range got {
		texts = append(texts, s.text)
	}

	assert.Equal(t, []string{"first line", "second one.", "third?", "yes"}, texts)
}
