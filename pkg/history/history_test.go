package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/nikogura/interview-coach/pkg/report"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReport(t *testing.T, dir, name string, ctx scorer.Context, at time.Time) report.Report {
	t.Helper()
	eval := coach.New(scorer.DefaultOptions(), nil).Evaluate(ctx)
	r := report.New("", name+".json", eval)
	r.EvaluatedAt = at
	require.NoError(t, report.WriteFile(filepath.Join(dir, name+".evaluation.json"), r))
	return r
}

func TestNewIndexer(t *testing.T) {
	_, err := NewIndexer("")
	assert.Error(t, err)

	idx, err := NewIndexer("/tmp/sessions")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sessions/.practice-index.json", idx.Path())
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	writeReport(t, dir, "second", scorer.Context{Answer: "I did a thing."}, start.Add(time.Hour))
	first := writeReport(t, dir, "first", scorer.Context{Answer: "I did a thing.", Persona: scorer.PersonaPeer}, start)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.evaluation.json"), []byte("{"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.json"), []byte(`{"answer": "x"}`), 0600))

	idx, err := NewIndexer(dir)
	require.NoError(t, err)

	count, err := idx.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	index, err := idx.LoadIndex()
	require.NoError(t, err)
	require.Len(t, index.Entries, 2)
	assert.Equal(t, first.ID, index.Entries[0].ID)
	assert.Equal(t, scorer.PersonaPeer, index.Entries[0].Persona)
	assert.Contains(t, index.Entries[0].Flags, scorer.FlagIncompleteAnswer)
	assert.Equal(t, report.Version, index.Version)
}

func TestIndexCancelled(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "one", scorer.Context{Answer: "I did a thing."}, time.Now())

	idx, err := NewIndexer(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = idx.Index(ctx)
	assert.Error(t, err)
}

func TestLoadIndexMissing(t *testing.T) {
	idx, err := NewIndexer(t.TempDir())
	require.NoError(t, err)

	index, err := idx.LoadIndex()
	require.NoError(t, err)
	assert.Empty(t, index.Entries)
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	index := Index{Entries: []Entry{
		{ID: "a", Persona: scorer.PersonaPeer, EvaluatedAt: base, Overall: 40, Flags: []string{"no-metric", "vague-claims"}, Lowest: scorer.DimSpecificity},
		{ID: "b", Persona: scorer.PersonaPeer, EvaluatedAt: base.Add(time.Hour), Overall: 71, Flags: []string{"no-metric"}, Lowest: scorer.DimOutcome},
		{ID: "c", Persona: scorer.PersonaRecruiter, EvaluatedAt: base.Add(2 * time.Hour), Overall: 55, Flags: []string{}, Lowest: scorer.DimSpecificity},
	}}

	tests := []struct {
		name        string
		persona     scorer.Persona
		sessions    int
		average     float64
		best        string
		latest      string
		topFlag     Count
		topWeakness Count
	}{
		{
			name:        "all personas",
			sessions:    3,
			average:     55.3,
			best:        "b",
			latest:      "c",
			topFlag:     Count{Name: "no-metric", Count: 2},
			topWeakness: Count{Name: "specificity", Count: 2},
		},
		{
			name:        "peer only",
			persona:     scorer.PersonaPeer,
			sessions:    2,
			average:     55.5,
			best:        "b",
			latest:      "b",
			topFlag:     Count{Name: "no-metric", Count: 2},
			topWeakness: Count{Name: "outcome", Count: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trends := Summarize(index, tt.persona)

			assert.Equal(t, tt.sessions, trends.Sessions)
			assert.InDelta(t, tt.average, trends.AverageOverall, 0.001)
			require.NotNil(t, trends.Best)
			assert.Equal(t, tt.best, trends.Best.ID)
			require.NotNil(t, trends.Latest)
			assert.Equal(t, tt.latest, trends.Latest.ID)
			require.NotEmpty(t, trends.RecurringFlags)
			assert.Equal(t, tt.topFlag, trends.RecurringFlags[0])
			assert.Equal(t, tt.topWeakness, trends.WeakDimensions[0])
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "No evaluated sessions yet.", Format(Summarize(Index{}, "")))

	trends := Summarize(Index{Entries: []Entry{
		{ID: "a", Source: "perf.json", Overall: 62, Flags: []string{"no-metric"}, Lowest: scorer.DimOutcome},
	}}, "")
	out := Format(trends)

	assert.Contains(t, out, "1 session(s), average 62.0/100")
	assert.Contains(t, out, "Best: 62/100 (perf.json)")
	assert.Contains(t, out, "no-metric (1 times): Add KPI")
	assert.Contains(t, out, "outcome (lowest in 1 session(s))")
}
