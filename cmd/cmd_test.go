package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/nikogura/interview-coach/pkg/report"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/nikogura/interview-coach/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sessionJSON = `{
  "question": "Tell me about a reliability win.",
  "answer": "Situation: our nightly export failed twice a week. Task: I owned the fix. Action: I added retries and alerting with the data team. Result: failures dropped to zero for 3 months.",
  "persona": "peer",
  "company_values": ["Ownership"]
}`

func writeSession(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestBuildSession(t *testing.T) {
	dir := t.TempDir()
	sessionPath := writeSession(t, dir, "win.json", sessionJSON)
	answerPath := writeSession(t, dir, "answer.txt", "  I rebuilt the deploy pipeline.  \n")
	jdPath := writeSession(t, dir, "jd.txt", "- Own deployment tooling end to end\n- Mentor engineers on the team")

	tests := []struct {
		name       string
		args       []string
		opts       scoreFlags
		stdin      string
		wantErr    bool
		wantAnswer string
		check      func(t *testing.T, s session.Session)
	}{
		{
			name:       "session file",
			args:       []string{sessionPath},
			wantAnswer: "Situation: our nightly export",
			check: func(t *testing.T, s session.Session) {
				assert.Equal(t, "peer", s.Persona)
				assert.Equal(t, []string{"Ownership"}, s.CompanyValues)
			},
		},
		{
			name:       "flags override session",
			args:       []string{sessionPath},
			opts:       scoreFlags{answer: "New answer.", persona: "recruiter", values: []string{"Frugality"}},
			wantAnswer: "New answer.",
			check: func(t *testing.T, s session.Session) {
				assert.Equal(t, "recruiter", s.Persona)
				assert.Equal(t, []string{"Ownership", "Frugality"}, s.CompanyValues)
			},
		},
		{
			name:       "answer file and jd",
			opts:       scoreFlags{answerFile: answerPath, jdPath: jdPath},
			wantAnswer: "I rebuilt the deploy pipeline.",
			check: func(t *testing.T, s session.Session) {
				assert.Equal(t, scorer.Requirements{"Own deployment tooling end to end", "Mentor engineers on the team"}, s.JDCore)
			},
		},
		{
			name:       "answer from stdin",
			opts:       scoreFlags{answerFile: "-"},
			stdin:      "Piped answer.",
			wantAnswer: "Piped answer.",
		},
		{name: "no answer", wantErr: true},
		{name: "bad persona", opts: scoreFlags{answer: "x", persona: "cto"}, wantErr: true},
		{name: "missing session", args: []string{filepath.Join(dir, "missing.json")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, err := buildSession(tt.args, tt.opts, strings.NewReader(tt.stdin))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(s.Answer, tt.wantAnswer), "answer %q", s.Answer)
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestRenderReport(t *testing.T) {
	r := report.New("q", "", coach.New(scorer.DefaultOptions(), nil).Evaluate(scorer.Context{Answer: "I did a thing."}))

	for _, format := range []string{config.OutputJSON, config.OutputTable, config.OutputMarkdown} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderReport(&buf, format, r))
			assert.NotEmpty(t, buf.String())
		})
	}

	assert.Error(t, renderReport(&bytes.Buffer{}, "xml", r))
}

func TestScoreSessions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json", "c.json", "d.json"} {
		writeSession(t, dir, name, sessionJSON)
	}
	writeSession(t, dir, "broken.json", `{"answer": "x", "persona": "ceo"}`)

	paths, err := session.Find(dir)
	require.NoError(t, err)
	require.Len(t, paths, 5)

	c := coach.New(scorer.DefaultOptions(), nil)
	rows, err := scoreSessions(context.Background(), c, paths, scorer.DefaultPersona, 3, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "a.json", rows[0].Name)
	assert.Equal(t, "broken.json", rows[2].Name)
	assert.Error(t, rows[2].Err)

	// Identical sessions score identically regardless of scheduling.
	want := rows[0].Overall
	for _, row := range []report.Row{rows[1], rows[3], rows[4]} {
		require.NoError(t, row.Err)
		assert.Equal(t, want, row.Overall)
		assert.Equal(t, scorer.PersonaPeer, row.Persona)
	}

	written, err := report.Load(filepath.Join(dir, "a.evaluation.json"))
	require.NoError(t, err)
	assert.Equal(t, want, written.Evaluation.Result.Overall)
	assert.Equal(t, filepath.Join(dir, "a.json"), written.Source)

	_, err = os.Stat(filepath.Join(dir, "broken.evaluation.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestScoreSessionsCancelled(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.json", sessionJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scoreSessions(ctx, coach.New(scorer.DefaultOptions(), nil), []string{filepath.Join(dir, "a.json")}, scorer.DefaultPersona, 1, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}
