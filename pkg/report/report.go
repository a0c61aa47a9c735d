package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Version is stamped into every report.
//
//nolint:gochecknoglobals // Set via ldflags
var Version = "1.0.0"

// Report wraps an evaluation with identity and provenance.
type Report struct {
	ID          string           `json:"id"`
	EvaluatedAt time.Time        `json:"evaluated_at"`
	Version     string           `json:"version"` // interview-coach version
	Source      string           `json:"source,omitempty"`
	Question    string           `json:"question,omitempty"`
	Evaluation  coach.Evaluation `json:"evaluation"`
}

// New creates a report for eval. Source is the session file, when there is one.
func New(question, source string, eval coach.Evaluation) (r Report) {
	r = Report{
		ID:          uuid.NewString(),
		EvaluatedAt: time.Now().UTC(),
		Version:     Version,
		Source:      source,
		Question:    question,
		Evaluation:  eval,
	}
	return r
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) (err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(r)
	if err != nil {
		err = errors.Wrap(err, "failed to encode report")
		return err
	}
	return err
}

// WriteFile writes the report to path, creating parent directories.
func WriteFile(path string, r Report) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create report directory: %s", dir)
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(r, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal report")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write report file: %s", path)
		return err
	}

	return err
}

// Load reads a report written by WriteFile.
func Load(path string) (r Report, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read report file: %s", path)
		return r, err
	}

	err = json.Unmarshal(data, &r)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse report file: %s", path)
		return r, err
	}

	return r, err
}

// Label turns identifiers such as hiring-manager or no-metric into display text.
func Label(s string) (label string) {
	titleCaser := cases.Title(language.English)
	label = titleCaser.String(strings.ReplaceAll(s, "-", " "))
	return label
}
