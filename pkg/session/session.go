package session

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// EvaluationSuffix marks evaluation output files written next to sessions.
const EvaluationSuffix = ".evaluation.json"

//go:embed session.schema.json
var schema []byte

// Session is one practice answer plus the context it is delivered in.
type Session struct {
	Question        string              `json:"question,omitempty" validate:"max=2000"`
	Answer          string              `json:"answer"`
	Persona         string              `json:"persona,omitempty" validate:"omitempty,oneof=recruiter hiring-manager peer"`
	JDCore          scorer.Requirements `json:"jd_core,omitempty"`
	CompanyValues   []string            `json:"company_values,omitempty" validate:"max=50"`
	UserProfile     *scorer.UserProfile `json:"user_profile,omitempty"`
	MatchMatrix     *scorer.MatchMatrix `json:"match_matrix,omitempty"`
	StyleProfileID  string              `json:"style_profile_id,omitempty"`
	EvidenceQuality *float64            `json:"evidence_quality,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// FieldError is a single validation failure at a field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema or struct failure in a session.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Context converts the session into a scoring context. A missing persona
// takes fallback.
func (s Session) Context(fallback scorer.Persona) (ctx scorer.Context) {
	persona := scorer.Persona(s.Persona)
	if persona == "" {
		persona = fallback
	}
	ctx = scorer.Context{
		Answer:          s.Answer,
		Persona:         persona.Normalize(),
		JDCore:          s.JDCore,
		CompanyValues:   s.CompanyValues,
		UserProfile:     s.UserProfile,
		MatchMatrix:     s.MatchMatrix,
		StyleProfileID:  s.StyleProfileID,
		EvidenceQuality: s.EvidenceQuality,
	}
	return ctx
}

// Validate checks struct-level constraints.
func (s Session) Validate() (err error) {
	validate := validator.New()
	err = validate.Struct(s)
	if err == nil {
		return err
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		err = errors.Wrap(err, "session validation failed")
		return err
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		ve.Errors = append(ve.Errors, FieldError{Field: fe.Field(), Message: "failed " + fe.Tag()})
	}
	err = ve
	return err
}

// ValidateJSON checks raw session JSON against the embedded schema.
func ValidateJSON(data []byte) (err error) {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		err = errors.Wrap(err, "failed to parse session JSON")
		return err
	}

	if result.Valid() {
		return err
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	err = ve
	return err
}

// Parse validates and decodes session JSON.
func Parse(data []byte) (s Session, err error) {
	// Schema
	err = ValidateJSON(data)
	if err != nil {
		return s, err
	}

	// Decode
	err = json.Unmarshal(data, &s)
	if err != nil {
		err = errors.Wrap(err, "failed to decode session")
		return s, err
	}

	// Struct rules
	err = s.Validate()
	return s, err
}

// Load reads a session from a JSON file.
func Load(path string) (s Session, err error) {
	// Read file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read session file: %s", path)
		return s, err
	}

	s, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "invalid session file: %s", path)
		return s, err
	}

	return s, err
}

// Save writes the session as indented JSON, creating parent directories.
func Save(path string, s Session) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create session directory: %s", dir)
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(s, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal session")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write session file: %s", path)
		return err
	}

	return err
}

// Find lists session files in dir, sorted by name. Evaluation outputs are skipped.
func Find(dir string) (paths []string, err error) {
	var entries []os.DirEntry
	entries, err = os.ReadDir(dir)
	if err != nil {
		err = errors.Wrapf(err, "failed to read session directory: %s", dir)
		return paths, err
	}

	paths = make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, EvaluationSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)

	return paths, err
}

// EvaluationPath returns the output path for a session file.
func EvaluationPath(sessionPath string) (path string) {
	path = strings.TrimSuffix(sessionPath, filepath.Ext(sessionPath)) + EvaluationSuffix
	return path
}
