package scorer

import (
	"encoding/json"
	"strings"
)

// Persona is the kind of interviewer an answer is tailored for.
type Persona string

// Known personas.
const (
	PersonaRecruiter     Persona = "recruiter"
	PersonaHiringManager Persona = "hiring-manager"
	PersonaPeer          Persona = "peer"
)

// DefaultPersona is used when a context carries an unknown persona.
const DefaultPersona = PersonaHiringManager

// Valid reports whether p is one of the known personas.
func (p Persona) Valid() (ok bool) {
	switch p {
	case PersonaRecruiter, PersonaHiringManager, PersonaPeer:
		ok = true
	}
	return ok
}

// Normalize returns p when known, DefaultPersona otherwise.
func (p Persona) Normalize() (persona Persona) {
	persona = Persona(strings.ToLower(strings.TrimSpace(string(p))))
	if !persona.Valid() {
		persona = DefaultPersona
	}
	return persona
}

// Requirements holds job-description requirements. In JSON it may be a
// single excerpt string or a list of requirement strings.
type Requirements []string

// UnmarshalJSON accepts either a string or an array of strings.
func (r *Requirements) UnmarshalJSON(data []byte) (err error) {
	var single string
	if json.Unmarshal(data, &single) == nil {
		*r = nil
		if strings.TrimSpace(single) != "" {
			*r = Requirements{single}
		}
		return err
	}

	var list []string
	err = json.Unmarshal(data, &list)
	if err != nil {
		return err
	}
	*r = list
	return err
}

// Text joins all requirement strings into one lowercase blob.
func (r Requirements) Text() (text string) {
	text = strings.ToLower(strings.Join(r, "\n"))
	return text
}

// Interviewer identifies the person the answer will be delivered to.
type Interviewer struct {
	Name  string   `json:"name,omitempty"`
	Title string   `json:"title,omitempty"`
	Focus []string `json:"focus,omitempty"`
}

// UserProfile is structured information about the candidate.
type UserProfile struct {
	Name        string       `json:"name,omitempty"`
	Role        string       `json:"role,omitempty"`
	Seniority   string       `json:"seniority,omitempty"`
	Skills      []string     `json:"skills,omitempty"`
	Interviewer *Interviewer `json:"interviewer,omitempty"`
}

// MatchMatrix is an auxiliary signal bag produced by job matching.
type MatchMatrix struct {
	CommunityTopics []string `json:"community_topics,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
}

// Context is the input to a scoring call. The core never mutates it.
type Context struct {
	Answer          string       `json:"answer"`
	Persona         Persona      `json:"persona"`
	JDCore          Requirements `json:"jd_core,omitempty"`
	CompanyValues   []string     `json:"company_values,omitempty"`
	UserProfile     *UserProfile `json:"user_profile,omitempty"`
	MatchMatrix     *MatchMatrix `json:"match_matrix,omitempty"`
	StyleProfileID  string       `json:"style_profile_id,omitempty"`
	EvidenceQuality *float64     `json:"evidence_quality,omitempty"`
}

// HasJD reports whether any non-blank requirement was supplied.
func (c Context) HasJD() (ok bool) {
	ok = hasNonBlank(c.JDCore)
	return ok
}

// HasCompanyValues reports whether any non-blank company value was supplied.
func (c Context) HasCompanyValues() (ok bool) {
	ok = hasNonBlank(c.CompanyValues)
	return ok
}

// HasProfile reports whether a user profile was supplied.
func (c Context) HasProfile() (ok bool) {
	ok = c.UserProfile != nil
	return ok
}

// HasInterviewer reports whether the profile identifies an interviewer.
func (c Context) HasInterviewer() (ok bool) {
	if c.UserProfile == nil || c.UserProfile.Interviewer == nil {
		return ok
	}
	iv := c.UserProfile.Interviewer
	ok = strings.TrimSpace(iv.Name) != "" || strings.TrimSpace(iv.Title) != "" || hasNonBlank(iv.Focus)
	return ok
}

// HasCommunityTopics reports whether the match matrix carries community topics.
func (c Context) HasCommunityTopics() (ok bool) {
	ok = c.MatchMatrix != nil && hasNonBlank(c.MatchMatrix.CommunityTopics)
	return ok
}

func hasNonBlank(values []string) (ok bool) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			ok = true
			return ok
		}
	}
	return ok
}

// FlagDetail records the penalty applied for one triggered flag.
type FlagDetail struct {
	Name    string `json:"name"`
	Penalty int    `json:"penalty"`
}

// Result is the output of a scoring call.
type Result struct {
	Persona        Persona           `json:"persona"`
	Overall        int               `json:"overall"`
	Subscores      map[Dimension]int `json:"subscores"`
	Flags          []string          `json:"flags"`
	FlagDetails    []FlagDetail      `json:"flag_details,omitempty"`
	CeilingApplied bool              `json:"ceiling_applied"`
	Ceilings       []string          `json:"ceilings,omitempty"`
	Confidence     float64           `json:"confidence"`
	Reasons        []string          `json:"reasons"`
	Heuristics     Heuristics        `json:"heuristics"`
}

// Lowest returns the lowest-scoring dimension using the tie-break priority.
func (r Result) Lowest() (dim Dimension, score int) {
	ranked := RankDimensions(r.Subscores)
	if len(ranked) == 0 {
		return dim, score
	}
	dim = ranked[0]
	score = r.Subscores[dim]
	return dim, score
}
