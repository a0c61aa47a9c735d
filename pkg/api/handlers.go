package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/nikogura/interview-coach/pkg/followup"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/nikogura/interview-coach/pkg/session"
	"github.com/nikogura/interview-coach/pkg/summaries"
	"github.com/pkg/errors"
)

// FollowUpsRequest asks for follow-up prompts given a prior scoring.
type FollowUpsRequest struct {
	Context   session.Session          `json:"context"`
	Subscores map[scorer.Dimension]int `json:"subscores" validate:"dive,gte=0,lte=100"`
	Flags     []string                 `json:"flags"`
}

// SummaryRequest asks for an improvement summary.
type SummaryRequest struct {
	Subscores map[scorer.Dimension]int `json:"subscores" validate:"dive,gte=0,lte=100"`
	Flags     []string                 `json:"flags"`
	Persona   string                   `json:"persona" validate:"omitempty,oneof=recruiter hiring-manager peer"`
}

// ConfidenceRequest asks for a confidence breakdown.
type ConfidenceRequest struct {
	Context         session.Session `json:"context"`
	ModelConfidence *float64        `json:"model_confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// FollowUpsResponse wraps the generated prompts.
type FollowUpsResponse struct {
	Prompts []followup.PromptItem `json:"followups"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if !json.Valid(data) {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "malformed JSON"})
		return
	}

	sess, err := session.Parse(data)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	eval := s.coach.Evaluate(sess.Context(scorer.DefaultPersona))
	s.jsonResponse(w, http.StatusOK, eval)
}

func (s *Server) handleFollowUps(w http.ResponseWriter, r *http.Request) {
	var req FollowUpsRequest
	err := s.decode(w, r, &req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	prompts := followup.BuildFollowUpPrompts(req.Context.Context(scorer.DefaultPersona), followup.Scoring{
		Subscores: req.Subscores,
		Flags:     req.Flags,
	})
	s.jsonResponse(w, http.StatusOK, FollowUpsResponse{Prompts: prompts})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	err := s.decode(w, r, &req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	imp := summaries.SummarizeImprovements(req.Subscores, req.Flags, scorer.Persona(req.Persona))
	s.jsonResponse(w, http.StatusOK, imp)
}

func (s *Server) handleConfidence(w http.ResponseWriter, r *http.Request) {
	var req ConfidenceRequest
	err := s.decode(w, r, &req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	report := s.coach.Confidence(req.Context.Context(scorer.DefaultPersona), req.ModelConfidence)
	s.jsonResponse(w, http.StatusOK, report)
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) (err error) {
	var data []byte
	data, err = readBody(w, r)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(v)
	if err != nil {
		err = &ErrValidation{Field: "body", Message: err.Error()}
		return err
	}

	err = s.validator.Struct(v)
	if err != nil {
		err = validationError(err)
		return err
	}

	return err
}

// readBody reads at most MaxBodyBytes from the request.
func readBody(w http.ResponseWriter, r *http.Request) (data []byte, err error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	data, err = io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = &ErrTooLarge{Limit: tooLarge.Limit}
			return data, err
		}
		err = errors.Wrap(err, "failed to read request body")
		return data, err
	}

	return data, err
}
