package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/nikogura/interview-coach/pkg/report"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/nikogura/interview-coach/pkg/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptRetry         = "Try the answer again"
	PromptNextQuestion  = "Answer a follow-up question"
	PromptChangePersona = "Change interviewer persona"
	PromptQuit          = "Quit"
)

//nolint:gochecknoglobals // Cobra boilerplate
var practiceSaveDir string

//nolint:gochecknoglobals // Cobra boilerplate
var practiceValues []string

//nolint:gochecknoglobals // Cobra boilerplate
var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice answers interactively",
	Long: `Interactive practice loop: pick an interviewer persona, type an answer,
and see its score, red flags, follow-up questions and suggestions. Retry the
same question, move on to a follow-up, or switch persona.

With --save-dir every attempt is saved as a session plus evaluation, ready
for 'interview-coach history'.

Example:
  interview-coach practice --value "Customer Obsession" --save-dir ./sessions`,
	RunE: runPractice,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(practiceCmd)
	practiceCmd.Flags().StringVar(&practiceSaveDir, "save-dir", "", "Save each attempt into this session directory")
	practiceCmd.Flags().StringArrayVar(&practiceValues, "value", nil, "Company value (repeatable)")
}

func runPractice(cmd *cobra.Command, _ []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	var log *zap.Logger
	log, err = newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c := coach.New(cfg.Scoring.Options(), log)

	var persona scorer.Persona
	persona, err = selectPersona(scorer.Persona(cfg.Persona))
	if err != nil {
		return ignoreInterrupt(err)
	}

	questionPrompt := promptui.Prompt{Label: "Interview question (optional)"}
	var question string
	question, err = questionPrompt.Run()
	if err != nil {
		return ignoreInterrupt(err)
	}

	for {
		answerPrompt := promptui.Prompt{
			Label: "Your answer",
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("answer is required")
				}
				return nil
			},
		}

		var answer string
		answer, err = answerPrompt.Run()
		if err != nil {
			return ignoreInterrupt(err)
		}

		sess := session.Session{
			Question:      question,
			Answer:        answer,
			Persona:       string(persona),
			CompanyValues: practiceValues,
		}
		r := report.New(question, "", c.Evaluate(sess.Context(persona)))

		err = report.WriteTable(cmd.OutOrStdout(), r)
		if err != nil {
			return err
		}

		if practiceSaveDir != "" {
			err = saveAttempt(practiceSaveDir, sess, r)
			if err != nil {
				return err
			}
		}

		next := promptui.Select{
			Label: "What next?",
			Items: []string{PromptRetry, PromptNextQuestion, PromptChangePersona, PromptQuit},
		}

		var choice string
		_, choice, err = next.Run()
		if err != nil {
			return ignoreInterrupt(err)
		}

		switch choice {
		case PromptQuit:
			return nil
		case PromptNextQuestion:
			question, err = selectFollowUp(r)
			if err != nil {
				return ignoreInterrupt(err)
			}
		case PromptChangePersona:
			persona, err = selectPersona(persona)
			if err != nil {
				return ignoreInterrupt(err)
			}
		}
	}
}

func selectPersona(current scorer.Persona) (persona scorer.Persona, err error) {
	items := []string{string(scorer.PersonaRecruiter), string(scorer.PersonaHiringManager), string(scorer.PersonaPeer)}
	cursor := 0
	for i, item := range items {
		if item == string(current.Normalize()) {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     "Interviewer persona",
		Items:     items,
		CursorPos: cursor,
	}

	var selected string
	_, selected, err = prompt.Run()
	persona = scorer.Persona(selected)
	return persona, err
}

func selectFollowUp(r report.Report) (question string, err error) {
	items := make([]string, 0, len(r.Evaluation.Prompts))
	for _, p := range r.Evaluation.Prompts {
		items = append(items, p.Text)
	}

	prompt := promptui.Select{
		Label: "Choose a follow-up question",
		Items: items,
	}

	_, question, err = prompt.Run()
	return question, err
}

// saveAttempt writes the session and its evaluation into dir.
func saveAttempt(dir string, sess session.Session, r report.Report) (err error) {
	name := fmt.Sprintf("practice-%s", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name+".json")

	err = session.Save(path, sess)
	if err != nil {
		err = fmt.Errorf("failed to save session: %w", err)
		return err
	}

	r.Source = path
	err = report.WriteFile(session.EvaluationPath(path), r)
	if err != nil {
		err = fmt.Errorf("failed to save evaluation: %w", err)
		return err
	}

	return err
}

// ignoreInterrupt treats Ctrl-C and Ctrl-D at a prompt as a normal exit.
func ignoreInterrupt(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}
