package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/nikogura/interview-coach/pkg/jd"
	"github.com/nikogura/interview-coach/pkg/renderer"
	"github.com/nikogura/interview-coach/pkg/report"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/nikogura/interview-coach/pkg/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreOpts scoreFlags

type scoreFlags struct {
	answer     string
	answerFile string
	question   string
	persona    string
	jdPath     string
	values     []string
	format     string
	out        string
	pdf        string
}

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score [session.json]",
	Short: "Score one interview answer",
	Long: `Scores a single answer and prints subscores, red flags, follow-up questions
and improvement suggestions.

The answer comes from a session file, --answer, or --answer-file ("-" reads stdin).
Flags override the matching session fields.

Examples:
  # Score a saved session
  interview-coach score sessions/latency.json

  # Score an ad-hoc answer for a recruiter screen
  interview-coach score --answer "..." --persona recruiter --value "Customer Obsession"

  # Score against a job description and save the full report
  interview-coach score --answer-file answer.txt --jd posting.html --out report.json

  # Export a PDF for review
  interview-coach score sessions/latency.json --pdf latency.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreOpts.answer, "answer", "", "Answer text")
	scoreCmd.Flags().StringVar(&scoreOpts.answerFile, "answer-file", "", "File containing the answer (- for stdin)")
	scoreCmd.Flags().StringVar(&scoreOpts.question, "question", "", "Interview question, for the report")
	scoreCmd.Flags().StringVar(&scoreOpts.persona, "persona", "", "Interviewer persona: recruiter, hiring-manager or peer (default from config)")
	scoreCmd.Flags().StringVar(&scoreOpts.jdPath, "jd", "", "Job description file (- for stdin)")
	scoreCmd.Flags().StringArrayVar(&scoreOpts.values, "value", nil, "Company value (repeatable)")
	scoreCmd.Flags().StringVar(&scoreOpts.format, "format", "", "Output format: json, table or markdown (default from config)")
	scoreCmd.Flags().StringVar(&scoreOpts.out, "out", "", "Also write the JSON report to this file")
	scoreCmd.Flags().StringVar(&scoreOpts.pdf, "pdf", "", "Also export the report as PDF (requires pandoc)")
}

func runScore(cmd *cobra.Command, args []string) (err error) {
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

	// Build scoring context
	var sess session.Session
	var source string
	sess, source, err = buildSession(args, scoreOpts, cmd.InOrStdin())
	if err != nil {
		return err
	}

	format := scoreOpts.format
	if format == "" {
		format = cfg.Output
	}

	// Evaluate
	c := coach.New(cfg.Scoring.Options(), log)
	eval := c.Evaluate(sess.Context(scorer.Persona(cfg.Persona)))
	r := report.New(sess.Question, source, eval)

	if scoreOpts.out != "" {
		err = report.WriteFile(scoreOpts.out, r)
		if err != nil {
			err = fmt.Errorf("failed to write report: %w", err)
			return err
		}
		log.Debug("report written", zap.String("path", scoreOpts.out))
	}

	if scoreOpts.pdf != "" {
		_, err = renderer.ExportPDF(cmd.Context(), r, scoreOpts.pdf, getVerbose())
		if err != nil {
			err = fmt.Errorf("failed to export PDF: %w", err)
			return err
		}
		log.Debug("pdf exported", zap.String("path", scoreOpts.pdf))
	}

	err = renderReport(cmd.OutOrStdout(), format, r)
	return err
}

// buildSession merges the optional session file with command line flags.
func buildSession(args []string, opts scoreFlags, stdin io.Reader) (sess session.Session, source string, err error) {
	if len(args) > 0 {
		source = args[0]
		sess, err = session.Load(source)
		if err != nil {
			err = fmt.Errorf("failed to load session: %w", err)
			return sess, source, err
		}
	}

	// Answer
	switch {
	case opts.answer != "":
		sess.Answer = opts.answer
	case opts.answerFile != "":
		var text string
		text, err = readText(opts.answerFile, stdin)
		if err != nil {
			err = fmt.Errorf("failed to read answer: %w", err)
			return sess, source, err
		}
		sess.Answer = text
	}
	if strings.TrimSpace(sess.Answer) == "" {
		err = errors.New("provide a session file, --answer or --answer-file")
		return sess, source, err
	}

	if opts.question != "" {
		sess.Question = opts.question
	}

	if opts.persona != "" {
		if !scorer.Persona(opts.persona).Valid() {
			err = fmt.Errorf("unknown persona %q (want recruiter, hiring-manager or peer)", opts.persona)
			return sess, source, err
		}
		sess.Persona = opts.persona
	}

	// Job description
	if opts.jdPath != "" {
		var text string
		text, err = jd.Read(opts.jdPath, stdin)
		if err != nil {
			err = fmt.Errorf("failed to read job description: %w", err)
			return sess, source, err
		}
		sess.JDCore = jd.Requirements(text)
	}

	sess.CompanyValues = append(sess.CompanyValues, opts.values...)

	err = sess.Validate()
	if err != nil {
		err = fmt.Errorf("invalid input: %w", err)
		return sess, source, err
	}

	return sess, source, err
}

// readText reads a whole file, or stdin for "-".
func readText(path string, stdin io.Reader) (text string, err error) {
	var data []byte
	if path == jd.Stdin {
		if stdin == nil {
			err = errors.New("stdin is not available")
			return text, err
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return text, err
	}

	text = strings.TrimSpace(string(data))
	return text, err
}

// renderReport writes r to w in the requested format.
func renderReport(w io.Writer, format string, r report.Report) (err error) {
	switch format {
	case config.OutputJSON:
		err = report.WriteJSON(w, r)
	case config.OutputTable:
		err = report.WriteTable(w, r)
	case config.OutputMarkdown:
		err = report.WriteMarkdown(w, r)
	default:
		err = fmt.Errorf("unknown output format %q (want json, table or markdown)", format)
	}
	return err
}
