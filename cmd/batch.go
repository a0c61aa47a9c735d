package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/nikogura/interview-coach/pkg/history"
	"github.com/nikogura/interview-coach/pkg/logger"
	"github.com/nikogura/interview-coach/pkg/report"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/nikogura/interview-coach/pkg/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//nolint:gochecknoglobals // Cobra boilerplate
var batchWorkers int

//nolint:gochecknoglobals // Cobra boilerplate
var batchCmd = &cobra.Command{
	Use:   "batch <session-directory>",
	Short: "Score every session file in a directory",
	Long: `Scores every *.json session in a directory concurrently.

Each result is written next to its session as <name>.evaluation.json, the
practice history index is rebuilt, and a summary table is printed. Sessions
that fail to load are reported in the table and do not stop the run.

Examples:
  interview-coach batch ~/interview-prep/sessions
  interview-coach batch ./sessions --workers 8 -v`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent evaluations (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()

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

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	dir := args[0]
	var paths []string
	paths, err = session.Find(dir)
	if err != nil {
		err = fmt.Errorf("failed to find sessions: %w", err)
		return err
	}

	log.Info("scoring sessions", zap.String("dir", dir), zap.Int("sessions", len(paths)), zap.Int("workers", workers))

	c := coach.New(cfg.Scoring.Options(), log)
	var rows []report.Row
	rows, err = scoreSessions(ctx, c, paths, scorer.Persona(cfg.Persona), workers, log)
	if err != nil {
		return err
	}

	// Rebuild practice history
	var indexer *history.Indexer
	indexer, err = history.NewIndexer(dir)
	if err != nil {
		err = fmt.Errorf("failed to create indexer: %w", err)
		return err
	}

	var count int
	count, err = indexer.Index(ctx)
	if err != nil {
		err = fmt.Errorf("failed to build practice index: %w", err)
		return err
	}
	log.Debug("practice index rebuilt", zap.String("path", indexer.Path()), zap.Int("entries", count))

	err = report.WriteSummaryTable(cmd.OutOrStdout(), rows)
	if err != nil {
		return err
	}

	successCount := 0
	for _, row := range rows {
		if row.Err == nil {
			successCount++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully scored %d/%d sessions\n", successCount, len(rows))

	return err
}

// scoreSessions evaluates sessions concurrently, writing each report next to
// its session. Rows keep the order of paths. Load failures are recorded in
// the row; write failures abort the run.
func scoreSessions(ctx context.Context, c *coach.Coach, paths []string, fallback scorer.Persona, workers int, log *zap.Logger) (rows []report.Row, err error) {
	rows = make([]report.Row, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			name := filepath.Base(path)
			sess, loadErr := session.Load(path)
			if loadErr != nil {
				log.Warn("skipping session", zap.String(logger.FieldSession, name), zap.Error(loadErr))
				rows[i] = report.Row{Name: name, Err: loadErr}
				return nil
			}

			r := report.New(sess.Question, path, c.Evaluate(sess.Context(fallback)))
			writeErr := report.WriteFile(session.EvaluationPath(path), r)
			if writeErr != nil {
				return fmt.Errorf("failed to write evaluation for %s: %w", name, writeErr)
			}

			rows[i] = report.RowFor(name, r)
			return nil
		})
	}

	err = g.Wait()
	return rows, err
}
