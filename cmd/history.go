package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/nikogura/interview-coach/pkg/history"
	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var historyPersona string

//nolint:gochecknoglobals // Cobra boilerplate
var historyJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var historyRebuild bool

//nolint:gochecknoglobals // Cobra boilerplate
var historyCmd = &cobra.Command{
	Use:   "history <session-directory>",
	Short: "Show practice trends for a session directory",
	Long: `Summarizes the evaluations recorded by 'batch' in a session directory:
average score, best and latest attempts, recurring red flags and the
dimensions that most often score lowest.

Examples:
  interview-coach history ./sessions
  interview-coach history ./sessions --persona recruiter --json`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyPersona, "persona", "", "Only include sessions for this persona")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print trends as JSON")
	historyCmd.Flags().BoolVar(&historyRebuild, "rebuild", false, "Rebuild the index from evaluation files first")
}

func runHistory(cmd *cobra.Command, args []string) (err error) {
	persona := scorer.Persona(historyPersona)
	if persona != "" && !persona.Valid() {
		err = fmt.Errorf("unknown persona %q (want recruiter, hiring-manager or peer)", historyPersona)
		return err
	}

	var indexer *history.Indexer
	indexer, err = history.NewIndexer(args[0])
	if err != nil {
		err = fmt.Errorf("failed to create indexer: %w", err)
		return err
	}

	if historyRebuild {
		_, err = indexer.Index(cmd.Context())
		if err != nil {
			err = fmt.Errorf("failed to rebuild index: %w", err)
			return err
		}
	}

	var index history.Index
	index, err = indexer.LoadIndex()
	if err != nil {
		err = fmt.Errorf("failed to load index: %w", err)
		return err
	}

	trends := history.Summarize(index, persona)
	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		err = enc.Encode(trends)
		if err != nil {
			err = fmt.Errorf("failed to encode trends: %w", err)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), history.Format(trends))
	return err
}
