package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// Row is one line of a batch summary.
type Row struct {
	Name    string
	Persona scorer.Persona
	Overall int
	Lowest  scorer.Dimension
	Flags   []string
	Err     error
}

// RowFor summarizes a report for the batch table.
func RowFor(name string, r Report) (row Row) {
	result := r.Evaluation.Result
	lowest, _ := result.Lowest()
	row = Row{
		Name:    name,
		Persona: result.Persona,
		Overall: result.Overall,
		Lowest:  lowest,
		Flags:   result.Flags,
	}
	return row
}

// WriteTable renders the scores as a table followed by follow-ups and
// calls to action.
func WriteTable(w io.Writer, r Report) (err error) {
	result := r.Evaluation.Result

	_, err = fmt.Fprintf(w, "Overall: %d/100 (%s, confidence %.2f)\n", result.Overall, Label(string(result.Persona)), result.Confidence)
	if err != nil {
		err = errors.Wrap(err, "failed to write report header")
		return err
	}

	weights := scorer.NormalizedWeights(result.Persona)
	table := tablewriter.NewWriter(w)
	table.Header("Dimension", "Score", "Weight")
	for _, d := range scorer.Dimensions {
		err = table.Append([]string{
			d.Label,
			strconv.Itoa(result.Subscores[d.Name]),
			fmt.Sprintf("%.0f%%", weights[d.Name]*100),
		})
		if err != nil {
			err = errors.Wrap(err, "failed to add table row")
			return err
		}
	}
	err = table.Render()
	if err != nil {
		err = errors.Wrap(err, "failed to render table")
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Flags: %s\n", flagList(result.Flags)))
	if result.CeilingApplied {
		sb.WriteString(fmt.Sprintf("Ceiling: %s\n", strings.Join(result.Ceilings, ", ")))
	}
	sb.WriteString("\nFollow-up questions:\n")
	for i, p := range r.Evaluation.Prompts {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p.Text))
	}
	sb.WriteString("\n" + r.Evaluation.Improvements.Summary + "\n")
	for _, cta := range r.Evaluation.Improvements.CTAs {
		sb.WriteString(fmt.Sprintf("  - %s\n", cta))
	}

	_, err = io.WriteString(w, sb.String())
	if err != nil {
		err = errors.Wrap(err, "failed to write report details")
		return err
	}

	return err
}

// WriteMarkdown renders the report as a markdown document.
func WriteMarkdown(w io.Writer, r Report) (err error) {
	result := r.Evaluation.Result
	var sb strings.Builder

	sb.WriteString("# Interview Answer Evaluation\n\n")
	if r.Question != "" {
		sb.WriteString(fmt.Sprintf("**Question:** %s\n\n", r.Question))
	}
	sb.WriteString(fmt.Sprintf("**Persona:** %s  \n", Label(string(result.Persona))))
	sb.WriteString(fmt.Sprintf("**Overall:** %d/100  \n", result.Overall))
	sb.WriteString(fmt.Sprintf("**Confidence:** %.2f\n\n", result.Confidence))

	sb.WriteString("## Scores\n\n| Dimension | Score |\n|---|---|\n")
	for _, d := range scorer.Dimensions {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", d.Label, result.Subscores[d.Name]))
	}

	sb.WriteString("\n## Flags\n\n")
	if len(result.Flags) == 0 {
		sb.WriteString("None.\n")
	}
	for _, f := range result.Flags {
		desc := ""
		if flag, ok := scorer.FindRedFlag(f); ok {
			desc = ": " + flag.Description
		}
		sb.WriteString(fmt.Sprintf("- **%s**%s\n", Label(f), desc))
	}
	if result.CeilingApplied {
		sb.WriteString(fmt.Sprintf("\nScore capped by: %s\n", strings.Join(result.Ceilings, ", ")))
	}

	sb.WriteString("\n## Follow-up Questions\n\n")
	for i, p := range r.Evaluation.Prompts {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, p.Text))
	}

	sb.WriteString("\n## How to Improve\n\n")
	sb.WriteString(r.Evaluation.Improvements.Summary + "\n\n")
	for _, cta := range r.Evaluation.Improvements.CTAs {
		sb.WriteString(fmt.Sprintf("- %s\n", cta))
	}

	_, err = io.WriteString(w, sb.String())
	if err != nil {
		err = errors.Wrap(err, "failed to write markdown report")
		return err
	}

	return err
}

// WriteSummaryTable renders one row per scored session.
func WriteSummaryTable(w io.Writer, rows []Row) (err error) {
	table := tablewriter.NewWriter(w)
	table.Header("Session", "Persona", "Overall", "Lowest", "Flags")
	for _, row := range rows {
		cells := []string{row.Name, Label(string(row.Persona)), strconv.Itoa(row.Overall), Label(string(row.Lowest)), flagList(row.Flags)}
		if row.Err != nil {
			cells = []string{row.Name, "-", "-", "-", "error: " + row.Err.Error()}
		}
		err = table.Append(cells)
		if err != nil {
			err = errors.Wrap(err, "failed to add table row")
			return err
		}
	}

	err = table.Render()
	if err != nil {
		err = errors.Wrap(err, "failed to render table")
		return err
	}

	return err
}

func flagList(flags []string) string {
	if len(flags) == 0 {
		return "none"
	}
	return strings.Join(flags, ", ")
}
