package history

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/nikogura/interview-coach/pkg/summaries"
)

// Summarize computes practice trends from an index, optionally restricted
// to one persona. An empty persona includes every entry.
func Summarize(index Index, persona scorer.Persona) (trends Trends) {
	trends = Trends{
		RecurringFlags: []Count{},
		WeakDimensions: []Count{},
	}

	flagCounts := make(map[string]int)
	dimCounts := make(map[string]int)
	total := 0

	for i := range index.Entries {
		entry := index.Entries[i]
		if persona != "" && entry.Persona != persona {
			continue
		}

		trends.Sessions++
		total += entry.Overall
		if trends.Best == nil || entry.Overall > trends.Best.Overall {
			trends.Best = &index.Entries[i]
		}
		if trends.Latest == nil || !entry.EvaluatedAt.Before(trends.Latest.EvaluatedAt) {
			trends.Latest = &index.Entries[i]
		}

		for _, f := range entry.Flags {
			flagCounts[f]++
		}
		if entry.Lowest != "" {
			dimCounts[string(entry.Lowest)]++
		}
	}

	if trends.Sessions > 0 {
		trends.AverageOverall = math.Round(float64(total)/float64(trends.Sessions)*10) / 10
	}
	trends.RecurringFlags = sortedCounts(flagCounts)
	trends.WeakDimensions = sortedCounts(dimCounts)

	return trends
}

// sortedCounts orders by count descending, then name.
func sortedCounts(counts map[string]int) (out []Count) {
	out = make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Format renders trends as plain text for the terminal.
func Format(trends Trends) (formatted string) {
	if trends.Sessions == 0 {
		formatted = "No evaluated sessions yet."
		return formatted
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Practice history: %d session(s), average %.1f/100\n", trends.Sessions, trends.AverageOverall))
	if trends.Best != nil {
		sb.WriteString(fmt.Sprintf("Best: %d/100 (%s)\n", trends.Best.Overall, entryName(*trends.Best)))
	}
	if trends.Latest != nil {
		sb.WriteString(fmt.Sprintf("Latest: %d/100 (%s)\n", trends.Latest.Overall, entryName(*trends.Latest)))
	}

	if len(trends.RecurringFlags) > 0 {
		sb.WriteString("\nRecurring flags:\n")
		for _, c := range trends.RecurringFlags {
			line := fmt.Sprintf("  - %s (%d times)", c.Name, c.Count)
			if phrase, ok := summaries.FlagPhrases[c.Name]; ok {
				line += ": " + phrase.CTA
			}
			sb.WriteString(line + "\n")
		}
	}

	if len(trends.WeakDimensions) > 0 {
		sb.WriteString("\nWeakest dimensions:\n")
		for _, c := range trends.WeakDimensions {
			sb.WriteString(fmt.Sprintf("  - %s (lowest in %d session(s))\n", c.Name, c.Count))
		}
	}

	formatted = sb.String()
	return formatted
}

func entryName(e Entry) string {
	if e.Source != "" {
		return e.Source
	}
	return e.ID
}
