package history

import (
	"time"

	"github.com/nikogura/interview-coach/pkg/scorer"
)

// IndexFile is the index name written into a session directory.
const IndexFile = ".practice-index.json"

// Index is the searchable index of all evaluated sessions in a directory.
type Index struct {
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   string    `json:"version"`
}

// Entry is a compact summary of one evaluation report.
type Entry struct {
	ID          string           `json:"id"`
	Source      string           `json:"source,omitempty"`
	Persona     scorer.Persona   `json:"persona"`
	EvaluatedAt time.Time        `json:"evaluated_at"`
	Overall     int              `json:"overall"`
	Confidence  float64          `json:"confidence"`
	Flags       []string         `json:"flags"`
	Lowest      scorer.Dimension `json:"lowest_dimension"`
	Path        string           `json:"path"` // Path to full report
}

// Count is a label with the number of times it occurred.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Trends summarizes practice progress across indexed sessions.
type Trends struct {
	Sessions       int     `json:"sessions"`
	AverageOverall float64 `json:"average_overall"`
	Best           *Entry  `json:"best,omitempty"`
	Latest         *Entry  `json:"latest,omitempty"`
	RecurringFlags []Count `json:"recurring_flags"`
	WeakDimensions []Count `json:"weak_dimensions"`
}
