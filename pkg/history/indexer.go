package history

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nikogura/interview-coach/pkg/report"
	"github.com/nikogura/interview-coach/pkg/session"
	"github.com/pkg/errors"
)

// Indexer indexes evaluation reports under a session directory.
type Indexer struct {
	sessionsPath string
	indexPath    string // <sessionsPath>/.practice-index.json
}

// NewIndexer creates a new indexer instance.
func NewIndexer(sessionsPath string) (indexer *Indexer, err error) {
	if sessionsPath == "" {
		err = errors.New("sessions path is required")
		return indexer, err
	}

	indexer = &Indexer{
		sessionsPath: sessionsPath,
		indexPath:    filepath.Join(sessionsPath, IndexFile),
	}

	return indexer, err
}

// Path returns the index file location.
func (idx *Indexer) Path() (path string) {
	path = idx.indexPath
	return path
}

// Index scans all evaluation reports and rewrites the index. Unreadable
// reports are skipped.
func (idx *Indexer) Index(ctx context.Context) (count int, err error) {
	entries := []Entry{}

	walkErr := filepath.WalkDir(idx.sessionsPath, func(path string, d fs.DirEntry, walkErr error) (walkFuncErr error) {
		if walkErr != nil {
			walkFuncErr = walkErr
			return walkFuncErr
		}
		walkFuncErr = ctx.Err()
		if walkFuncErr != nil {
			return walkFuncErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), session.EvaluationSuffix) {
			return walkFuncErr
		}

		r, loadErr := report.Load(path)
		if loadErr != nil {
			return walkFuncErr
		}

		entries = append(entries, entryFor(path, r))
		return walkFuncErr
	})
	if walkErr != nil {
		err = errors.Wrap(walkErr, "failed to walk sessions directory")
		return count, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EvaluatedAt.Before(entries[j].EvaluatedAt)
	})

	index := Index{
		Entries:   entries,
		UpdatedAt: time.Now().UTC(),
		Version:   report.Version,
	}

	err = idx.writeIndex(index)
	if err != nil {
		return count, err
	}

	count = len(entries)
	return count, err
}

func entryFor(path string, r report.Report) (entry Entry) {
	result := r.Evaluation.Result
	lowest, _ := result.Lowest()
	entry = Entry{
		ID:          r.ID,
		Source:      r.Source,
		Persona:     result.Persona,
		EvaluatedAt: r.EvaluatedAt,
		Overall:     result.Overall,
		Confidence:  result.Confidence,
		Flags:       result.Flags,
		Lowest:      lowest,
		Path:        path,
	}
	return entry
}

func (idx *Indexer) writeIndex(index Index) (err error) {
	var data []byte
	data, err = json.MarshalIndent(index, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal index")
		return err
	}

	err = os.WriteFile(idx.indexPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write index file: %s", idx.indexPath)
		return err
	}

	return err
}

// LoadIndex loads the existing index from disk. A missing index is empty.
func (idx *Indexer) LoadIndex() (index Index, err error) {
	var data []byte
	data, err = os.ReadFile(idx.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			index = Index{
				Entries:   []Entry{},
				UpdatedAt: time.Now().UTC(),
				Version:   report.Version,
			}
			err = nil
			return index, err
		}
		err = errors.Wrap(err, "failed to read index file")
		return index, err
	}

	err = json.Unmarshal(data, &index)
	if err != nil {
		err = errors.Wrap(err, "failed to parse index JSON")
		return index, err
	}

	return index, err
}
