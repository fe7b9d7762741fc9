// internal/journal/journal.go
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/johananj/geocaption/internal/logger"
)

// Journal tracks processed files so an interrupted run can be resumed
// without re-captioning outputs that already exist.
type Journal struct {
	path    string
	Entries map[string]Entry `json:"entries"`
}

// Entry records one processed file, keyed by its input-relative path.
type Entry struct {
	Path      string    `json:"path"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a journal stored at path. An empty path picks a default file
// in the user's home directory.
func New(path string) *Journal {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".geocaption-journal.json")
		} else {
			path = ".geocaption-journal.json"
		}
	}

	return &Journal{
		path:    path,
		Entries: make(map[string]Entry),
	}
}

// Load loads the journal from disk. A missing file starts a fresh journal.
func (j *Journal) Load() error {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no journal at %s, starting fresh", j.path)
			return nil
		}
		return err
	}

	var loaded Journal
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if loaded.Entries != nil {
		j.Entries = loaded.Entries
	}

	logger.Info("loaded journal with %d entries from %s", len(j.Entries), j.path)
	return nil
}

// Save writes the journal to disk.
func (j *Journal) Save() error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0644)
}

// MarkProcessed records a successfully saved file.
func (j *Journal) MarkProcessed(relPath, outPath string) {
	j.Entries[relPath] = Entry{
		Path:      relPath,
		Output:    outPath,
		Timestamp: time.Now(),
	}
}

// IsProcessed reports whether a file was already handled by a previous run.
func (j *Journal) IsProcessed(relPath string) bool {
	_, ok := j.Entries[relPath]
	return ok
}
