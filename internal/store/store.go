// Package store loads the JSON documents of one property directory into
// memory. Each file becomes a models.Document keyed by its filename-derived
// id; files that fail to parse are skipped with a warning so one bad document
// never takes down a property build.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/models"
)

// Store loads property directories.
type Store struct {
	logger arbor.ILogger
}

// New creates a document store.
func New(logger arbor.ILogger) *Store {
	return &Store{logger: logger}
}

// Load reads every *.json file in dir into a map keyed by document id (the
// filename without extension). Non-JSON siblings such as images are ignored.
// A missing or unreadable directory is an error; a file that fails to parse
// is logged and excluded.
func (s *Store) Load(dir string) (map[string]*models.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read property directory %s: %w", dir, err)
	}

	docs := make(map[string]*models.Document)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		id := strings.TrimSuffix(entry.Name(), ".json")

		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to read document, skipping")
			continue
		}

		var content map[string]any
		if err := json.Unmarshal(data, &content); err != nil {
			s.logger.Warn().Err(err).Str("doc_id", id).Str("path", path).Msg("Failed to parse document, skipping")
			continue
		}

		docs[id] = &models.Document{
			ID:      id,
			Path:    path,
			Content: content,
		}
	}

	s.logger.Debug().Str("dir", dir).Int("documents", len(docs)).Msg("Property documents loaded")

	return docs, nil
}
