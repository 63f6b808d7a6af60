package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/observability"
	"github.com/ringforge/ringforge/pkg/plan"
)

// FileStore is a file-based plan store for CLI usage.
// Documents are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/ringforge/boards/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "ringforge", "boards")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create store dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) docPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, doc plan.Document) (plan.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Name != "" {
		existing, err := s.readAll()
		if err != nil {
			return plan.Document{}, err
		}
		for _, other := range existing {
			if other.Name == doc.Name && other.ID != doc.ID {
				if err := os.Remove(s.docPath(other.ID)); err != nil && !os.IsNotExist(err) {
					return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "replace plan %q", doc.Name)
				}
			}
		}
	}

	if doc.ID == "" {
		doc.ID = newID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "marshal plan")
	}
	if err := os.WriteFile(s.docPath(doc.ID), data, 0600); err != nil {
		observability.Store().OnError(ctx, "save", err)
		return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "write plan file")
	}
	observability.Store().OnSave(ctx, doc.Name)
	return doc, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.docPath(id))
	if os.IsNotExist(err) {
		return plan.Document{}, notFound("id", id)
	}
	if err != nil {
		return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "read plan file")
	}

	var doc plan.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "parse plan file")
	}
	return doc, nil
}

func (s *FileStore) GetByName(ctx context.Context, name string) (plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	docs, err := s.readAll()
	if err != nil {
		observability.Store().OnError(ctx, "get", err)
		return plan.Document{}, err
	}
	for _, doc := range docs {
		if doc.Name == name {
			observability.Store().OnLoad(ctx, name, time.Since(start))
			return doc, nil
		}
	}
	return plan.Document{}, notFound("name", name)
}

func (s *FileStore) List(ctx context.Context) ([]plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, err := s.readAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.docPath(id))
	if os.IsNotExist(err) {
		return notFound("id", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "remove plan file")
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// readAll loads every document in the store directory. Callers hold the lock.
func (s *FileStore) readAll() ([]plan.Document, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read store dir")
	}

	var docs []plan.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var doc plan.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			// Corrupt entries are skipped rather than failing the listing.
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
