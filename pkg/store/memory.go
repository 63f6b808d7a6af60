package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ringforge/ringforge/pkg/plan"
)

// MemoryStore is an in-memory plan store for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]plan.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]plan.Document)}
}

func (s *MemoryStore) Save(ctx context.Context, doc plan.Document) (plan.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Saving under an existing name replaces that plan.
	if doc.Name != "" {
		for id, existing := range s.docs {
			if existing.Name == doc.Name && id != doc.ID {
				delete(s.docs, id)
			}
		}
	}

	if doc.ID == "" {
		doc.ID = newID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	s.docs[doc.ID] = doc
	return doc, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return plan.Document{}, notFound("id", id)
	}
	return doc, nil
}

func (s *MemoryStore) GetByName(ctx context.Context, name string) (plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.Name == name {
			return doc, nil
		}
	}
	return plan.Document{}, notFound("name", name)
}

func (s *MemoryStore) List(ctx context.Context) ([]plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]plan.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return notFound("id", id)
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
