package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/zxtools/zxviz/pkg/graph"
)

// MemoryStore is an in-memory diagram store. It is the default backend for
// `zxviz serve` when no Mongo URI is configured, and the fixture backend
// in tests. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

// Save stores a new document and returns its generated id.
func (s *MemoryStore) Save(ctx context.Context, name string, g graph.Graph) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := Document{
		ID:        newID(),
		Name:      name,
		Graph:     g,
		CreatedAt: time.Now().UTC(),
	}
	s.docs[doc.ID] = doc
	return doc.ID, nil
}

// Get retrieves a document by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// List returns all documents ordered by creation time.
func (s *MemoryStore) List(ctx context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	slices.SortFunc(out, func(a, b Document) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
