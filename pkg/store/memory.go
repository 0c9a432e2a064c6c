package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/mindgrid/pkg/document"
)

// MemoryStore is an in-memory document store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*document.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*document.Document)}
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	cp.Nodes = append(cp.Nodes[:0:0], d.Nodes...)
	return &cp, nil
}

// Put stores a copy of the document.
func (s *MemoryStore) Put(ctx context.Context, d *document.Document) error {
	if d == nil || d.ID == "" {
		return ErrInvalidDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *d
	cp.Nodes = append(cp.Nodes[:0:0], d.Nodes...)
	s.docs[d.ID] = &cp
	return nil
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

// List returns summaries of all documents, most recently updated first.
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, Summary{
			ID:        d.ID,
			Title:     d.Title,
			NodeCount: len(d.Nodes),
			UpdatedAt: d.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
