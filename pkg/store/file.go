package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/mindgrid/pkg/document"
)

// FileStore is a file-based document store for CLI use.
// Documents are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/mindgrid/documents/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "mindgrid", "documents")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) docPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Get retrieves a document by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := document.ImportJSON(s.docPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Put stores a document. The write goes through a temp file and rename
// so a crash never leaves a half-written document behind.
func (s *FileStore) Put(ctx context.Context, d *document.Document) error {
	if d == nil || d.ID == "" {
		return ErrInvalidDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.docPath(d.ID)
	tmp := path + ".tmp"
	if err := document.ExportJSON(d, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Delete removes a document.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.docPath(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// List returns summaries of all documents, most recently updated first.
// Unreadable files are skipped rather than failing the whole listing.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}

	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		d, err := document.ImportJSON(filepath.Join(s.baseDir, e.Name()))
		if err != nil {
			continue
		}
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

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
