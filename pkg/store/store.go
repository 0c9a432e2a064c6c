// Package store provides document persistence for mind maps.
//
// This package defines a storage interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// A store holds [document.Document] values keyed by their UUID. The
// Store interface supports:
//   - Get/Put/Delete operations
//   - Listing document summaries without loading node arrays
//   - Context-aware calls for server backends
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/mindgrid/documents/
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "mindgrid")
//
// Manage documents:
//
//	doc := document.New("Plan")
//	if err := st.Put(ctx, doc); err != nil {
//	    return err
//	}
//	doc, err := st.Get(ctx, doc.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/mindgrid/pkg/document"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidDocument is returned when a document cannot be stored,
	// typically because it has no ID.
	ErrInvalidDocument = errors.New("invalid document")
)

// Summary describes a stored document without its node array.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	NodeCount int       `json:"node_count" bson:"node_count"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store persists documents. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get retrieves a document by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*document.Document, error)

	// Put stores a document, replacing any existing document with the
	// same ID.
	Put(ctx context.Context, d *document.Document) error

	// Delete removes a document. Deleting an absent document returns
	// ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored documents, most recently
	// updated first.
	List(ctx context.Context) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
