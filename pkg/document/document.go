package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// Document is a named mind map: a flat node array plus bookkeeping
// metadata. The node array is the source of truth; tree structure is
// derived on demand via [Document.Tree].
type Document struct {
	ID        string         `json:"id" bson:"_id"`
	Title     string         `json:"title" bson:"title"`
	Nodes     []mindmap.Node `json:"nodes" bson:"nodes"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// New creates an empty document with a fresh UUID and creation timestamps.
func New(title string) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Tree indexes the document's node array. Errors surface malformed
// node arrays (empty or duplicate IDs); structural oddities such as
// dangling parents are tolerated per the [mindmap.Build] contract.
func (d *Document) Tree() (*mindmap.Tree, error) {
	t, err := mindmap.Build(d.Nodes)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", d.ID, err)
	}
	return t, nil
}

// Signature returns the structural signature of the document's current
// node array, or the empty string if the array cannot be indexed.
func (d *Document) Signature() string {
	return mindmap.Signature(d.Nodes)
}

// Touch bumps UpdatedAt. Callers mutate Nodes directly and call Touch
// before persisting.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// EnsureIDs assigns a fresh UUID to every node with an empty ID and
// returns the number of IDs assigned. Imported outlines commonly omit
// IDs; persisted documents must not.
func (d *Document) EnsureIDs() int {
	assigned := 0
	for i := range d.Nodes {
		if d.Nodes[i].ID != "" {
			continue
		}
		id := uuid.NewString()
		d.Nodes[i].ID = id
		assigned++
	}
	return assigned
}
