package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

type wireDocument struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string     `json:"title,omitempty" bson:"title,omitempty"`
	Nodes     []wireNode `json:"nodes" bson:"nodes"`
	CreatedAt *time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type wireNode struct {
	ID        string           `json:"id" bson:"id"`
	Content   string           `json:"content,omitempty" bson:"content,omitempty"`
	Level     int              `json:"level,omitempty" bson:"level,omitempty"`
	ParentID  string           `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Collapsed bool             `json:"collapsed,omitempty" bson:"collapsed,omitempty"`
	Meta      mindmap.Metadata `json:"meta,omitempty" bson:"meta,omitempty"`
}

func toWire(d *Document) wireDocument {
	out := wireDocument{
		ID:    d.ID,
		Title: d.Title,
		Nodes: make([]wireNode, len(d.Nodes)),
	}
	if !d.CreatedAt.IsZero() {
		created := d.CreatedAt
		out.CreatedAt = &created
	}
	if !d.UpdatedAt.IsZero() {
		updated := d.UpdatedAt
		out.UpdatedAt = &updated
	}
	for i, n := range d.Nodes {
		meta := n.Meta
		if len(meta) == 0 {
			meta = nil
		}
		out.Nodes[i] = wireNode{
			ID:        n.ID,
			Content:   n.Content,
			Level:     n.Level,
			ParentID:  n.ParentID,
			Collapsed: n.Collapsed,
			Meta:      meta,
		}
	}
	return out
}

func fromWire(in wireDocument) *Document {
	d := &Document{
		ID:    in.ID,
		Title: in.Title,
		Nodes: make([]mindmap.Node, len(in.Nodes)),
	}
	if in.CreatedAt != nil {
		d.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		d.UpdatedAt = *in.UpdatedAt
	}
	for i, n := range in.Nodes {
		d.Nodes[i] = mindmap.Node{
			ID:        n.ID,
			Content:   n.Content,
			Level:     n.Level,
			ParentID:  n.ParentID,
			Collapsed: n.Collapsed,
			Meta:      n.Meta,
		}
	}
	return d
}

// WriteJSON encodes a document as indented JSON and writes it to w.
// The output round-trips through [ReadJSON] without loss.
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON document from r.
//
// The input must be a JSON object with a "nodes" array:
//
//	{
//	  "title": "Plan",
//	  "nodes": [
//	    {"id": "a", "content": "Root"},
//	    {"id": "b", "content": "Child", "parent_id": "a"}
//	  ]
//	}
//
// Each node must have an "id" field. Optional fields: content, level,
// parent_id, collapsed, and a freeform meta object. A parent_id that
// references no node in the array is tolerated; the node becomes an
// additional root when the document is indexed.
//
// ReadJSON validates the node array by indexing it once, so malformed
// input (duplicate or empty IDs) fails here rather than at first use.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var data wireDocument
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	d := fromWire(data)
	if _, err := mindmap.Build(d.Nodes); err != nil {
		return nil, err
	}
	return d, nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ImportJSON reads a JSON file at path and returns the decoded document.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path for context.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return d, nil
}
