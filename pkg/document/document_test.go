package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

func TestNew_AssignsIdentity(t *testing.T) {
	d := New("plan")
	if d.ID == "" {
		t.Error("New() left ID empty")
	}
	if d.Title != "plan" {
		t.Errorf("Title = %q, want %q", d.Title, "plan")
	}
	if d.CreatedAt.IsZero() || d.UpdatedAt.IsZero() {
		t.Error("New() left timestamps zero")
	}
}

func TestEnsureIDs(t *testing.T) {
	d := New("t")
	d.Nodes = []mindmap.Node{
		{ID: "keep"},
		{Content: "anonymous"},
		{Content: "also anonymous"},
	}
	if got := d.EnsureIDs(); got != 2 {
		t.Errorf("EnsureIDs() = %d, want 2", got)
	}
	if d.Nodes[0].ID != "keep" {
		t.Error("EnsureIDs overwrote an existing ID")
	}
	if d.Nodes[1].ID == "" || d.Nodes[2].ID == "" {
		t.Error("EnsureIDs left an empty ID")
	}
	if d.Nodes[1].ID == d.Nodes[2].ID {
		t.Error("EnsureIDs assigned duplicate IDs")
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	d := New("trip")
	d.Nodes = []mindmap.Node{
		{ID: "r", Content: "Root", Meta: mindmap.Metadata{"color": "red"}},
		{ID: "a", Content: "Child", ParentID: "r", Level: 1, Collapsed: true},
	}

	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got.ID != d.ID || got.Title != d.Title {
		t.Errorf("identity changed: %s/%s vs %s/%s", got.ID, got.Title, d.ID, d.Title)
	}
	if len(got.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(got.Nodes))
	}
	if got.Nodes[1].ParentID != "r" || !got.Nodes[1].Collapsed {
		t.Errorf("node fields lost: %+v", got.Nodes[1])
	}
	if got.Nodes[0].Meta["color"] != "red" {
		t.Errorf("meta lost: %+v", got.Nodes[0].Meta)
	}
	if !got.UpdatedAt.Equal(d.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, d.UpdatedAt)
	}
}

func TestReadJSON_RejectsDuplicateIDs(t *testing.T) {
	in := `{"nodes": [{"id": "a"}, {"id": "a"}]}`
	if _, err := ReadJSON(strings.NewReader(in)); err == nil {
		t.Error("ReadJSON() accepted duplicate node IDs")
	}
}

func TestReadJSON_ToleratesDanglingParent(t *testing.T) {
	in := `{"nodes": [{"id": "a", "parent_id": "missing"}]}`
	d, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	tree, err := d.Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if len(tree.Roots()) != 1 {
		t.Errorf("dangling parent not promoted to root: roots = %v", tree.Roots())
	}
}

func TestReadTOML_Outline(t *testing.T) {
	in := `
title = "Quarterly plan"

[[node]]
id = "goals"
content = "Goals"

[[node]]
content = "Ship v2"
parent = "goals"

[[node]]
content = "Grow team"
parent = "goals"
collapsed = true
`
	d, err := ReadTOML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTOML() error = %v", err)
	}
	if d.Title != "Quarterly plan" {
		t.Errorf("Title = %q", d.Title)
	}
	if len(d.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(d.Nodes))
	}
	if d.Nodes[1].ID == "" {
		t.Error("missing outline ID not assigned")
	}
	if d.Nodes[1].Level != 1 {
		t.Errorf("derived level = %d, want 1", d.Nodes[1].Level)
	}
	if !d.Nodes[2].Collapsed {
		t.Error("collapsed flag lost")
	}
}

func TestReadTOML_RejectsUnknownKeys(t *testing.T) {
	in := `
[[node]]
id = "a"
contnet = "typo"
`
	if _, err := ReadTOML(strings.NewReader(in)); err == nil {
		t.Error("ReadTOML() accepted a misspelled key")
	}
}

func TestSignature_TracksStructure(t *testing.T) {
	d := New("sig")
	d.Nodes = []mindmap.Node{{ID: "a"}}
	before := d.Signature()

	d.Nodes[0].Content = "renamed"
	if d.Signature() != before {
		t.Error("content edit changed the signature")
	}

	d.Nodes = append(d.Nodes, mindmap.Node{ID: "b", ParentID: "a"})
	if d.Signature() == before {
		t.Error("node addition did not change the signature")
	}
}
