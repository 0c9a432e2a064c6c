package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

func exploreFixture() *document.Document {
	doc := document.New("Fixture")
	doc.Nodes = []mindmap.Node{
		{ID: "r", Content: "Root"},
		{ID: "a", Content: "Alpha", ParentID: "r"},
		{ID: "a1", Content: "Alpha One", ParentID: "a"},
		{ID: "b", Content: "Beta", ParentID: "r"},
	}
	return doc
}

func keyPress(key string) tea.KeyMsg {
	if key == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestExploreModel_Navigation(t *testing.T) {
	m := newExploreModel(exploreFixture(), layout.ModeHorizontal, layout.DefaultConfig())
	if m.err != nil {
		t.Fatalf("model error: %v", m.err)
	}
	if len(m.visible) != 4 {
		t.Fatalf("visible = %d, want 4", len(m.visible))
	}

	next, _ := m.Update(keyPress("j"))
	m = next.(exploreModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	next, _ = m.Update(keyPress("k"))
	m = next.(exploreModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestExploreModel_CollapseHidesSubtree(t *testing.T) {
	m := newExploreModel(exploreFixture(), layout.ModeHorizontal, layout.DefaultConfig())

	// Move to "a" and collapse it; "a1" disappears from the visible list.
	next, _ := m.Update(keyPress("j"))
	m = next.(exploreModel)
	next, _ = m.Update(keyPress("enter"))
	m = next.(exploreModel)

	if len(m.visible) != 3 {
		t.Fatalf("visible after collapse = %d, want 3", len(m.visible))
	}
	for _, id := range m.visible {
		if id == "a1" {
			t.Error("collapsed child a1 still visible")
		}
	}

	next, _ = m.Update(keyPress("enter"))
	m = next.(exploreModel)
	if len(m.visible) != 4 {
		t.Errorf("visible after expand = %d, want 4", len(m.visible))
	}
}

func TestExploreModel_CollapseLeafIsNoop(t *testing.T) {
	m := newExploreModel(exploreFixture(), layout.ModeHorizontal, layout.DefaultConfig())
	m.cursor = 2 // a1, a leaf
	next, _ := m.Update(keyPress("enter"))
	m = next.(exploreModel)
	if len(m.visible) != 4 {
		t.Errorf("visible = %d, want 4 (leaf collapse must be a no-op)", len(m.visible))
	}
}

func TestExploreModel_CycleMode(t *testing.T) {
	m := newExploreModel(exploreFixture(), layout.ModeHorizontal, layout.DefaultConfig())

	next, _ := m.Update(keyPress("m"))
	m = next.(exploreModel)
	if m.mode != layout.ModeVertical {
		t.Errorf("mode = %q, want vertical", m.mode)
	}

	for i := 0; i < 3; i++ {
		next, _ = m.Update(keyPress("m"))
		m = next.(exploreModel)
	}
	if m.mode != layout.ModeHorizontal {
		t.Errorf("mode after full cycle = %q, want horizontal", m.mode)
	}
}

func TestExploreModel_View(t *testing.T) {
	m := newExploreModel(exploreFixture(), layout.ModeHorizontal, layout.DefaultConfig())
	view := m.View()
	for _, content := range []string{"Fixture", "Root", "Alpha", "Beta"} {
		if !strings.Contains(view, content) {
			t.Errorf("view missing %q", content)
		}
	}
}
