package document

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

type tomlOutline struct {
	Title string     `toml:"title"`
	Nodes []tomlNode `toml:"node"`
}

type tomlNode struct {
	ID        string         `toml:"id"`
	Content   string         `toml:"content"`
	Parent    string         `toml:"parent"`
	Collapsed bool           `toml:"collapsed"`
	Meta      map[string]any `toml:"meta"`
}

// ReadTOML decodes a TOML outline from r into a fresh document.
//
// The outline format is a title plus a [[node]] table per entry:
//
//	title = "Quarterly plan"
//
//	[[node]]
//	id = "goals"
//	content = "Goals"
//
//	[[node]]
//	content = "Ship v2"
//	parent = "goals"
//
// Node IDs are optional; entries without one are assigned a UUID. The
// "parent" field references another entry's ID. Unknown keys in the
// outline are rejected so typos fail loudly instead of silently
// dropping structure.
//
// The returned document has a fresh UUID and creation timestamps; it
// is not the re-import counterpart of any export format.
func ReadTOML(r io.Reader) (*Document, error) {
	var outline tomlOutline
	meta, err := toml.NewDecoder(r).Decode(&outline)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown outline key %q", undecoded[0].String())
	}

	d := New(outline.Title)
	d.Nodes = make([]mindmap.Node, len(outline.Nodes))
	for i, n := range outline.Nodes {
		d.Nodes[i] = mindmap.Node{
			ID:        n.ID,
			Content:   n.Content,
			ParentID:  n.Parent,
			Collapsed: n.Collapsed,
			Meta:      n.Meta,
		}
	}
	d.EnsureIDs()

	tree, err := mindmap.Build(d.Nodes)
	if err != nil {
		return nil, err
	}
	// Levels are advisory but exports carry them, so derive them once.
	for i := range d.Nodes {
		d.Nodes[i].Level = tree.Depth(d.Nodes[i].ID)
	}
	return d, nil
}

// ImportTOML reads a TOML outline file at path. See [ReadTOML] for the
// format.
func ImportTOML(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := ReadTOML(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return d, nil
}
