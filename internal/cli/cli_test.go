package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mindgrid/pkg/pipeline"
)

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"layout", "render", "virtualize", "explore", "serve", "cache", "completion"}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestCacheDir_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != pipeline.FormatSVG {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	if got := parseFormats("svg,dot"); len(got) != 2 || got[1] != "dot" {
		t.Errorf("parseFormats(\"svg,dot\") = %v", got)
	}
}

func TestRenderBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "plan.json", "plan"},
		{"out.svg", "plan.json", "out"},
		{"out.dot", "plan.json", "out"},
		{"custom", "plan.json", "custom"},
		{"dir/out.txt", "plan.json", "dir/out.txt"},
	}
	for _, tt := range tests {
		if got := renderBasePath(tt.output, tt.input); got != tt.want {
			t.Errorf("renderBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestNewStore_UnknownBackend(t *testing.T) {
	if _, err := newStore(context.Background(), "cassandra", "", "", ""); err == nil {
		t.Error("newStore accepted an unknown backend")
	}
}

func TestNewStore_Memory(t *testing.T) {
	st, err := newStore(context.Background(), "memory", "", "", "")
	if err != nil {
		t.Fatalf("newStore() error = %v", err)
	}
	if st == nil {
		t.Fatal("newStore() returned nil store")
	}
	_ = st.Close(context.Background())
}
