package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mindgrid/pkg/cache"
	"github.com/matzehuels/mindgrid/pkg/layout"
)

const testDoc = `{
  "title": "Test plan",
  "nodes": [
    {"id": "r", "content": "Root"},
    {"id": "a", "content": "Alpha", "parent_id": "r"},
    {"id": "b", "content": "Beta", "parent_id": "r"}
  ]
}`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return NewRunner(c, nil, nil)
}

func TestExecute_FullPipeline(t *testing.T) {
	runner := newTestRunner(t)
	opts := Options{
		Input:   writeInput(t, "plan.json", testDoc),
		Formats: []string{FormatSVG, FormatDOT, FormatJSON},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Signature == "" {
		t.Error("Signature empty")
	}
	if len(result.Layout.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(result.Layout.Positions))
	}
	for _, format := range []string{FormatSVG, FormatDOT, FormatJSON} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %s empty", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact malformed")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact malformed")
	}
}

func TestExecute_CacheHitsOnSecondRun(t *testing.T) {
	runner := newTestRunner(t)
	opts := Options{Input: writeInput(t, "plan.json", testDoc)}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit cache")
	}

	second, err := runner.Execute(context.Background(), Options{Input: opts.Input})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.LoadHit {
		t.Error("second run should hit the document cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if len(second.Layout.Positions) != len(first.Layout.Positions) {
		t.Error("cached layout differs from computed layout")
	}
}

func TestExecute_ModeChangeMissesLayoutCache(t *testing.T) {
	runner := newTestRunner(t)
	input := writeInput(t, "plan.json", testDoc)

	if _, err := runner.Execute(context.Background(), Options{Input: input}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	res, err := runner.Execute(context.Background(), Options{Input: input, Mode: "radial"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("mode change must not reuse the cached layout")
	}
}

func TestExecute_TOMLInput(t *testing.T) {
	outline := `
title = "Outline"

[[node]]
id = "root"
content = "Root"

[[node]]
content = "Child"
parent = "root"
`
	runner := newTestRunner(t)
	result, err := runner.Execute(context.Background(), Options{
		Input: writeInput(t, "plan.toml", outline),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Document.Title != "Outline" {
		t.Errorf("Title = %q", result.Document.Title)
	}
	if result.Stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", result.Stats.NodeCount)
	}
}

func TestExecute_MissingInput(t *testing.T) {
	runner := newTestRunner(t)
	_, err := runner.Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "absent.json"),
	})
	if err == nil {
		t.Fatal("Execute() accepted a missing input file")
	}
}

func TestOptions_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{Input: "x.json"}, false},
		{"missing input", Options{}, true},
		{"bad mode", Options{Input: "x.json", Mode: "spiral"}, true},
		{"bad format", Options{Input: "x.json", Formats: []string{"png"}}, true},
		{"all modes valid", Options{Input: "x.json", Mode: "fishbone"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptions_DefaultsApplied(t *testing.T) {
	opts := Options{Input: "x.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Mode != string(layout.ModeHorizontal) {
		t.Errorf("Mode = %q, want horizontal", opts.Mode)
	}
	if opts.Config == (layout.Config{}) {
		t.Error("Config not defaulted")
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}
