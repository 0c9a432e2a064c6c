package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/store"
	"github.com/matzehuels/mindgrid/pkg/virtualize"
)

const sampleDocument = `{
  "title": "Roadmap",
  "nodes": [
    {"id": "r", "content": "Launch"},
    {"id": "a", "content": "Design", "parent_id": "r"},
    {"id": "b", "content": "Build", "parent_id": "r"}
  ]
}`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := NewServer(store.NewMemoryStore(), nil, nil)
	return s, s.Router()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func createDocument(t *testing.T, h http.Handler) document.Document {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/documents", sampleDocument)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var doc document.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode created document: %v", err)
	}
	return doc
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t)
	w := doRequest(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestDocumentCRUD(t *testing.T) {
	_, h := newTestServer(t)
	doc := createDocument(t, h)
	if doc.ID == "" {
		t.Fatal("created document has no ID")
	}
	if doc.Title != "Roadmap" {
		t.Errorf("Title = %q", doc.Title)
	}

	w := doRequest(t, h, http.MethodGet, "/api/documents/"+doc.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doRequest(t, h, http.MethodGet, "/api/documents", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var summaries []store.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].NodeCount != 3 {
		t.Errorf("summaries = %+v", summaries)
	}

	update := `{"title": "Roadmap v2", "nodes": [{"id": "r", "content": "Launch"}]}`
	w = doRequest(t, h, http.MethodPut, "/api/documents/"+doc.ID, update)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	var updated document.Document
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Title != "Roadmap v2" || len(updated.Nodes) != 1 {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.CreatedAt.Equal(doc.CreatedAt) {
		t.Error("update must preserve CreatedAt")
	}

	w = doRequest(t, h, http.MethodDelete, "/api/documents/"+doc.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doRequest(t, h, http.MethodGet, "/api/documents/"+doc.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	_, h := newTestServer(t)
	w := doRequest(t, h, http.MethodGet, "/api/documents/no-such-id", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp["code"] != "DOCUMENT_NOT_FOUND" {
		t.Errorf("code = %q", resp["code"])
	}
}

func TestCreateDocument_RejectsDuplicateIDs(t *testing.T) {
	_, h := newTestServer(t)
	body := `{"nodes": [{"id": "x"}, {"id": "x"}]}`
	w := doRequest(t, h, http.MethodPost, "/api/documents", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDocumentLayout(t *testing.T) {
	_, h := newTestServer(t)
	doc := createDocument(t, h)

	w := doRequest(t, h, http.MethodPost, "/api/documents/"+doc.ID+"/layout", `{"mode": "radial"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("layout status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp layoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if resp.Mode != "radial" {
		t.Errorf("Mode = %q", resp.Mode)
	}
	if len(resp.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(resp.Positions))
	}
	if resp.Signature == "" {
		t.Error("Signature empty")
	}
}

func TestDocumentLayout_InvalidMode(t *testing.T) {
	_, h := newTestServer(t)
	doc := createDocument(t, h)

	w := doRequest(t, h, http.MethodPost, "/api/documents/"+doc.ID+"/layout", `{"mode": "spiral"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestStatelessLayout(t *testing.T) {
	_, h := newTestServer(t)
	body := `{"mode": "vertical", "document": ` + sampleDocument + `}`
	w := doRequest(t, h, http.MethodPost, "/api/layout", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp layoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(resp.Positions))
	}
}

func TestStatelessLayout_MissingDocument(t *testing.T) {
	_, h := newTestServer(t)
	w := doRequest(t, h, http.MethodPost, "/api/layout", `{"mode": "vertical"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVirtualize(t *testing.T) {
	_, h := newTestServer(t)

	positions := map[string]layout.Position{
		"r": {X: 0, Y: 0},
		"a": {X: 200, Y: -40},
		"b": {X: 5000, Y: 5000},
	}
	req := map[string]any{
		"document":  json.RawMessage(sampleDocument),
		"positions": positions,
		"viewport":  virtualize.Viewport{X: -50, Y: -100, Width: 500, Height: 300},
		"threshold": 1,
	}
	body, _ := json.Marshal(req)

	w := doRequest(t, h, http.MethodPost, "/api/virtualize", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var result virtualize.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Stats.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Stats.Total)
	}
	visible := make(map[string]bool, len(result.Visible))
	for _, id := range result.Visible {
		visible[id] = true
	}
	if !visible["r"] || !visible["a"] {
		t.Errorf("visible = %v, want r and a", result.Visible)
	}
	if visible["b"] {
		t.Error("offscreen node b should be culled")
	}
}

func TestVirtualize_InvalidViewport(t *testing.T) {
	_, h := newTestServer(t)
	body := `{"document": ` + sampleDocument + `, "positions": {}, "viewport": {"x": 0, "y": 0, "width": 0, "height": 100}}`
	w := doRequest(t, h, http.MethodPost, "/api/virtualize", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDocumentRender(t *testing.T) {
	_, h := newTestServer(t)
	doc := createDocument(t, h)

	w := doRequest(t, h, http.MethodGet, "/api/documents/"+doc.ID+"/render?format=svg", "")
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Launch")) {
		t.Error("svg missing node content")
	}

	w = doRequest(t, h, http.MethodGet, "/api/documents/"+doc.ID+"/render?format=dot", "")
	if w.Code != http.StatusOK {
		t.Fatalf("dot render status = %d", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("digraph")) {
		t.Error("dot artifact malformed")
	}

	w = doRequest(t, h, http.MethodGet, "/api/documents/"+doc.ID+"/render?format=gif", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad format status = %d, want 400", w.Code)
	}
}
