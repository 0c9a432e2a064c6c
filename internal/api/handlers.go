package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindgrid/pkg/cache"
	"github.com/matzehuels/mindgrid/pkg/document"
	mgerrors "github.com/matzehuels/mindgrid/pkg/errors"
	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
	"github.com/matzehuels/mindgrid/pkg/observability"
	"github.com/matzehuels/mindgrid/pkg/render/dot"
	"github.com/matzehuels/mindgrid/pkg/render/svg"
	"github.com/matzehuels/mindgrid/pkg/virtualize"
)

// maxBodySize caps request bodies. Documents with tens of thousands of
// nodes still fit comfortably.
const maxBodySize = 16 << 20

type layoutRequest struct {
	Mode   string         `json:"mode,omitempty"`
	Config *layout.Config `json:"config,omitempty"`

	// Document is only read by the stateless endpoint; the per-document
	// endpoint takes the document from the store.
	Document json.RawMessage `json:"document,omitempty"`
}

type layoutResponse struct {
	Signature string                     `json:"signature"`
	Mode      string                     `json:"mode"`
	Positions map[string]layout.Position `json:"positions"`
	Bounds    layout.Bounds              `json:"bounds"`
	Cached    bool                       `json:"cached"`
}

type virtualizeRequest struct {
	Document  json.RawMessage            `json:"document"`
	Positions map[string]layout.Position `json:"positions"`
	Viewport  virtualize.Viewport        `json:"viewport"`
	Threshold int                        `json:"threshold,omitempty"`
	Padding   float64                    `json:"padding,omitempty"`
	Config    *layout.Config             `json:"config,omitempty"`
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, mgerrors.Wrap(mgerrors.ErrCodeStore, err, "list documents"))
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if doc.ID == "" {
		fresh := document.New(doc.Title)
		doc.ID = fresh.ID
		doc.CreatedAt = fresh.CreatedAt
		doc.UpdatedAt = fresh.UpdatedAt
	}
	if err := mgerrors.ValidateDocumentID(doc.ID); err != nil {
		writeError(w, err)
		return
	}
	if err := mgerrors.ValidateTitle(doc.Title); err != nil {
		writeError(w, err)
		return
	}
	doc.EnsureIDs()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	doc.Touch()

	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, mgerrors.Wrap(mgerrors.ErrCodeStore, err, "store document"))
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loadDocument(w, r)
	if err != nil {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := decodeDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := mgerrors.ValidateTitle(doc.Title); err != nil {
		writeError(w, err)
		return
	}
	doc.ID = id
	doc.CreatedAt = existing.CreatedAt
	doc.EnsureIDs()
	doc.Touch()

	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, mgerrors.Wrap(mgerrors.ErrCodeStore, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDocumentLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loadDocument(w, r)
	if err != nil {
		return
	}

	var req layoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tree, err := doc.Tree()
	if err != nil {
		writeError(w, mgerrors.Wrap(mgerrors.ErrCodeInvalidDocument, err, "index document"))
		return
	}

	resp, err := s.computeLayout(r.Context(), tree, req.Mode, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tree, err := decodeTree(req.Document)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.computeLayout(r.Context(), tree, req.Mode, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVirtualize(w http.ResponseWriter, r *http.Request) {
	var req virtualizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Viewport.Width <= 0 || req.Viewport.Height <= 0 {
		writeError(w, mgerrors.New(mgerrors.ErrCodeInvalidViewport,
			"viewport must have positive width and height"))
		return
	}

	tree, err := decodeTree(req.Document)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := virtualize.Options{Threshold: req.Threshold, Padding: req.Padding}
	if req.Config != nil {
		opts.Config = *req.Config
	} else {
		opts.Config = layout.DefaultConfig()
	}

	start := time.Now()
	result := virtualize.Virtualize(tree, req.Positions, req.Viewport, opts)
	observability.Engine().OnVirtualize(r.Context(), result.Stats.Total, result.Stats.Kept,
		result.Stats.Bypassed, time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDocumentRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loadDocument(w, r)
	if err != nil {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	mode := r.URL.Query().Get("mode")

	tree, err := doc.Tree()
	if err != nil {
		writeError(w, mgerrors.Wrap(mgerrors.ErrCodeInvalidDocument, err, "index document"))
		return
	}

	resp, err := s.computeLayout(r.Context(), tree, mode, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	res := layout.Result{Positions: resp.Positions, Bounds: resp.Bounds}

	observability.Engine().OnRenderStart(r.Context(), format)
	start := time.Now()
	var data []byte
	var contentType string
	switch format {
	case "svg":
		data = svg.Render(tree, res, svg.WithTitle(doc.Title))
		contentType = "image/svg+xml"
	case "dot":
		data = []byte(dot.ToDOT(tree, dot.Options{}))
		contentType = "text/vnd.graphviz"
	case "gv":
		data, err = dot.RenderSVG(dot.ToDOT(tree, dot.Options{}))
		if err != nil {
			err = mgerrors.Wrap(mgerrors.ErrCodeInternal, err, "graphviz render")
			observability.Engine().OnRenderComplete(r.Context(), format, 0, time.Since(start), err)
			writeError(w, err)
			return
		}
		contentType = "image/svg+xml"
	case "json":
		data, _ = json.MarshalIndent(resp, "", "  ")
		contentType = "application/json"
	default:
		err := mgerrors.New(mgerrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		observability.Engine().OnRenderComplete(r.Context(), format, 0, time.Since(start), err)
		writeError(w, err)
		return
	}
	observability.Engine().OnRenderComplete(r.Context(), format, len(data), time.Since(start), nil)

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// computeLayout runs the layout pipeline for a tree, consulting the
// layout cache keyed by structural signature, mode and config.
func (s *Server) computeLayout(ctx context.Context, tree *mindmap.Tree, mode string, cfg *layout.Config) (*layoutResponse, error) {
	m, err := layout.ParseMode(mode)
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.ErrCodeInvalidMode, err, "parse mode")
	}
	config := layout.DefaultConfig()
	if cfg != nil {
		config = *cfg
	}

	key := s.keyer.LayoutKey(tree.Signature(), cache.LayoutKeyOpts{Mode: string(m), Config: config})
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var res layout.Result
		if err := json.Unmarshal(data, &res); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return &layoutResponse{
				Signature: tree.Signature(),
				Mode:      string(m),
				Positions: res.Positions,
				Bounds:    res.Bounds,
				Cached:    true,
			}, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	observability.Engine().OnLayoutStart(ctx, string(m), tree.Len())
	start := time.Now()
	res, err := layout.Compute(tree, m, config)
	observability.Engine().OnLayoutComplete(ctx, string(m), true, time.Since(start), err)
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.ErrCodeInternal, err, "compute layout")
	}

	if data, err := json.Marshal(res); err == nil {
		if err := s.cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return &layoutResponse{
		Signature: tree.Signature(),
		Mode:      string(m),
		Positions: res.Positions,
		Bounds:    res.Bounds,
	}, nil
}

// loadDocument fetches the document named by the URL and writes the
// error response itself, so handlers can return on a nil document.
func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (*document.Document, error) {
	id := chi.URLParam(r, "id")
	if err := mgerrors.ValidateDocumentID(id); err != nil {
		writeError(w, err)
		return nil, err
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, err
	}
	return doc, nil
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	body := http.MaxBytesReader(nil, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return mgerrors.Wrap(mgerrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func decodeDocument(r *http.Request) (*document.Document, error) {
	body := http.MaxBytesReader(nil, r.Body, maxBodySize)
	doc, err := document.ReadJSON(body)
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.ErrCodeInvalidDocument, err, "decode document")
	}
	return doc, nil
}

func decodeTree(raw json.RawMessage) (*mindmap.Tree, error) {
	if len(raw) == 0 {
		return nil, mgerrors.New(mgerrors.ErrCodeInvalidInput, "missing document")
	}
	doc, err := document.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.ErrCodeInvalidDocument, err, "decode document")
	}
	tree, err := doc.Tree()
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.ErrCodeInvalidDocument, err, "index document")
	}
	return tree, nil
}
