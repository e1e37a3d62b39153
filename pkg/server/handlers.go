package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tichlinh-png/trace-worksheet/pkg/buildinfo"
	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/pipeline"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

type createResponse struct {
	ID        string          `json:"id"`
	Pages     int             `json:"pages"`
	Stats     worksheet.Stats `json:"stats"`
	Links     links           `json:"links"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type links struct {
	View     string `json:"view"`
	Print    string `json:"print"`
	Download string `json:"download"`
}

func worksheetLinks(id string) links {
	base := "/api/worksheets/" + id
	return links{
		View:     base,
		Print:    base + "?print=1",
		Download: base + "/download",
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleCreate renders a worksheet once, stores its request and returns
// the links to view and download it.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Entries, req.Config, req.Options.pipelineOptions(pipeline.FormatHTML))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := json.Marshal(req)
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInternal, err, "encode worksheet"))
		return
	}
	id := uuid.NewString()
	if err := s.store.Set(r.Context(), s.keyer.ShareKey(id), data, s.cfg.ShareTTL); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInternal, err, "store worksheet"))
		return
	}

	s.logger.Info("worksheet created",
		"id", id,
		"entries", result.Stats.Entries,
		"pages", result.Stats.Pages)

	resp := createResponse{
		ID:        id,
		Pages:     result.Stats.Pages,
		Stats:     result.Stats,
		Links:     worksheetLinks(id),
		ExpiresAt: time.Now().Add(s.cfg.ShareTTL).UTC().Truncate(time.Second),
	}
	w.Header().Set("Location", resp.Links.View)
	writeJSON(w, http.StatusCreated, resp)
}

// handleView serves a stored worksheet as printable HTML.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	req, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := req.Options.pipelineOptions(pipeline.FormatHTML)
	if flag(r, "print") {
		opts.AutoPrint = true
	}
	s.serveArtifact(w, r, req, opts, "")
}

// handleDownload serves a stored worksheet as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	req, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format, err := queryFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveArtifact(w, r, req, req.Options.pipelineOptions(format), pipeline.Filename(format))
}

// handleRender renders the request body without storing it.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := queryFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveArtifact(w, r, req, req.Options.pipelineOptions(format), "")
}

// serveArtifact runs the pipeline for the single format in opts and writes
// the result. A non-empty filename makes the response an attachment.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, req *worksheetRequest, opts pipeline.Options, filename string) {
	result, err := s.runner.Execute(r.Context(), req.Entries, req.Config, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	data := result.Artifacts[format]

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("X-Worksheet-Pages", strconv.Itoa(result.Stats.Pages))
	if result.CacheInfo.RenderHit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	if filename != "" {
		h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

// load fetches a stored worksheet. Malformed and unknown IDs are both
// NOT_FOUND so the store key space is never exposed.
func (s *Server) load(ctx context.Context, id string) (*worksheetRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.New(apperr.ErrCodeNotFound, "worksheet %q not found", id)
	}
	data, ok, err := s.store.Get(ctx, s.keyer.ShareKey(id))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "load worksheet")
	}
	if !ok {
		return nil, apperr.New(apperr.ErrCodeNotFound, "worksheet %q not found or expired", id)
	}
	var req worksheetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "decode stored worksheet")
	}
	return &req, nil
}

func queryFormat(r *http.Request) (string, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		return pipeline.FormatHTML, nil
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

func flag(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
