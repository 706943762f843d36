package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dockyard/pkg/buildinfo"
	"github.com/matzehuels/dockyard/pkg/cache"
	"github.com/matzehuels/dockyard/pkg/dock"
	errs "github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
	"github.com/matzehuels/dockyard/pkg/render/dot"
	"github.com/matzehuels/dockyard/pkg/workspace"
)

// maxBody caps request bodies; every payload is a handful of numbers.
const maxBody = 1 << 16

type (
	viewportRequest struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	pointRequest struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	dropRequest struct {
		Panel string `json:"panel"`
		// At, when set, hit-tests before dropping.
		At *pointRequest `json:"at,omitempty"`
	}
	resizeRequest struct {
		Delta float64 `json:"delta"`
	}
	lockRequest struct {
		Locked bool `json:"locked"`
	}

	dragOverResponse struct {
		Match     bool                     `json:"match"`
		Placement *workspace.PlacementView `json:"placement,omitempty"`
	}
	keyResponse struct {
		Key    dock.Key           `json:"key"`
		Layout workspace.Snapshot `json:"layout"`
	}
	resizeResponse struct {
		Applied bool               `json:"applied"`
		Layout  workspace.Snapshot `json:"layout"`
	}
	errorBody struct {
		Error errorDetail `json:"error"`
	}
	errorDetail struct {
		Code    errs.Code `json:"code"`
		Message string    `json:"message"`
	}
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.ws.Snapshot())
}

func (s *Server) handlePanels(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.ws.Panels())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.opts.Stats == nil {
		s.writeError(w, errs.New(errs.ErrCodeNotFound, "stats are not enabled"))
		return
	}
	writeJSON(w, http.StatusOK, s.opts.Stats.Snapshot())
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.SetViewport(req.Width, req.Height); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ws.Snapshot())
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	var req lockRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ws.SetLocked(req.Locked)
	writeJSON(w, http.StatusOK, s.ws.Snapshot())
}

func (s *Server) handleDragOver(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var resp dragOverResponse
	if pl, ok := s.ws.DragOver(r.Context(), geom.Pt(req.X, req.Y)); ok {
		resp.Match, resp.Placement = true, workspace.NewPlacementView(pl)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDragLeave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ws.DragLeave()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		key dock.Key
		err error
	)
	if req.At != nil {
		key, err = s.ws.DropAt(r.Context(), req.Panel, geom.Pt(req.At.X, req.At.Y))
	} else {
		key, err = s.ws.Drop(r.Context(), req.Panel)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keyResponse{Key: key, Layout: s.ws.Snapshot()})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	src := dock.Key(chi.URLParam(r, "key"))
	s.mu.Lock()
	defer s.mu.Unlock()
	key, err := s.ws.MoveTo(r.Context(), src)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keyResponse{Key: key, Layout: s.ws.Snapshot()})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	key := dock.Key(chi.URLParam(r, "key"))
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.Remove(r.Context(), key); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	split := dock.Key(chi.URLParam(r, "key"))
	var req resizeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ws.BeginResize(split); err != nil {
		s.writeError(w, err)
		return
	}
	defer s.ws.EndResize()
	applied, err := s.ws.ResizeBy(r.Context(), req.Delta)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resizeResponse{Applied: applied, Layout: s.ws.Snapshot()})
}

func (s *Server) layoutDOT(detailed bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dot.ToDOT(s.ws.Tree(), s.ws.Viewport(), dot.Options{Detailed: detailed})
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	src := s.layoutDOT(r.URL.Query().Get("detailed") != "")
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	io.WriteString(w, src)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	src := s.layoutDOT(r.URL.Query().Get("detailed") != "")
	key := cache.SVGKey(src)
	svg, hit, err := s.opts.Cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("SVG cache read failed", "err", err)
	}
	if !hit {
		if svg, err = dot.RenderSVG(r.Context(), src); err != nil {
			s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "render svg"))
			return
		}
		if err := s.opts.Cache.Set(r.Context(), key, svg, 0); err != nil {
			s.logger.Warn("SVG cache write failed", "err", err)
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("ETag", `"`+key[len("svg:"):]+`"`)
	w.Write(svg)
}

// decode reads a JSON body strictly: unknown fields and trailing data are
// rejected.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errs.New(errs.ErrCodeInvalidInput, "unexpected data after request body")
	}
	return nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeUnknownPanel:
		return http.StatusNotFound
	case errs.ErrCodeLocked:
		return http.StatusConflict
	case errs.ErrCodeInvalidTarget, errs.ErrCodeDegenerate:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "err", err)
	} else {
		s.logger.Debug("Request rejected", "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errs.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}
