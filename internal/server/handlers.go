package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"SaaSTracker/internal/collector"
	"SaaSTracker/internal/viewstate"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if s.cfg.Dashboards != nil {
		d := s.cfg.Dashboards.Current()
		resp["dashboard"] = string(d.Status)
		resp["load_id"] = d.LoadID
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListData(w http.ResponseWriter, r *http.Request) {
	files, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list data store")
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	if files == nil {
		files = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"files": files})
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if name == "" {
		s.handleListData(w, r)
		return
	}

	data, err := s.cfg.Store.Fetch(r.Context(), name)
	switch {
	case errors.Is(err, collector.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
		return
	case err != nil:
		s.log.Error().Err(err).Str("file", name).Msg("failed to read data file")
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.cfg.Dashboards.Current())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var a viewstate.Action
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&a); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := s.cfg.Dashboards.Dispatch(a)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	d, err := s.cfg.Dashboards.Reload(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusBadGateway, d)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.cfg.Dashboards.Summary())
}

// handleStatic serves the built frontend. Unknown paths fall back to
// index.html so client-side routes survive a refresh.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.cfg.StaticDir == "" || strings.HasPrefix(r.URL.Path, "/api/") ||
		(r.Method != http.MethodGet && r.Method != http.MethodHead) {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if rel != "" {
		file := filepath.Join(s.cfg.StaticDir, filepath.FromSlash(rel))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			http.ServeFile(w, r, file)
			return
		}
	}

	index := filepath.Join(s.cfg.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.ServeFile(w, r, index)
}
