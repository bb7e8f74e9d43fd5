package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/filesinfo/manifest"
	"github.com/dendrascience/filesinfo/registry"
)

// ProjectInfo is the files_info response: the manifest plus the project path.
type ProjectInfo struct {
	manifest.Manifest
	ProjectName string `json:"project_name"`
}

// FileRequest is the body of POST /files/.
type FileRequest struct {
	Project  string `json:"project"`
	Filename string `json:"filename"`
}

// Server answers manifest and file requests for the projects in a registry.
type Server struct {
	basePath string
	registry registry.Registry
	csp      string
	mux      *http.ServeMux
}

// New returns a Server for the projects under basePath listed in reg.
// apiURL, if set, is added to connect-src in the Content-Security-Policy.
func New(basePath string, reg registry.Registry, apiURL string) *Server {
	s := &Server{
		basePath: basePath,
		registry: reg,
		csp:      contentSecurityPolicy(apiURL),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /status/", s.handleStatus)
	s.mux.HandleFunc("GET /files_info/{project}/", s.handleFilesInfo)
	s.mux.HandleFunc("POST /files/", s.handleFile)
	return s
}

func contentSecurityPolicy(apiURL string) string {
	connect := "'self'"
	if apiURL != "" {
		connect += " " + apiURL
	}
	return "default-src 'self'; connect-src " + connect
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Security-Policy", s.csp)
	s.mux.ServeHTTP(w, r)
}

// projectDir returns the directory registered under id.
func (s *Server) projectDir(id string) (string, bool) {
	rel, ok := s.registry[id]
	if !ok {
		return "", false
	}
	return filepath.Join(s.basePath, filepath.FromSlash(rel)), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFilesInfo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("project")
	dir, ok := s.projectDir(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	m, err := manifest.Load(filepath.Join(dir, manifest.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error loading manifest for project %s: %v", id, err)
		http.Error(w, "manifest unavailable", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ProjectInfo{Manifest: m, ProjectName: s.registry[id]})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	var req FileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	dir, ok := s.projectDir(req.Project)
	if !ok {
		http.NotFound(w, r)
		return
	}
	name := filepath.FromSlash(req.Filename)
	if req.Filename == "" || !filepath.IsLocal(name) {
		http.NotFound(w, r)
		return
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	hs := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		var err error
		if cfg.TLS() {
			err = hs.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = hs.ListenAndServe()
		}
		errChan <- err
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Println("Received interrupt signal, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Println("Shutdown complete")
		return nil
	}
}
