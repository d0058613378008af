package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/violet-summer/MapGenerator/pkg/mapgen"
	"github.com/violet-summer/MapGenerator/pkg/spec"
	"github.com/violet-summer/MapGenerator/pkg/validation"
)

// Server is the local development server exposing the generated map.
type Server struct {
	specPath string
	port     int

	mu    sync.Mutex
	spec  *spec.MapSpec
	model *mapgen.MapModel
}

// New creates a server for the given spec file.
func New(specPath string, port int) *Server {
	return &Server{
		specPath: specPath,
		port:     port,
	}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /api/spec", s.handleSpec)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("map generator server starting on http://localhost%s", addr)
	log.Printf("spec: %s", s.specPath)

	return http.ListenAndServe(addr, mux)
}

// load reads and validates the spec file.
func (s *Server) load() (*spec.MapSpec, *validation.Report, error) {
	m, err := spec.Load(s.specPath)
	if err != nil {
		return nil, nil, err
	}
	return m, validation.ValidateSchema(m), nil
}

// generate runs the full pipeline, caching the result.
func (s *Server) generate() (*mapgen.MapModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != nil {
		return s.model, nil
	}
	m, report, err := s.load()
	if err != nil {
		return nil, err
	}
	if !report.Valid {
		return nil, fmt.Errorf("spec has validation errors: %s", report.Summary)
	}
	driver := mapgen.New(m)
	driver.Generate()
	s.spec = m
	s.model = driver.Output()
	return s.model, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>MapGenerator</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>MapGenerator</h1>
<p>Fetch <code>/api/map</code> for the generated city geometry.</p>
</div>
</body></html>`)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	model, err := s.generate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model)
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	m, _, err := s.load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	_, report, err := s.load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handleGenerate(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.model = nil
	s.mu.Unlock()

	model, err := s.generate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model)
}
