package server

import (
	"bufio"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/extforge"
	"github.com/gogpu/extforge/bundle"
	"github.com/gogpu/extforge/export"
	"github.com/gogpu/extforge/internal/cache"
)

// MaxScale is the largest zoom factor accepted by the icon route.
const MaxScale = 16

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// DefaultIconCache is the number of rendered icons kept by default.
const DefaultIconCache = 256

// iconKey identifies a rendered icon. Descriptions are the key, so an edit
// never serves a stale image.
type iconKey struct {
	desc  string
	scale int
}

// Server serves one bundle. It is an http.Handler.
type Server struct {
	mu     sync.RWMutex
	bundle *bundle.Bundle

	renderer *extforge.Renderer
	exporter *export.Exporter
	upgrader websocket.Upgrader
	hub      *hub
	mux      *http.ServeMux
	icons    *cache.LRU[iconKey, []byte]
}

// Option configures a Server.
type Option func(*Server)

// WithRenderer sets the renderer for icons and exports.
func WithRenderer(r *extforge.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithExporter sets the exporter behind the archive download.
func WithExporter(e *export.Exporter) Option {
	return func(s *Server) {
		if e != nil {
			s.exporter = e
		}
	}
}

// WithCheckOrigin replaces the websocket origin check. By default only
// same-origin pages may connect.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// WithIconCache sets how many rendered icons are kept in memory.
func WithIconCache(n int) Option {
	return func(s *Server) {
		s.icons = cache.New[iconKey, []byte](n)
	}
}

// New creates a server for b.
func New(b *bundle.Bundle, opts ...Option) *Server {
	s := &Server{
		bundle:   b,
		renderer: extforge.New(),
		upgrader: websocket.Upgrader{HandshakeTimeout: 10 * time.Second},
		hub:      newHub(),
		mux:      http.NewServeMux(),
		icons:    cache.New[iconKey, []byte](DefaultIconCache),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.exporter == nil {
		s.exporter = export.New(export.WithRenderer(s.renderer))
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/files", s.handleList)
	s.mux.HandleFunc("GET /api/files/{path...}", s.handleGetFile)
	s.mux.HandleFunc("PUT /api/files/{path...}", s.handlePutFile)
	s.mux.HandleFunc("POST /api/icons/{path...}", s.handleMutate)
	s.mux.HandleFunc("GET /api/audit/{path...}", s.handleAudit)
	s.mux.HandleFunc("GET /api/guides/{name}", s.handleOutline)
	s.mux.HandleFunc("GET /icons/{path...}", s.handleIcon)
	s.mux.HandleFunc("GET /preview/{path...}", s.handlePreview)
	s.mux.HandleFunc("GET /guides/{name}", s.handleGuide)
	s.mux.HandleFunc("GET /download", s.handleArchive)
	s.mux.HandleFunc("GET /download/{path...}", s.handleDownload)
	s.mux.HandleFunc("GET /ws", s.handleWS)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(sw, r)
	extforge.Logger().Debug("http request",
		"method", r.Method, "path", r.URL.Path, "status", sw.status, "elapsed", time.Since(start))
}

// Bundle returns a copy of the bundle being served. Changes to the copy
// do not reach the server; use SetBundle.
func (s *Server) Bundle() *bundle.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.Clone()
}

// SetBundle replaces the bundle being served and tells clients to reload.
func (s *Server) SetBundle(b *bundle.Bundle) {
	s.mu.Lock()
	s.bundle = b
	s.mu.Unlock()
	s.hub.broadcast(reloadEvent(""))
}

// Close disconnects all websocket clients.
func (s *Server) Close() {
	s.hub.closeAll()
}

// snapshot returns the files and the named one, if present.
func (s *Server) snapshot(p string) ([]bundle.SourceFile, bundle.SourceFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.bundle.File(p)
	return s.bundle.Files(), f, ok
}

// statusWriter records the status code for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack hands the connection to the websocket upgrader.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	w.status = http.StatusSwitchingProtocols
	return http.NewResponseController(w.ResponseWriter).Hijack()
}
