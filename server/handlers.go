package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"github.com/gogpu/extforge"
	"github.com/gogpu/extforge/bundle"
	"github.com/gogpu/extforge/export"
	"github.com/gogpu/extforge/iconspec"
	"github.com/gogpu/extforge/preview"
)

type fileEntry struct {
	Path string      `json:"path"`
	Kind bundle.Kind `json:"type"`
}

type groupEntry struct {
	Name  string      `json:"name"`
	Files []fileEntry `json:"files"`
}

type listing struct {
	Groups []groupEntry `json:"groups"`
	Guides []string     `json:"guides"`
}

// guides maps route names to guide file names.
var guides = map[string]string{
	"testing":  bundle.TestingGuideName,
	"security": bundle.SecurityReviewName,
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	files, _, _ := s.snapshot("")

	out := listing{Groups: []groupEntry{}, Guides: []string{"testing", "security"}}
	for _, g := range bundle.Group(files) {
		ge := groupEntry{Name: g.Name}
		for _, f := range g.Files {
			ge.Files = append(ge.Files, fileEntry{Path: f.Path, Kind: f.Kind})
		}
		out.Groups = append(out.Groups, ge)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	_, f, ok := s.snapshot(r.PathValue("path"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = io.WriteString(w, f.Content)
}

func (s *Server) handlePutFile(w http.ResponseWriter, r *http.Request) {
	p := r.PathValue("path")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	s.mu.Lock()
	err = s.bundle.SetContent(p, string(body))
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	extforge.Logger().Info("file updated", "path", p, "bytes", len(body))
	s.hub.broadcast(reloadEvent(p))
	w.WriteHeader(http.StatusNoContent)
}

type mutateRequest struct {
	Op    string `json:"op"`
	Index int    `json:"index"`
	Color string `json:"color"`
}

type mutateResponse struct {
	Content string `json:"content"`
	Changed bool   `json:"changed"`
}

func (s *Server) handleMutate(w http.ResponseWriter, r *http.Request) {
	p, ok := strings.CutSuffix(r.PathValue("path"), "/mutate")
	if !ok {
		http.NotFound(w, r)
		return
	}

	var req mutateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "server: bad mutation: "+err.Error(), http.StatusBadRequest)
		return
	}
	op, err := iconspec.NewOp(req.Op, req.Index, req.Color)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	f, found := s.bundle.File(p)
	if !found || !f.IsIcon() {
		s.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	out, changed := iconspec.Apply(f.Content, op)
	if changed {
		err = s.bundle.SetContent(p, out)
	}
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	if changed {
		s.hub.broadcast(reloadEvent(p))
	}
	writeJSON(w, http.StatusOK, mutateResponse{Content: out, Changed: changed})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	files, f, ok := s.snapshot(r.PathValue("path"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	type finding struct {
		Kind preview.FindingKind `json:"kind"`
		Ref  string              `json:"ref"`
	}
	out := []finding{}
	for _, fd := range preview.Audit(preview.Compose(f, f.Content, files)) {
		out = append(out, finding{Kind: fd.Kind, Ref: fd.Ref})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	_, f, ok := s.snapshot(r.PathValue("path"))
	if !ok || !f.IsIcon() {
		http.NotFound(w, r)
		return
	}

	scale := 1
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxScale {
			http.Error(w, fmt.Sprintf("server: scale must be 1..%d", MaxScale), http.StatusBadRequest)
			return
		}
		scale = n
	}

	key := iconKey{desc: f.Content, scale: scale}
	data, hit := s.icons.Get(key)
	if !hit {
		var err error
		if data, err = s.renderIcon(f.Content, scale); err != nil {
			writeError(w, err)
			return
		}
		s.icons.Set(key, data)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if hit {
		w.Header().Set("X-Extforge-Cache", "hit")
	} else {
		w.Header().Set("X-Extforge-Cache", "miss")
	}
	_, _ = w.Write(data)
}

// renderIcon rasterizes desc, zoomed by scale with nearest-neighbor
// sampling so pixels stay crisp.
func (s *Server) renderIcon(desc string, scale int) ([]byte, error) {
	pm, err := s.renderer.RenderPixmap(iconspec.Parse(desc))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if scale == 1 {
		err = pm.EncodePNG(&buf, s.renderer.Compression())
	} else {
		zoomed := imaging.Resize(pm.RGBAImage(), pm.Width()*scale, pm.Height()*scale, imaging.NearestNeighbor)
		err = imaging.Encode(&buf, zoomed, imaging.PNG)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	files, f, ok := s.snapshot(r.PathValue("path"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	doc := preview.Compose(f, f.Content, files)
	if doc == "" {
		http.Error(w, "server: no preview for "+f.Path, http.StatusNotFound)
		return
	}
	writeSandboxed(w, doc)
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	name, ok := guides[r.PathValue("name")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.RLock()
	md, _ := s.bundle.Guide(name)
	s.mu.RUnlock()

	writeSandboxed(w, preview.GuidePage(name, md))
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	name, ok := guides[r.PathValue("name")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.RLock()
	md, _ := s.bundle.Guide(name)
	s.mu.RUnlock()

	outline := preview.Outline(md)
	if outline == nil {
		outline = []preview.Heading{}
	}
	writeJSON(w, http.StatusOK, struct {
		Name     string            `json:"name"`
		Headings []preview.Heading `json:"headings"`
	}{name, outline})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	_, f, ok := s.snapshot(r.PathValue("path"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, err := s.exporter.RenderOne(f, f.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	name := export.DownloadName(f.Path)
	w.Header().Set("Content-Type", contentType(name, data))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(data)
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	res, err := s.exporter.Export(r.Context(), s.Bundle())
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteZip(&buf, res); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.DefaultArchiveName}))
	w.Header().Set("X-Extforge-Skipped", strconv.Itoa(len(res.Skipped)))
	_, _ = w.Write(buf.Bytes())
}

// contentType sniffs data, falling back to the file extension and then to
// plain text.
func contentType(name string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "text/plain; charset=utf-8"
}

// writeSandboxed serves an untrusted document with no script or network
// access.
func writeSandboxed(w http.ResponseWriter, doc string) {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Security-Policy", preview.SandboxPolicy)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, doc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		extforge.Logger().Warn("server: encode response", "err", err)
	}
}

// writeError maps package errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, bundle.ErrUnknownPath):
		status = http.StatusNotFound
	case errors.Is(err, extforge.ErrRenderUnavailable):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		extforge.Logger().Error("server: request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}
