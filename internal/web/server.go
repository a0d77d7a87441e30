// Package web is the browser front-end: one form over the same option set as
// the CLI commands. Validation errors render inline on the page instead of a
// process exit code, and finished renders are held in an expiring in-memory
// gallery and served back by key.
package web

import (
	_ "embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/ioudine/tiler-the-creator/internal/gallery"
)

//go:embed index.html
var indexHTML string

// Server wires the form page, the render endpoint and the gallery.
type Server struct {
	Store *gallery.Store
	Tmpl  *template.Template
}

// NewServer builds a Server around the given gallery store.
func NewServer(store *gallery.Store) *Server {
	return &Server{
		Store: store,
		Tmpl:  template.Must(template.New("index").Parse(indexHTML)),
	}
}

// Routes returns the HTTP handler for the front-end.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/image/", s.handleImage)
	return mux
}

// ViewModel carries everything the page template needs.
type ViewModel struct {
	Error     string
	ResultURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderPage(w, ViewModel{})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/image/")
	res, ok := s.Store.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", res.MIME)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(res.Data)
}

func (s *Server) renderPage(w http.ResponseWriter, vm ViewModel) {
	if err := s.Tmpl.Execute(w, vm); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}
