// Package view renders the console's HTML pages and htmx fragments.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	//go:embed templates/*.gohtml
	files embed.FS

	//go:embed static
	assets embed.FS
)

const (
	baseFile   = "templates/base.gohtml"
	layoutName = "layout"
)

// Renderer holds one template set per page. Every set shares base.gohtml,
// which provides the layout and the common fragments.
type Renderer struct {
	pages  map[string]*template.Template
	logger *logrus.Logger
}

// New parses the embedded templates.
func New(logger *logrus.Logger) (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(files, baseFile)
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}

	names, err := fs.Glob(files, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == baseFile {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", name, err)
		}
		if _, err := t.ParseFS(files, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(path.Base(name), ".gohtml")] = t
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Page renders a full document.
func (r *Renderer) Page(w http.ResponseWriter, status int, page string, data Page) {
	r.execute(w, status, page, layoutName, data)
}

// Partial renders a single named block of page, for htmx swaps.
func (r *Renderer) Partial(w http.ResponseWriter, status int, page, block string, data Page) {
	r.execute(w, status, page, block, data)
}

// Static serves the stylesheet and other embedded assets.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// Has reports whether page exists.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

func (r *Renderer) execute(w http.ResponseWriter, status int, page, block string, data Page) {
	t, ok := r.pages[page]
	if !ok {
		r.logger.WithField("page", page).Error("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		r.logger.WithFields(logrus.Fields{
			"page":  page,
			"block": block,
		}).WithError(err).Error("failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.WithError(err).Debug("client went away while writing page")
	}
}
