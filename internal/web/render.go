package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer is the presentation boundary: it renders a named view model to
// the response.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data interface{})
}

// pages are the view templates; each is parsed together with the shared
// layout into its own template set.
var pages = []string{
	"index",
	"category_list",
	"category_detail",
	"category_form",
	"category_delete",
	"item_list",
	"item_detail",
	"item_form",
	"item_delete",
	"error",
}

// funcMap holds the helpers the views need. isSelected drives the
// conditional checkbox/option state for the item form's category selector.
var funcMap = template.FuncMap{
	"isSelected": func(selected []string, id string) bool {
		for _, s := range selected {
			if s == id {
				return true
			}
		}
		return false
	},
}

// HTMLRenderer renders the embedded html/template views.
type HTMLRenderer struct {
	templates map[string]*template.Template
	logger    *log.Logger
}

// NewHTMLRenderer parses the embedded templates.
func NewHTMLRenderer(logger *log.Logger) (*HTMLRenderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcMap).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &HTMLRenderer{templates: templates, logger: logger}, nil
}

// Render writes the named view with the given status. An unknown view name
// or a template fault is a programming error and surfaces as a 500.
func (r *HTMLRenderer) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	t, ok := r.templates[name]
	if !ok {
		r.logger.Printf("ERROR: unknown view %q", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		// Headers are already written; log and give up on this response.
		r.logger.Printf("ERROR: render view %q: %v", name, err)
	}
}
