// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/nailbooker/nailbooker/internal/pkg/errorhandler"
	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "booking", "service", "dashboard", "login"}

// Page is the value every template receives.
type Page struct {
	Title    string
	Admin    bool
	Username string
	Flashes  []session.Flash
	Data     map[string]interface{}
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *session.Manager
}

// NewRenderer parses every page. sessions is used to consume flash messages.
func NewRenderer(sessions *session.Manager) (*Renderer, error) {
	funcs := template.FuncMap{
		"price": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages)), sessions: sessions}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page with status. Pending flash messages are consumed.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data map[string]interface{}) {
	t, ok := rd.pages[page]
	if !ok {
		errorhandler.InternalPage(r.Context(), w, "render", fmt.Errorf("unknown page %q", page))
		return
	}

	p := Page{Title: title, Data: data}
	if s := session.FromContext(r.Context()); s != nil {
		p.Admin = s.IsAdmin()
		p.Username = s.Username
		p.Flashes = s.PopFlashes()
		if len(p.Flashes) > 0 {
			if err := rd.sessions.Save(r.Context(), w, s); err != nil {
				logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to persist consumed flashes")
			}
		}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		errorhandler.InternalPage(r.Context(), w, "render "+page, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
