// Package view renders the directory's HTML pages. It implements Echo's
// Renderer interface over html/template with the templates embedded in the
// binary, and carries the cookie-backed flash messages mutations leave for
// the next page load.
package view

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer satisfies echo.Renderer. Pages are addressed by their file name,
// e.g. "venues.html"; shared partials live in _layout.html.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded template once at startup.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"datetime":  FormatDateTime,
		"now":       time.Now,
		"has":       hasString,
		"genreList": GenreOptions,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render writes the named template to w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
