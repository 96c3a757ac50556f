// Package view renders the HTML pages. Each page is parsed together with
// the shared layout and executed through echo's Renderer.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Render.
const (
	PageHome           = "home"
	PageLogin          = "login"
	PageRegister       = "register"
	PageForgotPassword = "forgot_password"
	PageWelcome        = "welcome"
	PageCollaborator   = "collaborator"
	PageDashboard      = "dashboard"
	PageNoRole         = "no_role"
	PageError          = "error"
)

var pages = []string{
	PageHome, PageLogin, PageRegister, PageForgotPassword, PageWelcome,
	PageCollaborator, PageDashboard, PageNoRole, PageError,
}

// Page is the layout model. Data is the page specific model.
type Page struct {
	Title    string
	CSRF     string
	SignedIn bool
	Refresh  *Refresh
	Data     any
}

// Refresh asks the browser to move to URL after Seconds.
type Refresh struct {
	URL     string
	Seconds int
}

var funcs = template.FuncMap{
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
	"dict": dict,
}

// dict builds a map from alternating keys and values so a sub-template can
// receive more than one argument.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

var _ echo.Renderer = (*Renderer)(nil)

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
