// Package views renders the HTML pages. Every page is parsed together with the
// shared layout into its own template set.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/yigit/skillhub/internal/pkg/helpers"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Instance.
const (
	PageHome     = "home"
	PageStudents = "students"
	PageStudent  = "student"
	PageCourses  = "courses"
	PageCourse   = "course"
	PageNotFound = "not_found"
	PageError    = "error"
)

const layoutFile = "templates/layout.html"

// mdRenderer leaves WithUnsafe unset, so raw HTML in descriptions is escaped.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown renders a course description.
func Markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"datetime": func(v interface{}) string {
			return helpers.FormatDisplay(asTime(v))
		},
		"datetimeLocal": func(v interface{}) string {
			return helpers.FormatDateTimeLocal(asTime(v))
		},
		"count": func(n *int) string {
			if n == nil {
				return "—"
			}
			return fmt.Sprint(*n)
		},
		"add": func(a, b int) int { return a + b },
	}
}

type timer interface{ UTC() time.Time }

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case timer:
		return t.UTC()
	}
	return time.Time{}
}

// Renderer is a gin render.HTMLRender over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page with the layout.
func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, file := range pages {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tpl, err := template.New("layout.html").Funcs(funcMap()).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", name, err)
		}
		r.templates[name] = tpl
	}
	return r, nil
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data interface{}) render.Render {
	tpl, ok := r.templates[name]
	if !ok {
		tpl = r.templates[PageError]
		data = ErrorData{Base: Base{Title: "Error"}, Message: fmt.Sprintf("unknown page %q", name)}
	}
	return render.HTML{Template: tpl, Name: "layout", Data: data}
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
