package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed assets/cv.html.tmpl assets/style.css
var assets embed.FS

var page = template.Must(template.ParseFS(assets, "assets/cv.html.tmpl"))

var stylesheet = mustRead("assets/style.css")

func mustRead(name string) template.CSS {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return template.CSS(b)
}

// PageSetup controls the printed page.
type PageSetup struct {
	Size   string
	Margin string
}

// DefaultPage is US Letter with half-inch margins.
var DefaultPage = PageSetup{Size: "Letter", Margin: "0.5in"}

type pageData struct {
	View View
	Page PageSetup
	CSS  template.CSS
}

// Render writes the complete HTML document for v.
func Render(w io.Writer, v View, setup PageSetup) error {
	if setup.Size == "" {
		setup.Size = DefaultPage.Size
	}
	if setup.Margin == "" {
		setup.Margin = DefaultPage.Margin
	}
	if err := page.Execute(w, pageData{View: v, Page: setup, CSS: stylesheet}); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}

// RenderHTML is Render into a string.
func RenderHTML(v View, setup PageSetup) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, v, setup); err != nil {
		return "", err
	}
	return buf.String(), nil
}
