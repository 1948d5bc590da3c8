package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templates embed.FS

// ChatScrollDelayMS lets the chat panel settle before scrolling to the newest message.
const ChatScrollDelayMS = 100

// Renderer writes screens as HTML. html/template escapes every value for its context.
type Renderer struct {
	page *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"scrollDelay": func() int { return ChatScrollDelayMS },
	}

	page, err := template.New("page").Funcs(funcMap).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{page: page}, nil
}

// Page writes the full page for s.
func (r *Renderer) Page(w io.Writer, s Screen) error {
	if err := r.page.ExecuteTemplate(w, "base", s); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
