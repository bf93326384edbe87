package components

import (
	"strings"

	"jigolo/internal/log"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// Preview renders a snippet body for the library preview pane, as markdown
// when enabled and as plain lines otherwise.
type Preview struct {
	markdown  bool
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewPreview returns a preview renderer. theme picks the glamour standard
// style: "light" for the light theme, "dark" for everything else.
func NewPreview(markdown bool, theme string) *Preview {
	style := styles.DarkStyle
	if theme == "light" {
		style = styles.LightStyle
	}
	return &Preview{
		markdown:  markdown,
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render returns the lines of body laid out for width columns
func (p *Preview) Render(body string, width int) []string {
	if p == nil || !p.markdown || strings.TrimSpace(body) == "" {
		return plainLines(body)
	}
	if width < 10 {
		width = 10
	}

	// Renderers are cached per wrap width
	r := p.renderers[width]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(p.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.LogWithError(err).Warn("markdown renderer unavailable")
			return plainLines(body)
		}
		p.renderers[width] = r
	}

	out, err := r.Render(body)
	if err != nil {
		log.LogWithError(err).Warn("markdown render failed")
		return plainLines(body)
	}
	return strings.Split(strings.Trim(out, "\n"), "\n")
}

func plainLines(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(body, "\t", "    "), "\n")
}
