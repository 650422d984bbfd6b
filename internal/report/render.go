package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderOptions controls terminal rendering.
type RenderOptions struct {
	// Width wraps text; 0 keeps glamour's default.
	Width int
	// Style names a glamour standard style ("dark", "light", "notty", ...).
	// Empty picks one from the terminal.
	Style string
}

// Render turns markdown into styled terminal output.
func Render(md string, opts RenderOptions) (string, error) {
	ropts := []glamour.TermRendererOption{}
	if opts.Style == "" {
		ropts = append(ropts, glamour.WithAutoStyle())
	} else {
		ropts = append(ropts, glamour.WithStandardStyle(opts.Style))
	}
	if opts.Width > 0 {
		ropts = append(ropts, glamour.WithWordWrap(opts.Width))
	}

	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
