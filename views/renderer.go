// SPDX-License-Identifier: GPL-3.0-only

// Package views wires html/template into Echo and carries the one-shot
// flash messages pages show after a redirect.
package views

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every template matching the glob. Each page template
// is addressed by its file base name.
func NewRenderer(pattern string) (*Renderer, error) {
	templates, err := template.ParseGlob(pattern)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
