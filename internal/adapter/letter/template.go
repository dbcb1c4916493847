// Package letter renders personalized thank-you letters and writes them to disk.
package letter

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

// Context keys available to letter templates. Any other key fails rendering.
const (
	KeyID          = "ID"
	KeyName        = "Name"
	KeyZipcode     = "Zipcode"
	KeyPhone       = "Phone"
	KeyLegislators = "Legislators"
)

// Context is the explicit set of values a template can reference.
type Context map[string]any

// NewContext builds the per-attendee template context.
func NewContext(a domain.Attendee) Context {
	return Context{
		KeyID:          a.Record.ID,
		KeyName:        a.Record.FirstName,
		KeyZipcode:     a.Contact.Zipcode,
		KeyPhone:       a.Contact.Phone,
		KeyLegislators: a.Legislators,
	}
}

var funcs = template.FuncMap{
	"officialNames": func(l domain.RepresentativeList) string { return l.Names() },
}

// Renderer executes a compiled letter template. It is safe to reuse across records.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer loads and compiles the template at path.
func NewRenderer(path string) (*Renderer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read letter template: %w", err)
	}
	return ParseRenderer(filepath.Base(path), string(src))
}

// ParseRenderer compiles template source text.
func ParseRenderer(name, src string) (*Renderer, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse letter template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the HTML letter for ctx.
func (r *Renderer) Render(ctx Context) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("render letter: %w", err)
	}
	return buf.String(), nil
}

// RenderAttendee renders the letter for a processed attendee.
func (r *Renderer) RenderAttendee(a domain.Attendee) (string, error) {
	return r.Render(NewContext(a))
}
