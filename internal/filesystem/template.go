package filesystem

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"reposmith.dev/reposmith/internal/result"
)

// TemplateData is the data available to file templates
type TemplateData struct {
	Owner      string
	Name       string
	Directory  string
	OwnedName  string
	Visibility string
}

// hasActions reports whether content contains template actions
func hasActions(content []byte) bool {
	return bytes.Contains(content, []byte("{{"))
}

// Render executes content as a text/template with the sprig function set
func Render(name string, content []byte, data any) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// MaterializeTemplate writes the template file source to destination.
// A template without actions is copied byte for byte.
func (o *Operator) MaterializeTemplate(source, destination string, data any) *result.Result[result.None] {
	content, err := o.store.ReadFile(source)
	if err != nil {
		return result.New("Materialize Template").
			WithMetadata("Template file path", source).
			WithMetadata("Destination file path", destination).
			DeclareFailure("Unable to read template.", err)
	}

	if !hasActions(content) {
		return o.CopyFile(source, destination)
	}

	r := result.New("Materialize Template").
		WithMetadata("Template file path", source).
		WithMetadata("Destination file path", destination)
	return o.writeRendered(r, source, content, destination, data)
}

// MaterializeContent renders built-in template content to destination
func (o *Operator) MaterializeContent(name string, content []byte, destination string, data any) *result.Result[result.None] {
	r := result.New("Materialize Template").
		WithMetadata("Template", name).
		WithMetadata("Destination file path", destination)
	return o.writeRendered(r, name, content, destination, data)
}

func (o *Operator) writeRendered(r *result.Result[result.None], name string, content []byte, destination string, data any) *result.Result[result.None] {
	rendered := content
	if hasActions(content) {
		out, err := Render(name, content, data)
		if err != nil {
			return r.DeclareFailure("Unable to render template.", err)
		}
		rendered = out
	}

	if err := o.store.WriteFile(destination, rendered); err != nil {
		return r.DeclareFailure("Unable to write file.", err)
	}
	return r.DeclareSuccess(fmt.Sprintf("Wrote file: %s", destination))
}
