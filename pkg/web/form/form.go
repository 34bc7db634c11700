// Package form renders action descriptors as HTML forms.
package form

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/conduit-lang/hypermedia/pkg/action"
)

// MediaType is the media type written by the renderer
const MediaType = "text/html; charset=utf-8"

const pageTemplate = `<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
  <head>
    <title>{{.Title}}</title>
  </head>
  <body>
{{- range .Forms}}
    <form action="{{.Action}}" name="{{.Name}}" method="{{.Method}}">
      <h1>Form {{.Name}}</h1>
{{- range .Fields}}
      <div>
{{- if .Options}}
        <label for="{{.Name}}">{{.Name}}: </label>
        <select name="{{.Name}}" id="{{.Name}}" size="{{len .Options}}"{{if .Multiple}} multiple="multiple"{{end}}>
{{- range .Options}}
          <option{{if .Selected}} selected="selected"{{end}}>{{.Value}}</option>
{{- end}}
        </select>
{{- else if .Hidden}}
        <input type="hidden" name="{{.Name}}" value="{{.Value}}" />
{{- else}}
        <label>{{.Name}}: <input type="{{.Type}}" name="{{.Name}}"{{with .Min}} min="{{.}}"{{end}}{{with .Max}} max="{{.}}"{{end}}{{with .Step}} step="{{.}}"{{end}} value="{{.Value}}" /></label>
{{- end}}
      </div>
{{- end}}
      <input type="submit" value="Submit" />
    </form>
{{- end}}
  </body>
</html>
`

// Renderer writes HTML pages with one form per descriptor
type Renderer struct {
	title string
	tmpl  *template.Template
}

// NewRenderer creates a renderer whose pages carry the given title
func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "Input Data"
	}
	return &Renderer{
		title: title,
		tmpl:  template.Must(template.New("forms").Parse(pageTemplate)),
	}
}

type page struct {
	Title string
	Forms []formView
}

type formView struct {
	Action string
	Name   string
	Method string
	Fields []fieldView
}

type fieldView struct {
	Name     string
	Type     string
	Value    string
	Hidden   bool
	Min      string
	Max      string
	Step     string
	Multiple bool
	Options  []optionView
}

type optionView struct {
	Value    string
	Selected bool
}

// Render writes the page for descriptors to w. Nothing is written if
// building any of the forms fails.
func (r *Renderer) Render(ctx context.Context, w io.Writer, descriptors ...*action.Descriptor) error {
	p := page{Title: r.title}
	for _, d := range descriptors {
		f, err := buildForm(ctx, d)
		if err != nil {
			return err
		}
		p.Forms = append(p.Forms, f)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		return fmt.Errorf("failed to execute form template: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func buildForm(ctx context.Context, d *action.Descriptor) (formView, error) {
	f := formView{
		Action: d.ActionLink(),
		Name:   d.ResourceName(),
		Method: d.HTTPMethod(),
	}

	for _, name := range d.RequestParamNames() {
		pv := d.ParameterValue(name)

		possible, err := pv.PossibleValues(ctx, d)
		if err != nil {
			return formView{}, fmt.Errorf("form %s: possible values of %s: %w", d.ResourceName(), name, err)
		}

		if len(possible) > 0 {
			field, err := selectField(name, pv, possible)
			if err != nil {
				return formView{}, err
			}
			f.Fields = append(f.Fields, field)
			continue
		}

		if pv.IsArrayOrCollection() {
			slots, err := pv.Slots()
			if err != nil {
				return formView{}, err
			}
			for _, v := range slots {
				f.Fields = append(f.Fields, inputField(name, pv, toString(v)))
			}
			continue
		}

		f.Fields = append(f.Fields, inputField(name, pv, pv.CallValueFormatted()))
	}

	return f, nil
}

func selectField(name string, pv *action.ParameterValue, possible []any) (fieldView, error) {
	field := fieldView{Name: name}

	var selected []any
	if pv.IsArrayOrCollection() {
		values, err := pv.CallValues()
		if err != nil {
			return fieldView{}, err
		}
		selected = values
		field.Multiple = true
	} else if pv.CallValue() != nil {
		selected = []any{pv.CallValue()}
	}

	for _, v := range possible {
		field.Options = append(field.Options, optionView{
			Value:    toString(v),
			Selected: contains(selected, v),
		})
	}
	return field, nil
}

func inputField(name string, pv *action.ParameterValue, value string) fieldView {
	field := fieldView{
		Name:  name,
		Type:  pv.InputType().String(),
		Value: value,
	}
	if pv.InputType() == action.InputHidden {
		field.Hidden = true
		return field
	}

	for _, c := range pv.InputConditions() {
		v := strconv.Itoa(c.Value)
		switch c.Name {
		case "min":
			field.Min = v
		case "max":
			field.Max = v
		case "step":
			field.Step = v
		}
	}
	return field
}

func contains(values []any, v any) bool {
	s := toString(v)
	for _, item := range values {
		if toString(item) == s {
			return true
		}
	}
	return false
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
