// Package console runs a form controller in a terminal: values come from
// prompts or flags, errors are printed, and the native submission is a
// form-encoded POST to the form's action.
package console

import (
	"fmt"
	"io"
	"net/http"

	"github.com/AlecAivazis/survey/v2"
	"github.com/go-resty/resty/v2"
	"github.com/gookit/color"

	"github.com/oarkflow/authforms/pkg/forms"
)

// Form holds the values typed by the user.
type Form struct {
	client *resty.Client
	action string
	values map[string]string
	out    io.Writer

	submitted  bool
	lastStatus int
}

func NewForm(client *resty.Client, action string, values map[string]string, out io.Writer) *Form {
	if values == nil {
		values = make(map[string]string)
	}
	return &Form{client: client, action: action, values: values, out: out}
}

func (f *Form) Value(name string) string {
	return f.values[name]
}

func (f *Form) Set(name, value string) {
	f.values[name] = value
}

// Submit posts the form the way a browser would without scripts.
func (f *Form) Submit() error {
	resp, err := f.client.R().
		SetFormData(f.values).
		Post(f.action)
	if err != nil {
		return fmt.Errorf("submit %s: %w", f.action, err)
	}
	f.submitted = true
	f.lastStatus = resp.StatusCode()
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("submit %s: server answered %d", f.action, resp.StatusCode())
	}
	fmt.Fprintln(f.out, color.Green.Sprintf("submitted %s (%d)", f.action, resp.StatusCode()))
	return nil
}

func (f *Form) Submitted() bool { return f.submitted }

// Renderer prints error lines.
type Renderer struct {
	out   io.Writer
	shown int
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) ShowError(field, message string) error {
	r.shown++
	_, err := fmt.Fprintf(r.out, "%s %s: %s\n", color.Red.Sprint("✗"), field, message)
	return err
}

func (r *Renderer) ShowFormError(message string) error {
	r.shown++
	_, err := fmt.Fprintf(r.out, "%s %s\n", color.Red.Sprint("✗"), message)
	return err
}

// ClearErrors forgets the count; printed lines stay on screen.
func (r *Renderer) ClearErrors() error {
	r.shown = 0
	return nil
}

// Shown reports how many errors were printed since the last clear.
func (r *Renderer) Shown() int { return r.shown }

// Navigator records where the user would be sent.
type Navigator struct {
	out      io.Writer
	Location string
}

func NewNavigator(out io.Writer) *Navigator {
	return &Navigator{out: out}
}

func (n *Navigator) Navigate(url string) error {
	n.Location = url
	_, err := fmt.Fprintln(n.out, color.Green.Sprintf("→ %s", url))
	return err
}

// Prompt asks for every field of def that has no value yet.
func Prompt(def forms.Definition, form *Form, opts ...survey.AskOpt) error {
	for _, field := range def.Fields {
		if form.Value(field.Name) != "" {
			continue
		}
		label := field.Label
		if label == "" {
			label = field.Name
		}
		var answer string
		var prompt survey.Prompt = &survey.Input{Message: label}
		if field.Secret {
			prompt = &survey.Password{Message: label}
		}
		if err := survey.AskOne(prompt, &answer, opts...); err != nil {
			return fmt.Errorf("prompt %s: %w", field.Name, err)
		}
		form.Set(field.Name, answer)
	}
	return nil
}
