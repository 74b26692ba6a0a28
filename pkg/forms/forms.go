// Package forms holds the declarative definitions of the login and
// registration forms: which inputs they carry, the checks each input runs,
// which endpoint confirms a clean submission and what happens on success.
package forms

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/oarkflow/authforms/pkg/validation"
)

const (
	LoginName    = "login"
	RegisterName = "register"
)

// SuccessAction is what a form does once the server confirms it.
type SuccessAction string

const (
	// ActionRedirect navigates to the redirect_url of the verdict.
	ActionRedirect SuccessAction = "redirect"
	// ActionSubmit submits the form through its own action and method.
	ActionSubmit SuccessAction = "submit"
)

var ErrUnknownForm = errors.New("forms: unknown form")

//go:embed forms.yaml
var builtin []byte

// Field is one input of a form.
type Field struct {
	Name   string             `yaml:"name"`
	Label  string             `yaml:"label"`
	Secret bool               `yaml:"secret"`
	Checks []validation.Check `yaml:"checks"`
}

// Definition describes a whole form.
type Definition struct {
	Name      string        `yaml:"name"`
	Action    string        `yaml:"action"`
	Endpoint  string        `yaml:"endpoint"`
	Send      []string      `yaml:"send"`
	OnSuccess SuccessAction `yaml:"on_success"`
	Fields    []Field       `yaml:"fields"`
}

// Rules converts the field list into a validation ruleset.
func (d Definition) Rules() validation.Ruleset {
	rules := validation.Ruleset{Fields: make([]validation.FieldRules, 0, len(d.Fields))}
	for _, f := range d.Fields {
		rules.Fields = append(rules.Fields, validation.FieldRules{Field: f.Name, Checks: f.Checks})
	}
	return rules
}

// SentRules keeps only the rules of the fields posted to Endpoint, the
// ones a verification endpoint can check again.
func (d Definition) SentRules() validation.Ruleset {
	all := d.Rules()
	rules := validation.Ruleset{}
	for _, f := range all.Fields {
		for _, name := range d.Send {
			if f.Field == name {
				rules.Fields = append(rules.Fields, f)
				break
			}
		}
	}
	return rules
}

// FieldNames returns every input the form reads at submit time.
func (d Definition) FieldNames() []string {
	names := d.Rules().FieldNames()
	for _, s := range d.Send {
		if !d.HasField(s) {
			names = append(names, s)
		}
	}
	return names
}

func (d Definition) HasField(name string) bool {
	for _, f := range d.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Field looks up an input by name.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Body picks the values sent to the verification endpoint.
func (d Definition) Body(s validation.Submission) map[string]string {
	return s.Subset(d.Send)
}

func (d Definition) verify() error {
	if d.Name == "" {
		return errors.New("forms: definition without a name")
	}
	if d.Endpoint == "" {
		return fmt.Errorf("forms: %s: endpoint is required", d.Name)
	}
	switch d.OnSuccess {
	case ActionRedirect:
	case ActionSubmit:
		if d.Action == "" {
			return fmt.Errorf("forms: %s: submit on success needs an action", d.Name)
		}
	default:
		return fmt.Errorf("forms: %s: unknown on_success %q", d.Name, d.OnSuccess)
	}
	if len(d.Send) == 0 {
		return fmt.Errorf("forms: %s: nothing to send", d.Name)
	}
	if err := d.Rules().Verify(); err != nil {
		return fmt.Errorf("forms: %s: %w", d.Name, err)
	}
	return nil
}

// Set is a collection of definitions keyed by name.
type Set map[string]Definition

// Parse decodes a YAML document of the shape `forms: [...]`.
func Parse(data []byte) (Set, error) {
	var doc struct {
		Forms []Definition `yaml:"forms"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("forms: decode: %w", err)
	}
	set := make(Set, len(doc.Forms))
	for _, d := range doc.Forms {
		if err := d.verify(); err != nil {
			return nil, err
		}
		if _, dup := set[d.Name]; dup {
			return nil, fmt.Errorf("forms: %s declared twice", d.Name)
		}
		set[d.Name] = d
	}
	return set, nil
}

func (s Set) Lookup(name string) (Definition, error) {
	d, ok := s[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return d, nil
}

func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaults = mustParse(builtin)

func mustParse(data []byte) Set {
	set, err := Parse(data)
	if err != nil {
		panic("forms: builtin definitions: " + err.Error())
	}
	return set
}

// Default returns the built-in definitions.
func Default() Set {
	return defaults
}

// Lookup finds a built-in definition.
func Lookup(name string) (Definition, error) {
	return defaults.Lookup(name)
}

func Login() Definition {
	return defaults[LoginName]
}

func Register() Definition {
	return defaults[RegisterName]
}
