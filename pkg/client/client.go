// Package client drives a login or registration form from submit to
// navigation: local validation, error rendering, the server round-trip and
// the final redirect or native submit.
//
// The controller never touches a page directly. It is bound to a Form, a
// Renderer, a Navigator and a Verifier, so the same code runs in the browser
// (package dom), in a terminal (package console) and in tests.
package client

import (
	"context"
	"errors"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/oarkflow/authforms/pkg/forms"
	"github.com/oarkflow/authforms/pkg/models"
	"github.com/oarkflow/authforms/pkg/validation"
)

var (
	ErrFieldNotFound    = errors.New("client: field not found")
	ErrMalformedVerdict = errors.New("client: malformed verdict")
	ErrNoRedirect       = errors.New("client: verdict has no redirect_url")
)

// DefaultTransportMessage is shown when the verification request fails.
const DefaultTransportMessage = "No pudimos verificar tus datos. Inténtalo de nuevo."

// Form reads input values and performs the native submission.
type Form interface {
	Value(name string) string
	Submit() error
}

// Renderer displays and removes error nodes. ClearErrors must be safe to
// call any number of times, with or without errors shown.
type Renderer interface {
	ShowError(field, message string) error
	ShowFormError(message string) error
	ClearErrors() error
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(url string) error
}

// Verifier performs the asynchronous confirmation request.
type Verifier interface {
	Verify(ctx context.Context, endpoint string, body map[string]string) (models.Verdict, error)
}

type Option func(*Controller)

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransportMessage sets the form-level message shown when the
// verification request fails. An empty message keeps the failure silent.
func WithTransportMessage(msg string) Option {
	return func(c *Controller) {
		c.transportMessage = msg
	}
}

// Controller runs the submit flow of one form.
type Controller struct {
	def              forms.Definition
	rules            validation.Ruleset
	fields           []string
	form             Form
	renderer         Renderer
	navigator        Navigator
	verifier         Verifier
	logger           *log.Logger
	transportMessage string

	mu    sync.Mutex
	state State
}

func New(def forms.Definition, form Form, renderer Renderer, navigator Navigator, verifier Verifier, opts ...Option) *Controller {
	c := &Controller{
		def:              def,
		rules:            def.Rules(),
		fields:           def.FieldNames(),
		form:             form,
		renderer:         renderer,
		navigator:        navigator,
		verifier:         verifier,
		logger:           log.New(os.Stderr, "", log.LstdFlags),
		transportMessage: DefaultTransportMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Definition() forms.Definition {
	return c.def
}

// State returns the last state the controller reached.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) State {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	return s
}

// Submit handles one submit attempt and returns the terminal state. The
// caller has already suppressed the browser's default navigation.
func (c *Controller) Submit(ctx context.Context) State {
	c.setState(StateValidating)
	submission := validation.Collect(c.fields, c.form.Value)
	if err := c.renderer.ClearErrors(); err != nil {
		c.logger.Printf("%s: clear errors: %v", c.def.Name, err)
	}

	if errs := c.rules.Validate(submission); !errs.Empty() {
		for _, fe := range errs {
			c.showError(fe.Field, fe.Message)
		}
		return c.setState(StateBlocked)
	}

	c.setState(StateAwaitingServer)
	verdict, err := c.verifier.Verify(ctx, c.def.Endpoint, c.def.Body(submission))
	if err != nil {
		return c.fail(err)
	}
	if !verdict.Success {
		if !c.showVerdict(verdict.Errors) {
			c.logger.Printf("%s: server rejected the form without messages", c.def.Name)
		}
		return c.setState(StateErrorsShown)
	}

	switch c.def.OnSuccess {
	case forms.ActionSubmit:
		err = c.form.Submit()
	default:
		if verdict.RedirectURL == "" {
			return c.fail(ErrNoRedirect)
		}
		err = c.navigator.Navigate(verdict.RedirectURL)
	}
	if err != nil {
		return c.fail(err)
	}
	return c.setState(StateRedirected)
}

func (c *Controller) fail(err error) State {
	c.logger.Printf("%s: error: %v", c.def.Name, err)
	if c.transportMessage != "" {
		if rerr := c.renderer.ShowFormError(c.transportMessage); rerr != nil {
			c.logger.Printf("%s: show form error: %v", c.def.Name, rerr)
		}
	}
	return c.setState(StateFailed)
}

func (c *Controller) showError(field, message string) {
	if err := c.renderer.ShowError(field, message); err != nil {
		c.logger.Printf("%s: show error on %q: %v", c.def.Name, field, err)
	}
}

// showVerdict renders server messages: known fields in form order, then
// anything else as form-level messages so nothing is lost.
func (c *Controller) showVerdict(errs map[string]string) bool {
	shown := false
	for _, f := range c.def.Fields {
		if msg := errs[f.Name]; msg != "" {
			c.showError(f.Name, msg)
			shown = true
		}
	}
	var rest []string
	for field, msg := range errs {
		if msg == "" || c.def.HasField(field) {
			continue
		}
		rest = append(rest, field)
	}
	sort.Strings(rest)
	for _, field := range rest {
		if err := c.renderer.ShowFormError(errs[field]); err != nil {
			c.logger.Printf("%s: show form error: %v", c.def.Name, err)
		}
		shown = true
	}
	return shown
}
