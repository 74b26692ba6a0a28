package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oarkflow/authforms/pkg/forms"
	"github.com/oarkflow/authforms/pkg/models"
)

// node is an element of fakeDocument: an input or an error paragraph.
type node struct {
	input string
	error bool
	text  string
}

// fakeDocument keeps inputs and error nodes in display order.
type fakeDocument struct {
	nodes     []node
	values    map[string]string
	submitted int
}

func newFakeDocument(values map[string]string, inputs ...string) *fakeDocument {
	d := &fakeDocument{values: values}
	for _, name := range inputs {
		d.nodes = append(d.nodes, node{input: name})
	}
	return d
}

func (d *fakeDocument) Value(name string) string { return d.values[name] }

func (d *fakeDocument) Submit() error {
	d.submitted++
	return nil
}

func (d *fakeDocument) ShowError(field, message string) error {
	for i, n := range d.nodes {
		if n.input == field {
			errNode := node{error: true, text: message}
			d.nodes = append(d.nodes[:i+1], append([]node{errNode}, d.nodes[i+1:]...)...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrFieldNotFound, field)
}

func (d *fakeDocument) ShowFormError(message string) error {
	d.nodes = append([]node{{error: true, text: message}}, d.nodes...)
	return nil
}

func (d *fakeDocument) ClearErrors() error {
	kept := d.nodes[:0]
	for _, n := range d.nodes {
		if !n.error {
			kept = append(kept, n)
		}
	}
	d.nodes = kept
	return nil
}

// errorAfter returns the texts of the error nodes directly after input.
func (d *fakeDocument) errorAfter(input string) []string {
	var out []string
	for i, n := range d.nodes {
		if n.input != input {
			continue
		}
		for _, next := range d.nodes[i+1:] {
			if !next.error {
				break
			}
			out = append(out, next.text)
		}
	}
	return out
}

func (d *fakeDocument) errorCount() int {
	count := 0
	for _, n := range d.nodes {
		if n.error {
			count++
		}
	}
	return count
}

type fakeNavigator struct{ location string }

func (n *fakeNavigator) Navigate(url string) error {
	n.location = url
	return nil
}

type fakeVerifier struct {
	verdict  models.Verdict
	err      error
	calls    int
	endpoint string
	body     map[string]string
}

func (v *fakeVerifier) Verify(_ context.Context, endpoint string, body map[string]string) (models.Verdict, error) {
	v.calls++
	v.endpoint = endpoint
	v.body = body
	return v.verdict, v.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func loginDocument(email, password string) *fakeDocument {
	return newFakeDocument(map[string]string{"email": email, "password": password}, "email", "password")
}

func registerDocument(values map[string]string) *fakeDocument {
	return newFakeDocument(values, "nombre", "apellido", "email", "password", "confirm_password")
}

func TestLoginBlankFieldsBlockWithoutNetwork(t *testing.T) {
	for _, blank := range []string{"", "   ", "\t"} {
		doc := loginDocument(blank, blank)
		v := &fakeVerifier{}
		c := New(forms.Login(), doc, doc, &fakeNavigator{}, v, WithLogger(quietLogger()))

		if got := c.Submit(context.Background()); got != StateBlocked {
			t.Fatalf("state = %s, want blocked", got)
		}
		if v.calls != 0 {
			t.Fatalf("verifier called %d times for blank input", v.calls)
		}
		if diff := cmp.Diff([]string{"Por favor, ingresa tu correo electrónico."}, doc.errorAfter("email")); diff != "" {
			t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"Por favor, ingresa tu contraseña."}, doc.errorAfter("password")); diff != "" {
			t.Fatalf("password errors mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRegisterBlankNamesBlock(t *testing.T) {
	doc := registerDocument(map[string]string{
		"nombre": " ", "apellido": "", "email": "a@b.c", "password": "abcdef", "confirm_password": "abcdef",
	})
	v := &fakeVerifier{}
	c := New(forms.Register(), doc, doc, &fakeNavigator{}, v, WithLogger(quietLogger()))

	if got := c.Submit(context.Background()); got != StateBlocked {
		t.Fatalf("state = %s, want blocked", got)
	}
	if v.calls != 0 {
		t.Fatalf("verifier called for invalid input")
	}
	if len(doc.errorAfter("nombre")) != 1 || len(doc.errorAfter("apellido")) != 1 {
		t.Fatalf("expected name and surname errors, got %+v", doc.nodes)
	}
	if doc.errorCount() != 2 {
		t.Fatalf("expected 2 error nodes, got %d", doc.errorCount())
	}
}

func TestRegisterMismatchRegardlessOfLength(t *testing.T) {
	doc := registerDocument(map[string]string{
		"nombre": "Ana", "apellido": "Pérez", "email": "a@b.c", "password": "abcdef", "confirm_password": "abcdef2",
	})
	c := New(forms.Register(), doc, doc, &fakeNavigator{}, &fakeVerifier{}, WithLogger(quietLogger()))

	if got := c.Submit(context.Background()); got != StateBlocked {
		t.Fatalf("state = %s, want blocked", got)
	}
	if diff := cmp.Diff([]string{"Las contraseñas no coinciden."}, doc.errorAfter("confirm_password")); diff != "" {
		t.Fatalf("confirmation errors mismatch (-want +got):\n%s", diff)
	}
	if doc.errorCount() != 1 {
		t.Fatalf("expected exactly one error node, got %d", doc.errorCount())
	}
}

func TestLoginSuccessNavigates(t *testing.T) {
	doc := loginDocument(" user@example.com ", "secret")
	nav := &fakeNavigator{}
	v := &fakeVerifier{verdict: models.Verdict{Success: true, RedirectURL: "/home"}}
	c := New(forms.Login(), doc, doc, nav, v, WithLogger(quietLogger()))

	if got := c.Submit(context.Background()); got != StateRedirected {
		t.Fatalf("state = %s, want redirected", got)
	}
	if nav.location != "/home" {
		t.Fatalf("location = %q, want /home", nav.location)
	}
	if v.endpoint != "/api/check_credentials" {
		t.Fatalf("endpoint = %q", v.endpoint)
	}
	if diff := cmp.Diff(map[string]string{"email": "user@example.com", "password": "secret"}, v.body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	if doc.submitted != 0 {
		t.Fatalf("login must navigate, not submit natively")
	}
}

func TestLoginServerErrorRendersAfterField(t *testing.T) {
	doc := loginDocument("user@example.com", "secret")
	nav := &fakeNavigator{}
	v := &fakeVerifier{verdict: models.Verdict{Errors: map[string]string{"password": "bad"}}}
	c := New(forms.Login(), doc, doc, nav, v, WithLogger(quietLogger()))

	if got := c.Submit(context.Background()); got != StateErrorsShown {
		t.Fatalf("state = %s, want errors_shown", got)
	}
	if diff := cmp.Diff([]string{"bad"}, doc.errorAfter("password")); diff != "" {
		t.Fatalf("password errors mismatch (-want +got):\n%s", diff)
	}
	if doc.errorCount() != 1 {
		t.Fatalf("expected a single error node, got %d", doc.errorCount())
	}
	if nav.location != "" {
		t.Fatalf("navigated to %q after a rejection", nav.location)
	}
}

func TestRegisterSuccessSubmitsNatively(t *testing.T) {
	doc := registerDocument(map[string]string{
		"nombre": "Ana", "apellido": "Pérez", "email": "ana@example.com", "password": "abcdef", "confirm_password": "abcdef",
	})
	nav := &fakeNavigator{}
	v := &fakeVerifier{verdict: models.Verdict{Success: true}}
	c := New(forms.Register(), doc, doc, nav, v, WithLogger(quietLogger()))

	if got := c.Submit(context.Background()); got != StateRedirected {
		t.Fatalf("state = %s, want redirected", got)
	}
	if doc.submitted != 1 {
		t.Fatalf("submitted %d times, want 1", doc.submitted)
	}
	if nav.location != "" {
		t.Fatalf("registration must not navigate directly")
	}
	if diff := cmp.Diff(map[string]string{"email": "ana@example.com"}, v.body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterTakenEmail(t *testing.T) {
	doc := registerDocument(map[string]string{
		"nombre": "Ana", "apellido": "Pérez", "email": "ana@example.com", "password": "abcdef", "confirm_password": "abcdef",
	})
	v := &fakeVerifier{verdict: models.Reject("email", "El correo electrónico ya está registrado.")}
	c := New(forms.Register(), doc, doc, &fakeNavigator{}, v, WithLogger(quietLogger()))

	if got := c.Submit(context.Background()); got != StateErrorsShown {
		t.Fatalf("state = %s, want errors_shown", got)
	}
	if doc.submitted != 0 {
		t.Fatalf("form submitted after rejection")
	}
	if len(doc.errorAfter("email")) != 1 {
		t.Fatalf("expected email error, got %+v", doc.nodes)
	}
}

func TestTransportFailureFailsClosed(t *testing.T) {
	var logs bytes.Buffer
	doc := loginDocument("user@example.com", "secret")
	nav := &fakeNavigator{}
	v := &fakeVerifier{err: errors.New("connection refused")}
	c := New(forms.Login(), doc, doc, nav, v, WithLogger(log.New(&logs, "", 0)))

	if got := c.Submit(context.Background()); got != StateFailed {
		t.Fatalf("state = %s, want failed", got)
	}
	if nav.location != "" || doc.submitted != 0 {
		t.Fatalf("form left the page after a transport failure")
	}
	if !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("failure not logged: %q", logs.String())
	}
	if doc.errorCount() != 1 || doc.nodes[0].text != DefaultTransportMessage {
		t.Fatalf("expected a generic form error, got %+v", doc.nodes)
	}
}

func TestTransportFailureCanStaySilent(t *testing.T) {
	doc := loginDocument("user@example.com", "secret")
	v := &fakeVerifier{err: ErrMalformedVerdict}
	c := New(forms.Login(), doc, doc, &fakeNavigator{}, v, WithLogger(quietLogger()), WithTransportMessage(""))

	if got := c.Submit(context.Background()); got != StateFailed {
		t.Fatalf("state = %s, want failed", got)
	}
	if doc.errorCount() != 0 {
		t.Fatalf("expected no error nodes, got %d", doc.errorCount())
	}
}

func TestMissingRedirectFailsClosed(t *testing.T) {
	doc := loginDocument("user@example.com", "secret")
	nav := &fakeNavigator{}
	v := &fakeVerifier{verdict: models.Verdict{Success: true}}
	c := New(forms.Login(), doc, doc, nav, v, WithLogger(quietLogger()))

	if got := c.Submit(context.Background()); got != StateFailed {
		t.Fatalf("state = %s, want failed", got)
	}
	if nav.location != "" {
		t.Fatalf("navigated without a redirect_url")
	}
}

func TestErrorsClearedBetweenAttempts(t *testing.T) {
	doc := loginDocument("", "")
	v := &fakeVerifier{verdict: models.Verdict{Errors: map[string]string{"password": "bad"}}}
	c := New(forms.Login(), doc, doc, &fakeNavigator{}, v, WithLogger(quietLogger()))

	c.Submit(context.Background())
	if doc.errorCount() != 2 {
		t.Fatalf("expected 2 errors after first attempt, got %d", doc.errorCount())
	}

	doc.values = map[string]string{"email": "user@example.com", "password": "nope"}
	c.Submit(context.Background())
	if doc.errorCount() != 1 {
		t.Fatalf("stale errors survived: %+v", doc.nodes)
	}
	if c.State() != StateErrorsShown {
		t.Fatalf("state = %s, want errors_shown", c.State())
	}
}

func TestUnknownServerFieldsBecomeFormErrors(t *testing.T) {
	doc := loginDocument("user@example.com", "secret")
	v := &fakeVerifier{verdict: models.Verdict{Errors: map[string]string{
		models.FormErrorKey: "Demasiadas solicitudes.",
		"email":             "no registrado",
	}}}
	c := New(forms.Login(), doc, doc, &fakeNavigator{}, v, WithLogger(quietLogger()))

	c.Submit(context.Background())
	if doc.nodes[0].text != "Demasiadas solicitudes." {
		t.Fatalf("expected form-level message first, got %+v", doc.nodes)
	}
	if diff := cmp.Diff([]string{"no registrado"}, doc.errorAfter("email")); diff != "" {
		t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
	}
}

func TestClearErrorsIsIdempotent(t *testing.T) {
	doc := loginDocument("", "")
	if err := doc.ClearErrors(); err != nil {
		t.Fatal(err)
	}
	if err := doc.ClearErrors(); err != nil {
		t.Fatal(err)
	}
	if doc.errorCount() != 0 || len(doc.nodes) != 2 {
		t.Fatalf("clearing an empty document changed it: %+v", doc.nodes)
	}
}

func TestStateString(t *testing.T) {
	if StateAwaitingServer.String() != "awaiting_server" || State(42).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
	if !StateBlocked.Terminal() || StateValidating.Terminal() {
		t.Fatalf("unexpected terminal states")
	}
}
