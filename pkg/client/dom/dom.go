//go:build js && wasm

// Package dom binds client controllers to HTML forms through syscall/js.
package dom

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/oarkflow/authforms/pkg/client"
	"github.com/oarkflow/authforms/pkg/forms"
)

// ErrorClass tags every error node so ClearErrors can find it again.
const ErrorClass = "error-message"

// FormAttribute names the attribute that tells which definition a form uses.
const FormAttribute = "data-form"

// Form wraps an HTMLFormElement.
type Form struct {
	el js.Value
}

func NewForm(el js.Value) *Form {
	return &Form{el: el}
}

func (f *Form) input(name string) js.Value {
	return f.el.Call("querySelector", `input[name="`+name+`"]`)
}

func (f *Form) Value(name string) string {
	input := f.input(name)
	if !input.Truthy() {
		return ""
	}
	return input.Get("value").String()
}

// Submit uses HTMLFormElement.submit, which does not fire another submit
// event, so the listener is not re-entered.
func (f *Form) Submit() error {
	f.el.Call("submit")
	return nil
}

// Renderer inserts error paragraphs into one form.
type Renderer struct {
	doc  js.Value
	form js.Value
}

func NewRenderer(doc, form js.Value) *Renderer {
	return &Renderer{doc: doc, form: form}
}

func (r *Renderer) node(message string) js.Value {
	p := r.doc.Call("createElement", "p")
	p.Set("className", ErrorClass)
	p.Set("innerText", message)
	return p
}

// ShowError places the message immediately after the named input.
func (r *Renderer) ShowError(field, message string) error {
	input := r.form.Call("querySelector", `input[name="`+field+`"]`)
	if !input.Truthy() {
		return fmt.Errorf("%w: %s", client.ErrFieldNotFound, field)
	}
	input.Get("parentNode").Call("insertBefore", r.node(message), input.Get("nextSibling"))
	return nil
}

// ShowFormError places the message at the top of the form.
func (r *Renderer) ShowFormError(message string) error {
	r.form.Call("insertBefore", r.node(message), r.form.Get("firstChild"))
	return nil
}

func (r *Renderer) ClearErrors() error {
	nodes := r.form.Call("querySelectorAll", "."+ErrorClass)
	for i := nodes.Length() - 1; i >= 0; i-- {
		nodes.Index(i).Call("remove")
	}
	return nil
}

// Navigator changes window.location.
type Navigator struct {
	window js.Value
}

func NewNavigator(window js.Value) *Navigator {
	return &Navigator{window: window}
}

func (n *Navigator) Navigate(url string) error {
	n.window.Get("location").Set("href", url)
	return nil
}

// Bind listens for submit on form. The default navigation is suppressed
// synchronously and the controller runs on its own goroutine, since a
// blocking fetch inside a js callback would deadlock. The returned function
// must be released once the form is gone.
func Bind(form js.Value, c *client.Controller) js.Func {
	handler := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		go c.Submit(context.Background())
		return nil
	})
	form.Call("addEventListener", "submit", handler)
	return handler
}

// Mount binds a controller to every form carrying data-form whose value
// names a definition in set.
func Mount(window js.Value, set forms.Set, verifier client.Verifier, opts ...client.Option) ([]js.Func, error) {
	doc := window.Get("document")
	nav := NewNavigator(window)
	nodes := doc.Call("querySelectorAll", "form["+FormAttribute+"]")

	var bound []js.Func
	for i := 0; i < nodes.Length(); i++ {
		el := nodes.Index(i)
		def, err := set.Lookup(el.Call("getAttribute", FormAttribute).String())
		if err != nil {
			for _, fn := range bound {
				fn.Release()
			}
			return nil, err
		}
		form := NewForm(el)
		c := client.New(def, form, NewRenderer(doc, el), nav, verifier, opts...)
		bound = append(bound, Bind(el, c))
	}
	return bound, nil
}
