//go:build js && wasm

package dom

import (
	"strconv"
	"syscall/js"
)

// Slides toggles the presentation classes of the img0..imgN elements.
type Slides struct {
	doc    js.Value
	prefix string
}

func NewSlides(doc js.Value, prefix string) *Slides {
	return &Slides{doc: doc, prefix: prefix}
}

func (s *Slides) classes(i int) (js.Value, bool) {
	el := s.doc.Call("getElementById", s.prefix+strconv.Itoa(i))
	if !el.Truthy() {
		return js.Undefined(), false
	}
	return el.Get("classList"), true
}

func (s *Slides) Hide(i int) {
	cl, ok := s.classes(i)
	if !ok {
		return
	}
	cl.Call("remove", "slide-in-right")
	cl.Call("add", "slide-out-left")
	cl.Call("remove", "main_image_show")
	cl.Call("add", "main_image")
}

func (s *Slides) Show(i int) {
	cl, ok := s.classes(i)
	if !ok {
		return
	}
	cl.Call("remove", "slide-out-left")
	cl.Call("add", "slide-in-right")
	cl.Call("remove", "main_image")
	cl.Call("add", "main_image_show")
}
