//go:build js && wasm

// Command wasm is the browser client. Build it with
//
//	GOOS=js GOARCH=wasm go build -o static/authforms.wasm ./cmd/wasm
//
// and copy wasm_exec.js from the Go distribution into static/js.
package main

import (
	"context"
	"log"
	"syscall/js"

	"github.com/oarkflow/authforms/pkg/carousel"
	"github.com/oarkflow/authforms/pkg/client"
	"github.com/oarkflow/authforms/pkg/client/dom"
	"github.com/oarkflow/authforms/pkg/forms"
)

func main() {
	window := js.Global()
	origin := window.Get("location").Get("origin").String()
	verifier := client.NewHTTPVerifier(origin, 0)

	bound, err := dom.Mount(window, forms.Default(), verifier)
	if err != nil {
		log.Printf("authforms: %v", err)
		return
	}
	log.Printf("authforms: %d form(s) bound", len(bound))

	doc := window.Get("document")
	if doc.Call("getElementById", "img0").Truthy() {
		go carousel.New(dom.NewSlides(doc, "img"), carousel.DefaultCount).Run(context.Background(), carousel.DefaultPeriod)
	}
	select {}
}
