//go:build js && wasm

// Package dom binds the signup handler to a browser document.
package dom

import (
	"fmt"
	"syscall/js"

	"github.com/devbook-dev/devbook/frontend/internal/signup"
)

type form struct {
	doc js.Value
}

func (f form) Value(id string) string {
	el := f.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return ""
	}
	return el.Get("value").String()
}

type event struct {
	ev  js.Value
	doc js.Value
}

func (e event) PreventDefault() { e.ev.Call("preventDefault") }
func (e event) Form() signup.Form { return form{doc: e.doc} }

// Alerter shows messages with window.alert.
type Alerter struct {
	Window js.Value
}

func (a Alerter) Alert(message string) {
	a.Window.Call("alert", message)
}

// Bind attaches h to the submit event of the signup form in doc.
// The returned func detaches the listener and releases the callback.
func Bind(doc js.Value, h *signup.Handler) (func(), error) {
	el := doc.Call("getElementById", signup.FormID)
	if el.IsNull() || el.IsUndefined() {
		return nil, fmt.Errorf("element #%s not found", signup.FormID)
	}

	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		h.Submit(event{ev: args[0], doc: doc})
		return nil
	})
	el.Call("addEventListener", "submit", cb)

	return func() {
		el.Call("removeEventListener", "submit", cb)
		cb.Release()
	}, nil
}
