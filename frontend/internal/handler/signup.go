package handler

import (
	"net/http"

	frontend_domain "github.com/devbook-dev/devbook/frontend/internal/domain"
	"github.com/devbook-dev/devbook/frontend/internal/signup"
	"github.com/devbook-dev/devbook/shared/logger"
	mw "github.com/devbook-dev/devbook/shared/middleware"
)

const (
	signupURL    = "/signup"
	wasmPath     = "/static/signup.wasm"
	wasmExecPath = "/static/wasm_exec.js"
)

func (h *Handler) SignupGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signup.html", frontend_domain.SignupPageData{
		FormID:               signup.FormID,
		FieldName:            signup.FieldName,
		FieldNick:            signup.FieldNick,
		FieldEmail:           signup.FieldEmail,
		FieldPassword:        signup.FieldPassword,
		FieldConfirmPassword: signup.FieldConfirmPassword,
		WasmPath:             wasmPath,
		WasmExecPath:         wasmExecPath,
	})
}

// requestForm reads signup fields from a posted form. Input names equal element ids.
type requestForm struct {
	r *http.Request
}

func (f requestForm) Value(id string) string { return f.r.PostFormValue(id) }

// postEvent is a submit that already reached the server. There is no browser
// default left to suppress; the handler stays on /signup regardless.
type postEvent struct {
	form requestForm
}

func (e postEvent) PreventDefault() {}
func (e postEvent) Form() signup.Form { return e.form }

// SignupPostHandler serves browsers that post the form without running the
// wasm binding. It runs the same submission handler and always lands back on
// the signup page; the creation request is not awaited. The request is sent
// on behalf of the browser so the backend limits signups per visitor, not per frontend.
func (h *Handler) SignupPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, signupURL, flashCookieError, "Invalid form data.")
		return
	}
	clientIP, err := mw.GetIPBehind(h.Public.TrustedProxies)(r)
	if err != nil {
		logger.Log.Warn("signup from unknown address", "remote_addr", r.RemoteAddr, "error", err)
		h.redirectWithFlash(w, r, signupURL, flashCookieError, "Could not determine your address.")
		return
	}

	notifier := signup.NotifierFunc(func(message string) {
		h.setFlash(w, flashCookieError, message)
	})
	signup.New(h.TransportFor(clientIP), notifier).Submit(postEvent{form: requestForm{r: r}})

	http.Redirect(w, r, signupURL, http.StatusSeeOther)
}

// UsersProxyHandler passes the browser's same-origin creation request to the backend untouched.
func (h *Handler) UsersProxyHandler(w http.ResponseWriter, r *http.Request) {
	h.UsersProxy.ServeHTTP(w, r)
}
