// Package signup intercepts the account signup form, checks that the password
// was typed the same way twice, and fires the account creation request.
//
// The handler does not know about browsers or HTTP servers. It talks to the
// page through Event, Form and Notifier, and to the backend through Transport.
// The dom subpackage binds it to a real document when compiled to js/wasm;
// the frontend handler package binds it to plain form posts.
package signup

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/devbook-dev/devbook/frontend/internal/apiclient"
	"github.com/devbook-dev/devbook/shared/api"
	"github.com/devbook-dev/devbook/shared/logger"
)

// Element ids of the signup form and its fields.
const (
	FormID               = "signup-form"
	FieldName            = "name"
	FieldNick            = "nick"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm-password"
)

const (
	// MismatchMessage is shown to the user when the two password fields differ.
	MismatchMessage = "Passwords do not match"
	// TraceName is the message of the log line written on every mismatch.
	TraceName = "createUser"
	// CreateUserPath is where accepted submissions are posted.
	CreateUserPath = apiclient.UsersPath
)

// ErrPasswordMismatch is returned by Validate when the password fields differ.
var ErrPasswordMismatch = errors.New(MismatchMessage)

// FormData is assembled on every submit and dropped once the request is sent.
type FormData struct {
	Name     string
	Nickname string
	Email    string
	Password string
}

// Request is the body sent to CreateUserPath. The confirmation is not part of it.
func (d FormData) Request() api.CreateUserRequest {
	return api.CreateUserRequest{
		Name:     d.Name,
		Nick:     d.Nickname,
		Email:    d.Email,
		Password: d.Password,
	}
}

// Form reads the current value of a field by element id.
type Form interface {
	Value(id string) string
}

// Event is one submit of the bound form.
type Event interface {
	PreventDefault()
	Form() Form
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) { f(message) }

// Transport starts a request and hands back its deferred result without waiting.
type Transport interface {
	Dispatch(method, path string, body any) *apiclient.Pending
}

// Outcome reports what Submit did with one event.
type Outcome int

const (
	// Rejected means the passwords differed and nothing was sent.
	Rejected Outcome = iota
	// Dispatched means the creation request was started.
	Dispatched
)

func (o Outcome) String() string {
	if o == Dispatched {
		return "dispatched"
	}
	return "rejected"
}

// Handler reacts to submits of the signup form. It keeps no state between submits.
type Handler struct {
	transport Transport
	notifier  Notifier
	trace     *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithTrace replaces the logger that receives the mismatch trace line.
func WithTrace(l *slog.Logger) Option {
	return func(h *Handler) { h.trace = l }
}

// New returns a Handler that sends through transport and alerts through notifier.
// The mismatch trace goes to logger.Log unless WithTrace says otherwise.
func New(transport Transport, notifier Notifier, opts ...Option) *Handler {
	h := &Handler{
		transport: transport,
		notifier:  notifier,
		trace:     logger.Log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Validate reads the form and applies the only check there is: both password
// fields must hold the exact same string. Empty values are not rejected.
func Validate(f Form) (FormData, error) {
	password := f.Value(FieldPassword)
	if password != f.Value(FieldConfirmPassword) {
		return FormData{}, ErrPasswordMismatch
	}
	return FormData{
		Name:     f.Value(FieldName),
		Nickname: f.Value(FieldNick),
		Email:    f.Value(FieldEmail),
		Password: password,
	}, nil
}

// Submit handles one submit event. The default submission is always suppressed.
// On a match the creation request is dispatched once and not awaited; its
// outcome is deliberately left unobserved.
func (h *Handler) Submit(ev Event) Outcome {
	ev.PreventDefault()

	data, err := Validate(ev.Form())
	if err != nil {
		h.notifier.Alert(MismatchMessage)
		h.trace.Info(TraceName)
		return Rejected
	}

	h.transport.Dispatch(http.MethodPost, CreateUserPath, data.Request())
	return Dispatched
}
