package confirm

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Status classifies the outcome of redeeming a confirmation token.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Terminal reports whether the outcome consumes the token. Declined and
// faulted redemptions leave the token pending so the user may retry.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusWarning
}

// Result is the outcome of redeeming a token, produced by the bound handler
// or by the coordinator itself when the lookup fails. Location is an
// optional follow-up route the UI may navigate to after a non-error result.
type Result struct {
	Status   Status `json:"status"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// Handler completes the action bound to a confirmation request once the
// token is redeemed. Handlers are bound per request; no registry exists.
type Handler func(email string, ctx Context, locale string) Result

// Request describes one pending confirmation intent: a human readable
// action message, the handler that completes the action, an opaque context,
// and the locale used for outgoing messages.
type Request struct {
	Action  string
	Handler Handler
	Context Context
	Locale  string
}

// Validate will run validation rules
func (r Request) Validate() error {
	if r.Handler == nil {
		return ErrMissingHandler
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Action, validation.Required, validation.Length(1, 500)),
	)
}
