// Package gomailer delivers confirmation mail over SMTP using gomail. It is
// the stock implementation of the confirm.Mailer collaborator; hosts with
// their own mail subsystem only need to satisfy the interface.
package gomailer

import (
	"bytes"
	"html/template"

	"github.com/goliatone/go-confirm"
	goerrors "github.com/goliatone/go-errors"
	gomail "gopkg.in/gomail.v2"
)

var _ confirm.Mailer = &Mailer{}

// DefaultSubject is used when no subject is registered for a template.
const DefaultSubject = "Please confirm your email"

// DefaultTemplate renders the coordinator's fixed variable set.
const DefaultTemplate = `<p>Hi,</p>

<p>You asked to {{.actionMessage}} on {{.instanceName}}.</p>

<p><a href="{{.confirmationLink}}">Click here to confirm</a>.
The link expires in {{.confirmationTimeout}}.</p>

<p>If you did not request this, you can ignore this email.</p>
`

// Option customizes the mailer.
type Option func(*Mailer)

// WithTemplate registers the body template for a template id.
func WithTemplate(templateID, body string) Option {
	return func(m *Mailer) {
		if t, err := template.New(templateID).Parse(body); err == nil {
			m.templates[templateID] = t
		}
	}
}

// WithSubject registers the subject line for a template id.
func WithSubject(templateID, subject string) Option {
	return func(m *Mailer) {
		m.subjects[templateID] = subject
	}
}

// Mailer sends templated confirmation messages through an SMTP relay.
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	templates map[string]*template.Template
	subjects  map[string]string
}

// New creates a Mailer for the given SMTP relay.
func New(host string, port int, user, password, from string, opts ...Option) *Mailer {
	m := &Mailer{
		dialer:    gomail.NewDialer(host, port, user, password),
		from:      from,
		templates: map[string]*template.Template{},
		subjects:  map[string]string{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Send implements confirm.Mailer. The locale is available to hosts that
// register per-locale templates under "{templateID}.{locale}"; plain
// template ids act as the fallback.
func (m *Mailer) Send(templateID, locale string, format confirm.MailFormat, vars map[string]string, to ...string) error {
	body, err := m.render(templateID, locale, vars)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", m.subject(templateID, locale))
	msg.SetBody(string(format), body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "failed to send confirmation email").
			WithMetadata(map[string]any{"template": templateID})
	}

	return nil
}

func (m *Mailer) render(templateID, locale string, vars map[string]string) (string, error) {
	t := m.lookup(templateID, locale)
	if t == nil {
		var err error
		t, err = template.New(templateID).Parse(DefaultTemplate)
		if err != nil {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to parse default mail template")
		}
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to render mail template").
			WithMetadata(map[string]any{"template": templateID})
	}

	return buf.String(), nil
}

func (m *Mailer) lookup(templateID, locale string) *template.Template {
	if locale != "" {
		if t, ok := m.templates[templateID+"."+locale]; ok {
			return t
		}
	}
	return m.templates[templateID]
}

func (m *Mailer) subject(templateID, locale string) string {
	if locale != "" {
		if s, ok := m.subjects[templateID+"."+locale]; ok {
			return s
		}
	}
	if s, ok := m.subjects[templateID]; ok {
		return s
	}
	return DefaultSubject
}
