package confirm

import (
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// MailFormat is the MIME type of the rendered mail body.
type MailFormat string

const (
	MailFormatHTML MailFormat = "text/html"
	MailFormatText MailFormat = "text/plain"
)

// Mailer delivers the confirmation message. The coordinator calls it with a
// fixed variable set: instanceName, confirmationLink, confirmationTimeout,
// and actionMessage. A non-nil error is treated as a soft failure, the
// pending token stays valid until it expires.
type Mailer interface {
	Send(templateID, locale string, format MailFormat, vars map[string]string, to ...string) error
}

// Translator resolves localized strings for the countdown text and the
// generic failure messages. Args are interpolated into the resolved message.
type Translator interface {
	Translate(key, locale string, args ...any) string
}

// Config holds coordinator options
type Config interface {
	GetBaseURL() string
	GetInstanceName() string
	GetMailTemplate() string
	GetConfirmRoute() string
	GetTokenTTL() time.Duration
	GetTokenCapacity() int
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CONFIRM "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CONFIRM "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CONFIRM "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
