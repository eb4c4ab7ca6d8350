package confirm

import "fmt"

// Message keys the coordinator resolves through its Translator.
const (
	MsgTokenInvalid = "confirmation.token_invalid"
	MsgHandlerFault = "confirmation.handler_error"
	MsgTimeout      = "confirmation.timeout"
)

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key, locale string, args ...any) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(key, locale string, args ...any) string {
	if f == nil {
		return key
	}
	return f(key, locale, args...)
}

// defaultTranslator resolves the built-in English messages so the library
// works stand-alone. Wire a real translation collaborator through
// WithTranslator for anything user facing.
type defaultTranslator struct{}

var defaultMessages = map[string]string{
	MsgTokenInvalid: "This confirmation link is invalid or has expired.",
	MsgHandlerFault: "We could not complete your request. Please try again.",
	MsgTimeout:      "%d minutes",
}

func (defaultTranslator) Translate(key, locale string, args ...any) string {
	msg, ok := defaultMessages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
