package confirm

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeTokenNotFound     = "CONFIRMATION_TOKEN_NOT_FOUND"
	TextCodeMissingToken      = "MISSING_CONFIRMATION_TOKEN"
	TextCodeUnbalancedContext = "UNBALANCED_CONTEXT_PAIRS"
	TextCodeMissingHandler    = "MISSING_CONFIRMATION_HANDLER"
	TextCodeRateLimited       = "CONFIRMATION_RATE_LIMITED"
)

// ErrTokenNotFound covers unknown, expired, and already-used tokens alike;
// callers must not be able to tell the cases apart.
var ErrTokenNotFound = goerrors.New("confirmation token is invalid or expired", goerrors.CategoryNotFound).
	WithTextCode(TextCodeTokenNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrMissingToken is returned when the confirm route is reached without an
// id parameter. This is a routing/caller error, not an invalid token.
var ErrMissingToken = goerrors.New("missing confirmation token parameter", goerrors.CategoryBadInput).
	WithTextCode(TextCodeMissingToken).
	WithCode(goerrors.CodeBadRequest)

// ErrUnbalancedContext is returned when a Context is built from an odd
// key/value list.
var ErrUnbalancedContext = goerrors.New("context requires balanced key/value pairs", goerrors.CategoryBadInput).
	WithTextCode(TextCodeUnbalancedContext).
	WithCode(goerrors.CodeBadRequest)

// ErrMissingHandler is returned when a Request carries no Handler.
var ErrMissingHandler = goerrors.New("confirmation request requires a handler", goerrors.CategoryBadInput).
	WithTextCode(TextCodeMissingHandler).
	WithCode(goerrors.CodeBadRequest)

// ErrRateLimited is returned when an address asks for more confirmation
// mails than the issue limiter allows.
var ErrRateLimited = goerrors.New("too many confirmation requests", goerrors.CategoryRateLimit).
	WithTextCode(TextCodeRateLimited).
	WithCode(goerrors.CodeTooManyRequests)
