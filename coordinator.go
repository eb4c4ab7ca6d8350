package confirm

import (
	"context"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// DefaultMailTemplate identifies the mail template the coordinator asks the
// Mailer to render.
const DefaultMailTemplate = "confirmation"

// DefaultConfirmRoute is the path segment of the generated link.
const DefaultConfirmRoute = "/confirm"

// AddressCollector is the continuation returned by StartConfirmationProcess.
// The address-collection UI invokes it once it knows where to send the mail.
type AddressCollector func(ctx context.Context, email string) error

// CoordinatorOption customizes coordinator behavior.
type CoordinatorOption func(*Coordinator)

// WithLogger overrides the coordinator logger.
func WithLogger(logger Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTranslator wires the translation collaborator used for the countdown
// text and the generic failure messages.
func WithTranslator(t Translator) CoordinatorOption {
	return func(c *Coordinator) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithTokenStore replaces the default token store.
func WithTokenStore(store *TokenStore) CoordinatorOption {
	return func(c *Coordinator) {
		if store != nil {
			c.store = store
		}
	}
}

// WithIssueLimiter guards SendConfirmationMail with a per-address limiter.
func WithIssueLimiter(limiter *IssueLimiter) CoordinatorOption {
	return func(c *Coordinator) {
		c.limiter = limiter
	}
}

// WithActivitySink sets the ActivitySink used to publish lifecycle events.
func WithActivitySink(sink ActivitySink) CoordinatorOption {
	return func(c *Coordinator) {
		c.sink = normalizeActivitySink(sink)
	}
}

// WithBaseURL sets the instance base URL confirmation links are built on.
// Empty yields relative links.
func WithBaseURL(baseURL string) CoordinatorOption {
	return func(c *Coordinator) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithInstanceName sets the instance name passed to the mail template.
func WithInstanceName(name string) CoordinatorOption {
	return func(c *Coordinator) {
		if name != "" {
			c.instanceName = name
		}
	}
}

// WithMailTemplate overrides the mail template identifier.
func WithMailTemplate(templateID string) CoordinatorOption {
	return func(c *Coordinator) {
		if templateID != "" {
			c.mailTemplate = templateID
		}
	}
}

// WithConfirmRoute overrides the link path. Keep it in sync with the route
// the ConfirmController is registered on.
func WithConfirmRoute(route string) CoordinatorOption {
	return func(c *Coordinator) {
		if route != "" {
			c.confirmRoute = route
		}
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		if clock != nil {
			c.now = clock
		}
	}
}

// FromConfig applies base URL, instance name, template, route, and store
// bounds from a Config.
func FromConfig(cfg Config) CoordinatorOption {
	return func(c *Coordinator) {
		if cfg == nil {
			return
		}
		WithBaseURL(cfg.GetBaseURL())(c)
		WithInstanceName(cfg.GetInstanceName())(c)
		WithMailTemplate(cfg.GetMailTemplate())(c)
		WithConfirmRoute(cfg.GetConfirmRoute())(c)

		storeOpts := []TokenStoreOption{}
		if ttl := cfg.GetTokenTTL(); ttl > 0 {
			storeOpts = append(storeOpts, WithStoreTTL(ttl))
		}
		if capacity := cfg.GetTokenCapacity(); capacity > 0 {
			storeOpts = append(storeOpts, WithStoreCapacity(capacity))
		}
		if len(storeOpts) > 0 {
			c.store = NewTokenStore(storeOpts...)
		}
	}
}

// Coordinator orchestrates the confirmation workflow: it issues tokens,
// stores the pending records, triggers the mail send, and on redemption
// looks up, dispatches, and conditionally evicts. It holds injected
// collaborators; there is no ambient/global lookup.
type Coordinator struct {
	mailer       Mailer
	translator   Translator
	store        *TokenStore
	limiter      *IssueLimiter
	logger       Logger
	sink         ActivitySink
	baseURL      string
	instanceName string
	mailTemplate string
	confirmRoute string
	now          func() time.Time
}

// New creates a coordinator around the given mail collaborator.
func New(mailer Mailer, opts ...CoordinatorOption) *Coordinator {
	if mailer == nil {
		panic("Missing Mailer in confirmation coordinator...")
	}

	c := &Coordinator{
		mailer:       mailer,
		translator:   defaultTranslator{},
		logger:       defLogger{},
		sink:         noopActivitySink{},
		instanceName: "this site",
		mailTemplate: DefaultMailTemplate,
		confirmRoute: DefaultConfirmRoute,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = NewTokenStore()
	}

	return c
}

// Store exposes the token store, mainly so hosts can Stop its sweep.
func (c *Coordinator) Store() *TokenStore {
	return c.store
}

// StartConfirmationProcess validates the request and hands back the
// continuation the address-collection step invokes. Collecting the address
// is the caller's concern; the coordinator only needs the result.
func (c *Coordinator) StartConfirmationProcess(req Request) (AddressCollector, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return func(ctx context.Context, email string) error {
		return c.SendConfirmationMail(ctx, email, req)
	}, nil
}

// SendConfirmationMail issues a fresh token for req, stores the pending
// confirmation, and asks the mail collaborator to deliver the link. A mail
// delivery failure is logged and swallowed: the token is already stored and
// stays valid until it expires, so the link can still reach the user
// through another channel. Bad input and rate limiting are hard errors.
func (c *Coordinator) SendConfirmationMail(ctx context.Context, email string, req Request) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid confirmation recipient").
			WithMetadata(map[string]any{"email": email})
	}

	if err := req.Validate(); err != nil {
		return err
	}

	if c.limiter != nil && !c.limiter.Allow(email) {
		c.logger.Info("confirmation request rate limited", "email", email)
		return ErrRateLimited
	}

	token, err := newConfirmationToken()
	if err != nil {
		return err
	}

	c.store.Put(token, PendingConfirmation{
		Token:   token,
		Email:   email,
		Request: req,
	})

	vars := map[string]string{
		"instanceName":        c.instanceName,
		"confirmationLink":    c.confirmationLink(token),
		"confirmationTimeout": c.translator.Translate(MsgTimeout, req.Locale, int(c.store.TTL().Minutes())),
		"actionMessage":       req.Action,
	}

	c.record(ctx, ActivityEvent{
		EventType: ActivityEventConfirmationIssued,
		Email:     email,
		Action:    req.Action,
	})

	if err := c.mailer.Send(c.mailTemplate, req.Locale, MailFormatHTML, vars, email); err != nil {
		c.logger.Error("confirmation mail delivery failed", "email", email, "error", err)
		c.record(ctx, ActivityEvent{
			EventType: ActivityEventConfirmationMailFailed,
			Email:     email,
			Action:    req.Action,
			Metadata:  map[string]any{"error": err.Error()},
		})
	}

	return nil
}

// Confirm redeems a token. Unknown, expired, and already-used tokens all
// yield the same generic error result so the response cannot be used as a
// token oracle. A SUCCESS or WARNING handler outcome consumes the token; an
// ERROR outcome or a handler panic puts it back with its original expiry so
// the user may retry within the remaining TTL. No fault escapes this method.
func (c *Coordinator) Confirm(ctx context.Context, token, locale string) Result {
	rec, ok := c.store.Take(token)
	if !ok {
		c.record(ctx, ActivityEvent{
			EventType: ActivityEventConfirmationRejected,
		})
		return Result{
			Status:  StatusError,
			Message: c.translator.Translate(MsgTokenInvalid, locale),
		}
	}

	res, faulted := c.dispatch(rec, locale)

	event := ActivityEvent{
		Email:  rec.Email,
		Action: rec.Request.Action,
	}

	switch {
	case faulted:
		// same retention policy as a declined action: the token goes back
		// and natural expiry decides
		c.store.Put(token, rec)
		event.EventType = ActivityEventConfirmationFault
	case res.Status.Terminal():
		event.EventType = ActivityEventConfirmationRedeemed
		event.Metadata = map[string]any{"status": string(res.Status)}
	default:
		c.store.Put(token, rec)
		event.EventType = ActivityEventConfirmationDeclined
	}

	c.record(ctx, event)

	return res
}

// dispatch invokes the bound handler inside a failure boundary. Handlers are
// opaque, possibly-failing capabilities; a panic is logged with full detail
// server side and surfaced to the user as a generic localized error.
func (c *Coordinator) dispatch(rec PendingConfirmation, locale string) (res Result, faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("confirmation handler panicked", "action", rec.Request.Action, "panic", r)
			faulted = true
			res = Result{
				Status:  StatusError,
				Message: c.translator.Translate(MsgHandlerFault, locale),
			}
		}
	}()

	return rec.Request.Handler(rec.Email, rec.Request.Context, locale), false
}

// confirmationLink builds {baseURL}{route}?id={token} with the token
// URL-encoded.
func (c *Coordinator) confirmationLink(token string) string {
	query := url.Values{}
	query.Set("id", token)
	return c.baseURL + c.confirmRoute + "?" + query.Encode()
}

func (c *Coordinator) record(ctx context.Context, event ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = c.now()
	}
	if err := c.sink.Record(ctx, event); err != nil {
		c.logger.Error("activity sink record failed", "event", string(event.EventType), "error", err)
	}
}
