// Package confirm implements a passwordless "confirm by email" workflow: a
// caller requests a sensitive action (login, registration, joining a
// community), the coordinator emails a one-time confirmation link, and
// clicking the link completes the action.
//
// Coordinator:
//   - Coordinator is the orchestrating service. It mints an opaque random
//     token per request, stores the pending confirmation in a bounded
//     TokenStore, and asks the injected Mailer to deliver a link of the form
//     {baseURL}/confirm?id={token}. Redeeming the token dispatches to the
//     Handler bound at request time; the coordinator never knows what the
//     action does.
//
// Token lifecycle:
//   - Tokens are single use. A SUCCESS or WARNING handler outcome removes
//     the pending record, so replaying the same link reports the generic
//     "invalid or expired" message. A declined (ERROR) outcome or a handler
//     panic leaves the token pending so the user may retry within the
//     remaining TTL. Unknown, expired, and already-used tokens are
//     indistinguishable to callers.
//   - TokenStore bounds both time (per-entry TTL, default 5 minutes) and
//     space (capacity, default 1000 entries) so an unauthenticated flood of
//     confirmation requests cannot grow memory without limit.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter describing issuance,
//     redemption, declines, faults, and rejected tokens. Sinks run
//     best-effort (errors are logged) so you can forward to a database or
//     queue without blocking the confirmation flow.
package confirm
