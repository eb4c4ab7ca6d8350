package confirm

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventConfirmationIssued     ActivityEventType = "confirmation.issued"
	ActivityEventConfirmationRedeemed   ActivityEventType = "confirmation.redeemed"
	ActivityEventConfirmationDeclined   ActivityEventType = "confirmation.declined"
	ActivityEventConfirmationFault      ActivityEventType = "confirmation.fault"
	ActivityEventConfirmationRejected   ActivityEventType = "confirmation.rejected"
	ActivityEventConfirmationMailFailed ActivityEventType = "confirmation.mail_failed"
)

// ActivityEvent captures audit-friendly information about a confirmation.
// Events never carry the raw token; it is a credential while pending.
type ActivityEvent struct {
	EventType  ActivityEventType
	Email      string
	Action     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
