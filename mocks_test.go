package confirm_test

import (
	"context"

	"github.com/goliatone/go-confirm"
	"github.com/stretchr/testify/mock"
)

// MockMailer implements confirm.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(templateID, locale string, format confirm.MailFormat, vars map[string]string, to ...string) error {
	args := m.Called(templateID, locale, format, vars, to)
	return args.Error(0)
}

// MockActivitySink implements confirm.ActivitySink
type MockActivitySink struct {
	mock.Mock
}

func (m *MockActivitySink) Record(ctx context.Context, event confirm.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
