package confirm

import (
	"context"
	"net/url"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	lastVars map[string]string
}

func (m *stubMailer) Send(templateID, locale string, format MailFormat, vars map[string]string, to ...string) error {
	m.lastVars = vars
	return nil
}

func (m *stubMailer) token(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(m.lastVars["confirmationLink"])
	require.NoError(t, err)
	return u.Query().Get("id")
}

func newTestConfirmController(mailer *stubMailer) *ConfirmController {
	coordinator := New(mailer)
	return NewConfirmController(WithConfirmCoordinator(coordinator))
}

func issueToken(t *testing.T, ctrl *ConfirmController, mailer *stubMailer, handler Handler) string {
	t.Helper()
	err := ctrl.Coordinator.SendConfirmationMail(context.Background(), "a@example.com", Request{
		Action:  "Confirm your email",
		Handler: handler,
	})
	require.NoError(t, err)
	return mailer.token(t)
}

func TestConfirmGetMissingIDIsRoutingError(t *testing.T) {
	mailer := &stubMailer{}

	var captured error
	coordinator := New(mailer)
	ctrl := NewConfirmController(
		WithConfirmCoordinator(coordinator),
		WithConfirmErrorHandler(func(c router.Context, err error) error {
			captured = err
			return nil
		}),
	)

	ctx := router.NewMockContext()

	err := ctrl.ConfirmGet(ctx)
	require.NoError(t, err)
	require.Equal(t, ErrMissingToken, captured, "blank id is a routing error, not an invalid token")
}

func TestConfirmGetBlankIDIsRoutingError(t *testing.T) {
	mailer := &stubMailer{}

	var captured error
	ctrl := NewConfirmController(
		WithConfirmCoordinator(New(mailer)),
		WithConfirmErrorHandler(func(c router.Context, err error) error {
			captured = err
			return nil
		}),
	)

	ctx := router.NewMockContext()
	ctx.QueriesM["id"] = "   "

	require.NoError(t, ctrl.ConfirmGet(ctx))
	require.Equal(t, ErrMissingToken, captured)
}

func TestConfirmGetRedirectsOnSuccessWithLocation(t *testing.T) {
	mailer := &stubMailer{}
	ctrl := newTestConfirmController(mailer)

	token := issueToken(t, ctrl, mailer, func(email string, c Context, locale string) Result {
		return Result{Status: StatusSuccess, Message: "Welcome", Location: "/home"}
	})

	ctx := router.NewMockContext()
	ctx.QueriesM["id"] = token
	ctx.On("Context").Return(context.Background())
	ctx.On("Redirect", "/home", []int{router.StatusSeeOther}).Return(nil)

	require.NoError(t, ctrl.ConfirmGet(ctx))
	ctx.AssertExpectations(t)
}

func TestConfirmGetRendersResultWithoutLocation(t *testing.T) {
	mailer := &stubMailer{}
	ctrl := newTestConfirmController(mailer)

	token := issueToken(t, ctrl, mailer, func(email string, c Context, locale string) Result {
		return Result{Status: StatusSuccess, Message: "Welcome"}
	})

	ctx := router.NewMockContext()
	ctx.QueriesM["id"] = token
	ctx.On("Context").Return(context.Background())

	var view router.ViewContext
	ctx.On("Render", ctrl.Views.Result, mock.Anything).Run(func(args mock.Arguments) {
		view = args.Get(1).(router.ViewContext)
	}).Return(nil)

	require.NoError(t, ctrl.ConfirmGet(ctx))
	require.Equal(t, "success", view["status"])
	require.Equal(t, "Welcome", view["message"])
}

func TestConfirmGetRendersGenericErrorForUnknownToken(t *testing.T) {
	mailer := &stubMailer{}
	ctrl := newTestConfirmController(mailer)

	ctx := router.NewMockContext()
	ctx.QueriesM["id"] = "nonexistent-token"
	ctx.On("Context").Return(context.Background())

	var view router.ViewContext
	ctx.On("Render", ctrl.Views.Result, mock.Anything).Run(func(args mock.Arguments) {
		view = args.Get(1).(router.ViewContext)
	}).Return(nil)

	require.NoError(t, ctrl.ConfirmGet(ctx))
	require.Equal(t, "error", view["status"])
	require.NotEmpty(t, view["message"])
}

func TestConfirmGetErrorResultDoesNotRedirect(t *testing.T) {
	mailer := &stubMailer{}
	ctrl := newTestConfirmController(mailer)

	token := issueToken(t, ctrl, mailer, func(email string, c Context, locale string) Result {
		return Result{Status: StatusError, Message: "declined", Location: "/never"}
	})

	ctx := router.NewMockContext()
	ctx.QueriesM["id"] = token
	ctx.On("Context").Return(context.Background())

	var view router.ViewContext
	ctx.On("Render", ctrl.Views.Result, mock.Anything).Run(func(args mock.Arguments) {
		view = args.Get(1).(router.ViewContext)
	}).Return(nil)

	require.NoError(t, ctrl.ConfirmGet(ctx))
	require.Equal(t, "error", view["status"])
	ctx.AssertNotCalled(t, "Redirect", mock.Anything, mock.Anything)
}

func TestNewConfirmControllerPanicsWithoutCoordinator(t *testing.T) {
	require.Panics(t, func() {
		NewConfirmController()
	})
}

func TestConfirmGetPassesLocaleThrough(t *testing.T) {
	mailer := &stubMailer{}
	ctrl := newTestConfirmController(mailer)

	var gotLocale string
	token := issueToken(t, ctrl, mailer, func(email string, c Context, locale string) Result {
		gotLocale = locale
		return Result{Status: StatusSuccess, Message: "ok"}
	})

	ctx := router.NewMockContext()
	ctx.QueriesM["id"] = token
	ctx.QueriesM["locale"] = "fr"
	ctx.On("Context").Return(context.Background())
	ctx.On("Render", ctrl.Views.Result, mock.Anything).Return(nil)

	require.NoError(t, ctrl.ConfirmGet(ctx))
	require.Equal(t, "fr", gotLocale)
}
