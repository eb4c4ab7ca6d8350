package confirm

import (
	"strings"

	"github.com/goliatone/go-router"
)

// RegisterConfirmRoutes mounts the redemption endpoint on the given router:
//
//	GET {routes.Confirm}?id={token}
func RegisterConfirmRoutes[T any](app router.Router[T], opts ...ConfirmControllerOption) {

	controller := NewConfirmController(opts...)

	app.
		Get(controller.Routes.Confirm, controller.ConfirmGet).
		SetName("confirm.get")
}

type ConfirmControllerRoutes struct {
	Confirm string
}

type ConfirmControllerViews struct {
	Result string
}

type ConfirmController struct {
	Logger        Logger
	Coordinator   *Coordinator
	Routes        *ConfirmControllerRoutes
	Views         *ConfirmControllerViews
	DefaultLocale string
	// JSON responds with the Result payload instead of rendering the
	// result view; for API-driven hosts without a view engine.
	JSON         bool
	ErrorHandler router.ErrorHandler
}

type ConfirmControllerOption func(*ConfirmController) *ConfirmController

// WithConfirmCoordinator wires the coordinator the controller redeems
// tokens against.
func WithConfirmCoordinator(c *Coordinator) ConfirmControllerOption {
	return func(ctrl *ConfirmController) *ConfirmController {
		ctrl.Coordinator = c
		return ctrl
	}
}

// WithConfirmLogger overrides the controller logger.
func WithConfirmLogger(logger Logger) ConfirmControllerOption {
	return func(ctrl *ConfirmController) *ConfirmController {
		if logger != nil {
			ctrl.Logger = logger
		}
		return ctrl
	}
}

// WithConfirmRoutes overrides the mounted paths.
func WithConfirmRoutes(routes *ConfirmControllerRoutes) ConfirmControllerOption {
	return func(ctrl *ConfirmController) *ConfirmController {
		if routes != nil {
			ctrl.Routes = routes
		}
		return ctrl
	}
}

// WithConfirmViews overrides the view names.
func WithConfirmViews(views *ConfirmControllerViews) ConfirmControllerOption {
	return func(ctrl *ConfirmController) *ConfirmController {
		if views != nil {
			ctrl.Views = views
		}
		return ctrl
	}
}

// WithConfirmDefaultLocale sets the locale used when the request carries
// none.
func WithConfirmDefaultLocale(locale string) ConfirmControllerOption {
	return func(ctrl *ConfirmController) *ConfirmController {
		if locale != "" {
			ctrl.DefaultLocale = locale
		}
		return ctrl
	}
}

// WithConfirmJSON switches the controller to JSON responses.
func WithConfirmJSON(enabled bool) ConfirmControllerOption {
	return func(ctrl *ConfirmController) *ConfirmController {
		ctrl.JSON = enabled
		return ctrl
	}
}

// WithConfirmErrorHandler overrides how routing errors are surfaced.
func WithConfirmErrorHandler(handler router.ErrorHandler) ConfirmControllerOption {
	return func(ctrl *ConfirmController) *ConfirmController {
		if handler != nil {
			ctrl.ErrorHandler = handler
		}
		return ctrl
	}
}

func NewConfirmController(opts ...ConfirmControllerOption) *ConfirmController {
	c := &ConfirmController{
		Logger:        defLogger{},
		DefaultLocale: "en",
		ErrorHandler:  defaultErrHandler,
		Routes: &ConfirmControllerRoutes{
			Confirm: DefaultConfirmRoute,
		},
		Views: &ConfirmControllerViews{
			Result: "confirmation_result",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Coordinator == nil {
		panic("Missing Coordinator in confirm controller...")
	}

	return c
}

// ConfirmGet handles GET /confirm?id={token}. A missing or blank id is a
// routing error, distinct from an invalid token. A non-error result with a
// follow-up location redirects; everything else renders the result view.
func (a *ConfirmController) ConfirmGet(ctx router.Context) error {
	id := strings.TrimSpace(ctx.Query("id"))
	if id == "" {
		a.Logger.Error("confirm route called without id parameter")
		return a.ErrorHandler(ctx, ErrMissingToken)
	}

	locale := ctx.Query("locale")
	if locale == "" {
		locale = a.DefaultLocale
	}

	result := a.Coordinator.Confirm(ctx.Context(), id, locale)

	if result.Status != StatusError && result.Location != "" {
		return ctx.Redirect(result.Location, router.StatusSeeOther)
	}

	if a.JSON {
		status := router.StatusOK
		if result.Status == StatusError {
			status = router.StatusBadRequest
		}
		return ctx.JSON(status, result)
	}

	return ctx.Render(a.Views.Result, router.ViewContext{
		"status":   string(result.Status),
		"message":  result.Message,
		"location": result.Location,
	})
}

func defaultErrHandler(ctx router.Context, err error) error {
	return err
}
