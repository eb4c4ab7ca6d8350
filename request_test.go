package confirm_test

import (
	"testing"

	"github.com/goliatone/go-confirm"
	"github.com/stretchr/testify/assert"
)

func TestRequestValidate(t *testing.T) {
	ok := confirm.Request{
		Action: "Confirm your email",
		Handler: func(string, confirm.Context, string) confirm.Result {
			return confirm.Result{Status: confirm.StatusSuccess}
		},
	}
	assert.NoError(t, ok.Validate())

	noHandler := confirm.Request{Action: "Confirm your email"}
	assert.ErrorIs(t, noHandler.Validate(), confirm.ErrMissingHandler)

	noAction := confirm.Request{
		Handler: func(string, confirm.Context, string) confirm.Result {
			return confirm.Result{Status: confirm.StatusSuccess}
		},
	}
	assert.Error(t, noAction.Validate())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, confirm.StatusSuccess.Terminal())
	assert.True(t, confirm.StatusWarning.Terminal())
	assert.False(t, confirm.StatusError.Terminal())
}
