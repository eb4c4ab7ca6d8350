package confirm_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-confirm"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIssueLimiterAllowsBurstThenDenies(t *testing.T) {
	limiter := confirm.NewIssueLimiter(rate.Every(time.Hour), 3)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("a@example.com"), "burst request %d should pass", i)
	}
	assert.False(t, limiter.Allow("a@example.com"))
}

func TestIssueLimiterIsPerAddress(t *testing.T) {
	limiter := confirm.NewIssueLimiter(rate.Every(time.Hour), 1)
	defer limiter.Stop()

	assert.True(t, limiter.Allow("a@example.com"))
	assert.False(t, limiter.Allow("a@example.com"))
	assert.True(t, limiter.Allow("b@example.com"))
}

func TestIssueLimiterStopIsIdempotent(t *testing.T) {
	limiter := confirm.NewIssueLimiter(rate.Every(time.Second), 1)
	limiter.Stop()
	limiter.Stop()
}
