package smitherr

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		err  error
		want Severity
	}{
		{NewSystem("x"), SeverityCritical},
		{Timeout("x", time.Second), SeverityCritical},
		{RateLimited("x"), SeverityHigh},
		{MissingConfig("x"), SeverityHigh},
		{NotFound("x", "y"), SeverityMedium},
		{RuleViolation("x"), SeverityMedium},
		{InvalidInput("x", "y"), SeverityLow},
		{NewGeneric("x"), SeverityUnknown},
		{errors.New("plain"), SeverityUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityOf(tt.err), Code(tt.err))
	}
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, ShouldRetry(RateLimited("api")))
	assert.True(t, ShouldRetry(NetworkUnavailable("api")))
	assert.True(t, ShouldRetry(NewAPI("x")))
	assert.True(t, ShouldRetry(Timeout("x", time.Second)))
	assert.True(t, ShouldRetry(ResourceLocked("x")))

	assert.False(t, ShouldRetry(NewValidation("x")))
	assert.False(t, ShouldRetry(NotFound("x", "y")))
	assert.False(t, ShouldRetry(errors.New("plain")))
	assert.False(t, ShouldRetry(nil))
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 60*time.Second, RetryDelay(RateLimited("api")))
	assert.Equal(t, 5*time.Second, RetryDelay(NetworkUnavailable("api")))
	assert.Equal(t, 2*time.Second, RetryDelay(ResourceLocked("x")))
	assert.Equal(t, time.Second, RetryDelay(Timeout("x", time.Second)))
	assert.Equal(t, time.Second, RetryDelay(NewValidation("x")))
}
