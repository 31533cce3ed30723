package smitherr

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jongio/smith-core/logutil"
)

// BreakerSettings returns circuit breaker settings that trip after
// maxFailures consecutive retryable failures. Errors ShouldRetry rejects,
// such as validation errors, count as successes: they say nothing about the
// health of the remote side.
func BreakerSettings(name string, maxFailures uint32, timeout time.Duration) gobreaker.Settings {
	if maxFailures == 0 {
		maxFailures = 5
	}
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !ShouldRetry(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logutil.NewLogger("smitherr").Info("circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}
}

// NewBreaker creates a circuit breaker from BreakerSettings.
func NewBreaker(name string, maxFailures uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(BreakerSettings(name, maxFailures, timeout))
}

// Guard runs fn through cb. A rejected call becomes an API_CIRCUIT_OPEN error.
func Guard(cb *gobreaker.CircuitBreaker, fn func() error) error {
	_, err := cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return circuitOpen(cb.Name(), err)
	}
	return err
}

func circuitOpen(service string, cause error) *Error {
	opts := []Option{
		WithCode(CodeCircuitOpen),
		WithSuggestions(
			"Wait for the service to recover before retrying",
			"Check the service status page",
		),
	}
	if cause != nil {
		opts = append(opts, WithCause(cause))
	}
	return NewAPI(fmt.Sprintf("Too many recent failures calling %s", service), opts...)
}
