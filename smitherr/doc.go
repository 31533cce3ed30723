// Package smitherr is the domain error taxonomy for command line tools.
//
// An Error carries a machine-readable code, a message for the user, optional
// technical details, an ordered list of suggested actions, an optional
// documentation link and a fatal flag. Every category supplies default
// suggestions, so a rendered error always tells the user what to try next.
//
// The code prefix drives everything else: SeverityOf maps it to an alerting
// level, ShouldRetry and RetryDelay implement a static retry table, and
// BreakerSettings keeps non-retryable errors from tripping a circuit breaker.
//
//	err := smitherr.RateLimited("GitHub API")
//	if smitherr.ShouldRetry(err) {
//	    time.Sleep(smitherr.RetryDelay(err))
//	}
//	smitherr.Display(formatter, err, cliout.FormatAuto)
package smitherr
