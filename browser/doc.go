// Package browser opens documentation links, such as the one attached to a
// smitherr.Error, in the user's web browser.
//
// Launching is delegated to github.com/pkg/browser. This package adds URL
// validation (absolute http and https only), a target switch so that callers
// and configuration can disable launching, and a non-blocking Launch with a
// timeout.
//
//	err := browser.Launch(browser.LaunchOptions{
//	    URL:    "https://example.com/docs/errors#api-rate-limited",
//	    Target: browser.TargetDefault,
//	})
//
// Launch returns an error only for invalid URLs. Failures of the launcher
// itself are logged through logutil and reported to LaunchOptions.Done.
package browser
