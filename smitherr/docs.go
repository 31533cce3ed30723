package smitherr

import (
	"errors"

	"github.com/jongio/smith-core/browser"
)

// ErrNoDocumentation is returned by OpenDocumentation for errors without a link.
var ErrNoDocumentation = errors.New("error has no documentation link")

// OpenDocumentation opens err's documentation URL with the given browser target.
func OpenDocumentation(err error, target browser.Target) error {
	e := FromError(err)
	if e == nil || e.documentation() == "" {
		return ErrNoDocumentation
	}
	return browser.Launch(browser.LaunchOptions{
		URL:    e.documentation(),
		Target: target,
	})
}
