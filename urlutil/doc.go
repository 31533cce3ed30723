// Package urlutil validates the links smith prints or opens.
//
// Documentation links attached to errors and URLs handed to the browser
// launcher go through Validate, which accepts only absolute http and https
// URLs with a host, at most MaxURLLength characters long. Surrounding
// whitespace is ignored.
//
//	if err := urlutil.Validate(link); err != nil {
//		return fmt.Errorf("invalid documentation link: %w", err)
//	}
package urlutil
