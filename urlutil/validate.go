package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"
)

// MaxURLLength is the practical limit for URL length (RFC 2616).
const MaxURLLength = 2048

// Validate checks that rawURL is a non-empty http or https URL with a host,
// parseable by net/url and no longer than MaxURLLength.
func Validate(rawURL string) error {
	_, err := Parse(rawURL)
	return err
}

// Parse validates rawURL and returns it parsed, with surrounding whitespace removed.
func Parse(rawURL string) (*neturl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		if parsed.Scheme == "" {
			return nil, fmt.Errorf("url must use http:// or https://")
		}
		return nil, fmt.Errorf("url must use http:// or https://, got: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("url missing host/domain")
	}
	return parsed, nil
}
