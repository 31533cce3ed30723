// Package notify sends desktop notifications, most often when a long
// operation tracked by a progress.Tracker finishes while the user is away.
package notify

import (
	"context"
	"errors"
	"time"
)

// Notification represents a notification to be displayed.
type Notification struct {
	Title   string
	Message string
	// Severity is "critical", "warning" or "info".
	Severity  string
	Timestamp time.Time
}

// Severity values.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Notifier delivers notifications to the desktop.
type Notifier interface {
	// Send delivers a notification, giving up when ctx is done.
	Send(ctx context.Context, notification Notification) error

	// IsAvailable reports whether notifications can be shown.
	IsAvailable() bool

	// Close releases notifier resources.
	Close() error
}

// Config contains notification system configuration.
type Config struct {
	// AppName prefixes notification titles.
	AppName string

	// Icon is an optional path to an icon file.
	Icon string

	// Timeout bounds a single Send.
	Timeout time.Duration
}

// DefaultConfig returns default notification configuration.
func DefaultConfig() Config {
	return Config{
		AppName: "smith",
		Timeout: 5 * time.Second,
	}
}

// New creates a desktop notifier.
func New(config Config) (Notifier, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	return newBeeepNotifier(config), nil
}

// Sentinel errors.
var (
	ErrNotAvailable       = errors.New("desktop notifications not available")
	ErrNotificationFailed = errors.New("failed to send notification")
	ErrTimeout            = errors.New("notification timeout")
)
