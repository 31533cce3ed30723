package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// beeepNotify is replaced in tests.
var beeepNotify = func(title, message string, icon any) error {
	return beeep.Notify(title, message, icon)
}

// beeepNotifier implements Notifier using the cross-platform beeep library.
type beeepNotifier struct {
	config Config
}

func newBeeepNotifier(config Config) *beeepNotifier {
	if config.AppName != "" {
		beeep.AppName = config.AppName
	}
	return &beeepNotifier{config: config}
}

// Send sends a notification using beeep.
func (n *beeepNotifier) Send(ctx context.Context, notification Notification) error {
	ctx, cancel := context.WithTimeout(ctx, n.config.Timeout)
	defer cancel()

	title := notification.Title
	if n.config.AppName != "" && title != n.config.AppName {
		title = n.config.AppName + ": " + title
	}

	send := beeepNotify
	result := make(chan error, 1)
	go func() {
		result <- send(title, notification.Message, n.config.Icon)
	}()

	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}

// IsAvailable returns true since beeep handles platform detection internally.
func (n *beeepNotifier) IsAvailable() bool {
	return true
}

// Close is a no-op for beeep.
func (n *beeepNotifier) Close() error {
	return nil
}
