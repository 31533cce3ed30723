package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/progress"
	"github.com/jongio/smith-core/smitherr"
)

// ProgressObserver sends a notification when a tracked operation ends.
// Operations shorter than MinDuration are not announced.
type ProgressObserver struct {
	notifier    Notifier
	minDuration time.Duration
	title       string
	wg          sync.WaitGroup
}

// NewProgressObserver returns an observer that announces operations lasting
// at least minDuration under the given title.
func NewProgressObserver(n Notifier, title string, minDuration time.Duration) *ProgressObserver {
	return &ProgressObserver{notifier: n, title: title, minDuration: minDuration}
}

// OnProgress implements progress.Observer. Delivery runs in the background;
// call Wait before the process exits.
func (o *ProgressObserver) OnProgress(e progress.Event) {
	n, ok := o.notificationFor(e)
	if !ok {
		return
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		if err := o.notifier.Send(context.Background(), n); err != nil {
			logutil.NewLogger("notify").Debug("notification not delivered", "error", err)
		}
	}()
}

// Wait blocks until pending notifications are delivered or have failed.
func (o *ProgressObserver) Wait() {
	o.wg.Wait()
}

func (o *ProgressObserver) notificationFor(e progress.Event) (Notification, bool) {
	if e.Status.Elapsed < o.minDuration {
		return Notification{}, false
	}
	elapsed := progress.FormatElapsed(e.Status.Elapsed)

	n := Notification{Title: o.title, Timestamp: time.Now()}
	switch e.Kind {
	case progress.EventFinished:
		if e.Success {
			n.Message = fmt.Sprintf("%s completed in %s", e.Status.Message, elapsed)
			n.Severity = SeverityInfo
		} else {
			n.Message = fmt.Sprintf("%s failed after %s", e.Status.Message, elapsed)
			n.Severity = SeverityCritical
		}
	case progress.EventCancelled:
		n.Message = fmt.Sprintf("%s cancelled after %s", e.Status.Message, elapsed)
		n.Severity = SeverityWarning
	default:
		return Notification{}, false
	}
	if n.Title == "" {
		n.Title = e.Status.Message
	}
	return n, true
}

// ForError builds a notification for a domain error, mapping its severity.
func ForError(err error) Notification {
	e := smitherr.FromError(err)
	if e == nil {
		return Notification{}
	}
	severity := SeverityInfo
	switch smitherr.SeverityForCode(e.Code) {
	case smitherr.SeverityCritical:
		severity = SeverityCritical
	case smitherr.SeverityHigh, smitherr.SeverityMedium:
		severity = SeverityWarning
	}
	return Notification{
		Title:     e.Code,
		Message:   e.UserMessage,
		Severity:  severity,
		Timestamp: time.Now(),
	}
}
