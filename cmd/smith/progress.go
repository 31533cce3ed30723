package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sony/gobreaker"
	"github.com/spf13/cobra"

	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/notify"
	"github.com/jongio/smith-core/progress"
	"github.com/jongio/smith-core/smitherr"
)

var phases = []string{"prepare", "upload", "publish"}

// uploadHost names the simulated remote side in errors and breaker logs.
const uploadHost = "upload.example.com"

func (a *app) progressCommand() *cobra.Command {
	var (
		style      progress.Style
		total      int
		chunk      int
		step       time.Duration
		interval   time.Duration
		template   string
		fail       bool
		notifyFlag bool
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Simulate an upload with a progress indicator",
		Long: `Simulate uploading total chunks of data. Each chunk is written through a
byte-counting writer that drives the progress indicator. Chunk transfers run
behind a circuit breaker: with --fail the second half of the chunks fail and
the breaker opens after three consecutive failures.`,
		Example: `  smith progress --style bar --total 40
  smith progress --style custom --template "{phase}: {current}/{total} ({remaining} left)"
  smith progress --fail --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("style") {
				style = a.cfg.ProgressStyle()
			}
			opts := a.cfg.ProgressOptions(a.stdout, a.platform)
			if flags.Changed("interval") {
				opts.MinInterval = interval
			}
			if flags.Changed("template") {
				opts.Template = template
			}

			tracker := progress.New(opts)
			tracker.Subscribe(progress.NewMetricsObserver(a.registry))

			if notifyFlag || a.cfg.Notify.Enabled {
				n, err := notify.New(notify.DefaultConfig())
				if err != nil {
					return err
				}
				defer func() { _ = n.Close() }()
				obs := notify.NewProgressObserver(n, "smith", a.cfg.Notify.MinDuration)
				unsubscribe := tracker.Subscribe(obs)
				defer obs.Wait()
				defer unsubscribe()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			u := &upload{
				tracker: tracker,
				breaker: smitherr.NewBreaker(uploadHost, 3, time.Minute),
				chunk:   make([]byte, max(chunk, 1)),
				failAt:  -1,
			}
			if fail {
				u.failAt = total / 2
			}

			err := u.run(ctx, style, total, step)
			switch {
			case errors.Is(err, context.Canceled):
				tracker.Cancel()
				return nil
			case err != nil:
				tracker.Finish(false, "Upload failed")
				return err
			default:
				tracker.Finish(true, "Uploaded all chunks")
				return nil
			}
		},
	}

	flags := cmd.Flags()
	flags.Var(&style, "style", "Progress style (bar, spinner, dots, steps, percentage, custom)")
	flags.IntVar(&total, "total", 20, "Number of chunks to upload")
	flags.IntVar(&chunk, "chunk", 1, "Bytes per chunk")
	flags.DurationVar(&step, "step", 100*time.Millisecond, "Simulated time per chunk")
	flags.DurationVar(&interval, "interval", progress.DefaultMinInterval, "Minimum time between redraws")
	flags.StringVar(&template, "template", "", "Template for the custom style")
	flags.BoolVar(&fail, "fail", false, "Fail every chunk after the first half")
	flags.BoolVar(&notifyFlag, "notify", false, "Send a desktop notification when done")
	return cmd
}

// upload pushes chunks through a progress.CountingWriter behind a breaker.
type upload struct {
	tracker *progress.Tracker
	breaker *gobreaker.CircuitBreaker
	chunk   []byte
	// failAt is the last chunk that succeeds when failing; -1 never fails.
	failAt int
}

// run transfers total chunks, one per step. Retryable chunk failures are
// skipped until the breaker opens; the last failure is returned.
func (u *upload) run(ctx context.Context, style progress.Style, total int, step time.Duration) error {
	u.tracker.Start("Uploading", style)
	u.tracker.Update(progress.Total(total*len(u.chunk)), progress.Phase(phases[0]))

	w := progress.NewCountingWriter(u.tracker)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	var lastErr error
	for i := 1; i <= total; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		u.tracker.Update(progress.Phase(phases[min(i*len(phases)/(total+1), len(phases)-1)]))
		err := smitherr.Guard(u.breaker, func() error {
			if u.failAt >= 0 && i > u.failAt {
				return smitherr.NetworkUnavailable(uploadHost)
			}
			_, err := io.Copy(w, bytes.NewReader(u.chunk))
			return err
		})
		if err == nil {
			continue
		}
		if smitherr.Code(err) == smitherr.CodeCircuitOpen || !smitherr.ShouldRetry(err) {
			return err
		}
		logutil.NewLogger("cli").Debug("chunk failed", "chunk", i, "error", err)
		lastErr = err
	}
	return lastErr
}
