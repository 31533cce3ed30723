// Package progress draws a single-line progress indicator for one long-running
// operation.
//
// A Tracker moves Idle → Running → Finished or Cancelled. On a terminal a
// background goroutine redraws the line at most once per MinInterval; off a
// terminal nothing is drawn until the final line.
//
//	t := progress.New(progress.DefaultOptions())
//	t.Start("Downloading", progress.StyleBar)
//	t.Update(progress.Total(100), progress.Current(40))
//	t.Finish(true, "Downloaded")
package progress
