package progress

// CountingWriter is an io.Writer that advances a tracker by the number of bytes written.
// The bytes themselves are discarded so that subprocess output does not tear the progress line.
type CountingWriter struct {
	tracker *Tracker
}

// NewCountingWriter creates a writer that advances t.
func NewCountingWriter(t *Tracker) *CountingWriter {
	return &CountingWriter{tracker: t}
}

// Write implements io.Writer.
func (w *CountingWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	if n > 0 {
		w.tracker.Update(Advance(n))
	}
	return n, nil
}
