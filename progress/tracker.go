package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/time/rate"

	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/termprobe"
)

const (
	// DefaultMinInterval is the shortest gap between two redraws.
	DefaultMinInterval = 100 * time.Millisecond
	// DefaultBarWidth is the number of glyphs in the bar style.
	DefaultBarWidth = 30
)

// State is the lifecycle position of a Tracker.
type State int

const (
	// StateIdle is a tracker that has not been started.
	StateIdle State = iota
	// StateRunning accepts updates and, on a terminal, redraws.
	StateRunning
	// StateFinished is terminal; Finish printed the final line.
	StateFinished
	// StateCancelled is terminal; Cancel printed the cancellation line.
	StateCancelled
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Done reports whether the state is terminal.
func (s State) Done() bool {
	return s == StateFinished || s == StateCancelled
}

// Options configures a Tracker.
type Options struct {
	// Output receives progress lines. Defaults to os.Stdout.
	Output io.Writer
	// Platform is probed once at construction and re-queried for width on each redraw.
	Platform termprobe.Platform
	Color    termprobe.ColorMode

	MinInterval time.Duration
	BarWidth    int
	ShowETA     bool
	ShowElapsed bool
	ShowPhase   bool
	// Template is used by StyleCustom.
	Template string

	// Now replaces time.Now, mostly for tests.
	Now func() time.Time
}

// DefaultOptions returns options writing to stdout with every decoration on.
func DefaultOptions() Options {
	return Options{
		Output:      os.Stdout,
		Platform:    termprobe.System(),
		MinInterval: DefaultMinInterval,
		BarWidth:    DefaultBarWidth,
		ShowETA:     true,
		ShowElapsed: true,
		ShowPhase:   true,
	}
}

// Status is a point-in-time copy of a tracker's progress.
type Status struct {
	State      State
	Style      Style
	Current    int
	Total      int
	Phase      string
	Message    string
	StartTime  time.Time
	LastUpdate time.Time
	Percentage float64
	Elapsed    time.Duration
	// ETA is meaningful only when HasETA is true.
	ETA    time.Duration
	HasETA bool
}

// UpdateOption sets one field during Update. Fields not passed keep their value.
type UpdateOption func(*fields)

type fields struct {
	current, total int
	phase, message string
}

// Current sets the completed unit count.
func Current(n int) UpdateOption {
	return func(f *fields) { f.current = n }
}

// Advance adds n to the completed unit count.
func Advance(n int) UpdateOption {
	return func(f *fields) { f.current += n }
}

// Total sets the expected unit count.
func Total(n int) UpdateOption {
	return func(f *fields) { f.total = n }
}

// Phase sets the phase tag.
func Phase(s string) UpdateOption {
	return func(f *fields) { f.phase = s }
}

// Message sets the message shown next to the indicator.
func Message(s string) UpdateOption {
	return func(f *fields) { f.message = s }
}

// Tracker renders the progress of one long-running operation.
// All methods are safe for concurrent use.
type Tracker struct {
	out      io.Writer
	platform termprobe.Platform
	env      termprobe.Snapshot
	unicode  bool
	now      func() time.Time
	interval time.Duration
	line     lineConfig

	mu         sync.Mutex
	state      State
	style      Style
	fields     fields
	startTime  time.Time
	lastUpdate time.Time
	limiter    *rate.Limiter
	wake       chan struct{}
	stop       chan struct{}
	done       chan struct{}
	seq        uint64

	obsMu     sync.Mutex
	observers map[uint64]Observer
	nextObsID uint64

	emitMu    sync.Mutex
	delivered uint64
}

func logger() *logutil.ComponentLogger {
	return logutil.NewLogger("progress")
}

// New creates an idle tracker. The environment is probed here, once.
func New(opts Options) *Tracker {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Platform == nil {
		opts.Platform = termprobe.System()
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = DefaultMinInterval
	}
	if opts.BarWidth <= 0 {
		opts.BarWidth = DefaultBarWidth
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	unicode := cliout.SupportsUnicode(opts.Platform)
	return &Tracker{
		out:      opts.Output,
		platform: opts.Platform,
		env:      termprobe.Probe(opts.Platform, opts.Color),
		unicode:  unicode,
		now:      opts.Now,
		interval: opts.MinInterval,
		line: lineConfig{
			barWidth:    opts.BarWidth,
			showETA:     opts.ShowETA,
			showElapsed: opts.ShowElapsed,
			showPhase:   opts.ShowPhase,
			template:    opts.Template,
			unicode:     unicode,
		},
		style:     StyleBar,
		observers: make(map[uint64]Observer),
	}
}

// Snapshot returns the environment probed at construction.
func (t *Tracker) Snapshot() termprobe.Snapshot {
	return t.env
}

// Start moves an idle tracker to running. On a terminal it also launches the
// redraw loop. Calling Start on a tracker that is not idle does nothing.
func (t *Tracker) Start(title string, style Style) {
	style, err := ParseStyle(string(style))
	if err != nil {
		logger().Debug("unknown style, using bar", "error", err)
	}

	t.mu.Lock()
	if t.state != StateIdle {
		t.mu.Unlock()
		logger().Debug("start ignored", "state", t.state.String())
		return
	}
	now := t.now()
	t.state = StateRunning
	t.style = style
	t.fields.message = title
	t.startTime = now
	t.lastUpdate = now
	if t.env.IsTerminal {
		t.limiter = rate.NewLimiter(rate.Every(t.interval), 1)
		t.wake = make(chan struct{}, 1)
		t.stop = make(chan struct{})
		t.done = make(chan struct{})
		go t.loop(t.stop, t.wake, t.done)
	}
	st := t.statusLocked(now)
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	logger().Debug("tracker started", "style", string(style), "terminal", t.env.IsTerminal)
	t.dispatch(Event{Kind: EventStarted, Status: st, Seq: seq})
}

// Update applies the given fields. On a terminal the next tick redraws;
// nothing is written synchronously. Updates after Finish or Cancel are ignored.
func (t *Tracker) Update(opts ...UpdateOption) {
	t.mu.Lock()
	if t.state.Done() {
		t.mu.Unlock()
		return
	}
	for _, opt := range opts {
		opt(&t.fields)
	}
	now := t.now()
	t.lastUpdate = now
	if t.wake != nil {
		select {
		case t.wake <- struct{}{}:
		default:
		}
	}
	st := t.statusLocked(now)
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	t.dispatch(Event{Kind: EventUpdated, Status: st, Seq: seq})
}

// Finish stops the tracker and prints a final success or failure line.
// An empty finalMessage reuses the current message. A second call does nothing.
func (t *Tracker) Finish(success bool, finalMessage string) {
	icon, attrs := cliout.IconSuccess, []color.Attribute{color.FgHiGreen}
	if !success {
		icon, attrs = cliout.IconFailure, []color.Attribute{color.FgHiRed}
	}
	t.terminate(StateFinished, func(st Status) string {
		msg := finalMessage
		if msg == "" {
			msg = st.Message
		}
		elapsed := cliout.Paint(t.env.ColorEnabled, "("+FormatElapsed(st.Elapsed)+")", color.Faint)
		return fmt.Sprintf("%s %s %s", icon.For(t.unicode), cliout.Paint(t.env.ColorEnabled, msg, attrs...), elapsed)
	}, Event{Kind: EventFinished, Success: success})
}

// Cancel stops the tracker and prints a cancellation line. A second call does nothing.
func (t *Tracker) Cancel() {
	t.terminate(StateCancelled, func(Status) string {
		return fmt.Sprintf("%s %s", cliout.IconCancelled.For(t.unicode), cliout.Paint(t.env.ColorEnabled, "Operation cancelled", color.FgHiYellow))
	}, Event{Kind: EventCancelled})
}

func (t *Tracker) terminate(state State, final func(Status) string, ev Event) {
	t.mu.Lock()
	if t.state.Done() {
		t.mu.Unlock()
		return
	}
	t.state = state
	t.seq++
	ev.Seq = t.seq
	stop, done := t.stop, t.done
	t.stop, t.done, t.wake = nil, nil, nil
	t.mu.Unlock()

	// Join the redraw loop so no tick can land after the final line.
	if stop != nil {
		close(stop)
		<-done
	}

	t.mu.Lock()
	st := t.statusLocked(t.now())
	if t.env.IsTerminal {
		t.eraseLocked()
	}
	if _, err := fmt.Fprintln(t.out, final(st)); err != nil {
		logger().Debug("final line write failed", "error", err)
	}
	t.mu.Unlock()

	logger().Debug("tracker stopped", "state", state.String(), "elapsed", st.Elapsed.String())
	ev.Status = st
	t.dispatch(ev)
}

// Status returns a snapshot of the current progress.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked(t.now())
}

// State returns the lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Percentage returns current/total*100, or 0 when total is 0.
func (t *Tracker) Percentage() float64 {
	return t.Status().Percentage
}

// ETA returns the projected remaining time, if one can be estimated.
func (t *Tracker) ETA() (time.Duration, bool) {
	st := t.Status()
	return st.ETA, st.HasETA
}

func (t *Tracker) statusLocked(now time.Time) Status {
	st := Status{
		State:      t.state,
		Style:      t.style,
		Current:    t.fields.current,
		Total:      t.fields.total,
		Phase:      t.fields.phase,
		Message:    t.fields.message,
		StartTime:  t.startTime,
		LastUpdate: t.lastUpdate,
		Percentage: Percentage(t.fields.current, t.fields.total),
	}
	if !t.startTime.IsZero() {
		st.Elapsed = now.Sub(t.startTime)
		if st.Elapsed < 0 {
			st.Elapsed = 0
		}
	}
	st.ETA, st.HasETA = EstimateRemaining(st.Current, st.Total, st.Elapsed)
	return st
}

func (t *Tracker) loop(stop <-chan struct{}, wake <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.tick()
		case <-wake:
			t.tick()
		}
	}
}

// tick redraws unless the limiter says the last draw was too recent.
func (t *Tracker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning || t.limiter == nil || !t.limiter.Allow() {
		return
	}
	t.redrawLocked()
}

func (t *Tracker) redrawLocked() {
	width := termprobe.Width(t.platform)
	line := fitWidth(renderLine(t.style, t.statusLocked(t.now()), t.line), width)
	if _, err := io.WriteString(t.out, eraseSequence(width)+line); err != nil {
		logger().Debug("redraw failed", "error", err)
	}
}

func (t *Tracker) eraseLocked() {
	if _, err := io.WriteString(t.out, eraseSequence(termprobe.Width(t.platform))); err != nil {
		logger().Debug("erase failed", "error", err)
	}
}

// eraseSequence returns to column 0, blanks width columns and returns again.
func eraseSequence(width int) string {
	return "\r" + strings.Repeat(" ", width) + "\r"
}

// fitWidth keeps the line one column short of width so the cursor never wraps.
func fitWidth(line string, width int) string {
	limit := width - 1
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(line) <= limit {
		return line
	}
	return runewidth.Truncate(line, limit, "...")
}
