package progress

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jongio/smith-core/cliout"
)

// Style selects how a running tracker is drawn.
type Style string

const (
	// StyleBar draws a filled bar with percentage, ETA and phase.
	StyleBar Style = "bar"
	// StyleSpinner draws a rotating frame before the message.
	StyleSpinner Style = "spinner"
	// StyleDots appends up to three dots to the message.
	StyleDots Style = "dots"
	// StyleSteps shows "Steps: current/total".
	StyleSteps Style = "steps"
	// StylePercentage shows the message and percentage only.
	StylePercentage Style = "percentage"
	// StyleCustom fills the configured template.
	StyleCustom Style = "custom"
)

// ValidStyles returns all styles.
func ValidStyles() []Style {
	return []Style{StyleBar, StyleSpinner, StyleDots, StyleSteps, StylePercentage, StyleCustom}
}

// ParseStyle parses a style name. An empty string is the bar style.
func ParseStyle(s string) (Style, error) {
	name := Style(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return StyleBar, nil
	}
	for _, style := range ValidStyles() {
		if name == style {
			return style, nil
		}
	}
	return StyleBar, fmt.Errorf("invalid progress style: %s (valid options: bar, spinner, dots, steps, percentage, custom)", s)
}

// String implements pflag.Value.
func (s *Style) String() string {
	if s == nil || *s == "" {
		return string(StyleBar)
	}
	return string(*s)
}

// Set implements pflag.Value.
func (s *Style) Set(v string) error {
	parsed, err := ParseStyle(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Style) Type() string {
	return "style"
}

// Template placeholders for StyleCustom.
// Template placeholders understood by StyleCustom.
const (
	PlaceholderPercentage = "{percentage}"
	PlaceholderCurrent    = "{current}"
	PlaceholderTotal      = "{total}"
	PlaceholderPhase      = "{phase}"
	PlaceholderMessage    = "{message}"
	PlaceholderElapsed    = "{elapsed}"
	PlaceholderRemaining  = "{remaining}"

	// DefaultTemplate is used by StyleCustom when no template is configured.
	DefaultTemplate = "{message} {percentage}%"
)

const unknownRemaining = "N/A"

var (
	spinnerFrames      = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinnerFramesASCII = []string{"|", "/", "-", "\\", "|", "/", "-", "\\", "|", "/"}
	dotFrames          = []string{"", ".", "..", "..."}
)

// Percentage returns current/total as a percentage; zero when total is zero.
// It is not clamped: overshooting current yields more than 100.
func Percentage(current, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(current) / float64(total) * 100
}

// maxRemainingSeconds is the largest estimate a time.Duration can hold.
var maxRemainingSeconds = float64(math.MaxInt64) / float64(time.Second)

// EstimateRemaining projects the time left from the observed rate.
// It reports false when current is zero, current has reached total, or the
// rate gives no finite answer. Estimates beyond the range of time.Duration
// are clamped to its maximum.
func EstimateRemaining(current, total int, elapsed time.Duration) (time.Duration, bool) {
	if current <= 0 || current >= total {
		return 0, false
	}
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0, false
	}
	rate := float64(current) / secs
	if rate <= 0 {
		return 0, false
	}
	remaining := float64(total-current) / rate
	if math.IsInf(remaining, 0) || math.IsNaN(remaining) {
		return 0, false
	}
	if remaining >= maxRemainingSeconds {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(remaining * float64(time.Second)), true
}

// FormatElapsed renders H:MM:SS, or M:SS under an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatRemaining renders "Xh Ym", "Xm Ys" or "Xs".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// lineConfig holds the display switches a style needs.
type lineConfig struct {
	barWidth    int
	showETA     bool
	showElapsed bool
	showPhase   bool
	template    string
	unicode     bool
}

// renderLine draws the single progress line for st.
func renderLine(style Style, st Status, cfg lineConfig) string {
	switch style {
	case StyleSpinner:
		return spinnerLine(st, cfg)
	case StyleDots:
		frame := dotFrames[frameIndex(st.Elapsed, 2, len(dotFrames))]
		return st.Message + frame
	case StyleSteps:
		return stepsLine(st, cfg)
	case StylePercentage:
		return joinParts(append([]string{strconv.FormatFloat(st.Percentage, 'f', 1, 64) + "%"}, timing(st, cfg)...))
	case StyleCustom:
		return expandTemplate(cfg.template, st)
	default:
		return barLine(st, cfg)
	}
}

func barLine(st Status, cfg lineConfig) string {
	parts := []string{st.Message, cliout.ProgressBar(st.Percentage, cfg.barWidth)}
	parts = append(parts, timing(st, cfg)...)
	if cfg.showPhase && st.Phase != "" {
		parts = append(parts, "["+st.Phase+"]")
	}
	return joinParts(parts)
}

func spinnerLine(st Status, cfg lineConfig) string {
	frames := spinnerFrames
	if !cfg.unicode {
		frames = spinnerFramesASCII
	}
	parts := []string{frames[frameIndex(st.Elapsed, 10, len(frames))], st.Message}
	if cfg.showPhase && st.Phase != "" {
		parts = append(parts, "["+st.Phase+"]")
	}
	if cfg.showElapsed {
		parts = append(parts, "("+FormatElapsed(st.Elapsed)+")")
	}
	return joinParts(parts)
}

func stepsLine(st Status, cfg lineConfig) string {
	shown := st.Current
	if shown > st.Total {
		shown = st.Total
	}
	parts := []string{fmt.Sprintf("Steps: %d/%d", shown, st.Total), st.Message}
	if cfg.showPhase && st.Phase != "" {
		parts = append(parts, "["+st.Phase+"]")
	}
	return joinParts(parts)
}

func timing(st Status, cfg lineConfig) []string {
	var parts []string
	if cfg.showETA && st.HasETA {
		parts = append(parts, "ETA "+FormatRemaining(st.ETA))
	}
	if cfg.showElapsed {
		parts = append(parts, "("+FormatElapsed(st.Elapsed)+")")
	}
	return parts
}

func expandTemplate(tmpl string, st Status) string {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	remaining := unknownRemaining
	if st.HasETA {
		remaining = FormatRemaining(st.ETA)
	}
	return strings.NewReplacer(
		PlaceholderPercentage, strconv.FormatFloat(st.Percentage, 'f', 1, 64),
		PlaceholderCurrent, strconv.Itoa(st.Current),
		PlaceholderTotal, strconv.Itoa(st.Total),
		PlaceholderPhase, st.Phase,
		PlaceholderMessage, st.Message,
		PlaceholderElapsed, FormatElapsed(st.Elapsed),
		PlaceholderRemaining, remaining,
	).Replace(tmpl)
}

// frameIndex is floor(elapsedSeconds*perSecond) mod n.
func frameIndex(elapsed time.Duration, perSecond float64, n int) int {
	idx := int(math.Floor(elapsed.Seconds()*perSecond)) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

func joinParts(parts []string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
