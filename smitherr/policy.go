package smitherr

import (
	"strings"
	"time"
)

// Severity is an alerting level derived from an error code.
type Severity string

// Severities in decreasing order of urgency. SeverityUnknown is reported for
// codes outside the known prefixes.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityUnknown  Severity = "unknown"
)

var severityByPrefix = []struct {
	prefix   string
	severity Severity
}{
	{"SYSTEM_", SeverityCritical},
	{"API_", SeverityHigh},
	{"CONFIG_", SeverityHigh},
	{"RESOURCE_", SeverityMedium},
	{"BUSINESS_", SeverityMedium},
	{"VALIDATION_", SeverityLow},
}

// SeverityOf classifies err by its code prefix.
func SeverityOf(err error) Severity {
	return SeverityForCode(Code(err))
}

// SeverityForCode classifies a code by prefix.
func SeverityForCode(code string) Severity {
	for _, entry := range severityByPrefix {
		if strings.HasPrefix(code, entry.prefix) {
			return entry.severity
		}
	}
	return SeverityUnknown
}

// DefaultRetryDelay applies to retryable codes without their own entry.
const DefaultRetryDelay = time.Second

var retryDelays = map[string]time.Duration{
	CodeRateLimited:        60 * time.Second,
	CodeNetworkUnavailable: 5 * time.Second,
	CodeResourceLocked:     2 * time.Second,
}

// ShouldRetry reports whether the operation that produced err is worth retrying:
// any API error, a timeout or a locked resource.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	code := Code(err)
	return strings.HasPrefix(code, CategoryAPI.Prefix()) ||
		code == CodeTimeout ||
		code == CodeResourceLocked
}

// RetryDelay returns the fixed wait before retrying err.
func RetryDelay(err error) time.Duration {
	if d, ok := retryDelays[Code(err)]; ok {
		return d
	}
	return DefaultRetryDelay
}
