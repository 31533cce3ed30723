package smitherr

import (
	"fmt"
	"time"
)

// Error codes. Codes within a category share the category prefix.
const (
	CodeGeneral = "GENERAL_ERROR"

	CodeSystem           = "SYSTEM_ERROR"
	CodeTimeout          = "SYSTEM_TIMEOUT"
	CodePermissionDenied = "SYSTEM_PERMISSION_DENIED"

	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "VALIDATION_INVALID_INPUT"

	CodeConfiguration = "CONFIG_ERROR"
	CodeMissingConfig = "CONFIG_MISSING"

	CodeResource         = "RESOURCE_ERROR"
	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodeResourceLocked   = "RESOURCE_LOCKED"

	CodeAPI                = "API_ERROR"
	CodeRateLimited        = "API_RATE_LIMITED"
	CodeNetworkUnavailable = "API_NETWORK_UNAVAILABLE"
	CodeCircuitOpen        = "API_CIRCUIT_OPEN"

	CodeBusinessLogic = "BUSINESS_ERROR"
	CodeRuleViolation = "BUSINESS_RULE_VIOLATION"
)

func genericCode(c Category) string {
	switch c {
	case CategorySystem:
		return CodeSystem
	case CategoryValidation:
		return CodeValidation
	case CategoryConfiguration:
		return CodeConfiguration
	case CategoryResource:
		return CodeResource
	case CategoryAPI:
		return CodeAPI
	case CategoryBusinessLogic:
		return CodeBusinessLogic
	default:
		return CodeGeneral
	}
}

// Timeout reports an operation that did not finish within limit.
func Timeout(operation string, limit time.Duration, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeTimeout),
		WithDetails("%s exceeded %s", operation, limit),
		WithSuggestions(
			"Try the operation again",
			"Increase the timeout if the operation is expected to take longer",
		),
		AsFatal(false),
	}
	return NewSystem(fmt.Sprintf("%s timed out", operation), append(base, opts...)...)
}

// PermissionDenied reports a path or resource the process may not access.
func PermissionDenied(path string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodePermissionDenied),
		WithSuggestions(
			fmt.Sprintf("Check the permissions on %s", path),
			"Run the command as a user with access",
		),
	}
	return NewSystem(fmt.Sprintf("Permission denied: %s", path), append(base, opts...)...)
}

// InvalidInput reports a field whose value failed validation.
func InvalidInput(field, reason string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeInvalidInput),
		WithDetails("%s: %s", field, reason),
	}
	return NewValidation(fmt.Sprintf("Invalid value for %s", field), append(base, opts...)...)
}

// MissingConfig reports a required configuration key that was not set.
func MissingConfig(key string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeMissingConfig),
		WithSuggestions(
			fmt.Sprintf("Set %s in the configuration file", key),
			"Or export it as an environment variable",
		),
	}
	return NewConfiguration(fmt.Sprintf("Missing required configuration: %s", key), append(base, opts...)...)
}

// NotFound reports a resource that does not exist.
func NotFound(kind, name string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeResourceNotFound),
		WithSuggestions(
			fmt.Sprintf("Verify the %s name is spelled correctly", kind),
			fmt.Sprintf("List available %ss to find the right one", kind),
		),
	}
	return NewResource(fmt.Sprintf("%s not found: %s", kind, name), append(base, opts...)...)
}

// ResourceLocked reports a resource held by another process.
func ResourceLocked(name string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeResourceLocked),
		WithSuggestions(
			"Wait for the other operation to finish",
			fmt.Sprintf("Check for processes holding %s", name),
		),
	}
	return NewResource(fmt.Sprintf("Resource is locked: %s", name), append(base, opts...)...)
}

// RateLimited reports that service throttled the caller.
func RateLimited(service string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeRateLimited),
		WithSuggestions(
			"Wait a minute before retrying",
			"Reduce the request rate",
		),
	}
	return NewAPI(fmt.Sprintf("Rate limit exceeded for %s", service), append(base, opts...)...)
}

// NetworkUnavailable reports that service could not be reached.
func NetworkUnavailable(service string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeNetworkUnavailable),
		WithSuggestions(
			"Check your network connection",
			"Verify proxy and firewall settings",
		),
	}
	return NewAPI(fmt.Sprintf("Unable to reach %s", service), append(base, opts...)...)
}

// RuleViolation reports an operation refused by a business rule.
func RuleViolation(rule string, opts ...Option) *Error {
	base := []Option{
		WithCode(CodeRuleViolation),
		WithDetails("rule: %s", rule),
	}
	return NewBusinessLogic("The operation violates a business rule", append(base, opts...)...)
}

// Lookup builds a representative error for a known code, as used by the demo
// command. The second result is false for unknown codes.
func Lookup(code string) (*Error, bool) {
	switch code {
	case CodeGeneral:
		return NewGeneric("An unexpected error occurred"), true
	case CodeSystem:
		return NewSystem("A system error occurred"), true
	case CodeTimeout:
		return Timeout("operation", 30*time.Second), true
	case CodePermissionDenied:
		return PermissionDenied("/var/lib/smith"), true
	case CodeValidation:
		return NewValidation("The input is not valid"), true
	case CodeInvalidInput:
		return InvalidInput("name", "must not be empty"), true
	case CodeConfiguration:
		return NewConfiguration("The configuration is not valid"), true
	case CodeMissingConfig:
		return MissingConfig("output.format"), true
	case CodeResource:
		return NewResource("The resource is unavailable"), true
	case CodeResourceNotFound:
		return NotFound("project", "example"), true
	case CodeResourceLocked:
		return ResourceLocked("state.lock"), true
	case CodeAPI:
		return NewAPI("The service returned an error"), true
	case CodeRateLimited:
		return RateLimited("api.example.com"), true
	case CodeNetworkUnavailable:
		return NetworkUnavailable("api.example.com"), true
	case CodeCircuitOpen:
		return circuitOpen("api.example.com", nil), true
	case CodeBusinessLogic:
		return NewBusinessLogic("The operation is not allowed"), true
	case CodeRuleViolation:
		return RuleViolation("quota"), true
	default:
		return nil, false
	}
}

// Codes lists every code Lookup knows.
func Codes() []string {
	return []string{
		CodeGeneral,
		CodeSystem, CodeTimeout, CodePermissionDenied,
		CodeValidation, CodeInvalidInput,
		CodeConfiguration, CodeMissingConfig,
		CodeResource, CodeResourceNotFound, CodeResourceLocked,
		CodeAPI, CodeRateLimited, CodeNetworkUnavailable, CodeCircuitOpen,
		CodeBusinessLogic, CodeRuleViolation,
	}
}
