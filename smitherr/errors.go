package smitherr

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/urlutil"
)

// Category groups errors that share default suggestions and a code prefix.
type Category int

const (
	// CategoryGeneric covers errors with no better classification.
	CategoryGeneric Category = iota
	// CategorySystem covers operating system failures (code prefix SYSTEM_).
	CategorySystem
	// CategoryValidation covers rejected input (VALIDATION_).
	CategoryValidation
	// CategoryConfiguration covers missing or invalid settings (CONFIG_).
	CategoryConfiguration
	// CategoryResource covers missing or locked resources (RESOURCE_).
	CategoryResource
	// CategoryAPI covers remote call failures (API_).
	CategoryAPI
	// CategoryBusinessLogic covers domain rule violations (BUSINESS_).
	CategoryBusinessLogic
)

// String returns the lower-case category name.
func (c Category) String() string {
	switch c {
	case CategorySystem:
		return "system"
	case CategoryValidation:
		return "validation"
	case CategoryConfiguration:
		return "configuration"
	case CategoryResource:
		return "resource"
	case CategoryAPI:
		return "api"
	case CategoryBusinessLogic:
		return "business_logic"
	default:
		return "generic"
	}
}

// Prefix returns the code prefix shared by the category's codes.
func (c Category) Prefix() string {
	switch c {
	case CategorySystem:
		return "SYSTEM_"
	case CategoryValidation:
		return "VALIDATION_"
	case CategoryConfiguration:
		return "CONFIG_"
	case CategoryResource:
		return "RESOURCE_"
	case CategoryAPI:
		return "API_"
	case CategoryBusinessLogic:
		return "BUSINESS_"
	default:
		return ""
	}
}

// DefaultSuggestions returns the actions shown when a caller supplies none.
// The list is never empty.
func (c Category) DefaultSuggestions() []string {
	var s []string
	switch c {
	case CategorySystem:
		s = []string{
			"Check available disk space and memory",
			"Verify file and directory permissions",
			"Restart the application",
		}
	case CategoryValidation:
		s = []string{
			"Check the input format and try again",
			"Run the command with --help to see valid usage",
		}
	case CategoryConfiguration:
		s = []string{
			"Check the configuration file for errors",
			"Verify required environment variables are set",
		}
	case CategoryResource:
		s = []string{
			"Verify the resource exists",
			"Check that you have access to the resource",
		}
	case CategoryAPI:
		s = []string{
			"Check your network connection",
			"Verify the service is available",
			"Try again in a few moments",
		}
	case CategoryBusinessLogic:
		s = []string{
			"Review the requirements for this operation",
			"Contact support if the problem persists",
		}
	default:
		s = []string{
			"Try the operation again",
			"Run with --debug for more information",
		}
	}
	return s
}

// fatalByDefault reports whether errors of the category stop the program unless overridden.
func (c Category) fatalByDefault() bool {
	return c == CategorySystem || c == CategoryConfiguration
}

// Error is the structured domain error.
type Error struct {
	Category         Category
	Code             string
	UserMessage      string
	TechnicalDetails string
	SuggestedActions []string
	DocumentationURL string
	Fatal            bool
	Cause            error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Cause)
	}
	return e.UserMessage
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Option customizes an Error at construction.
type Option func(*Error)

// WithCode overrides the category's generic code.
func WithCode(code string) Option {
	return func(e *Error) { e.Code = code }
}

// WithDetails sets the technical details.
func WithDetails(format string, args ...any) Option {
	return func(e *Error) { e.TechnicalDetails = fmt.Sprintf(format, args...) }
}

// WithSuggestions replaces the default suggested actions.
// Calling it with no suggestions keeps the defaults.
func WithSuggestions(actions ...string) Option {
	return func(e *Error) {
		if len(actions) > 0 {
			e.SuggestedActions = slices.Clone(actions)
		}
	}
}

// WithDocumentation sets the documentation URL. A link that is not an
// absolute http or https URL is dropped.
func WithDocumentation(link string) Option {
	return func(e *Error) {
		if err := urlutil.Validate(link); err != nil {
			logutil.NewLogger("smitherr").Debug("documentation link dropped", "url", link, "error", err)
			return
		}
		e.DocumentationURL = strings.TrimSpace(link)
	}
}

// WithCause records the underlying error.
func WithCause(err error) Option {
	return func(e *Error) { e.Cause = err }
}

// AsFatal overrides the category's fatal default.
func AsFatal(fatal bool) Option {
	return func(e *Error) { e.Fatal = fatal }
}

// New creates an error in the given category.
func New(category Category, message string, opts ...Option) *Error {
	e := &Error{
		Category:         category,
		Code:             genericCode(category),
		UserMessage:      message,
		SuggestedActions: category.DefaultSuggestions(),
		Fatal:            category.fatalByDefault(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.SuggestedActions) == 0 {
		e.SuggestedActions = category.DefaultSuggestions()
	}
	return e
}

// NewGeneric creates an uncategorized error with code GENERAL_ERROR.
func NewGeneric(message string, opts ...Option) *Error {
	return New(CategoryGeneric, message, opts...)
}

// NewSystem creates a fatal-by-default error for operating system failures
// such as I/O, permissions or timeouts.
func NewSystem(message string, opts ...Option) *Error {
	return New(CategorySystem, message, opts...)
}

// NewValidation creates an error for input that failed validation.
func NewValidation(message string, opts ...Option) *Error {
	return New(CategoryValidation, message, opts...)
}

// NewConfiguration creates a fatal-by-default error for missing or invalid settings.
func NewConfiguration(message string, opts ...Option) *Error {
	return New(CategoryConfiguration, message, opts...)
}

// NewResource creates an error for a missing, locked or unavailable resource.
func NewResource(message string, opts ...Option) *Error {
	return New(CategoryResource, message, opts...)
}

// NewAPI creates an error for a failed remote call. API errors are retryable.
func NewAPI(message string, opts ...Option) *Error {
	return New(CategoryAPI, message, opts...)
}

// NewBusinessLogic creates an error for an operation a domain rule forbids.
func NewBusinessLogic(message string, opts ...Option) *Error {
	return New(CategoryBusinessLogic, message, opts...)
}

// Wrap turns err into a domain error with context as the user message.
// The original error's text becomes the technical details. When err is
// already an *Error its category, code, documentation and fatal flag carry
// over, as do its suggestions unless new ones are given.
func Wrap(err error, context string, suggestions ...string) *Error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		wrapped := &Error{
			Category:         se.Category,
			Code:             se.Code,
			UserMessage:      context,
			TechnicalDetails: se.UserMessage,
			SuggestedActions: slices.Clone(se.SuggestedActions),
			DocumentationURL: se.DocumentationURL,
			Fatal:            se.Fatal,
			Cause:            err,
		}
		if se.TechnicalDetails != "" {
			wrapped.TechnicalDetails = se.UserMessage + ": " + se.TechnicalDetails
		}
		if len(suggestions) > 0 {
			wrapped.SuggestedActions = slices.Clone(suggestions)
		}
		if len(wrapped.SuggestedActions) == 0 {
			wrapped.SuggestedActions = se.Category.DefaultSuggestions()
		}
		return wrapped
	}

	return NewGeneric(context,
		WithDetails("%s", err.Error()),
		WithSuggestions(suggestions...),
		WithCause(err))
}

// FromError returns err as an *Error, converting plain errors into generic ones.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return NewGeneric(err.Error(), WithCause(err))
}

// Code returns the error code of err, GeneralError for plain errors and "" for nil.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeGeneral
}
