package errors

import (
	stderrors "errors"
	"fmt"
)

// RoutegenError is implemented by every error raised while generating routers
type RoutegenError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a failure
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	FileSystemErrorCode
	GenerationErrorCode
	ConfigurationErrorCode

	// Extraction
	MalformedRouteAnnotationCode
	MalformedStatusAnnotationCode
	MissingResponseFieldCode

	// Handler loading and consistency
	MissingImplementationCode
	UnresolvableHandlerCode
	MissingHandlerCode
	UnassociatedHandlersCode

	// Check mode
	StaleOutputCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:               "SyntaxError",
	FileSystemErrorCode:           "FileSystemError",
	GenerationErrorCode:           "GenerationError",
	ConfigurationErrorCode:        "ConfigurationError",
	MalformedRouteAnnotationCode:  "MalformedRouteAnnotation",
	MalformedStatusAnnotationCode: "MalformedStatusAnnotation",
	MissingResponseFieldCode:      "MissingResponseField",
	MissingImplementationCode:     "MissingImplementation",
	UnresolvableHandlerCode:       "UnresolvableHandler",
	MissingHandlerCode:            "MissingHandler",
	UnassociatedHandlersCode:      "UnassociatedHandlers",
	StaleOutputCode:               "StaleOutput",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation is a position in a declaration or implementation file.
// Line and Column are 1-based; zero means unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty reports whether the location names no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the RoutegenError every typed error in this package embeds.
// The With* methods mutate and return the receiver so they can be chained.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error renders "location: message: cause", omitting the parts that are unset
func (e *BaseError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Loc.IsEmpty() {
		return msg
	}
	return e.Loc.String() + ": " + msg
}

func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the named values attached with WithContext, never nil
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

func (e *BaseError) Suggestions() []string {
	return e.Hints
}

func (e *BaseError) Unwrap() error {
	return e.Cause
}

func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates an error of kind code
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error of kind code caused by cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// CodeOf returns the code of the first RoutegenError in err's chain,
// descending into joined and multierror values
func CodeOf(err error) ErrorCode {
	var re RoutegenError
	if stderrors.As(err, &re) {
		return re.ErrorCode()
	}
	return UnknownErrorCode
}
