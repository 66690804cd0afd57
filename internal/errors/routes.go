package errors

import (
	"fmt"
	"strings"
)

const routeFormatHint = "Ensure @route annotations take the form METHOD /path, for example: @route GET /api/users/me"

// AnnotationError reports an unparseable @route or @status annotation
type AnnotationError struct {
	*BaseError
	Declaration string
	Raw         string // annotation text as written
}

// NewMalformedRouteAnnotation reports a @route annotation without a recognizable method or path
func NewMalformedRouteAnnotation(declaration, raw, reason string, loc SourceLocation) *AnnotationError {
	base := Newf(MalformedRouteAnnotationCode, "%s: %s in @route annotation: %q", declaration, reason, raw).
		WithLocation(loc).
		WithContext("declaration", declaration).
		WithContext("annotation", raw).
		WithSuggestions(routeFormatHint, "Supported methods are GET, POST, PUT and DELETE")
	return &AnnotationError{BaseError: base, Declaration: declaration, Raw: raw}
}

// NewMissingRouteAnnotation reports a type with a Response field but no @route tag
func NewMissingRouteAnnotation(declaration string, loc SourceLocation) *AnnotationError {
	base := Newf(MalformedRouteAnnotationCode, "%s has a Response field but no @route annotation", declaration).
		WithLocation(loc).
		WithContext("declaration", declaration).
		WithSuggestions(
			fmt.Sprintf("Add a @route line to the doc comment of %s", declaration),
			routeFormatHint,
		)
	return &AnnotationError{BaseError: base, Declaration: declaration}
}

// NewNonStructRoute reports a @route tag on a type that is not a struct literal,
// such as a defined type or alias of another declaration
func NewNonStructRoute(declaration, raw string, loc SourceLocation) *AnnotationError {
	base := Newf(MalformedRouteAnnotationCode, "%s: @route annotation %q is on a non-struct type", declaration, raw).
		WithLocation(loc).
		WithContext("declaration", declaration).
		WithContext("annotation", raw).
		WithSuggestions(fmt.Sprintf("Declare %s as a struct with Body, Params, Query and Response fields", declaration))
	return &AnnotationError{BaseError: base, Declaration: declaration, Raw: raw}
}

// NewMalformedStatusAnnotation reports a @status annotation that is not an HTTP status code
func NewMalformedStatusAnnotation(declaration, raw string, loc SourceLocation) *AnnotationError {
	base := Newf(MalformedStatusAnnotationCode, "%s: invalid status code in @status annotation: %q", declaration, raw).
		WithLocation(loc).
		WithContext("declaration", declaration).
		WithContext("annotation", raw).
		WithSuggestions("Use an integer between 100 and 599, for example: @status 204")
	return &AnnotationError{BaseError: base, Declaration: declaration, Raw: raw}
}

// NewMissingResponseField reports a declaration without a Response field
func NewMissingResponseField(declaration string, loc SourceLocation) *BaseError {
	return Newf(MissingResponseFieldCode, "route declaration %s has no Response field", declaration).
		WithLocation(loc).
		WithContext("declaration", declaration).
		WithSuggestions(fmt.Sprintf("Add a Response field describing the body returned by %s", declaration))
}

// HandlerError reports handler names that break the route/handler bijection
type HandlerError struct {
	*BaseError
	Names []string
}

// NewMissingHandler reports a declared route without an implementation
func NewMissingHandler(name, implDir string, loc SourceLocation) *HandlerError {
	base := Newf(MissingHandlerCode, "route declaration %s did not have an associated handler in %s", name, implDir).
		WithLocation(loc).
		WithContext("handler", name).
		WithContext("implementation", implDir).
		WithSuggestions(fmt.Sprintf("Export a handler or chain named %s from %s", name, implDir))
	return &HandlerError{BaseError: base, Names: []string{name}}
}

// NewUnassociatedHandlers reports exported handlers without a route declaration
func NewUnassociatedHandlers(names []string, implDir string) *HandlerError {
	base := Newf(UnassociatedHandlersCode, "handler(s) found without associated route declarations in %s: %s",
		implDir, strings.Join(names, ", ")).
		WithContext("handlers", names).
		WithContext("implementation", implDir).
		WithSuggestions(
			"Declare a route type with the same name for each handler",
			"Unexport helpers that are not route handlers",
		)
	return &HandlerError{BaseError: base, Names: append([]string(nil), names...)}
}

// NewUnresolvableHandler reports an exported symbol that cannot be classified
func NewUnresolvableHandler(name, reason string, loc SourceLocation) *HandlerError {
	base := Newf(UnresolvableHandlerCode, "cannot classify handler %s: %s", name, reason).
		WithLocation(loc).
		WithContext("handler", name).
		WithSuggestions("Declare handlers as functions, or chains as unkeyed composite literals like Chain{auth, handler}")
	return &HandlerError{BaseError: base, Names: []string{name}}
}

// NewMissingImplementation reports a declaration file without its sibling implementation package
func NewMissingImplementation(declFile, implDir string, cause error) *BaseError {
	return Wrap(MissingImplementationCode, fmt.Sprintf("no implementation package for %s", declFile), cause).
		WithContext("declarations", declFile).
		WithContext("implementation", implDir).
		WithSuggestions(fmt.Sprintf("Create package %s exporting one handler per declared route", implDir))
}

// NewStaleOutput reports a generated router that differs from what would be generated
func NewStaleOutput(paths []string) *BaseError {
	return Newf(StaleOutputCode, "generated routers are out of date: %s", strings.Join(paths, ", ")).
		WithContext("paths", paths).
		WithSuggestions("Run routegen generate and commit the result")
}
