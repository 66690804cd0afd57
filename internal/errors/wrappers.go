package errors

import "fmt"

// WrapParseError wraps a Go syntax error for a source file
func WrapParseError(path string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", path), cause).
		WithContext("path", path).
		WithSuggestions("Fix the Go syntax error and rerun the generator")
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapGenerateError wraps an error raised while rendering a router
func WrapGenerateError(module string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate router for %s", module), cause).
		WithContext("module", module)
}

// NewConfigurationError reports an invalid configuration value
func NewConfigurationError(field string, value interface{}, reason string) *BaseError {
	return Newf(ConfigurationErrorCode, "invalid %s %q: %s", field, fmt.Sprint(value), reason).
		WithContext("field", field)
}
