package dialect

import "fmt"

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ValidationError reports a request that was rejected before reaching the engine.
// The engine itself never validates its input.
type ValidationError struct {
	Field   string // Offending field, empty when several are involved
	Message string // User-facing message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// TableError indicates a lookup table could not be loaded or failed validation.
type TableError struct {
	Source    string // Where the tables came from (path, URL, "embedded")
	Message   string
	Cause     error
	Retryable bool // Whether loading may succeed on another attempt
}

func (e *TableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("table error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("table error (%s): %s", e.Source, e.Message)
}

func (e *TableError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}
