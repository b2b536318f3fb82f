package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorType represents the kind of failure raised while generating icons
type ErrorType string

const (
	// Fatal: the run cannot produce any output
	ErrorTypeDecode    ErrorType = "decode"
	ErrorTypeDirectory ErrorType = "directory"

	// Per item: a single size is skipped
	ErrorTypeResample ErrorType = "resample"
	ErrorTypeEncode   ErrorType = "encode"
	ErrorTypeWrite    ErrorType = "write"

	ErrorTypeUnknown ErrorType = "unknown"
)

// Error codes, stable across releases for scripts parsing JSON logs
const (
	CodeDecodeFailed    = "DECODE_FAILED"
	CodeDirectoryFailed = "DIRECTORY_FAILED"
	CodeResampleFailed  = "RESAMPLE_FAILED"
	CodeEncodeFailed    = "ENCODE_FAILED"
	CodeWriteFailed     = "WRITE_FAILED"
)

// Sentinels for errors.Is checks. Matching is by type only.
var (
	ErrDecode    = &AppError{Type: ErrorTypeDecode}
	ErrDirectory = &AppError{Type: ErrorTypeDirectory}
	ErrResample  = &AppError{Type: ErrorTypeResample}
	ErrEncode    = &AppError{Type: ErrorTypeEncode}
	ErrWrite     = &AppError{Type: ErrorTypeWrite}
)

// AppError represents a structured error carrying its underlying cause
type AppError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	InnerError error                  `json:"-"`
	Stack      []string               `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	switch {
	case e.Message != "" && e.InnerError != nil:
		return e.Message + ": " + e.InnerError.Error()
	case e.Message != "":
		return e.Message
	case e.InnerError != nil:
		return e.InnerError.Error()
	}
	return string(e.Type)
}

// Unwrap returns the inner error
func (e *AppError) Unwrap() error {
	return e.InnerError
}

// Is reports whether target is an AppError of the same type
func (e *AppError) Is(target error) bool {
	if targetApp, ok := target.(*AppError); ok {
		return e.Type == targetApp.Type
	}
	return false
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithInnerError sets the inner error
func (e *AppError) WithInnerError(err error) *AppError {
	e.InnerError = err
	return e
}

// WithStack captures the call stack
func (e *AppError) WithStack() *AppError {
	e.Stack = captureStack(3)
	return e
}

// New creates a new AppError
func New(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// FromError converts a standard error to AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &AppError{
		Type:       ErrorTypeUnknown,
		InnerError: err,
	}
}

// NewDecode wraps a failure to open or decode the source image.
func NewDecode(path string, err error) *AppError {
	return New(ErrorTypeDecode, CodeDecodeFailed, fmt.Sprintf("decode %s", path)).
		WithDetail("path", path).
		WithInnerError(err)
}

// NewDirectory wraps a failure to create the output directory.
func NewDirectory(path string, err error) *AppError {
	return New(ErrorTypeDirectory, CodeDirectoryFailed, fmt.Sprintf("create directory %s", path)).
		WithDetail("path", path).
		WithInnerError(err)
}

func NewResample(name string, size int, err error) *AppError {
	return New(ErrorTypeResample, CodeResampleFailed, fmt.Sprintf("resample %s to %dx%d", name, size, size)).
		WithDetail("icon", name).
		WithDetail("size", size).
		WithInnerError(err)
}

func NewEncode(name string, err error) *AppError {
	return New(ErrorTypeEncode, CodeEncodeFailed, fmt.Sprintf("encode %s", name)).
		WithDetail("icon", name).
		WithInnerError(err)
}

func NewWrite(name string, err error) *AppError {
	return New(ErrorTypeWrite, CodeWriteFailed, fmt.Sprintf("write %s", name)).
		WithDetail("icon", name).
		WithInnerError(err)
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	return FromError(err).Type
}

// Recover converts a recovered panic value into an error. It returns nil
// when r is nil.
func Recover(r any) error {
	if r == nil {
		return nil
	}
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}

// Format formats an error as a single line for logs
func Format(err error) string {
	if err == nil {
		return ""
	}

	appErr := FromError(err)

	parts := []string{fmt.Sprintf("[%s] %s", appErr.Type, appErr.Error())}
	if appErr.Code != "" {
		parts = append(parts, fmt.Sprintf("code=%s", appErr.Code))
	}
	for k, v := range appErr.Details {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	if len(appErr.Stack) > 0 {
		parts = append(parts, "stack:")
		for _, s := range appErr.Stack {
			parts = append(parts, "  "+s)
		}
	}

	return strings.Join(parts, " | ")
}

// captureStack captures the call stack
func captureStack(skip int) []string {
	var stack []string
	for i := skip; i < 10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		funcName := fn.Name()
		if idx := strings.LastIndex(funcName, "/"); idx >= 0 {
			funcName = funcName[idx+1:]
		}

		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, funcName))
	}
	return stack
}

// ErrorChain collects per-item errors of one run
type ErrorChain struct {
	errors []*AppError
}

// NewErrorChain creates a new error chain
func NewErrorChain() *ErrorChain {
	return &ErrorChain{
		errors: make([]*AppError, 0),
	}
}

// Add adds an error to the chain
func (c *ErrorChain) Add(err *AppError) *ErrorChain {
	if err != nil {
		c.errors = append(c.errors, err)
	}
	return c
}

// HasErrors checks if the chain has errors
func (c *ErrorChain) HasErrors() bool {
	return len(c.errors) > 0
}

// Error returns the combined error message
func (c *ErrorChain) Error() string {
	if !c.HasErrors() {
		return ""
	}

	var messages []string
	for _, err := range c.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, " | ")
}

// Unwrap exposes the chained errors to errors.Is and errors.As
func (c *ErrorChain) Unwrap() []error {
	out := make([]error, len(c.errors))
	for i, err := range c.errors {
		out[i] = err
	}
	return out
}

// Len returns the number of errors in the chain
func (c *ErrorChain) Len() int {
	return len(c.errors)
}

// Filter filters errors by type
func (c *ErrorChain) Filter(errType ErrorType) *ErrorChain {
	filtered := NewErrorChain()
	for _, err := range c.errors {
		if err.Type == errType {
			filtered.Add(err)
		}
	}
	return filtered
}

// HasType checks if the chain has an error of the specified type
func (c *ErrorChain) HasType(errType ErrorType) bool {
	for _, err := range c.errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
