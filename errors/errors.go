package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // template compilation
	PhaseLookup  Phase = "lookup"  // name resolution
	PhaseRuntime Phase = "runtime" // handle resolution and helper invocation
	PhaseLoad    Phase = "load"    // manifest and module loading
	PhaseParse   Phase = "parse"   // manifest parsing
	PhaseConfig  Phase = "config"  // configuration
	PhaseHost    Phase = "host"    // host registry registration
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindMissingPartial Kind = "missing_partial"
	KindInvalidHandle  Kind = "invalid_handle"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidData    Kind = "invalid_data"
	KindTypeMismatch   Kind = "type_mismatch"
	KindUnsupported    Kind = "unsupported"
	KindRegistration   Kind = "registration"
	KindInstantiation  Kind = "instantiation"
)

// Error is the structured error type used throughout the resolver
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Name   string
	Module string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%q", e.Name))
	}

	if e.Module != "" {
		b.WriteString(" in ")
		b.WriteString(e.Module)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Fatal reports whether the error must abort the current compilation.
func (e *Error) Fatal() bool {
	return e.Kind == KindMissingPartial
}

// IsFatal reports whether err, or any error it wraps, is a fatal resolver error.
func IsFatal(err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Fatal() {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Name sets the name being resolved
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Module sets the originating module
func (b *Builder) Module(module string) *Builder {
	b.err.Module = module
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Name:   name,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// MissingPartial creates the fatal error raised when a named partial does not exist.
func MissingPartial(name, module string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindMissingPartial,
		Name:   name,
		Module: module,
		Detail: fmt.Sprintf("%s is not a partial", name),
	}
}

// InvalidHandle creates an error for a handle that was never allocated.
func InvalidHandle(handle uint32, length int) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInvalidHandle,
		Value:  handle,
		Detail: fmt.Sprintf("handle %d was not allocated (table length %d)", handle, length),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, name, want string, got any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Name:   name,
		Value:  got,
		Detail: fmt.Sprintf("want %s, got %T", want, got),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, name, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Name:   name,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(id string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Name:   id,
		Detail: "register factory",
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInstantiation,
		Name:   name,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// UnresolvedName is a single name that could not be resolved
type UnresolvedName struct {
	Kind string // e.g., "helper", "component"
	Name string // e.g., "format-date"
}

// UnresolvedNamesError reports every name a batch resolution could not satisfy
type UnresolvedNamesError struct {
	Names []UnresolvedName
}

// NewUnresolvedNamesError creates an error from a list of "kind:name" strings
func NewUnresolvedNamesError(names []string) *UnresolvedNamesError {
	result := &UnresolvedNamesError{
		Names: make([]UnresolvedName, 0, len(names)),
	}
	for _, n := range names {
		kind, name := parseNameKey(n)
		result.Names = append(result.Names, UnresolvedName{
			Kind: kind,
			Name: name,
		})
	}
	return result
}

func parseNameKey(key string) (kind, name string) {
	k, n, found := strings.Cut(key, ":")
	if found {
		return k, n
	}
	return "", key
}

func (e *UnresolvedNamesError) Error() string {
	if len(e.Names) == 0 {
		return "[lookup] not_found: no names specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("unresolved %d name(s):\n", len(e.Names)))

	// Group by kind for cleaner output
	byKind := make(map[string][]string)
	var kindOrder []string
	for _, n := range e.Names {
		kind := n.Kind
		if kind == "" {
			kind = "unknown"
		}
		if _, exists := byKind[kind]; !exists {
			kindOrder = append(kindOrder, kind)
		}
		byKind[kind] = append(byKind[kind], n.Name)
	}

	for _, kind := range kindOrder {
		b.WriteString("\n  ")
		b.WriteString(kind)
		b.WriteString(":\n")
		for _, name := range byKind[kind] {
			b.WriteString("    - ")
			b.WriteString(name)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *UnresolvedNamesError) Is(target error) bool {
	_, ok := target.(*UnresolvedNamesError)
	return ok
}
