package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRedundantCode   Phase = "redundant_code"   // redundant code elimination
	PhaseBranchReduction Phase = "branch_reduction" // branch instruction normalization
	PhaseInlining        Phase = "inlining"         // variable inlining
	PhaseCopyPropagation Phase = "copy_propagation" // copy propagation
	PhaseBasicBlocks     Phase = "basic_blocks"     // basic block construction
	PhaseTypeInference   Phase = "type_inference"   // type analysis
	PhaseParse           Phase = "parse"            // listing parsing
	PhaseLoad            Phase = "load"             // reading input
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedInput Kind = "malformed_input"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidData    Kind = "invalid_data"
	KindNotFound       Kind = "not_found"
	KindCollaborator   Kind = "collaborator"
	KindVersion        Kind = "version"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
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

// WithPrefix returns a copy of e whose path starts with the given elements.
func (e *Error) WithPrefix(prefix ...string) *Error {
	c := *e
	c.Path = append(append([]string(nil), prefix...), e.Path...)
	return &c
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

// Path sets the node path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
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

// MalformedInput creates an error for a tree violating a post-condition of an
// earlier stage. The method cannot be processed further.
func MalformedInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformedInput,
		Path:   path,
		Detail: detail,
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

// Collaborator wraps a failure reported by an external pass.
func Collaborator(phase Phase, what string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCollaborator,
		Detail: what,
		Cause:  cause,
	}
}

// NotFound reports a named entity, such as a method or step, that does not exist.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
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

// UnsupportedVersion creates an error for an input format version outside
// the accepted constraint.
func UnsupportedVersion(version, constraint string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindVersion,
		Detail: fmt.Sprintf("version %s does not satisfy %s", version, constraint),
		Value:  version,
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
