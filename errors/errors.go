package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseHeader  Phase = "header"  // method body header and data sections
	PhaseDecode  Phase = "decode"  // instruction stream walk
	PhaseResolve Phase = "resolve" // branch, switch and clause target linking
	PhaseLoad    Phase = "load"    // fixture loading
)

// Kind categorizes the error
type Kind string

const (
	KindOverrun        Kind = "overrun"
	KindDanglingTarget Kind = "dangling_target"
	KindInvalidHeader  Kind = "invalid_header"
	KindInvalidData    Kind = "invalid_data"
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
)

// Error is the structured error type used throughout the module.
// Offset and Index are -1 when they do not apply.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Opcode string
	Detail string
	Offset int
	Index  int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Index >= 0 {
		fmt.Fprintf(&b, " at instruction %d", e.Index)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at IL_%04x", e.Offset)
	}

	if e.Opcode != "" {
		b.WriteString(" (")
		b.WriteString(e.Opcode)
		b.WriteByte(')')
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

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
			Index:  -1,
		},
	}
}

// Offset sets the byte offset within the code stream
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Index sets the instruction index
func (b *Builder) Index(idx int) *Builder {
	b.err.Index = idx
	return b
}

// Opcode sets the mnemonic of the instruction involved
func (b *Builder) Opcode(name string) *Builder {
	b.err.Opcode = name
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

// Overrun creates an error for a read past the end of the code stream.
// offset is where the overrun was detected, need and have are byte counts.
func Overrun(phase Phase, offset, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverrun,
		Offset: offset,
		Index:  -1,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", need, have),
	}
}

// DanglingTarget creates an error for a target offset that does not land
// on an instruction boundary.
func DanglingTarget(index int, opcode string, target int) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindDanglingTarget,
		Index:  index,
		Offset: -1,
		Opcode: opcode,
		Value:  target,
		Detail: fmt.Sprintf("target IL_%04x is not an instruction boundary", target),
	}
}

// InvalidHeader creates a method body header error
func InvalidHeader(offset int, detail string) *Error {
	return &Error{
		Phase:  PhaseHeader,
		Kind:   KindInvalidHeader,
		Offset: offset,
		Index:  -1,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Offset: -1,
		Index:  -1,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: -1,
		Index:  -1,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Offset: -1,
		Index:  -1,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Index:  -1,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a fixture loading error
func Load(detail string, cause error) *Error {
	return Wrap(PhaseLoad, KindInvalidData, cause, detail)
}
