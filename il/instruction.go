package il

import (
	"github.com/rhinobytesoftware/ilreader/opcode"
)

// Unresolved marks a branch target index before the link pass has run.
const Unresolved = -1

// Instruction is one decoded CIL instruction.
type Instruction struct {
	Operand Operand
	Opcode  opcode.Opcode
	Index   int // position in Body.Instructions
	Offset  int // byte offset of the opcode within the code
	Size    int // opcode bytes plus operand bytes
}

// End returns the offset of the byte following the instruction.
func (i *Instruction) End() int {
	return i.Offset + i.Size
}

// IsBranch reports whether the instruction carries branch or switch targets.
func (i *Instruction) IsBranch() bool {
	switch i.Operand.(type) {
	case BranchOperand, SwitchOperand:
		return true
	}
	return false
}

// Targets returns the instruction indices this instruction may jump to,
// in encoding order. It returns nil for non-branching instructions.
func (i *Instruction) Targets() []int {
	switch op := i.Operand.(type) {
	case BranchOperand:
		return []int{op.Target}
	case SwitchOperand:
		out := make([]int, len(op.Targets))
		copy(out, op.Targets)
		return out
	}
	return nil
}

// Operand is the variant payload of an instruction. The set of
// implementations is closed; switch on the concrete types below.
type Operand interface {
	isOperand()
}

// NoOperand is the payload of opcodes without trailing bytes.
type NoOperand struct{}

// UnknownOperand is the payload of an unassigned opcode encoding. Only the
// opcode bytes are consumed.
type UnknownOperand struct {
	Value uint16
}

// Int8Operand holds a ShortInlineI literal.
type Int8Operand struct {
	Value int8
}

// Int32Operand holds an InlineI literal.
type Int32Operand struct {
	Value int32
}

// Int64Operand holds an InlineI8 literal.
type Int64Operand struct {
	Value int64
}

// Float32Operand holds a ShortInlineR literal.
type Float32Operand struct {
	Value float32
}

// Float64Operand holds an InlineR literal.
type Float64Operand struct {
	Value float64
}

// StringOperand holds an ldstr literal. Resolved is false when the host
// could not resolve the token.
type StringOperand struct {
	Value    string
	Token    Token
	Resolved bool
}

// BranchOperand holds a branch destination. TargetOffset is absolute within
// the code; Target is the index of the instruction at that offset.
type BranchOperand struct {
	TargetOffset int
	Target       int
}

// SwitchOperand holds a jump table. TargetOffsets and Targets have equal
// length and the same order as the encoded table.
type SwitchOperand struct {
	TargetOffsets []int
	Targets       []int
}

// LocalOperand references a local variable slot.
type LocalOperand struct {
	Local *LocalDescriptor
	Slot  int
}

// ParameterOperand references an argument slot. Slot is the raw encoded
// index, which counts the implicit this argument of instance methods.
type ParameterOperand struct {
	Parameter *ParameterDescriptor
	Slot      int
}

// FieldOperand references a field token.
type FieldOperand struct {
	Field *FieldDescriptor
	Token Token
}

// MethodOperand references a method token.
type MethodOperand struct {
	Method *MethodDescriptor
	Token  Token
}

// TypeOperand references a type token.
type TypeOperand struct {
	Type  *TypeDescriptor
	Token Token
}

// MemberOperand is the payload of ldtoken, which may name a type, method
// or field.
type MemberOperand struct {
	Member Member
	Token  Token
}

// SignatureOperand holds the stand-alone signature blob used by calli.
type SignatureOperand struct {
	blob  []byte
	Token Token
}

// NewSignatureOperand copies blob into a new operand.
func NewSignatureOperand(tok Token, blob []byte) SignatureOperand {
	return SignatureOperand{Token: tok, blob: cloneBytes(blob)}
}

// Bytes returns a copy of the signature blob, or nil if it was not resolved.
func (s SignatureOperand) Bytes() []byte {
	return cloneBytes(s.blob)
}

// Resolved reports whether the host supplied a blob.
func (s SignatureOperand) Resolved() bool {
	return s.blob != nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func (NoOperand) isOperand()        {}
func (UnknownOperand) isOperand()   {}
func (Int8Operand) isOperand()      {}
func (Int32Operand) isOperand()     {}
func (Int64Operand) isOperand()     {}
func (Float32Operand) isOperand()   {}
func (Float64Operand) isOperand()   {}
func (StringOperand) isOperand()    {}
func (BranchOperand) isOperand()    {}
func (SwitchOperand) isOperand()    {}
func (LocalOperand) isOperand()     {}
func (ParameterOperand) isOperand() {}
func (FieldOperand) isOperand()     {}
func (MethodOperand) isOperand()    {}
func (TypeOperand) isOperand()      {}
func (MemberOperand) isOperand()    {}
func (SignatureOperand) isOperand() {}
