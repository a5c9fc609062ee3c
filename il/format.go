package il

import (
	"fmt"
	"strconv"
	"strings"
)

// Formatter renders one instruction. body gives access to the rest of the
// sequence, for example to print branch destinations.
type Formatter interface {
	Format(body *Body, ins *Instruction) string
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(body *Body, ins *Instruction) string

// Format calls f(body, ins).
func (f FormatterFunc) Format(body *Body, ins *Instruction) string {
	return f(body, ins)
}

// DefaultFormatter renders "(index) IL_offs: mnemonic  payload".
type DefaultFormatter struct {
	// Descriptions appends the opcode description as a trailing comment.
	Descriptions bool
}

// Format implements Formatter.
func (f DefaultFormatter) Format(body *Body, ins *Instruction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%d) %s: ", ins.Index, Label(ins.Offset))

	payload := Payload(ins)
	if payload == "" {
		b.WriteString(ins.Opcode.String())
	} else {
		fmt.Fprintf(&b, "%-12s %s", ins.Opcode.String(), payload)
	}

	if f.Descriptions && ins.Opcode.Description != "" {
		b.WriteString("  // ")
		b.WriteString(ins.Opcode.Description)
	}
	return b.String()
}

// Label returns the conventional IL_xxxx label for an offset.
func Label(offset int) string {
	return fmt.Sprintf("IL_%04x", offset)
}

// Payload renders the operand of ins, or "" for instructions without one.
func Payload(ins *Instruction) string {
	switch op := ins.Operand.(type) {
	case nil, NoOperand, UnknownOperand:
		return ""
	case Int8Operand:
		return strconv.Itoa(int(op.Value))
	case Int32Operand:
		return strconv.FormatInt(int64(op.Value), 10)
	case Int64Operand:
		return strconv.FormatInt(op.Value, 10)
	case Float32Operand:
		return strconv.FormatFloat(float64(op.Value), 'g', -1, 32)
	case Float64Operand:
		return strconv.FormatFloat(op.Value, 'g', -1, 64)
	case StringOperand:
		if !op.Resolved {
			return "null"
		}
		return strconv.Quote(op.Value)
	case BranchOperand:
		return "-> " + target(op.Target, op.TargetOffset)
	case SwitchOperand:
		parts := make([]string, len(op.TargetOffsets))
		for i, off := range op.TargetOffsets {
			idx := Unresolved
			if i < len(op.Targets) {
				idx = op.Targets[i]
			}
			parts[i] = target(idx, off)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case LocalOperand:
		if op.Local == nil {
			return fmt.Sprintf("V_%d", op.Slot)
		}
		return op.Local.String()
	case ParameterOperand:
		if op.Parameter == nil {
			return fmt.Sprintf("A_%d", op.Slot)
		}
		return op.Parameter.String()
	case FieldOperand:
		return reference(op.Field != nil, op.Field)
	case MethodOperand:
		return reference(op.Method != nil, op.Method)
	case TypeOperand:
		return reference(op.Type != nil, op.Type)
	case MemberOperand:
		return reference(op.Member != nil, op.Member)
	case SignatureOperand:
		if !op.Resolved() {
			return "null"
		}
		return fmt.Sprintf("sig %s [% x]", op.Token, op.blob)
	}
	return fmt.Sprintf("<%T>", ins.Operand)
}

func target(idx, offset int) string {
	if idx == Unresolved {
		return Label(offset)
	}
	return fmt.Sprintf("(%d) %s", idx, Label(offset))
}

func reference(ok bool, s fmt.Stringer) string {
	if !ok {
		return "null"
	}
	return s.String()
}

// Describe renders one instruction with f, or DefaultFormatter if f is nil.
func Describe(body *Body, ins *Instruction, f Formatter) string {
	if f == nil {
		f = DefaultFormatter{}
	}
	return f.Format(body, ins)
}

// DescribeAll renders every instruction of body, one per line.
func DescribeAll(body *Body, f Formatter) string {
	if f == nil {
		f = DefaultFormatter{}
	}
	var b strings.Builder
	for i := range body.Instructions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Format(body, &body.Instructions[i]))
	}
	return b.String()
}
