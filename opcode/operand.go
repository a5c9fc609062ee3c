package opcode

// OperandKind is the encoding of the bytes that follow an opcode.
type OperandKind uint8

const (
	InlineNone          OperandKind = iota
	ShortInlineBrTarget             // int8 branch displacement
	InlineBrTarget                  // int32 branch displacement
	ShortInlineI                    // int8 literal
	InlineI                         // int32 literal
	InlineI8                        // int64 literal
	ShortInlineR                    // float32 literal
	InlineR                         // float64 literal
	InlineString                    // user string token
	InlineField                     // field token
	InlineMethod                    // method token
	InlineType                      // type token
	InlineTok                       // field, method or type token
	InlineSig                       // stand-alone signature token
	ShortInlineVar                  // uint8 local or argument slot
	InlineVar                       // uint16 local or argument slot
	InlineSwitch                    // uint32 count then count int32 displacements
	InlinePhi                       // reserved, never emitted by compilers
)

var operandNames = [...]string{
	InlineNone:          "InlineNone",
	ShortInlineBrTarget: "ShortInlineBrTarget",
	InlineBrTarget:      "InlineBrTarget",
	ShortInlineI:        "ShortInlineI",
	InlineI:             "InlineI",
	InlineI8:            "InlineI8",
	ShortInlineR:        "ShortInlineR",
	InlineR:             "InlineR",
	InlineString:        "InlineString",
	InlineField:         "InlineField",
	InlineMethod:        "InlineMethod",
	InlineType:          "InlineType",
	InlineTok:           "InlineTok",
	InlineSig:           "InlineSig",
	ShortInlineVar:      "ShortInlineVar",
	InlineVar:           "InlineVar",
	InlineSwitch:        "InlineSwitch",
	InlinePhi:           "InlinePhi",
}

var operandSizes = [...]int{
	InlineNone:          0,
	ShortInlineBrTarget: 1,
	InlineBrTarget:      4,
	ShortInlineI:        1,
	InlineI:             4,
	InlineI8:            8,
	ShortInlineR:        4,
	InlineR:             8,
	InlineString:        4,
	InlineField:         4,
	InlineMethod:        4,
	InlineType:          4,
	InlineTok:           4,
	InlineSig:           4,
	ShortInlineVar:      1,
	InlineVar:           2,
	InlineSwitch:        4,
	InlinePhi:           0,
}

func (k OperandKind) String() string {
	if int(k) < len(operandNames) {
		return operandNames[k]
	}
	return "OperandKind(?)"
}

// OperandSize returns the number of bytes that encode an operand of kind k.
// For InlineSwitch this is the size of the entry count only; use SwitchSize
// for the full instruction.
func OperandSize(k OperandKind) int {
	if int(k) < len(operandSizes) {
		return operandSizes[k]
	}
	return 0
}

// SwitchSize returns the total encoded size of a switch instruction with
// the given number of jump table entries.
func SwitchSize(entries int) int {
	return 1 + 4 + 4*entries
}

// IsBranch reports whether k encodes a single branch displacement.
func (k OperandKind) IsBranch() bool {
	return k == ShortInlineBrTarget || k == InlineBrTarget
}

// IsToken reports whether k encodes a metadata token.
func (k OperandKind) IsToken() bool {
	switch k {
	case InlineString, InlineField, InlineMethod, InlineType, InlineTok, InlineSig:
		return true
	}
	return false
}
