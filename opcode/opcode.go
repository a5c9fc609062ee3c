package opcode

import "fmt"

// Prefix is the first byte of every two-byte opcode.
const Prefix = 0xFE

// Flow describes how an opcode affects control flow.
type Flow uint8

const (
	FlowNext Flow = iota
	FlowBranch
	FlowCondBranch
	FlowReturn
	FlowThrow
	FlowCall
	FlowBreak
	FlowMeta // prefix that modifies the following instruction
)

var flowNames = [...]string{
	FlowNext:       "next",
	FlowBranch:     "branch",
	FlowCondBranch: "cond-branch",
	FlowReturn:     "return",
	FlowThrow:      "throw",
	FlowCall:       "call",
	FlowBreak:      "break",
	FlowMeta:       "meta",
}

func (f Flow) String() string {
	if int(f) < len(flowNames) {
		return flowNames[f]
	}
	return "flow(?)"
}

// Opcode describes one CIL operation. The zero value is not valid; unassigned
// encodings are represented by descriptors for which Unknown returns true.
type Opcode struct {
	Name        string
	Description string
	Value       uint16 // 0x00XX for single-byte, 0xFEXX for two-byte opcodes
	Operand     OperandKind
	Size        uint8 // encoded opcode length, 1 or 2
	Flow        Flow
	unknown     bool
}

// Unknown reports whether o stands for an unassigned encoding.
func (o Opcode) Unknown() bool {
	return o.unknown
}

// TwoByte reports whether o is encoded with the 0xFE prefix.
func (o Opcode) TwoByte() bool {
	return o.Size == 2
}

// String returns the mnemonic, or a hex placeholder for unknown opcodes.
func (o Opcode) String() string {
	if o.unknown {
		if o.Size == 2 {
			return fmt.Sprintf("??? 0x%04X", o.Value)
		}
		return fmt.Sprintf("??? 0x%02X", o.Value)
	}
	return o.Name
}

var (
	oneByte [256]Opcode
	twoByte [256]Opcode
	byName  map[string]Opcode
)

func init() {
	for i := range oneByte {
		oneByte[i] = unknownOpcode(uint16(i), 1)
		twoByte[i] = unknownOpcode(Prefix<<8|uint16(i), 2)
	}
	byName = make(map[string]Opcode, len(singleByteDefs)+len(twoByteDefs))
	for _, d := range singleByteDefs {
		op := d.opcode(1)
		oneByte[d.code] = op
		byName[op.Name] = op
	}
	for _, d := range twoByteDefs {
		op := d.opcode(2)
		twoByte[d.code] = op
		byName[op.Name] = op
	}
}

func unknownOpcode(value uint16, size uint8) Opcode {
	return Opcode{Value: value, Size: size, Operand: InlineNone, unknown: true,
		Description: "unassigned opcode"}
}

// LookupSingleByte returns the descriptor for a one-byte opcode. The prefix
// byte itself and unassigned bytes return an unknown descriptor.
func LookupSingleByte(b byte) Opcode {
	return oneByte[b]
}

// LookupTwoByte returns the descriptor for the byte following the 0xFE prefix.
func LookupTwoByte(b byte) Opcode {
	return twoByte[b]
}

// Lookup resolves a full opcode value as stored in Opcode.Value.
func Lookup(value uint16) Opcode {
	if value>>8 == Prefix {
		return twoByte[byte(value)]
	}
	if value > 0xFF {
		return unknownOpcode(value, 2)
	}
	return oneByte[value]
}

// ByName looks up an opcode by its mnemonic, e.g. "ldc.i4.s".
func ByName(name string) (Opcode, bool) {
	op, ok := byName[name]
	return op, ok
}

// All returns every assigned opcode, single-byte first, in encoding order.
func All() []Opcode {
	out := make([]Opcode, 0, len(singleByteDefs)+len(twoByteDefs))
	for _, op := range oneByte {
		if !op.unknown {
			out = append(out, op)
		}
	}
	for _, op := range twoByte {
		if !op.unknown {
			out = append(out, op)
		}
	}
	return out
}

type def struct {
	name    string
	desc    string
	code    byte
	operand OperandKind
	flow    Flow
}

func (d def) opcode(size uint8) Opcode {
	v := uint16(d.code)
	if size == 2 {
		v |= Prefix << 8
	}
	return Opcode{
		Name:        d.name,
		Description: d.desc,
		Value:       v,
		Operand:     d.operand,
		Size:        size,
		Flow:        d.flow,
	}
}
