// Package opcode holds the static CIL opcode tables.
//
// Two 256-entry tables are built once at package initialization: one for
// single-byte opcodes and one for opcodes that follow the 0xFE prefix. Every
// byte value maps to a descriptor, so lookups never fail:
//
//	op := opcode.LookupSingleByte(0x2B) // br.s, ShortInlineBrTarget
//	op := opcode.LookupTwoByte(0x01)    // ceq
//	op := opcode.LookupSingleByte(0x24) // op.Unknown() == true
//
// OperandSize gives the encoded width of each operand kind. The switch jump
// table is variable length and is sized with SwitchSize instead.
package opcode
