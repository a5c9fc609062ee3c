// Package il decodes CIL method bodies into typed instruction sequences.
//
// # Decoding
//
// Decode walks the code bytes of one method body. Each instruction carries
// its index, byte offset, opcode descriptor, encoded size and a typed
// operand:
//
//	body, err := il.Decode(code, resolver)
//	if err != nil {
//	    return err
//	}
//	for _, ins := range body.Instructions {
//	    fmt.Println(ins.Opcode.Name, il.Payload(&ins))
//	}
//
// Metadata tokens are resolved through a Resolver supplied by the host.
// Tokens the host cannot resolve leave a nil descriptor in the operand.
//
// # Targets
//
// After the forward pass Decode links every branch and switch displacement,
// and every exception clause offset passed with WithClauses, to the index of
// the instruction at that offset:
//
//	if br, ok := ins.Operand.(il.BranchOperand); ok {
//	    dst := body.Instructions[br.Target]
//	}
//
// # Errors
//
// Two conditions fail a decode: reading past the end of the code
// (errors.KindOverrun, reporting the instruction offset) and a target that
// does not land on an instruction boundary (errors.KindDanglingTarget,
// reporting the instruction index). Unassigned opcodes decode as
// instructions with an UnknownOperand.
//
// # Formatting
//
// DescribeAll renders a listing with DefaultFormatter or any Formatter the
// caller supplies:
//
//	(0) IL_0000: nop
//	(1) IL_0001: ldc.i4.s     10
//	(2) IL_0003: br.s         -> (4) IL_0006
package il
