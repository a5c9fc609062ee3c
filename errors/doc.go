// Package errors provides structured error types for the IL reader.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the code offset and instruction index involved, the
// mnemonic of the instruction being decoded, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOverrun).
//		Offset(0x1c).
//		Opcode("ldc.i4").
//		Detail("need 4 bytes, 2 remaining").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Overrun(errors.PhaseDecode, 0x1c, 4, 2)
//	err := errors.DanglingTarget(7, "br.s", 0x13)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two errors match under errors.Is when Phase and Kind are equal.
package errors
