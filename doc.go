// Package ilreader decodes CIL (ECMA-335) method bodies into typed,
// read-only instruction sequences.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	ilreader/            Root package: header + code + clauses in one call
//	├── opcode/          Opcode table and operand sizes
//	├── il/              Instruction model, decoder, target linking, formatter
//	├── methodbody/      Tiny/fat method headers and exception sections
//	├── metadata/        Static resolver and YAML fixtures
//	├── errors/          Structured error types for diagnostics
//	└── cmd/ildis/       Command line disassembler
//
// # Quick Start
//
// Decode raw code bytes and print them:
//
//	body, err := il.Decode(code, resolver)
//	if err != nil {
//		return err
//	}
//	fmt.Println(il.DescribeAll(body, nil))
//
// Decode a complete method body including its exception handlers:
//
//	m, err := ilreader.DecodeMethod(data, resolver)
//
// # Resolution
//
// Metadata tokens and local/argument slots are resolved through an
// il.Resolver supplied by the host. Anything the resolver cannot answer is
// kept as a nil descriptor and rendered as "null"; it never fails a decode.
// Fatal errors are *errors.Error values carrying a Phase and Kind.
//
// # Thread Safety
//
// Opcode tables are built once at init and never written. A decoded Body is
// immutable and may be shared between goroutines.
package ilreader
