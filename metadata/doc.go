// Package metadata provides a static il.Resolver for hosts that have no
// reflection layer of their own, and a YAML fixture format that bundles a
// method body with the metadata its tokens and slots refer to.
//
// A fixture looks like:
//
//	name: Demo.Program::Add
//	body: "00 1b 0a 1f 0a 0b 06 07 58 0c 2b 00 08 2a"
//	locals:
//	  - type: int32
//	  - type: int32
//	  - type: int32
//	methods:
//	  - token: 0x0a00000c
//	    declaring_type: System.Console
//	    name: WriteLine
//	    return_type: void
//	    parameters: [string]
//
// Setting header: true treats body as a complete method body (tiny or fat
// header, code and exception sections) instead of raw code bytes.
package metadata
