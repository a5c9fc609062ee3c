// Package binary provides the bounds-checked little-endian reader shared by
// the method body header parser and the instruction decoder.
//
// Every read either succeeds completely or returns a *ShortReadError and
// leaves the position unchanged.
package binary
