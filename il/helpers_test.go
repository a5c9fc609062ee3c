package il_test

import (
	"github.com/rhinobytesoftware/ilreader/il"
)

// mapResolver is a minimal in-memory host for tests.
type mapResolver struct {
	fields  map[il.Token]*il.FieldDescriptor
	methods map[il.Token]*il.MethodDescriptor
	types   map[il.Token]*il.TypeDescriptor
	strings map[il.Token]string
	sigs    map[il.Token][]byte
	locals  []*il.LocalDescriptor
	params  []*il.ParameterDescriptor
}

func (m *mapResolver) ResolveField(tok il.Token) *il.FieldDescriptor   { return m.fields[tok] }
func (m *mapResolver) ResolveMethod(tok il.Token) *il.MethodDescriptor { return m.methods[tok] }
func (m *mapResolver) ResolveType(tok il.Token) *il.TypeDescriptor     { return m.types[tok] }
func (m *mapResolver) ResolveSignature(tok il.Token) []byte            { return m.sigs[tok] }

func (m *mapResolver) ResolveString(tok il.Token) (string, bool) {
	s, ok := m.strings[tok]
	return s, ok
}

func (m *mapResolver) ResolveLocal(i int) *il.LocalDescriptor {
	if i < 0 || i >= len(m.locals) {
		return nil
	}
	return m.locals[i]
}

func (m *mapResolver) ResolveParameter(i int) *il.ParameterDescriptor {
	if i < 0 || i >= len(m.params) {
		return nil
	}
	return m.params[i]
}

var (
	tokConsole   = il.NewToken(il.TableTypeRef, 5)
	tokWriteLine = il.NewToken(il.TableMemberRef, 12)
	tokCount     = il.NewToken(il.TableField, 1)
	tokListCtor  = il.NewToken(il.TableMethodSpec, 2)
	tokHello     = il.NewToken(il.TableUserString, 1)
	tokCalliSig  = il.NewToken(il.TableStandAloneSig, 2)
	tokException = il.NewToken(il.TableTypeRef, 9)
)

func testResolver() *mapResolver {
	return &mapResolver{
		fields: map[il.Token]*il.FieldDescriptor{
			tokCount: {DeclaringType: "Demo.Counter", Name: "count", Type: "int32"},
		},
		methods: map[il.Token]*il.MethodDescriptor{
			tokWriteLine: {DeclaringType: "System.Console", Name: "WriteLine", ReturnType: "void", Parameters: []string{"string"}},
			tokListCtor:  {DeclaringType: "System.Collections.Generic.List`1<int32>", Name: ".ctor", ReturnType: "void"},
		},
		types: map[il.Token]*il.TypeDescriptor{
			tokConsole:   {Namespace: "System", Name: "Console"},
			tokException: {Namespace: "System", Name: "Exception"},
		},
		strings: map[il.Token]string{
			tokHello: "hello",
		},
		sigs: map[il.Token][]byte{
			tokCalliSig: {0x00, 0x01, 0x08, 0x08},
		},
		locals: []*il.LocalDescriptor{
			{Index: 0, Type: "int32"},
			{Index: 1, Type: "int32", Name: "sum"},
		},
		params: []*il.ParameterDescriptor{
			{Position: 0, Type: "int32", Name: "x"},
			{Position: 1, Type: "string", Name: "label"},
		},
	}
}

// le32 encodes v little-endian.
func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
