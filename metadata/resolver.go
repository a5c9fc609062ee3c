package metadata

import (
	"sync"

	"github.com/rhinobytesoftware/ilreader/il"
)

// StaticResolver resolves tokens and slots from tables filled in ahead of
// time. It is safe for concurrent use.
type StaticResolver struct {
	mu      sync.RWMutex
	fields  map[il.Token]*il.FieldDescriptor
	methods map[il.Token]*il.MethodDescriptor
	types   map[il.Token]*il.TypeDescriptor
	strings map[il.Token]string
	sigs    map[il.Token][]byte
	locals  []*il.LocalDescriptor
	params  []*il.ParameterDescriptor
}

var _ il.Resolver = (*StaticResolver)(nil)

// NewStaticResolver creates an empty resolver.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{
		fields:  make(map[il.Token]*il.FieldDescriptor),
		methods: make(map[il.Token]*il.MethodDescriptor),
		types:   make(map[il.Token]*il.TypeDescriptor),
		strings: make(map[il.Token]string),
		sigs:    make(map[il.Token][]byte),
	}
}

// AddField registers f under tok.
func (s *StaticResolver) AddField(tok il.Token, f *il.FieldDescriptor) {
	s.mu.Lock()
	s.fields[tok] = f
	s.mu.Unlock()
}

// AddMethod registers m under tok.
func (s *StaticResolver) AddMethod(tok il.Token, m *il.MethodDescriptor) {
	s.mu.Lock()
	s.methods[tok] = m
	s.mu.Unlock()
}

// AddType registers t under tok.
func (s *StaticResolver) AddType(tok il.Token, t *il.TypeDescriptor) {
	s.mu.Lock()
	s.types[tok] = t
	s.mu.Unlock()
}

// AddString registers a user string literal.
func (s *StaticResolver) AddString(tok il.Token, v string) {
	s.mu.Lock()
	s.strings[tok] = v
	s.mu.Unlock()
}

// AddSignature registers a copy of a stand-alone signature blob.
func (s *StaticResolver) AddSignature(tok il.Token, blob []byte) {
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.mu.Lock()
	s.sigs[tok] = cp
	s.mu.Unlock()
}

// SetLocals replaces the local variable table. Slot i resolves to
// locals[i], whose Index is set to i.
func (s *StaticResolver) SetLocals(locals []il.LocalDescriptor) {
	out := make([]*il.LocalDescriptor, len(locals))
	for i := range locals {
		l := locals[i]
		l.Index = i
		out[i] = &l
	}
	s.mu.Lock()
	s.locals = out
	s.mu.Unlock()
}

// SetParameters replaces the declared parameter table, excluding this.
func (s *StaticResolver) SetParameters(params []il.ParameterDescriptor) {
	out := make([]*il.ParameterDescriptor, len(params))
	for i := range params {
		p := params[i]
		p.Position = i
		out[i] = &p
	}
	s.mu.Lock()
	s.params = out
	s.mu.Unlock()
}

// ResolveField returns the field registered under tok, or nil.
func (s *StaticResolver) ResolveField(tok il.Token) *il.FieldDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fields[tok]
}

// ResolveMethod returns the method registered under tok, or nil.
func (s *StaticResolver) ResolveMethod(tok il.Token) *il.MethodDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.methods[tok]
}

// ResolveType returns the type registered under tok, or nil.
func (s *StaticResolver) ResolveType(tok il.Token) *il.TypeDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[tok]
}

// ResolveString returns the user string registered under tok.
func (s *StaticResolver) ResolveString(tok il.Token) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.strings[tok]
	return v, ok
}

// ResolveSignature returns the registered blob. The decoder copies it, so
// the stored slice is handed out directly.
func (s *StaticResolver) ResolveSignature(tok il.Token) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sigs[tok]
}

// ResolveLocal returns the local in slot, or nil past the table.
func (s *StaticResolver) ResolveLocal(slot int) *il.LocalDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if slot < 0 || slot >= len(s.locals) {
		return nil
	}
	return s.locals[slot]
}

// ResolveParameter returns the declared parameter at pos, or nil.
func (s *StaticResolver) ResolveParameter(pos int) *il.ParameterDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if pos < 0 || pos >= len(s.params) {
		return nil
	}
	return s.params[pos]
}
