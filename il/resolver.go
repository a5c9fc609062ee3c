package il

import (
	"fmt"
	"strings"
)

// Resolver is the host reflection layer. Implementations bind whatever
// generic context the method was compiled in. A nil result (or false for
// strings) means the token could not be resolved; the decoder records that
// and carries on.
type Resolver interface {
	ResolveField(tok Token) *FieldDescriptor
	ResolveMethod(tok Token) *MethodDescriptor
	ResolveType(tok Token) *TypeDescriptor
	ResolveString(tok Token) (string, bool)
	ResolveSignature(tok Token) []byte
	ResolveLocal(index int) *LocalDescriptor
	ResolveParameter(index int) *ParameterDescriptor
}

// NopResolver resolves nothing.
type NopResolver struct{}

func (NopResolver) ResolveField(Token) *FieldDescriptor       { return nil }
func (NopResolver) ResolveMethod(Token) *MethodDescriptor     { return nil }
func (NopResolver) ResolveType(Token) *TypeDescriptor         { return nil }
func (NopResolver) ResolveString(Token) (string, bool)        { return "", false }
func (NopResolver) ResolveSignature(Token) []byte             { return nil }
func (NopResolver) ResolveLocal(int) *LocalDescriptor         { return nil }
func (NopResolver) ResolveParameter(int) *ParameterDescriptor { return nil }

// Member is a resolved ldtoken operand: a *TypeDescriptor,
// *MethodDescriptor or *FieldDescriptor.
type Member interface {
	fmt.Stringer
	member()
}

// TypeDescriptor names a resolved type.
type TypeDescriptor struct {
	Namespace        string
	Name             string
	GenericArguments []string
}

func (*TypeDescriptor) member() {}

// FullName returns the namespace-qualified name without generic arguments.
func (t *TypeDescriptor) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

func (t *TypeDescriptor) String() string {
	if len(t.GenericArguments) == 0 {
		return t.FullName()
	}
	return t.FullName() + "<" + strings.Join(t.GenericArguments, ",") + ">"
}

// FieldDescriptor names a resolved field.
type FieldDescriptor struct {
	DeclaringType string
	Name          string
	Type          string
	Static        bool
}

func (*FieldDescriptor) member() {}

func (f *FieldDescriptor) String() string {
	var b strings.Builder
	if f.Static {
		b.WriteString("static ")
	}
	if f.Type != "" {
		b.WriteString(f.Type)
		b.WriteByte(' ')
	}
	if f.DeclaringType != "" {
		b.WriteString(f.DeclaringType)
		b.WriteString("::")
	}
	b.WriteString(f.Name)
	return b.String()
}

// MethodDescriptor names a resolved method, constructor or method instantiation.
type MethodDescriptor struct {
	DeclaringType    string
	Name             string
	ReturnType       string
	Parameters       []string
	GenericArguments []string
}

func (*MethodDescriptor) member() {}

func (m *MethodDescriptor) String() string {
	var b strings.Builder
	if m.ReturnType != "" {
		b.WriteString(m.ReturnType)
		b.WriteByte(' ')
	}
	if m.DeclaringType != "" {
		b.WriteString(m.DeclaringType)
		b.WriteString("::")
	}
	b.WriteString(m.Name)
	if len(m.GenericArguments) > 0 {
		b.WriteByte('<')
		b.WriteString(strings.Join(m.GenericArguments, ","))
		b.WriteByte('>')
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(m.Parameters, ", "))
	b.WriteByte(')')
	return b.String()
}

// LocalDescriptor describes a local variable slot.
type LocalDescriptor struct {
	Type   string
	Name   string
	Index  int
	Pinned bool
}

func (l *LocalDescriptor) String() string {
	name := l.Name
	if name == "" {
		name = fmt.Sprintf("V_%d", l.Index)
	}
	if l.Type == "" {
		return name
	}
	if l.Pinned {
		return fmt.Sprintf("%s (%s pinned)", name, l.Type)
	}
	return fmt.Sprintf("%s (%s)", name, l.Type)
}

// ParameterDescriptor describes a declared parameter. Position is 0-based
// over the declared parameters; the implicit this argument has Position -1.
type ParameterDescriptor struct {
	Type     string
	Name     string
	Position int
}

func (p *ParameterDescriptor) String() string {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("A_%d", p.Position)
	}
	if p.Type == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, p.Type)
}
