package metadata

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/rhinobytesoftware/ilreader/errors"
	"github.com/rhinobytesoftware/ilreader/il"
	"github.com/rhinobytesoftware/ilreader/methodbody"
)

// Fixture is a method body together with the metadata it references.
type Fixture struct {
	Name       string           `yaml:"name"`
	Body       string           `yaml:"body"`
	Header     bool             `yaml:"header"`
	Instance   bool             `yaml:"instance"`
	Types      []TypeEntry      `yaml:"types"`
	Fields     []FieldEntry     `yaml:"fields"`
	Methods    []MethodEntry    `yaml:"methods"`
	Strings    []StringEntry    `yaml:"strings"`
	Signatures []SignatureEntry `yaml:"signatures"`
	Locals     []LocalEntry     `yaml:"locals"`
	Params     []ParameterEntry `yaml:"params"`
	Clauses    []ClauseEntry    `yaml:"clauses"`
	Listing    string           `yaml:"listing"`
}

// TypeEntry maps a TypeRef, TypeDef or TypeSpec token to a type.
type TypeEntry struct {
	Token            uint32   `yaml:"token"`
	Namespace        string   `yaml:"namespace"`
	Name             string   `yaml:"name"`
	GenericArguments []string `yaml:"generic_arguments"`
}

// FieldEntry maps a Field or MemberRef token to a field.
type FieldEntry struct {
	Token         uint32 `yaml:"token"`
	DeclaringType string `yaml:"declaring_type"`
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Static        bool   `yaml:"static"`
}

// MethodEntry maps a MethodDef, MemberRef or MethodSpec token to a method.
type MethodEntry struct {
	Token            uint32   `yaml:"token"`
	DeclaringType    string   `yaml:"declaring_type"`
	Name             string   `yaml:"name"`
	ReturnType       string   `yaml:"return_type"`
	Parameters       []string `yaml:"parameters"`
	GenericArguments []string `yaml:"generic_arguments"`
}

// StringEntry is a user string literal for ldstr.
type StringEntry struct {
	Token uint32 `yaml:"token"`
	Value string `yaml:"value"`
}

// SignatureEntry is a stand-alone signature blob for calli, as hex.
type SignatureEntry struct {
	Token uint32 `yaml:"token"`
	Bytes string `yaml:"bytes"`
}

// LocalEntry describes one local variable slot, in slot order.
type LocalEntry struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	Pinned bool   `yaml:"pinned"`
}

// ParameterEntry describes one declared parameter, excluding this.
type ParameterEntry struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

// ClauseEntry describes an exception clause for raw code fixtures. Fixtures
// with header: true take their clauses from the body's data sections.
type ClauseEntry struct {
	Kind          string `yaml:"kind"`
	TryOffset     uint32 `yaml:"try_offset"`
	TryLength     uint32 `yaml:"try_length"`
	HandlerOffset uint32 `yaml:"handler_offset"`
	HandlerLength uint32 `yaml:"handler_length"`
	ClassToken    uint32 `yaml:"class_token"`
	FilterOffset  uint32 `yaml:"filter_offset"`
}

// LoadFixture reads a YAML fixture. Unknown keys are rejected.
func LoadFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Load("parse fixture", err)
	}
	if strings.TrimSpace(f.Body) == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "fixture has no body")
	}
	return &f, nil
}

// LoadFixtureFile opens path and reads it with LoadFixture.
func LoadFixtureFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "open "+path)
	}
	defer file.Close()
	return LoadFixture(file)
}

// ParseHex decodes hex bytes, ignoring whitespace and an optional 0x prefix
// on each group.
func ParseHex(s string) ([]byte, error) {
	var b strings.Builder
	for _, field := range strings.Fields(s) {
		field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
		b.WriteString(field)
	}
	out, err := hex.DecodeString(b.String())
	if err != nil {
		return nil, errors.Load("decode hex", err)
	}
	return out, nil
}

// Code returns the IL code bytes and exception clauses of the fixture.
func (f *Fixture) Code() ([]byte, []methodbody.Clause, error) {
	raw, err := ParseHex(f.Body)
	if err != nil {
		return nil, nil, err
	}

	if f.Header {
		mb, err := methodbody.Parse(raw)
		if err != nil {
			return nil, nil, err
		}
		return mb.Code, mb.Clauses, nil
	}

	clauses := make([]methodbody.Clause, 0, len(f.Clauses))
	for i, c := range f.Clauses {
		kind, err := parseClauseKind(c.Kind)
		if err != nil {
			return nil, nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("clause %d: %v", i, err))
		}
		clauses = append(clauses, methodbody.Clause{
			Kind:          kind,
			TryOffset:     c.TryOffset,
			TryLength:     c.TryLength,
			HandlerOffset: c.HandlerOffset,
			HandlerLength: c.HandlerLength,
			ClassToken:    c.ClassToken,
			FilterOffset:  c.FilterOffset,
		})
	}
	return raw, clauses, nil
}

func parseClauseKind(s string) (methodbody.ClauseKind, error) {
	for _, k := range []methodbody.ClauseKind{
		methodbody.ClauseCatch,
		methodbody.ClauseFilter,
		methodbody.ClauseFinally,
		methodbody.ClauseFault,
	} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown clause kind %q", s)
}

// Resolver builds a StaticResolver from the fixture tables.
func (f *Fixture) Resolver() (*StaticResolver, error) {
	r := NewStaticResolver()
	for _, t := range f.Types {
		r.AddType(il.Token(t.Token), &il.TypeDescriptor{
			Namespace:        t.Namespace,
			Name:             t.Name,
			GenericArguments: t.GenericArguments,
		})
	}
	for _, fd := range f.Fields {
		r.AddField(il.Token(fd.Token), &il.FieldDescriptor{
			DeclaringType: fd.DeclaringType,
			Name:          fd.Name,
			Type:          fd.Type,
			Static:        fd.Static,
		})
	}
	for _, m := range f.Methods {
		r.AddMethod(il.Token(m.Token), &il.MethodDescriptor{
			DeclaringType:    m.DeclaringType,
			Name:             m.Name,
			ReturnType:       m.ReturnType,
			Parameters:       m.Parameters,
			GenericArguments: m.GenericArguments,
		})
	}
	for _, s := range f.Strings {
		r.AddString(il.Token(s.Token), s.Value)
	}
	for _, s := range f.Signatures {
		blob, err := ParseHex(s.Bytes)
		if err != nil {
			return nil, err
		}
		r.AddSignature(il.Token(s.Token), blob)
	}

	locals := make([]il.LocalDescriptor, len(f.Locals))
	for i, l := range f.Locals {
		locals[i] = il.LocalDescriptor{Type: l.Type, Name: l.Name, Pinned: l.Pinned}
	}
	r.SetLocals(locals)

	params := make([]il.ParameterDescriptor, len(f.Params))
	for i, p := range f.Params {
		params[i] = il.ParameterDescriptor{Type: p.Type, Name: p.Name}
	}
	r.SetParameters(params)
	return r, nil
}

// Decode decodes the fixture body against its own metadata. opts are
// applied after the fixture's instance flag and clauses.
func (f *Fixture) Decode(opts ...il.Option) (*il.Body, error) {
	code, clauses, err := f.Code()
	if err != nil {
		return nil, err
	}
	r, err := f.Resolver()
	if err != nil {
		return nil, err
	}

	all := make([]il.Option, 0, len(opts)+2)
	if f.Instance {
		all = append(all, il.WithInstanceMethod())
	}
	if len(clauses) > 0 {
		all = append(all, il.WithClauses(clauses))
	}
	all = append(all, opts...)
	return il.Decode(code, r, all...)
}
