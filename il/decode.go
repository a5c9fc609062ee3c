package il

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/rhinobytesoftware/ilreader/errors"
	"github.com/rhinobytesoftware/ilreader/internal/binary"
	"github.com/rhinobytesoftware/ilreader/methodbody"
	"github.com/rhinobytesoftware/ilreader/opcode"
)

// Option configures a Decode call.
type Option func(*config)

type config struct {
	log      *zap.Logger
	clauses  []methodbody.Clause
	instance bool
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithInstanceMethod marks the method as having an implicit this argument
// in slot 0, so argument slot n resolves to declared parameter n-1.
func WithInstanceMethod() Option {
	return func(c *config) {
		c.instance = true
	}
}

// WithClauses supplies the method's exception clauses so their offsets are
// linked to instructions alongside branch targets.
func WithClauses(clauses []methodbody.Clause) Option {
	return func(c *config) {
		c.clauses = clauses
	}
}

// Decode walks code from offset 0 to its end and returns the instruction
// sequence with all branch, switch and exception clause targets linked.
//
// Unassigned opcodes and unresolvable tokens do not fail the decode; they
// produce UnknownOperand instructions and nil descriptors. A read past the
// end of code or a target that does not land on an instruction boundary
// returns an *errors.Error.
func Decode(code []byte, r Resolver, opts ...Option) (*Body, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = Logger()
	}
	if r == nil {
		r = NopResolver{}
	}

	d := &decoder{
		r:      binary.NewReader(code),
		res:    r,
		log:    cfg.log,
		cfg:    &cfg,
		instrs: make([]Instruction, 0, len(code)/2),
	}

	for d.r.Remaining() > 0 {
		if err := d.next(); err != nil {
			return nil, err
		}
	}

	body := &Body{Instructions: d.instrs, CodeSize: len(code)}
	if err := body.link(r, cfg.clauses); err != nil {
		return nil, err
	}

	d.log.Debug("decoded method body",
		zap.Int("code_size", len(code)),
		zap.Int("instructions", len(body.Instructions)),
		zap.Int("unknown", d.unknown),
		zap.Int("unresolved", d.unresolved),
		zap.Int("handlers", len(body.Handlers)))

	return body, nil
}

type decoder struct {
	r          *binary.Reader
	res        Resolver
	log        *zap.Logger
	cfg        *config
	instrs     []Instruction
	unknown    int
	unresolved int
}

func (d *decoder) next() error {
	start := d.r.Position()
	ins := Instruction{Index: len(d.instrs), Offset: start}

	b, err := d.r.ReadByte()
	if err != nil {
		return d.overrun(&ins, err)
	}
	ins.Opcode = opcode.LookupSingleByte(b)
	if b == opcode.Prefix {
		b2, err := d.r.ReadByte()
		if err != nil {
			return d.overrun(&ins, err)
		}
		ins.Opcode = opcode.LookupTwoByte(b2)
	}

	if ins.Opcode.Unknown() {
		d.unknown++
		d.log.Debug("unknown opcode",
			zap.Int("offset", start),
			zap.Uint16("value", ins.Opcode.Value))
		ins.Operand = UnknownOperand{Value: ins.Opcode.Value}
	} else {
		operand, err := d.operand(&ins)
		if err != nil {
			return err
		}
		ins.Operand = operand
	}

	ins.Size = d.r.Position() - start
	d.instrs = append(d.instrs, ins)
	return nil
}

func (d *decoder) operand(ins *Instruction) (Operand, error) {
	op := ins.Opcode

	// Fixed-width operands are bounds checked up front. For a switch this
	// covers the entry count; the jump table is checked in switchTable.
	if need := opcode.OperandSize(op.Operand); d.r.Remaining() < need {
		return nil, d.overrun(ins, &binary.ShortReadError{
			Position: d.r.Position(),
			Need:     need,
			Have:     d.r.Remaining(),
		})
	}

	switch {
	case op.Operand.IsBranch():
		return d.branch(ins)
	case op.Operand.IsToken():
		raw, err := d.r.ReadU32LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return d.token(ins, Token(raw)), nil
	}

	switch op.Operand {
	case opcode.InlineSwitch:
		return d.switchTable(ins)

	case opcode.ShortInlineI:
		v, err := d.r.ReadI8()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return Int8Operand{Value: v}, nil

	case opcode.InlineI:
		v, err := d.r.ReadI32LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return Int32Operand{Value: v}, nil

	case opcode.InlineI8:
		v, err := d.r.ReadI64LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return Int64Operand{Value: v}, nil

	case opcode.ShortInlineR:
		v, err := d.r.ReadF32LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return Float32Operand{Value: v}, nil

	case opcode.InlineR:
		v, err := d.r.ReadF64LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return Float64Operand{Value: v}, nil

	case opcode.ShortInlineVar:
		slot, err := d.r.ReadByte()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return d.variable(ins, int(slot)), nil

	case opcode.InlineVar:
		slot, err := d.r.ReadU16LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		return d.variable(ins, int(slot)), nil
	}

	// InlineNone, InlinePhi
	return NoOperand{}, nil
}

// branch reads a short or long displacement. Targets are relative to the
// end of the instruction.
func (d *decoder) branch(ins *Instruction) (Operand, error) {
	var delta int
	if ins.Opcode.Operand == opcode.ShortInlineBrTarget {
		v, err := d.r.ReadI8()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		delta = int(v)
	} else {
		v, err := d.r.ReadI32LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		delta = int(v)
	}
	return BranchOperand{TargetOffset: d.r.Position() + delta, Target: Unresolved}, nil
}

// switchTable reads the entry count and jump table. Every displacement is
// relative to the end of the whole switch instruction.
func (d *decoder) switchTable(ins *Instruction) (Operand, error) {
	count, err := d.r.ReadU32LE()
	if err != nil {
		return nil, d.overrun(ins, err)
	}
	if need := uint64(count) * 4; need > uint64(d.r.Remaining()) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOverrun).
			Offset(ins.Offset).
			Index(ins.Index).
			Opcode(ins.Opcode.Name).
			Detail("jump table of %d entries needs %d bytes, %d remaining", count, need, d.r.Remaining()).
			Build()
	}

	n := int(count)
	end := ins.Offset + opcode.SwitchSize(n)
	offsets := make([]int, n)
	for i := range offsets {
		delta, err := d.r.ReadI32LE()
		if err != nil {
			return nil, d.overrun(ins, err)
		}
		offsets[i] = end + int(delta)
	}

	targets := make([]int, n)
	for i := range targets {
		targets[i] = Unresolved
	}
	return SwitchOperand{TargetOffsets: offsets, Targets: targets}, nil
}

func (d *decoder) variable(ins *Instruction, slot int) Operand {
	if !isArgumentAccess(ins.Opcode) {
		local := d.res.ResolveLocal(slot)
		if local == nil {
			d.miss(ins, zap.Int("local", slot))
		}
		return LocalOperand{Slot: slot, Local: local}
	}

	if d.cfg.instance {
		if slot == 0 {
			return ParameterOperand{Slot: 0, Parameter: &ParameterDescriptor{Name: "this", Position: -1}}
		}
		p := d.res.ResolveParameter(slot - 1)
		if p == nil {
			d.miss(ins, zap.Int("parameter", slot-1))
		}
		return ParameterOperand{Slot: slot, Parameter: p}
	}

	p := d.res.ResolveParameter(slot)
	if p == nil {
		d.miss(ins, zap.Int("parameter", slot))
	}
	return ParameterOperand{Slot: slot, Parameter: p}
}

func (d *decoder) token(ins *Instruction, tok Token) Operand {
	switch ins.Opcode.Operand {
	case opcode.InlineString:
		s, ok := d.res.ResolveString(tok)
		if !ok {
			d.miss(ins, zap.Stringer("token", tok))
		}
		return StringOperand{Token: tok, Value: s, Resolved: ok}

	case opcode.InlineField:
		f := d.res.ResolveField(tok)
		if f == nil {
			d.miss(ins, zap.Stringer("token", tok))
		}
		return FieldOperand{Token: tok, Field: f}

	case opcode.InlineMethod:
		m := d.res.ResolveMethod(tok)
		if m == nil {
			d.miss(ins, zap.Stringer("token", tok))
		}
		return MethodOperand{Token: tok, Method: m}

	case opcode.InlineType:
		t := d.res.ResolveType(tok)
		if t == nil {
			d.miss(ins, zap.Stringer("token", tok))
		}
		return TypeOperand{Token: tok, Type: t}

	case opcode.InlineSig:
		blob := d.res.ResolveSignature(tok)
		if blob == nil {
			d.miss(ins, zap.Stringer("token", tok))
		}
		return NewSignatureOperand(tok, blob)
	}

	// InlineTok
	m := d.member(tok)
	if m == nil {
		d.miss(ins, zap.Stringer("token", tok))
	}
	return MemberOperand{Token: tok, Member: m}
}

// member resolves an ldtoken operand by the table its token points into.
// MemberRef rows can name either a method or a field.
func (d *decoder) member(tok Token) Member {
	switch {
	case tok.IsType():
		if t := d.res.ResolveType(tok); t != nil {
			return t
		}
	case tok.Table() == TableMemberRef:
		if m := d.res.ResolveMethod(tok); m != nil {
			return m
		}
		if f := d.res.ResolveField(tok); f != nil {
			return f
		}
	case tok.IsMethod():
		if m := d.res.ResolveMethod(tok); m != nil {
			return m
		}
	case tok.IsField():
		if f := d.res.ResolveField(tok); f != nil {
			return f
		}
	}
	return nil
}

func (d *decoder) miss(ins *Instruction, field zap.Field) {
	d.unresolved++
	d.log.Debug("unresolved operand",
		zap.Int("offset", ins.Offset),
		zap.String("opcode", ins.Opcode.Name),
		field)
}

// overrun converts a short read into the fatal decode error. The reported
// offset is that of the instruction being decoded.
func (d *decoder) overrun(ins *Instruction, err error) error {
	b := errors.New(errors.PhaseDecode, errors.KindOverrun).
		Offset(ins.Offset).
		Index(ins.Index).
		Cause(err)
	if ins.Opcode.Name != "" {
		b.Opcode(ins.Opcode.Name)
	}
	var sre *binary.ShortReadError
	if stderrors.As(err, &sre) {
		b.Detail("read at IL_%04x needs %d bytes, %d remaining", sre.Position, sre.Need, sre.Have)
	}
	return b.Build()
}

func isArgumentAccess(op opcode.Opcode) bool {
	switch op.Value {
	case 0x0E, 0x0F, 0x10, // ldarg.s ldarga.s starg.s
		0xFE09, 0xFE0A, 0xFE0B: // ldarg ldarga starg
		return true
	}
	return false
}
