package il_test

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rhinobytesoftware/ilreader/errors"
	"github.com/rhinobytesoftware/ilreader/il"
	"github.com/rhinobytesoftware/ilreader/internal/binary"
)

// addLocals is the debug build of
//
//	int a = 5; int b = 10; int c = a + b; return c;
var addLocals = []byte{
	0x00,       // nop
	0x1B,       // ldc.i4.5
	0x0A,       // stloc.0
	0x1F, 0x0A, // ldc.i4.s 10
	0x0B,       // stloc.1
	0x06,       // ldloc.0
	0x07,       // ldloc.1
	0x58,       // add
	0x0C,       // stloc.2
	0x2B, 0x00, // br.s IL_000c
	0x08, // ldloc.2
	0x2A, // ret
}

func TestDecodeAddLocals(t *testing.T) {
	body, err := il.Decode(addLocals, nil)
	require.NoError(t, err)
	require.Equal(t, 12, body.Len())

	names := make([]string, body.Len())
	for i, ins := range body.Instructions {
		names[i] = ins.Opcode.Name
	}
	assert.Equal(t, []string{
		"nop", "ldc.i4.5", "stloc.0", "ldc.i4.s", "stloc.1", "ldloc.0",
		"ldloc.1", "add", "stloc.2", "br.s", "ldloc.2", "ret",
	}, names)

	assert.Equal(t, il.Int8Operand{Value: 10}, body.Instructions[3].Operand)
	assert.Equal(t, 3, body.Instructions[3].Offset)

	br := body.Instructions[9]
	op, ok := br.Operand.(il.BranchOperand)
	require.True(t, ok, "br.s operand is %T", br.Operand)
	assert.Equal(t, 12, op.TargetOffset)
	assert.Equal(t, 10, op.Target)

	dst, ok := body.Target(op)
	require.True(t, ok)
	assert.Equal(t, "ldloc.2", dst.Opcode.Name)
	assert.Equal(t, op.TargetOffset, dst.Offset)

	want := "(0) IL_0000: nop\n" +
		"(1) IL_0001: ldc.i4.5\n" +
		"(2) IL_0002: stloc.0\n" +
		"(3) IL_0003: ldc.i4.s     10\n" +
		"(4) IL_0005: stloc.1\n" +
		"(5) IL_0006: ldloc.0\n" +
		"(6) IL_0007: ldloc.1\n" +
		"(7) IL_0008: add\n" +
		"(8) IL_0009: stloc.2\n" +
		"(9) IL_000a: br.s         -> (10) IL_000c\n" +
		"(10) IL_000c: ldloc.2\n" +
		"(11) IL_000d: ret"
	assert.Equal(t, want, il.DescribeAll(body, nil))
}

func TestDecodeLiterals(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		want il.Operand
		size int
	}{
		{"ldc.i4.s negative", []byte{0x1F, 0xFF}, il.Int8Operand{Value: -1}, 2},
		{"ldc.i4", cat([]byte{0x20}, le32(0x12345678)), il.Int32Operand{Value: 0x12345678}, 5},
		{"ldc.i4 negative", cat([]byte{0x20}, le32(0xFFFFFF85)), il.Int32Operand{Value: -123}, 5},
		{"ldc.i8", []byte{0x21, 0x01, 0, 0, 0, 0, 0, 0, 0x80}, il.Int64Operand{Value: math.MinInt64 + 1}, 9},
		{"ldc.r4", []byte{0x22, 0x00, 0x00, 0x80, 0x3F}, il.Float32Operand{Value: 1}, 5},
		{"ldc.r8", []byte{0x23, 0x18, 0x2D, 0x44, 0x54, 0xFB, 0x21, 0x09, 0x40}, il.Float64Operand{Value: math.Pi}, 9},
		{"unaligned.", []byte{0xFE, 0x12, 0x04}, il.Int8Operand{Value: 4}, 3},
		{"ceq", []byte{0xFE, 0x01}, il.NoOperand{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := il.Decode(tt.code, nil)
			require.NoError(t, err)
			require.Equal(t, 1, body.Len())
			ins := body.Instructions[0]
			assert.Equal(t, tt.want, ins.Operand)
			assert.Equal(t, tt.size, ins.Size)
			assert.Equal(t, len(tt.code), ins.End())
		})
	}
}

func TestDecodeTokens(t *testing.T) {
	r := testResolver()
	code := cat(
		[]byte{0x72}, le32(uint32(tokHello)), // ldstr
		[]byte{0x28}, le32(uint32(tokWriteLine)), // call
		[]byte{0x73}, le32(uint32(tokListCtor)), // newobj
		[]byte{0x02},                             // ldarg.0
		[]byte{0x7B}, le32(uint32(tokCount)), // ldfld
		[]byte{0x8C}, le32(uint32(tokConsole)), // box
		[]byte{0xD0}, le32(uint32(tokConsole)), // ldtoken type
		[]byte{0xD0}, le32(uint32(tokWriteLine)), // ldtoken memberref
		[]byte{0xD0}, le32(uint32(tokCount)), // ldtoken field
		[]byte{0x29}, le32(uint32(tokCalliSig)), // calli
		[]byte{0x2A},
	)

	body, err := il.Decode(code, r)
	require.NoError(t, err)
	require.Equal(t, 11, body.Len())

	ins := body.Instructions
	assert.Equal(t, il.StringOperand{Token: tokHello, Value: "hello", Resolved: true}, ins[0].Operand)
	assert.Equal(t, il.MethodOperand{Token: tokWriteLine, Method: r.methods[tokWriteLine]}, ins[1].Operand)
	assert.Equal(t, il.MethodOperand{Token: tokListCtor, Method: r.methods[tokListCtor]}, ins[2].Operand)
	assert.Equal(t, il.NoOperand{}, ins[3].Operand)
	assert.Equal(t, il.FieldOperand{Token: tokCount, Field: r.fields[tokCount]}, ins[4].Operand)
	assert.Equal(t, il.TypeOperand{Token: tokConsole, Type: r.types[tokConsole]}, ins[5].Operand)
	assert.Equal(t, il.MemberOperand{Token: tokConsole, Member: r.types[tokConsole]}, ins[6].Operand)
	assert.Equal(t, il.MemberOperand{Token: tokWriteLine, Member: r.methods[tokWriteLine]}, ins[7].Operand)
	assert.Equal(t, il.MemberOperand{Token: tokCount, Member: r.fields[tokCount]}, ins[8].Operand)

	sig, ok := ins[9].Operand.(il.SignatureOperand)
	require.True(t, ok)
	assert.Equal(t, tokCalliSig, sig.Token)
	assert.Equal(t, []byte{0x00, 0x01, 0x08, 0x08}, sig.Bytes())

	assert.Equal(t, `(0) IL_0000: ldstr        "hello"`, il.Describe(body, &ins[0], nil))
	assert.Equal(t, "(1) IL_0005: call         void System.Console::WriteLine(string)", il.Describe(body, &ins[1], nil))
	assert.Equal(t, "(4) IL_0010: ldfld        int32 Demo.Counter::count", il.Describe(body, &ins[4], nil))
	assert.Equal(t, "(6) IL_001a: ldtoken      System.Console", il.Describe(body, &ins[6], nil))
	assert.Equal(t, "(9) IL_0029: calli        sig 0x11000002 [00 01 08 08]", il.Describe(body, &ins[9], nil))
}

func TestDecodeUnresolvedTokens(t *testing.T) {
	code := cat(
		[]byte{0x72}, le32(uint32(tokHello)),
		[]byte{0x7E}, le32(uint32(tokCount)),
		[]byte{0x6F}, le32(uint32(tokWriteLine)),
		[]byte{0x75}, le32(uint32(tokConsole)),
		[]byte{0xD0}, le32(uint32(tokConsole)),
		[]byte{0x29}, le32(uint32(tokCalliSig)),
		[]byte{0x11, 0x04}, // ldloc.s 4
		[]byte{0x2A},
	)

	core, logs := observer.New(zapcore.DebugLevel)
	body, err := il.Decode(code, il.NopResolver{}, il.WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Equal(t, 8, body.Len())

	assert.Equal(t, il.StringOperand{Token: tokHello}, body.Instructions[0].Operand)
	assert.Equal(t, il.FieldOperand{Token: tokCount}, body.Instructions[1].Operand)
	assert.Equal(t, il.MethodOperand{Token: tokWriteLine}, body.Instructions[2].Operand)
	assert.Equal(t, il.TypeOperand{Token: tokConsole}, body.Instructions[3].Operand)
	assert.Equal(t, il.MemberOperand{Token: tokConsole}, body.Instructions[4].Operand)
	assert.Nil(t, body.Instructions[5].Operand.(il.SignatureOperand).Bytes())
	assert.Equal(t, il.LocalOperand{Slot: 4}, body.Instructions[6].Operand)

	for i := 0; i < 6; i++ {
		assert.Equal(t, "null", il.Payload(&body.Instructions[i]), "instruction %d", i)
	}
	assert.Equal(t, "V_4", il.Payload(&body.Instructions[6]))

	assert.Equal(t, 7, logs.FilterMessage("unresolved operand").Len())
	summary := logs.FilterMessage("decoded method body").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(7), summary[0].ContextMap()["unresolved"])
}

func TestDecodeVariables(t *testing.T) {
	r := testResolver()
	code := []byte{
		0x11, 0x01, // ldloc.s 1
		0x13, 0x00, // stloc.s 0
		0x12, 0x01, // ldloca.s 1
		0xFE, 0x0C, 0x01, 0x00, // ldloc 1
		0x0E, 0x01, // ldarg.s 1
		0x10, 0x00, // starg.s 0
		0xFE, 0x09, 0x01, 0x00, // ldarg 1
		0xFE, 0x0A, 0x05, 0x00, // ldarga 5
	}

	body, err := il.Decode(code, r)
	require.NoError(t, err)
	require.Equal(t, 8, body.Len())

	ins := body.Instructions
	assert.Equal(t, il.LocalOperand{Slot: 1, Local: r.locals[1]}, ins[0].Operand)
	assert.Equal(t, il.LocalOperand{Slot: 0, Local: r.locals[0]}, ins[1].Operand)
	assert.Equal(t, il.LocalOperand{Slot: 1, Local: r.locals[1]}, ins[2].Operand)
	assert.Equal(t, il.LocalOperand{Slot: 1, Local: r.locals[1]}, ins[3].Operand)
	assert.Equal(t, 4, ins[3].Size)
	assert.Equal(t, il.ParameterOperand{Slot: 1, Parameter: r.params[1]}, ins[4].Operand)
	assert.Equal(t, il.ParameterOperand{Slot: 0, Parameter: r.params[0]}, ins[5].Operand)
	assert.Equal(t, il.ParameterOperand{Slot: 1, Parameter: r.params[1]}, ins[6].Operand)
	assert.Equal(t, il.ParameterOperand{Slot: 5}, ins[7].Operand)

	assert.Equal(t, "sum (int32)", il.Payload(&ins[0]))
	assert.Equal(t, "V_0 (int32)", il.Payload(&ins[1]))
	assert.Equal(t, "label (string)", il.Payload(&ins[4]))
	assert.Equal(t, "A_5", il.Payload(&ins[7]))
}

func TestDecodeInstanceMethodArguments(t *testing.T) {
	r := testResolver()
	code := []byte{
		0x0E, 0x00, // ldarg.s 0 (this)
		0x0E, 0x01, // ldarg.s 1 -> x
		0xFE, 0x09, 0x02, 0x00, // ldarg 2 -> label
	}

	body, err := il.Decode(code, r, il.WithInstanceMethod())
	require.NoError(t, err)

	this, ok := body.Instructions[0].Operand.(il.ParameterOperand)
	require.True(t, ok)
	assert.Equal(t, 0, this.Slot)
	require.NotNil(t, this.Parameter)
	assert.Equal(t, -1, this.Parameter.Position)
	assert.Equal(t, "this", this.Parameter.Name)

	assert.Equal(t, il.ParameterOperand{Slot: 1, Parameter: r.params[0]}, body.Instructions[1].Operand)
	assert.Equal(t, il.ParameterOperand{Slot: 2, Parameter: r.params[1]}, body.Instructions[2].Operand)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	code := []byte{0x00, 0x24, 0xFE, 0x08, 0xA6, 0x2A}

	core, logs := observer.New(zapcore.DebugLevel)
	body, err := il.Decode(code, nil, il.WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Equal(t, 5, body.Len())

	single := body.Instructions[1]
	assert.True(t, single.Opcode.Unknown())
	assert.Equal(t, il.UnknownOperand{Value: 0x24}, single.Operand)
	assert.Equal(t, 1, single.Size)

	double := body.Instructions[2]
	assert.True(t, double.Opcode.Unknown())
	assert.Equal(t, il.UnknownOperand{Value: 0xFE08}, double.Operand)
	assert.Equal(t, 2, double.Size)

	assert.Equal(t, "ret", body.Instructions[4].Opcode.Name)
	assert.Equal(t, "(1) IL_0001: ??? 0x24", il.Describe(body, &single, nil))
	assert.Equal(t, "(2) IL_0002: ??? 0xFE08", il.Describe(body, &double, nil))
	assert.Equal(t, 3, logs.FilterMessage("unknown opcode").Len())
}

func TestDecodeBranches(t *testing.T) {
	code := cat(
		[]byte{0x00},                 // 0 nop
		[]byte{0x38}, le32(0xFFFFFFFA), // 1 br -6 -> 0
		[]byte{0x2C, 0x01}, // 6 brfalse.s +1 -> 9
		[]byte{0x00},       // 8 nop
		[]byte{0xDD}, le32(0), // 9 leave +0 -> 14
		[]byte{0x2A}, // 14 ret
	)

	body, err := il.Decode(code, nil)
	require.NoError(t, err)
	require.Equal(t, 6, body.Len())

	assert.Equal(t, il.BranchOperand{TargetOffset: 0, Target: 0}, body.Instructions[1].Operand)
	assert.Equal(t, il.BranchOperand{TargetOffset: 9, Target: 4}, body.Instructions[2].Operand)
	assert.Equal(t, il.BranchOperand{TargetOffset: 14, Target: 5}, body.Instructions[4].Operand)
	assert.Equal(t, []int{0}, body.Instructions[1].Targets())
	assert.True(t, body.Instructions[1].IsBranch())
	assert.False(t, body.Instructions[0].IsBranch())
	assert.Nil(t, body.Instructions[0].Targets())
}

func TestDecodeSwitch(t *testing.T) {
	code := cat(
		[]byte{0x45}, le32(3), // switch, ends at 17
		le32(0),          // -> 17
		le32(1),          // -> 18
		le32(0xFFFFFFEF), // -17 -> 0
		[]byte{0x00, 0x00, 0x2A},
	)

	body, err := il.Decode(code, nil)
	require.NoError(t, err)
	require.Equal(t, 4, body.Len())

	sw := body.Instructions[0]
	assert.Equal(t, 17, sw.Size)
	op, ok := sw.Operand.(il.SwitchOperand)
	require.True(t, ok)
	assert.Equal(t, []int{17, 18, 0}, op.TargetOffsets)
	assert.Equal(t, []int{1, 2, 0}, op.Targets)
	require.Len(t, op.Targets, len(op.TargetOffsets))
	for i, idx := range op.Targets {
		assert.Equal(t, op.TargetOffsets[i], body.Instructions[idx].Offset)
	}
	assert.Equal(t, "(0) IL_0000: switch       [(1) IL_0011, (2) IL_0012, (0) IL_0000]", il.Describe(body, &sw, nil))
}

func TestDecodeEmptySwitch(t *testing.T) {
	body, err := il.Decode(cat([]byte{0x45}, le32(0), []byte{0x2A}), nil)
	require.NoError(t, err)
	require.Equal(t, 2, body.Len())
	assert.Equal(t, 5, body.Instructions[0].Size)
	assert.Equal(t, il.SwitchOperand{TargetOffsets: []int{}, Targets: []int{}}, body.Instructions[0].Operand)
}

func TestDecodeOverrun(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		offset int
		index  int
	}{
		{"ldc.i4 missing two bytes", []byte{0x00, 0x20, 0x01, 0x02}, 1, 1},
		{"ldc.i8 missing bytes", []byte{0x21, 0x01}, 0, 0},
		{"dangling prefix", []byte{0x00, 0x00, 0xFE}, 2, 2},
		{"br.s without operand", []byte{0x2B}, 0, 0},
		{"ldarg without slot", []byte{0xFE, 0x09, 0x01}, 0, 0},
		{"switch count truncated", []byte{0x2A, 0x45, 0x02, 0x00}, 1, 1},
		{"switch table truncated", cat([]byte{0x45}, le32(2), le32(0)), 0, 0},
		{"switch huge count", cat([]byte{0x45}, le32(0xFFFFFFFF)), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := il.Decode(tt.code, nil)
			require.Error(t, err)
			assert.Nil(t, body)

			var e *errors.Error
			require.True(t, stderrors.As(err, &e), "got %T", err)
			assert.Equal(t, errors.KindOverrun, e.Kind)
			assert.Equal(t, tt.offset, e.Offset)
			assert.Equal(t, tt.index, e.Index)
			assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindOverrun}))
		})
	}
}

func TestDecodeOverrunOperandWidth(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		detail string
	}{
		{"ldc.i4", []byte{0x00, 0x20, 0x01, 0x02}, "read at IL_0002 needs 4 bytes, 2 remaining"},
		{"ldc.i8", []byte{0x21, 0x01}, "read at IL_0001 needs 8 bytes, 1 remaining"},
		{"ldc.r8", []byte{0x23}, "read at IL_0001 needs 8 bytes, 0 remaining"},
		{"ldarg", []byte{0xFE, 0x09, 0x01}, "read at IL_0002 needs 2 bytes, 1 remaining"},
		{"ldstr", []byte{0x72, 0x01}, "read at IL_0001 needs 4 bytes, 1 remaining"},
		{"br", []byte{0x38, 0x00, 0x00}, "read at IL_0001 needs 4 bytes, 2 remaining"},
		{"switch count", []byte{0x45, 0x01}, "read at IL_0001 needs 4 bytes, 1 remaining"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := il.Decode(tt.code, nil)
			require.Error(t, err)

			var e *errors.Error
			require.True(t, stderrors.As(err, &e))
			assert.Equal(t, errors.KindOverrun, e.Kind)
			assert.Equal(t, tt.detail, e.Detail)
			assert.True(t, stderrors.Is(err, binary.ErrShortRead))
		})
	}
}

func TestDecodeDanglingTarget(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		index  int
		target int
	}{
		{"into operand", cat([]byte{0x2B, 0x01}, []byte{0x20}, le32(7)), 0, 3},
		{"past end", []byte{0x00, 0x2B, 0x05, 0x2A}, 1, 8},
		{"before start", []byte{0x2B, 0xF0}, 0, -14},
		{"end of code", []byte{0x00, 0x2B, 0x01, 0x2A}, 1, 4},
		{"switch case", cat([]byte{0x00, 0x45}, le32(2), le32(0), le32(2), []byte{0x2A}), 1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := il.Decode(tt.code, nil)
			require.Error(t, err)

			var e *errors.Error
			require.True(t, stderrors.As(err, &e), "got %T", err)
			assert.Equal(t, errors.PhaseResolve, e.Phase)
			assert.Equal(t, errors.KindDanglingTarget, e.Kind)
			assert.Equal(t, tt.index, e.Index)
			assert.Equal(t, tt.target, e.Value)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	body, err := il.Decode(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, body.Len())
	assert.Equal(t, "", il.DescribeAll(body, nil))
}

func TestDecodeInvariants(t *testing.T) {
	bodies := [][]byte{
		addLocals,
		cat([]byte{0x00}, []byte{0x38}, le32(0xFFFFFFFA), []byte{0x2C, 0x01, 0x00, 0xDD}, le32(0), []byte{0x2A}),
		cat([]byte{0x45}, le32(3), le32(0), le32(1), le32(0xFFFFFFEF), []byte{0x00, 0x00, 0x2A}),
		cat([]byte{0x45}, le32(2), le32(0), le32(1), []byte{0x00, 0x00, 0x2A}),
		cat([]byte{0x72}, le32(uint32(tokHello)), []byte{0x28}, le32(uint32(tokWriteLine)), []byte{0x2A}),
		{0x00, 0x24, 0xFE, 0x01, 0xFE, 0x1F, 0x2A},
	}

	for _, code := range bodies {
		body, err := il.Decode(code, testResolver())
		require.NoError(t, err)

		total := 0
		for i, ins := range body.Instructions {
			assert.Equal(t, i, ins.Index)
			total += ins.Size
			if i+1 < body.Len() {
				assert.Equal(t, ins.End(), body.Instructions[i+1].Offset)
			}
			idx, ok := body.At(ins.Offset)
			assert.True(t, ok)
			assert.Equal(t, i, idx)
			switch op := ins.Operand.(type) {
			case il.BranchOperand:
				require.NotEqual(t, il.Unresolved, op.Target)
				assert.Equal(t, op.TargetOffset, body.Instructions[op.Target].Offset)
			case il.SwitchOperand:
				require.Len(t, op.Targets, len(op.TargetOffsets))
				for j, target := range op.Targets {
					require.NotEqual(t, il.Unresolved, target)
					assert.Equal(t, op.TargetOffsets[j], body.Instructions[target].Offset, "case %d", j)
				}
			}
		}
		assert.Equal(t, len(code), total)
		assert.Equal(t, len(code), body.Instructions[body.Len()-1].End())

		again, err := il.Decode(code, testResolver())
		require.NoError(t, err)
		assert.Equal(t, body.Instructions, again.Instructions)
	}
}

func TestSignatureBytesAreCopies(t *testing.T) {
	r := testResolver()
	body, err := il.Decode(cat([]byte{0x29}, le32(uint32(tokCalliSig))), r)
	require.NoError(t, err)

	sig := body.Instructions[0].Operand.(il.SignatureOperand)
	assert.True(t, sig.Resolved())

	got := sig.Bytes()
	got[0] = 0xFF
	assert.Equal(t, byte(0x00), sig.Bytes()[0], "mutating a returned blob leaked into the operand")

	r.sigs[tokCalliSig][1] = 0xFF
	assert.Equal(t, byte(0x01), sig.Bytes()[1], "mutating the host blob leaked into the operand")
}

func TestPackageLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	il.SetLogger(zap.New(core))
	defer il.SetLogger(zap.NewNop())

	_, err := il.Decode([]byte{0x24}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("unknown opcode").Len())
}

func TestNilLoggerFallsBackToNop(t *testing.T) {
	il.SetLogger(nil)
	defer il.SetLogger(zap.NewNop())
	require.NotNil(t, il.Logger())

	body, err := il.Decode([]byte{0x24, 0x72, 0x01, 0x00, 0x00, 0x70}, nil, il.WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, body.Len())
}
