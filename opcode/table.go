package opcode

// Single-byte opcodes, ECMA-335 Partition III.
var singleByteDefs = []def{
	{"nop", "do nothing", 0x00, InlineNone, FlowNext},
	{"break", "inform a debugger that a breakpoint has been reached", 0x01, InlineNone, FlowBreak},
	{"ldarg.0", "load argument 0 onto the stack", 0x02, InlineNone, FlowNext},
	{"ldarg.1", "load argument 1 onto the stack", 0x03, InlineNone, FlowNext},
	{"ldarg.2", "load argument 2 onto the stack", 0x04, InlineNone, FlowNext},
	{"ldarg.3", "load argument 3 onto the stack", 0x05, InlineNone, FlowNext},
	{"ldloc.0", "load local variable 0 onto the stack", 0x06, InlineNone, FlowNext},
	{"ldloc.1", "load local variable 1 onto the stack", 0x07, InlineNone, FlowNext},
	{"ldloc.2", "load local variable 2 onto the stack", 0x08, InlineNone, FlowNext},
	{"ldloc.3", "load local variable 3 onto the stack", 0x09, InlineNone, FlowNext},
	{"stloc.0", "pop a value into local variable 0", 0x0A, InlineNone, FlowNext},
	{"stloc.1", "pop a value into local variable 1", 0x0B, InlineNone, FlowNext},
	{"stloc.2", "pop a value into local variable 2", 0x0C, InlineNone, FlowNext},
	{"stloc.3", "pop a value into local variable 3", 0x0D, InlineNone, FlowNext},
	{"ldarg.s", "load argument, short form", 0x0E, ShortInlineVar, FlowNext},
	{"ldarga.s", "load argument address, short form", 0x0F, ShortInlineVar, FlowNext},
	{"starg.s", "store a value in an argument slot, short form", 0x10, ShortInlineVar, FlowNext},
	{"ldloc.s", "load local variable, short form", 0x11, ShortInlineVar, FlowNext},
	{"ldloca.s", "load local variable address, short form", 0x12, ShortInlineVar, FlowNext},
	{"stloc.s", "pop a value into a local variable, short form", 0x13, ShortInlineVar, FlowNext},
	{"ldnull", "push a null reference", 0x14, InlineNone, FlowNext},
	{"ldc.i4.m1", "push -1 as int32", 0x15, InlineNone, FlowNext},
	{"ldc.i4.0", "push 0 as int32", 0x16, InlineNone, FlowNext},
	{"ldc.i4.1", "push 1 as int32", 0x17, InlineNone, FlowNext},
	{"ldc.i4.2", "push 2 as int32", 0x18, InlineNone, FlowNext},
	{"ldc.i4.3", "push 3 as int32", 0x19, InlineNone, FlowNext},
	{"ldc.i4.4", "push 4 as int32", 0x1A, InlineNone, FlowNext},
	{"ldc.i4.5", "push 5 as int32", 0x1B, InlineNone, FlowNext},
	{"ldc.i4.6", "push 6 as int32", 0x1C, InlineNone, FlowNext},
	{"ldc.i4.7", "push 7 as int32", 0x1D, InlineNone, FlowNext},
	{"ldc.i4.8", "push 8 as int32", 0x1E, InlineNone, FlowNext},
	{"ldc.i4.s", "push an int8 literal as int32", 0x1F, ShortInlineI, FlowNext},
	{"ldc.i4", "push an int32 literal", 0x20, InlineI, FlowNext},
	{"ldc.i8", "push an int64 literal", 0x21, InlineI8, FlowNext},
	{"ldc.r4", "push a float32 literal", 0x22, ShortInlineR, FlowNext},
	{"ldc.r8", "push a float64 literal", 0x23, InlineR, FlowNext},
	{"dup", "duplicate the top stack value", 0x25, InlineNone, FlowNext},
	{"pop", "discard the top stack value", 0x26, InlineNone, FlowNext},
	{"jmp", "exit the current method and jump to another", 0x27, InlineMethod, FlowCall},
	{"call", "call a method", 0x28, InlineMethod, FlowCall},
	{"calli", "call through a function pointer", 0x29, InlineSig, FlowCall},
	{"ret", "return from the current method", 0x2A, InlineNone, FlowReturn},
	{"br.s", "unconditional branch, short form", 0x2B, ShortInlineBrTarget, FlowBranch},
	{"brfalse.s", "branch if false, null or zero, short form", 0x2C, ShortInlineBrTarget, FlowCondBranch},
	{"brtrue.s", "branch if true, non-null or non-zero, short form", 0x2D, ShortInlineBrTarget, FlowCondBranch},
	{"beq.s", "branch if equal, short form", 0x2E, ShortInlineBrTarget, FlowCondBranch},
	{"bge.s", "branch if greater or equal, short form", 0x2F, ShortInlineBrTarget, FlowCondBranch},
	{"bgt.s", "branch if greater, short form", 0x30, ShortInlineBrTarget, FlowCondBranch},
	{"ble.s", "branch if less or equal, short form", 0x31, ShortInlineBrTarget, FlowCondBranch},
	{"blt.s", "branch if less, short form", 0x32, ShortInlineBrTarget, FlowCondBranch},
	{"bne.un.s", "branch if unequal or unordered, short form", 0x33, ShortInlineBrTarget, FlowCondBranch},
	{"bge.un.s", "branch if greater or equal, unsigned or unordered, short form", 0x34, ShortInlineBrTarget, FlowCondBranch},
	{"bgt.un.s", "branch if greater, unsigned or unordered, short form", 0x35, ShortInlineBrTarget, FlowCondBranch},
	{"ble.un.s", "branch if less or equal, unsigned or unordered, short form", 0x36, ShortInlineBrTarget, FlowCondBranch},
	{"blt.un.s", "branch if less, unsigned or unordered, short form", 0x37, ShortInlineBrTarget, FlowCondBranch},
	{"br", "unconditional branch", 0x38, InlineBrTarget, FlowBranch},
	{"brfalse", "branch if false, null or zero", 0x39, InlineBrTarget, FlowCondBranch},
	{"brtrue", "branch if true, non-null or non-zero", 0x3A, InlineBrTarget, FlowCondBranch},
	{"beq", "branch if equal", 0x3B, InlineBrTarget, FlowCondBranch},
	{"bge", "branch if greater or equal", 0x3C, InlineBrTarget, FlowCondBranch},
	{"bgt", "branch if greater", 0x3D, InlineBrTarget, FlowCondBranch},
	{"ble", "branch if less or equal", 0x3E, InlineBrTarget, FlowCondBranch},
	{"blt", "branch if less", 0x3F, InlineBrTarget, FlowCondBranch},
	{"bne.un", "branch if unequal or unordered", 0x40, InlineBrTarget, FlowCondBranch},
	{"bge.un", "branch if greater or equal, unsigned or unordered", 0x41, InlineBrTarget, FlowCondBranch},
	{"bgt.un", "branch if greater, unsigned or unordered", 0x42, InlineBrTarget, FlowCondBranch},
	{"ble.un", "branch if less or equal, unsigned or unordered", 0x43, InlineBrTarget, FlowCondBranch},
	{"blt.un", "branch if less, unsigned or unordered", 0x44, InlineBrTarget, FlowCondBranch},
	{"switch", "jump table branch", 0x45, InlineSwitch, FlowCondBranch},
	{"ldind.i1", "load int8 indirect", 0x46, InlineNone, FlowNext},
	{"ldind.u1", "load uint8 indirect", 0x47, InlineNone, FlowNext},
	{"ldind.i2", "load int16 indirect", 0x48, InlineNone, FlowNext},
	{"ldind.u2", "load uint16 indirect", 0x49, InlineNone, FlowNext},
	{"ldind.i4", "load int32 indirect", 0x4A, InlineNone, FlowNext},
	{"ldind.u4", "load uint32 indirect", 0x4B, InlineNone, FlowNext},
	{"ldind.i8", "load int64 indirect", 0x4C, InlineNone, FlowNext},
	{"ldind.i", "load native int indirect", 0x4D, InlineNone, FlowNext},
	{"ldind.r4", "load float32 indirect", 0x4E, InlineNone, FlowNext},
	{"ldind.r8", "load float64 indirect", 0x4F, InlineNone, FlowNext},
	{"ldind.ref", "load object reference indirect", 0x50, InlineNone, FlowNext},
	{"stind.ref", "store object reference indirect", 0x51, InlineNone, FlowNext},
	{"stind.i1", "store int8 indirect", 0x52, InlineNone, FlowNext},
	{"stind.i2", "store int16 indirect", 0x53, InlineNone, FlowNext},
	{"stind.i4", "store int32 indirect", 0x54, InlineNone, FlowNext},
	{"stind.i8", "store int64 indirect", 0x55, InlineNone, FlowNext},
	{"stind.r4", "store float32 indirect", 0x56, InlineNone, FlowNext},
	{"stind.r8", "store float64 indirect", 0x57, InlineNone, FlowNext},
	{"add", "add two values", 0x58, InlineNone, FlowNext},
	{"sub", "subtract two values", 0x59, InlineNone, FlowNext},
	{"mul", "multiply two values", 0x5A, InlineNone, FlowNext},
	{"div", "divide two values", 0x5B, InlineNone, FlowNext},
	{"div.un", "divide two unsigned values", 0x5C, InlineNone, FlowNext},
	{"rem", "remainder of division", 0x5D, InlineNone, FlowNext},
	{"rem.un", "remainder of unsigned division", 0x5E, InlineNone, FlowNext},
	{"and", "bitwise and", 0x5F, InlineNone, FlowNext},
	{"or", "bitwise or", 0x60, InlineNone, FlowNext},
	{"xor", "bitwise exclusive or", 0x61, InlineNone, FlowNext},
	{"shl", "shift left", 0x62, InlineNone, FlowNext},
	{"shr", "arithmetic shift right", 0x63, InlineNone, FlowNext},
	{"shr.un", "logical shift right", 0x64, InlineNone, FlowNext},
	{"neg", "negate", 0x65, InlineNone, FlowNext},
	{"not", "bitwise complement", 0x66, InlineNone, FlowNext},
	{"conv.i1", "convert to int8", 0x67, InlineNone, FlowNext},
	{"conv.i2", "convert to int16", 0x68, InlineNone, FlowNext},
	{"conv.i4", "convert to int32", 0x69, InlineNone, FlowNext},
	{"conv.i8", "convert to int64", 0x6A, InlineNone, FlowNext},
	{"conv.r4", "convert to float32", 0x6B, InlineNone, FlowNext},
	{"conv.r8", "convert to float64", 0x6C, InlineNone, FlowNext},
	{"conv.u4", "convert to uint32", 0x6D, InlineNone, FlowNext},
	{"conv.u8", "convert to uint64", 0x6E, InlineNone, FlowNext},
	{"callvirt", "call a method using virtual dispatch", 0x6F, InlineMethod, FlowCall},
	{"cpobj", "copy a value type", 0x70, InlineType, FlowNext},
	{"ldobj", "load a value type from an address", 0x71, InlineType, FlowNext},
	{"ldstr", "push a string literal", 0x72, InlineString, FlowNext},
	{"newobj", "allocate an object and call its constructor", 0x73, InlineMethod, FlowCall},
	{"castclass", "cast an object to a class", 0x74, InlineType, FlowNext},
	{"isinst", "test whether an object is an instance of a class", 0x75, InlineType, FlowNext},
	{"conv.r.un", "convert unsigned integer to floating point", 0x76, InlineNone, FlowNext},
	{"unbox", "extract the address of a boxed value type", 0x79, InlineType, FlowNext},
	{"throw", "throw an exception", 0x7A, InlineNone, FlowThrow},
	{"ldfld", "load an instance field", 0x7B, InlineField, FlowNext},
	{"ldflda", "load an instance field address", 0x7C, InlineField, FlowNext},
	{"stfld", "store into an instance field", 0x7D, InlineField, FlowNext},
	{"ldsfld", "load a static field", 0x7E, InlineField, FlowNext},
	{"ldsflda", "load a static field address", 0x7F, InlineField, FlowNext},
	{"stsfld", "store into a static field", 0x80, InlineField, FlowNext},
	{"stobj", "store a value type at an address", 0x81, InlineType, FlowNext},
	{"conv.ovf.i1.un", "convert unsigned to int8 with overflow check", 0x82, InlineNone, FlowNext},
	{"conv.ovf.i2.un", "convert unsigned to int16 with overflow check", 0x83, InlineNone, FlowNext},
	{"conv.ovf.i4.un", "convert unsigned to int32 with overflow check", 0x84, InlineNone, FlowNext},
	{"conv.ovf.i8.un", "convert unsigned to int64 with overflow check", 0x85, InlineNone, FlowNext},
	{"conv.ovf.u1.un", "convert unsigned to uint8 with overflow check", 0x86, InlineNone, FlowNext},
	{"conv.ovf.u2.un", "convert unsigned to uint16 with overflow check", 0x87, InlineNone, FlowNext},
	{"conv.ovf.u4.un", "convert unsigned to uint32 with overflow check", 0x88, InlineNone, FlowNext},
	{"conv.ovf.u8.un", "convert unsigned to uint64 with overflow check", 0x89, InlineNone, FlowNext},
	{"conv.ovf.i.un", "convert unsigned to native int with overflow check", 0x8A, InlineNone, FlowNext},
	{"conv.ovf.u.un", "convert unsigned to native uint with overflow check", 0x8B, InlineNone, FlowNext},
	{"box", "box a value type", 0x8C, InlineType, FlowNext},
	{"newarr", "create a zero-based one-dimensional array", 0x8D, InlineType, FlowNext},
	{"ldlen", "load array length", 0x8E, InlineNone, FlowNext},
	{"ldelema", "load array element address", 0x8F, InlineType, FlowNext},
	{"ldelem.i1", "load int8 array element", 0x90, InlineNone, FlowNext},
	{"ldelem.u1", "load uint8 array element", 0x91, InlineNone, FlowNext},
	{"ldelem.i2", "load int16 array element", 0x92, InlineNone, FlowNext},
	{"ldelem.u2", "load uint16 array element", 0x93, InlineNone, FlowNext},
	{"ldelem.i4", "load int32 array element", 0x94, InlineNone, FlowNext},
	{"ldelem.u4", "load uint32 array element", 0x95, InlineNone, FlowNext},
	{"ldelem.i8", "load int64 array element", 0x96, InlineNone, FlowNext},
	{"ldelem.i", "load native int array element", 0x97, InlineNone, FlowNext},
	{"ldelem.r4", "load float32 array element", 0x98, InlineNone, FlowNext},
	{"ldelem.r8", "load float64 array element", 0x99, InlineNone, FlowNext},
	{"ldelem.ref", "load object reference array element", 0x9A, InlineNone, FlowNext},
	{"stelem.i", "store native int array element", 0x9B, InlineNone, FlowNext},
	{"stelem.i1", "store int8 array element", 0x9C, InlineNone, FlowNext},
	{"stelem.i2", "store int16 array element", 0x9D, InlineNone, FlowNext},
	{"stelem.i4", "store int32 array element", 0x9E, InlineNone, FlowNext},
	{"stelem.i8", "store int64 array element", 0x9F, InlineNone, FlowNext},
	{"stelem.r4", "store float32 array element", 0xA0, InlineNone, FlowNext},
	{"stelem.r8", "store float64 array element", 0xA1, InlineNone, FlowNext},
	{"stelem.ref", "store object reference array element", 0xA2, InlineNone, FlowNext},
	{"ldelem", "load array element of a given type", 0xA3, InlineType, FlowNext},
	{"stelem", "store array element of a given type", 0xA4, InlineType, FlowNext},
	{"unbox.any", "extract the value of a boxed type", 0xA5, InlineType, FlowNext},
	{"conv.ovf.i1", "convert to int8 with overflow check", 0xB3, InlineNone, FlowNext},
	{"conv.ovf.u1", "convert to uint8 with overflow check", 0xB4, InlineNone, FlowNext},
	{"conv.ovf.i2", "convert to int16 with overflow check", 0xB5, InlineNone, FlowNext},
	{"conv.ovf.u2", "convert to uint16 with overflow check", 0xB6, InlineNone, FlowNext},
	{"conv.ovf.i4", "convert to int32 with overflow check", 0xB7, InlineNone, FlowNext},
	{"conv.ovf.u4", "convert to uint32 with overflow check", 0xB8, InlineNone, FlowNext},
	{"conv.ovf.i8", "convert to int64 with overflow check", 0xB9, InlineNone, FlowNext},
	{"conv.ovf.u8", "convert to uint64 with overflow check", 0xBA, InlineNone, FlowNext},
	{"refanyval", "load the address out of a typed reference", 0xC2, InlineType, FlowNext},
	{"ckfinite", "throw if the value is not a finite number", 0xC3, InlineNone, FlowNext},
	{"mkrefany", "push a typed reference", 0xC6, InlineType, FlowNext},
	{"ldtoken", "load the runtime handle of a metadata token", 0xD0, InlineTok, FlowNext},
	{"conv.u2", "convert to uint16", 0xD1, InlineNone, FlowNext},
	{"conv.u1", "convert to uint8", 0xD2, InlineNone, FlowNext},
	{"conv.i", "convert to native int", 0xD3, InlineNone, FlowNext},
	{"conv.ovf.i", "convert to native int with overflow check", 0xD4, InlineNone, FlowNext},
	{"conv.ovf.u", "convert to native uint with overflow check", 0xD5, InlineNone, FlowNext},
	{"add.ovf", "add with overflow check", 0xD6, InlineNone, FlowNext},
	{"add.ovf.un", "add unsigned with overflow check", 0xD7, InlineNone, FlowNext},
	{"mul.ovf", "multiply with overflow check", 0xD8, InlineNone, FlowNext},
	{"mul.ovf.un", "multiply unsigned with overflow check", 0xD9, InlineNone, FlowNext},
	{"sub.ovf", "subtract with overflow check", 0xDA, InlineNone, FlowNext},
	{"sub.ovf.un", "subtract unsigned with overflow check", 0xDB, InlineNone, FlowNext},
	{"endfinally", "end a finally or fault block", 0xDC, InlineNone, FlowReturn},
	{"leave", "exit a protected region", 0xDD, InlineBrTarget, FlowBranch},
	{"leave.s", "exit a protected region, short form", 0xDE, ShortInlineBrTarget, FlowBranch},
	{"stind.i", "store native int indirect", 0xDF, InlineNone, FlowNext},
	{"conv.u", "convert to native uint", 0xE0, InlineNone, FlowNext},
}

// Opcodes following the 0xFE prefix.
var twoByteDefs = []def{
	{"arglist", "return a handle to the argument list", 0x00, InlineNone, FlowNext},
	{"ceq", "push 1 if equal, else 0", 0x01, InlineNone, FlowNext},
	{"cgt", "push 1 if greater, else 0", 0x02, InlineNone, FlowNext},
	{"cgt.un", "push 1 if greater, unsigned or unordered, else 0", 0x03, InlineNone, FlowNext},
	{"clt", "push 1 if less, else 0", 0x04, InlineNone, FlowNext},
	{"clt.un", "push 1 if less, unsigned or unordered, else 0", 0x05, InlineNone, FlowNext},
	{"ldftn", "push a pointer to a method", 0x06, InlineMethod, FlowNext},
	{"ldvirtftn", "push a pointer to a virtual method", 0x07, InlineMethod, FlowNext},
	{"ldarg", "load argument", 0x09, InlineVar, FlowNext},
	{"ldarga", "load argument address", 0x0A, InlineVar, FlowNext},
	{"starg", "store a value in an argument slot", 0x0B, InlineVar, FlowNext},
	{"ldloc", "load local variable", 0x0C, InlineVar, FlowNext},
	{"ldloca", "load local variable address", 0x0D, InlineVar, FlowNext},
	{"stloc", "pop a value into a local variable", 0x0E, InlineVar, FlowNext},
	{"localloc", "allocate space on the local memory pool", 0x0F, InlineNone, FlowNext},
	{"endfilter", "end an exception filter", 0x11, InlineNone, FlowReturn},
	{"unaligned.", "following pointer access may be unaligned", 0x12, ShortInlineI, FlowMeta},
	{"volatile.", "following pointer access is volatile", 0x13, InlineNone, FlowMeta},
	{"tail.", "following call is a tail call", 0x14, InlineNone, FlowMeta},
	{"initobj", "initialize a value type", 0x15, InlineType, FlowNext},
	{"constrained.", "following callvirt is constrained to a type", 0x16, InlineType, FlowMeta},
	{"cpblk", "copy a block of memory", 0x17, InlineNone, FlowNext},
	{"initblk", "initialize a block of memory", 0x18, InlineNone, FlowNext},
	{"no.", "skip the listed fault checks", 0x19, ShortInlineI, FlowMeta},
	{"rethrow", "rethrow the current exception", 0x1A, InlineNone, FlowThrow},
	{"sizeof", "push the size of a value type", 0x1C, InlineType, FlowNext},
	{"refanytype", "push the type token out of a typed reference", 0x1D, InlineNone, FlowNext},
	{"readonly.", "following ldelema returns a controlled-mutability pointer", 0x1E, InlineNone, FlowMeta},
}
