package il

import (
	"fmt"

	"github.com/rhinobytesoftware/ilreader/errors"
	"github.com/rhinobytesoftware/ilreader/methodbody"
)

// Body is the decoded instruction sequence of one method. It is not
// modified after Decode returns and is safe for concurrent reads.
type Body struct {
	offsets      map[int]int
	Instructions []Instruction
	Handlers     []ExceptionHandler
	CodeSize     int
}

// Len returns the number of instructions.
func (b *Body) Len() int {
	return len(b.Instructions)
}

// At returns the index of the instruction starting at offset.
func (b *Body) At(offset int) (int, bool) {
	i, ok := b.offsets[offset]
	return i, ok
}

// Target returns the instruction a branch operand links to.
func (b *Body) Target(op BranchOperand) (*Instruction, bool) {
	if op.Target < 0 || op.Target >= len(b.Instructions) {
		return nil, false
	}
	return &b.Instructions[op.Target], true
}

// ExceptionHandler is an exception clause with its offsets linked to
// instruction indices. End indices are exclusive and equal Len() when the
// region runs to the end of the code.
type ExceptionHandler struct {
	CatchType    *TypeDescriptor // catch clauses only, nil if unresolved
	Clause       methodbody.Clause
	TryStart     int
	TryEnd       int
	HandlerStart int
	HandlerEnd   int
	FilterStart  int // filter clauses only, otherwise Unresolved
}

// link builds the offset index and resolves every branch, switch and
// exception clause offset to an instruction index.
func (b *Body) link(r Resolver, clauses []methodbody.Clause) error {
	b.offsets = make(map[int]int, len(b.Instructions))
	for i := range b.Instructions {
		b.offsets[b.Instructions[i].Offset] = i
	}

	for i := range b.Instructions {
		ins := &b.Instructions[i]
		switch op := ins.Operand.(type) {
		case BranchOperand:
			idx, ok := b.offsets[op.TargetOffset]
			if !ok {
				return errors.DanglingTarget(ins.Index, ins.Opcode.Name, op.TargetOffset)
			}
			op.Target = idx
			ins.Operand = op

		case SwitchOperand:
			targets := make([]int, len(op.TargetOffsets))
			for j, off := range op.TargetOffsets {
				idx, ok := b.offsets[off]
				if !ok {
					err := errors.DanglingTarget(ins.Index, ins.Opcode.Name, off)
					err.Detail = fmt.Sprintf("case %d: %s", j, err.Detail)
					return err
				}
				targets[j] = idx
			}
			op.Targets = targets
			ins.Operand = op
		}
	}

	if len(clauses) == 0 {
		return nil
	}
	b.Handlers = make([]ExceptionHandler, 0, len(clauses))
	for i, c := range clauses {
		h, err := b.handler(i, c)
		if err != nil {
			return err
		}
		if c.Kind == methodbody.ClauseCatch {
			h.CatchType = r.ResolveType(Token(c.ClassToken))
		}
		b.Handlers = append(b.Handlers, h)
	}
	return nil
}

func (b *Body) handler(n int, c methodbody.Clause) (ExceptionHandler, error) {
	h := ExceptionHandler{Clause: c, FilterStart: Unresolved}
	var err error
	if h.TryStart, err = b.clauseStart(n, "try start", c.TryOffset); err != nil {
		return h, err
	}
	if h.TryEnd, err = b.clauseEnd(n, "try end", c.TryEnd()); err != nil {
		return h, err
	}
	if h.TryEnd < h.TryStart {
		return h, b.invertedClause(n, "try", c.TryOffset, c.TryEnd())
	}
	if h.HandlerStart, err = b.clauseStart(n, "handler start", c.HandlerOffset); err != nil {
		return h, err
	}
	if h.HandlerEnd, err = b.clauseEnd(n, "handler end", c.HandlerEnd()); err != nil {
		return h, err
	}
	if h.HandlerEnd < h.HandlerStart {
		return h, b.invertedClause(n, "handler", c.HandlerOffset, c.HandlerEnd())
	}
	if c.Kind == methodbody.ClauseFilter {
		if h.FilterStart, err = b.clauseStart(n, "filter start", c.FilterOffset); err != nil {
			return h, err
		}
	}
	return h, nil
}

func (b *Body) clauseStart(n int, what string, off uint32) (int, error) {
	return b.clauseOffset(n, what, uint64(off))
}

// clauseEnd accepts the end of code as well as an instruction boundary.
// Anything past the end of code is dangling.
func (b *Body) clauseEnd(n int, what string, off uint64) (int, error) {
	if off == uint64(b.CodeSize) {
		return len(b.Instructions), nil
	}
	return b.clauseOffset(n, what, off)
}

func (b *Body) clauseOffset(n int, what string, off uint64) (int, error) {
	if off < uint64(b.CodeSize) {
		if idx, ok := b.offsets[int(off)]; ok {
			return idx, nil
		}
	}
	return 0, b.danglingClause(n, what, off)
}

func (b *Body) invertedClause(n int, what string, start uint32, end uint64) error {
	return errors.New(errors.PhaseResolve, errors.KindDanglingTarget).
		Value(int(end)).
		Detail("exception clause %d %s region IL_%04x..IL_%04x ends before it starts", n, what, start, end).
		Build()
}

func (b *Body) danglingClause(n int, what string, off uint64) error {
	return errors.New(errors.PhaseResolve, errors.KindDanglingTarget).
		Value(int(off)).
		Detail("exception clause %d %s IL_%04x is not an instruction boundary", n, what, off).
		Build()
}
