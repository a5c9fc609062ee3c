package methodbody

import (
	stderrors "errors"
	"fmt"

	"github.com/rhinobytesoftware/ilreader/errors"
	"github.com/rhinobytesoftware/ilreader/internal/binary"
)

// Header format and flag bits, ECMA-335 II.25.4.
const (
	FormatTiny = 0x2
	FormatFat  = 0x3
	formatMask = 0x3

	FlagMoreSects  = 0x08
	FlagInitLocals = 0x10

	fatHeaderDwords = 3
	tinyMaxStack    = 8
)

// Extra data section flags.
const (
	SectEHTable    = 0x01
	SectOptILTable = 0x02
	SectFatFormat  = 0x40
	SectMoreSects  = 0x80

	smallClauseSize = 12
	fatClauseSize   = 24
)

// ClauseKind identifies the handler type of an exception clause.
type ClauseKind uint32

const (
	ClauseCatch   ClauseKind = 0x0
	ClauseFilter  ClauseKind = 0x1
	ClauseFinally ClauseKind = 0x2
	ClauseFault   ClauseKind = 0x4
)

func (k ClauseKind) String() string {
	switch k {
	case ClauseCatch:
		return "catch"
	case ClauseFilter:
		return "filter"
	case ClauseFinally:
		return "finally"
	case ClauseFault:
		return "fault"
	}
	return fmt.Sprintf("clause(0x%x)", uint32(k))
}

// Clause is one exception handling clause. Offsets are relative to the
// start of the code, not the start of the method body.
type Clause struct {
	Kind          ClauseKind
	TryOffset     uint32
	TryLength     uint32
	HandlerOffset uint32
	HandlerLength uint32
	ClassToken    uint32 // catch clauses only
	FilterOffset  uint32 // filter clauses only
}

// TryEnd returns the offset just past the protected region. The sum is
// widened so a corrupt length cannot wrap around.
func (c Clause) TryEnd() uint64 {
	return uint64(c.TryOffset) + uint64(c.TryLength)
}

// HandlerEnd returns the offset just past the handler.
func (c Clause) HandlerEnd() uint64 {
	return uint64(c.HandlerOffset) + uint64(c.HandlerLength)
}

// Body is a parsed method body: header fields, code bytes and exception clauses.
type Body struct {
	Code             []byte
	Clauses          []Clause
	LocalVarSigToken uint32
	CodeSize         uint32
	Flags            uint16
	MaxStack         uint16
	HeaderSize       int
	Fat              bool
}

// InitLocals reports whether locals are zero-initialized on entry.
func (b *Body) InitLocals() bool {
	return b.Flags&FlagInitLocals != 0
}

// Parse reads a method body starting at the first header byte. Data past
// the last extra data section is ignored.
func Parse(data []byte) (*Body, error) {
	r := binary.NewReader(data)

	first, err := r.ReadByte()
	if err != nil {
		return nil, overrun(err)
	}

	body := &Body{}
	switch first & formatMask {
	case FormatTiny:
		body.CodeSize = uint32(first >> 2)
		body.MaxStack = tinyMaxStack
		body.HeaderSize = 1
		body.Flags = uint16(first & formatMask)

	case FormatFat:
		if err := r.Seek(0); err != nil {
			return nil, err
		}
		flagsAndSize, err := r.ReadU16LE()
		if err != nil {
			return nil, overrun(err)
		}
		body.Fat = true
		body.Flags = flagsAndSize & 0x0FFF
		if dwords := int(flagsAndSize >> 12); dwords != fatHeaderDwords {
			return nil, errors.InvalidHeader(0, fmt.Sprintf("fat header size %d dwords, want %d", dwords, fatHeaderDwords))
		}
		body.HeaderSize = fatHeaderDwords * 4
		if body.MaxStack, err = r.ReadU16LE(); err != nil {
			return nil, overrun(err)
		}
		if body.CodeSize, err = r.ReadU32LE(); err != nil {
			return nil, overrun(err)
		}
		if body.LocalVarSigToken, err = r.ReadU32LE(); err != nil {
			return nil, overrun(err)
		}

	default:
		return nil, errors.InvalidHeader(0, fmt.Sprintf("unknown header format 0x%x", first&formatMask))
	}

	if uint64(body.CodeSize) > uint64(r.Remaining()) {
		return nil, errors.Overrun(errors.PhaseHeader, r.Position(), int(body.CodeSize), r.Remaining())
	}
	if body.Code, err = r.ReadBytes(int(body.CodeSize)); err != nil {
		return nil, overrun(err)
	}

	if body.Fat && body.Flags&FlagMoreSects != 0 {
		if body.Clauses, err = parseSections(r); err != nil {
			return nil, err
		}
	}

	return body, nil
}

// parseSections reads extra data sections. Each starts on a 4-byte boundary
// relative to the start of the method body.
func parseSections(r *binary.Reader) ([]Clause, error) {
	var clauses []Clause
	for {
		if err := r.Align(4); err != nil {
			return nil, overrun(err)
		}
		start := r.Position()
		kind, err := r.ReadByte()
		if err != nil {
			return nil, overrun(err)
		}

		var size int
		if kind&SectFatFormat != 0 {
			n, err := r.ReadU24LE()
			if err != nil {
				return nil, overrun(err)
			}
			size = int(n)
		} else {
			n, err := r.ReadByte()
			if err != nil {
				return nil, overrun(err)
			}
			size = int(n)
			if err := r.Skip(2); err != nil {
				return nil, overrun(err)
			}
		}
		if size < 4 {
			return nil, errors.InvalidHeader(start, fmt.Sprintf("data section size %d smaller than its header", size))
		}

		if kind&SectEHTable == 0 {
			// Skip sections we do not understand (OptILTable is reserved).
			if err := r.Skip(size - 4); err != nil {
				return nil, overrun(err)
			}
		} else {
			parsed, err := parseClauses(r, start, size, kind&SectFatFormat != 0)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, parsed...)
		}

		if kind&SectMoreSects == 0 {
			return clauses, nil
		}
	}
}

func parseClauses(r *binary.Reader, start, size int, fat bool) ([]Clause, error) {
	clauseSize := smallClauseSize
	if fat {
		clauseSize = fatClauseSize
	}
	if (size-4)%clauseSize != 0 {
		return nil, errors.InvalidHeader(start, fmt.Sprintf("EH section size %d is not 4 + n*%d", size, clauseSize))
	}
	n := (size - 4) / clauseSize
	clauses := make([]Clause, 0, n)

	for i := 0; i < n; i++ {
		var c Clause
		var err error
		if fat {
			c, err = readFatClause(r)
		} else {
			c, err = readSmallClause(r)
		}
		if err != nil {
			return nil, overrun(err)
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

func readSmallClause(r *binary.Reader) (Clause, error) {
	var c Clause
	flags, err := r.ReadU16LE()
	if err != nil {
		return c, err
	}
	tryOff, err := r.ReadU16LE()
	if err != nil {
		return c, err
	}
	tryLen, err := r.ReadByte()
	if err != nil {
		return c, err
	}
	hOff, err := r.ReadU16LE()
	if err != nil {
		return c, err
	}
	hLen, err := r.ReadByte()
	if err != nil {
		return c, err
	}
	extra, err := r.ReadU32LE()
	if err != nil {
		return c, err
	}
	c = Clause{
		Kind:          ClauseKind(flags),
		TryOffset:     uint32(tryOff),
		TryLength:     uint32(tryLen),
		HandlerOffset: uint32(hOff),
		HandlerLength: uint32(hLen),
	}
	c.setExtra(extra)
	return c, nil
}

func readFatClause(r *binary.Reader) (Clause, error) {
	var fields [6]uint32
	for i := range fields {
		v, err := r.ReadU32LE()
		if err != nil {
			return Clause{}, err
		}
		fields[i] = v
	}
	c := Clause{
		Kind:          ClauseKind(fields[0]),
		TryOffset:     fields[1],
		TryLength:     fields[2],
		HandlerOffset: fields[3],
		HandlerLength: fields[4],
	}
	c.setExtra(fields[5])
	return c, nil
}

func (c *Clause) setExtra(v uint32) {
	switch c.Kind {
	case ClauseCatch:
		c.ClassToken = v
	case ClauseFilter:
		c.FilterOffset = v
	}
}

func overrun(err error) error {
	var sre *binary.ShortReadError
	if stderrors.As(err, &sre) {
		return errors.Overrun(errors.PhaseHeader, sre.Position, sre.Need, sre.Have)
	}
	return errors.Wrap(errors.PhaseHeader, errors.KindInvalidData, err, "read method body")
}
