package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortRead is returned when a read needs more bytes than remain.
var ErrShortRead = errors.New("short read")

// ShortReadError reports a read that would pass the end of the buffer.
type ShortReadError struct {
	Position int
	Need     int
	Have     int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("at position %d: need %d bytes, %d remaining", e.Position, e.Need, e.Have)
}

func (e *ShortReadError) Unwrap() error {
	return ErrShortRead
}

// Reader walks a byte slice with position tracking and little-endian
// fixed-width reads. It never copies the underlying buffer except in ReadBytes.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a new Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the total buffer length.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Seek moves to an absolute position within the buffer.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return fmt.Errorf("seek to %d outside buffer of %d bytes", pos, len(r.buf))
	}
	r.pos = pos
	return nil
}

// Align advances the position to the next multiple of n.
func (r *Reader) Align(n int) error {
	if rem := r.pos % n; rem != 0 {
		return r.Skip(n - rem)
	}
	return nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

func (r *Reader) need(n int) error {
	if have := len(r.buf) - r.pos; n > have {
		return &ShortReadError{Position: r.pos, Need: n, Have: have}
	}
	return nil
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadI8 reads a signed byte.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// ReadBytes reads exactly n bytes into a fresh slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:])
	r.pos += n
	return out, nil
}

// ReadU16LE reads a little-endian uint16.
func (r *Reader) ReadU16LE() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadU24LE reads a little-endian 3-byte unsigned value.
func (r *Reader) ReadU24LE() (uint32, error) {
	if err := r.need(3); err != nil {
		return 0, err
	}
	b := r.buf[r.pos:]
	r.pos += 3
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// ReadU32LE reads a little-endian uint32.
func (r *Reader) ReadU32LE() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadI32LE reads a little-endian int32.
func (r *Reader) ReadI32LE() (int32, error) {
	v, err := r.ReadU32LE()
	return int32(v), err
}

// ReadI64LE reads a little-endian int64.
func (r *Reader) ReadI64LE() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return int64(v), nil
}

// ReadF32LE reads an IEEE 754 single.
func (r *Reader) ReadF32LE() (float32, error) {
	v, err := r.ReadU32LE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64LE reads an IEEE 754 double.
func (r *Reader) ReadF64LE() (float64, error) {
	v, err := r.ReadI64LE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}
