package il

import "fmt"

// Token is a metadata token: table number in the high byte, 1-based row
// number in the low 24 bits.
type Token uint32

// TableID identifies the metadata table a token refers to.
type TableID uint8

const (
	TableModule        TableID = 0x00
	TableTypeRef       TableID = 0x01
	TableTypeDef       TableID = 0x02
	TableField         TableID = 0x04
	TableMethodDef     TableID = 0x06
	TableMemberRef     TableID = 0x0A
	TableStandAloneSig TableID = 0x11
	TableTypeSpec      TableID = 0x1B
	TableMethodSpec    TableID = 0x2B
	TableUserString    TableID = 0x70
)

// NewToken builds a token from a table and row number.
func NewToken(table TableID, rid uint32) Token {
	return Token(uint32(table)<<24 | rid&0x00FFFFFF)
}

// Table returns the metadata table of t.
func (t Token) Table() TableID {
	return TableID(t >> 24)
}

// RID returns the row number of t.
func (t Token) RID() uint32 {
	return uint32(t) & 0x00FFFFFF
}

func (t Token) String() string {
	return fmt.Sprintf("0x%08x", uint32(t))
}

// IsType reports whether t refers to a type table.
func (t Token) IsType() bool {
	switch t.Table() {
	case TableTypeRef, TableTypeDef, TableTypeSpec:
		return true
	}
	return false
}

// IsMethod reports whether t refers to a method table. MemberRef tokens may
// name either a method or a field and report true here.
func (t Token) IsMethod() bool {
	switch t.Table() {
	case TableMethodDef, TableMethodSpec, TableMemberRef:
		return true
	}
	return false
}

// IsField reports whether t refers to a field table, including MemberRef.
func (t Token) IsField() bool {
	return t.Table() == TableField || t.Table() == TableMemberRef
}
