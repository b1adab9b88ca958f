package uplc

import "math/big"

// TypeKind identifies a constant type.
type TypeKind int

const (
	TyInteger TypeKind = iota
	TyByteString
	TyString
	TyUnit
	TyBool
	TyList
	TyPair
	TyData
)

func (k TypeKind) String() string {
	switch k {
	case TyInteger:
		return "integer"
	case TyByteString:
		return "bytestring"
	case TyString:
		return "string"
	case TyUnit:
		return "unit"
	case TyBool:
		return "bool"
	case TyList:
		return "list"
	case TyPair:
		return "pair"
	case TyData:
		return "data"
	}
	return "unknown"
}

// Type describes the type of a Constant. Args holds the element
// type for lists and the two component types for pairs; it is
// empty for every other kind.
type Type struct {
	Kind TypeKind
	Args []Type
}

// Convenience constructors for composite types.
func ListType(elem Type) Type     { return Type{Kind: TyList, Args: []Type{elem}} }
func PairType(fst, snd Type) Type { return Type{Kind: TyPair, Args: []Type{fst, snd}} }

// Constant is a constant value embedded in a term.
type Constant interface {
	isConstant()

	// Type reports the constant's type.
	Type() Type
}

// Integer is an arbitrary-precision integer constant.
type Integer struct {
	V *big.Int
}

// ByteString is a byte string constant.
type ByteString struct {
	V []byte
}

// String is a text constant.
type String struct {
	V string
}

// Unit is the unit constant.
type Unit struct{}

// Bool is a boolean constant.
type Bool struct {
	V bool
}

// List is a homogeneous list constant. Elem is the element type,
// recorded even when Items is empty.
type List struct {
	Elem  Type
	Items []Constant
}

// Pair is a pair constant.
type Pair struct {
	FirstType  Type
	SecondType Type
	First      Constant
	Second     Constant
}

// DataConstant is a universal data value lifted into constant
// position, the form every applied validator parameter takes.
type DataConstant struct {
	V Data
}

func (*Integer) isConstant()      {}
func (*ByteString) isConstant()   {}
func (*String) isConstant()       {}
func (*Unit) isConstant()         {}
func (*Bool) isConstant()         {}
func (*List) isConstant()         {}
func (*Pair) isConstant()         {}
func (*DataConstant) isConstant() {}

func (*Integer) Type() Type      { return Type{Kind: TyInteger} }
func (*ByteString) Type() Type   { return Type{Kind: TyByteString} }
func (*String) Type() Type       { return Type{Kind: TyString} }
func (*Unit) Type() Type         { return Type{Kind: TyUnit} }
func (*Bool) Type() Type         { return Type{Kind: TyBool} }
func (c *List) Type() Type       { return ListType(c.Elem) }
func (c *Pair) Type() Type       { return PairType(c.FirstType, c.SecondType) }
func (*DataConstant) Type() Type { return Type{Kind: TyData} }
