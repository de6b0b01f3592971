package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	// Concrete integer types
	I8
	I32
	I64
	U8
	U32
	U64

	String
	Void

	// UntypedInt is the type of integer literals and of arithmetic over
	// untyped operands. It is compatible with every concrete integer type.
	UntypedInt
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	IsInteger BasicInfo = 1 << iota
	IsUnsigned
	IsString
	IsVoid
	IsUntyped
)

// Basic represents one of the closed set of cbr value types.
type Basic struct {
	kind BasicKind
	info BasicInfo
	name string
	size int64 // bytes; 0 for non-integers
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

func (b *Basic) String() string {
	if b == nil {
		return "invalid type"
	}
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid:    nil,
	I8:         {kind: I8, info: IsInteger, name: "i8", size: 1},
	I32:        {kind: I32, info: IsInteger, name: "i32", size: 4},
	I64:        {kind: I64, info: IsInteger, name: "i64", size: 8},
	U8:         {kind: U8, info: IsInteger | IsUnsigned, name: "u8", size: 1},
	U32:        {kind: U32, info: IsInteger | IsUnsigned, name: "u32", size: 4},
	U64:        {kind: U64, info: IsInteger | IsUnsigned, name: "u64", size: 8},
	String:     {kind: String, info: IsString, name: "string"},
	Void:       {kind: Void, info: IsVoid, name: "void"},
	UntypedInt: {kind: UntypedInt, info: IsInteger | IsUntyped, name: "untyped int"},
}
