package types

// Universe maps every type keyword to its predeclared type.
var Universe map[string]*Basic

func init() {
	Universe = make(map[string]*Basic)
	for _, kind := range []BasicKind{I8, I32, I64, U8, U32, U64, String, Void} {
		typ := Typ[kind]
		Universe[typ.name] = typ
	}
}

// LookupType returns the type named by keyword, or nil if name is not a
// type keyword.
func LookupType(name string) *Basic {
	return Universe[name]
}

// IsTypeName reports whether name is a type keyword usable in a
// declaration. void is only valid as a return type.
func IsTypeName(name string) bool {
	typ := Universe[name]
	return typ != nil && typ.kind != Void
}
