package types

// IsInteger reports whether b is a concrete or untyped integer type.
func (b *Basic) IsInteger() bool {
	return b != nil && b.info&IsInteger != 0
}

// IsUnsigned reports whether b is an unsigned integer type.
func (b *Basic) IsUnsigned() bool {
	return b != nil && b.info&IsUnsigned != 0
}

// IsUntyped reports whether b is the untyped integer type.
func (b *Basic) IsUntyped() bool {
	return b != nil && b.info&IsUntyped != 0
}

func (b *Basic) IsString() bool { return b != nil && b.info&IsString != 0 }
func (b *Basic) IsVoid() bool   { return b != nil && b.info&IsVoid != 0 }

// Identical reports whether x and y are the same type.
func Identical(x, y *Basic) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.kind == y.kind
}

// AssignableTo reports whether a value of type src may be stored in a
// variable of type dst, before any range check.
func AssignableTo(src, dst *Basic) bool {
	if src == nil || dst == nil {
		return false
	}
	if Identical(src, dst) {
		return true
	}
	return src.IsUntyped() && dst.IsInteger()
}

// Unify returns the result type of a binary arithmetic operation on x and
// y. Operator results are untyped whatever the operand widths; the width is
// fixed when the result is assigned. It returns nil when either operand is
// not an integer.
func Unify(x, y *Basic) *Basic {
	if !x.IsInteger() || !y.IsInteger() {
		return nil
	}
	return Typ[UntypedInt]
}
