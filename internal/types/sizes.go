package types

import "math/big"

// Sizeof returns the storage size of an integer type in bytes, or 0 for
// strings, void and untyped integers.
func Sizeof(b *Basic) int64 {
	if b == nil {
		return 0
	}
	return b.size
}

// Bits returns the width of an integer type in bits.
func Bits(b *Basic) uint {
	return uint(Sizeof(b) * 8)
}

type bounds struct {
	min, max *big.Int
}

var ranges = map[BasicKind]bounds{}

func init() {
	for _, kind := range []BasicKind{I8, I32, I64, U8, U32, U64} {
		typ := Typ[kind]
		one := big.NewInt(1)
		if typ.IsUnsigned() {
			max := new(big.Int).Lsh(one, Bits(typ))
			ranges[kind] = bounds{min: new(big.Int), max: max.Sub(max, one)}
			continue
		}
		max := new(big.Int).Lsh(one, Bits(typ)-1)
		min := new(big.Int).Neg(max)
		ranges[kind] = bounds{min: min, max: max.Sub(max, one)}
	}
}

// Range returns the inclusive bounds of a concrete integer type.
// ok is false for every other type.
func Range(b *Basic) (min, max *big.Int, ok bool) {
	if b == nil {
		return nil, nil, false
	}
	r, ok := ranges[b.kind]
	if !ok {
		return nil, nil, false
	}
	return new(big.Int).Set(r.min), new(big.Int).Set(r.max), true
}

// Fit is the outcome of a representability check.
type Fit int

const (
	Fits Fit = iota
	Overflow
	Underflow
)

func (f Fit) String() string {
	switch f {
	case Overflow:
		return "overflow"
	case Underflow:
		return "underflow"
	}
	return "fits"
}

// Representable reports whether v fits in the integer type b. Untyped
// integers accept every value.
func Representable(b *Basic, v *big.Int) Fit {
	r, ok := ranges[b.kind]
	if !ok {
		return Fits
	}
	if v.Cmp(r.max) > 0 {
		return Overflow
	}
	if v.Cmp(r.min) < 0 {
		return Underflow
	}
	return Fits
}
