package value

import (
	"math"
	"math/big"
)

// Equal reports whether a and b compare equal with literal-language
// semantics: numbers compare across kinds, tuples never equal lists, sets
// ignore order and dicts compare key to value correspondence.
func Equal(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return numericEqual(a, b)
	}
	switch a := a.(type) {
	case Str:
		b, ok := b.(Str)
		return ok && a == b
	case Bytes:
		b, ok := b.(Bytes)
		return ok && a == b
	case None:
		_, ok := b.(None)
		return ok
	case Ellipsis:
		_, ok := b.(Ellipsis)
		return ok
	case Tuple:
		b, ok := b.(Tuple)
		return ok && seqEqual(a, b)
	case List:
		b, ok := b.(List)
		return ok && seqEqual(a, b)
	case *Set:
		b, ok := b.(*Set)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, item := range a.items {
			if found, err := b.Contains(item); err != nil || !found {
				return false
			}
		}
		return true
	case *Dict:
		b, ok := b.(*Dict)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, e := range a.entries {
			other, found, err := b.Get(e.Key)
			if err != nil || !found || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func seqEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case Bool, Int, Float, Complex:
		return true
	}
	return false
}

func numericEqual(a, b Value) bool {
	ac, aIsComplex := a.(Complex)
	bc, bIsComplex := b.(Complex)
	switch {
	case aIsComplex && bIsComplex:
		return ac == bc
	case aIsComplex:
		return imag(ac) == 0 && numericEqual(Float(real(ac)), b)
	case bIsComplex:
		return imag(bc) == 0 && numericEqual(a, Float(real(bc)))
	}

	af, aIsFloat := a.(Float)
	bf, bIsFloat := b.(Float)
	switch {
	case aIsFloat && bIsFloat:
		return af == bf
	case aIsFloat:
		return floatEqualsInt(float64(af), asBigInt(b))
	case bIsFloat:
		return floatEqualsInt(float64(bf), asBigInt(a))
	}
	return asBigInt(a).Cmp(asBigInt(b)) == 0
}

func asBigInt(v Value) *big.Int {
	switch v := v.(type) {
	case Bool:
		if v {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case Int:
		return v.big()
	}
	return new(big.Int)
}

func floatEqualsInt(f float64, i *big.Int) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return new(big.Float).SetFloat64(f).Cmp(new(big.Float).SetInt(i)) == 0
}
