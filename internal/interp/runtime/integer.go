package runtime

import "strconv"

type intKind uint8

const (
	kindI32 intKind = iota
	kindI64
	kindBig
)

// Integer is the three-variant sum {int32, int64, BigInt}. Every
// arithmetic operation computes the exact result and narrows it to the
// smallest variant that holds it, for all operations including
// multiplication (a deliberate completion of the original's narrowing
// rule — see DESIGN.md for the one place the original skips it).
type Integer struct {
	kind intKind
	i32  int32
	i64  int64
	big  BigInt
}

func NewIntegerI32(v int32) Integer { return Integer{kind: kindI32, i32: v} }
func NewIntegerI64(v int64) Integer { return Integer{kind: kindI64, i64: v} }
func NewIntegerBig(v BigInt) Integer { return narrowBig(v) }

// NewIntegerFromString parses the narrowest form that fits: int32, then
// int64, then BigInt — the same cascade as the original's string
// constructor.
func NewIntegerFromString(s string) Integer {
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return NewIntegerI32(int32(v))
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewIntegerI64(v)
	}
	b, ok := NewBigIntFromString(s)
	if !ok {
		return NewIntegerI32(0)
	}
	return narrowBig(b)
}

func narrowBig(b BigInt) Integer {
	if b.FitsInt32() {
		return NewIntegerI32(b.Int32())
	}
	if b.FitsInt64() {
		return NewIntegerI64(b.Int64())
	}
	return Integer{kind: kindBig, big: b}
}

// Kind is the dynamic integer-width tag: "int", "int64", or "BigInt".
func (i Integer) Kind() string {
	switch i.kind {
	case kindI32:
		return "int"
	case kindI64:
		return "int64"
	default:
		return "BigInt"
	}
}

func (i Integer) String() string {
	switch i.kind {
	case kindI32:
		return strconv.FormatInt(int64(i.i32), 10)
	case kindI64:
		return strconv.FormatInt(i.i64, 10)
	default:
		return i.big.String()
	}
}

// ToBigInt widens i to its BigInt representation, used internally so
// every arithmetic op can compute exactly before narrowing.
func (i Integer) ToBigInt() BigInt {
	switch i.kind {
	case kindI32:
		return NewBigIntFromInt64(int64(i.i32))
	case kindI64:
		return NewBigIntFromInt64(i.i64)
	default:
		return i.big
	}
}

func (i Integer) IsZero() bool {
	switch i.kind {
	case kindI32:
		return i.i32 == 0
	case kindI64:
		return i.i64 == 0
	default:
		return i.big.IsZero()
	}
}

func (i Integer) Bool() bool { return !i.IsZero() }

func (i Integer) Neg() Integer { return narrowBig(i.ToBigInt().Neg()) }

func (i Integer) Abs() Integer { return narrowBig(i.ToBigInt().Abs()) }

// Cmp compares i and o numerically regardless of which variant each
// holds (the original's raw variant comparison does not do this
// correctly across differing alternatives; this is a deliberate
// correction).
func (i Integer) Cmp(o Integer) int { return i.ToBigInt().Cmp(o.ToBigInt()) }

func (i Integer) Equal(o Integer) bool { return i.Cmp(o) == 0 }

func (i Integer) Add(o Integer) Integer { return narrowBig(i.ToBigInt().Add(o.ToBigInt())) }
func (i Integer) Sub(o Integer) Integer { return narrowBig(i.ToBigInt().Sub(o.ToBigInt())) }
func (i Integer) Mul(o Integer) Integer { return narrowBig(i.ToBigInt().Mul(o.ToBigInt())) }

// Div returns the truncating quotient; ok=false on division by zero.
func (i Integer) Div(o Integer) (Integer, bool) {
	if o.IsZero() {
		return Integer{}, false
	}
	q, _ := i.ToBigInt().Div(o.ToBigInt())
	return narrowBig(q), true
}

// Mod returns the remainder; ok=false on modulo by zero.
func (i Integer) Mod(o Integer) (Integer, bool) {
	if o.IsZero() {
		return Integer{}, false
	}
	r, _ := i.ToBigInt().Mod(o.ToBigInt())
	return narrowBig(r), true
}

func (i Integer) GCD(o Integer) Integer { return narrowBig(i.ToBigInt().GCD(o.ToBigInt())) }
func (i Integer) LCM(o Integer) Integer { return narrowBig(i.ToBigInt().LCM(o.ToBigInt())) }
func (i Integer) Factorial() Integer    { return narrowBig(i.ToBigInt().Factorial()) }
func (i Integer) Pow(exp Integer) Integer {
	return narrowBig(i.ToBigInt().Pow(exp.ToBigInt()))
}
func (i Integer) IntSqrt() Integer { return narrowBig(i.ToBigInt().IntSqrt()) }

// Float64 converts i to the nearest double.
func (i Integer) Float64() float64 {
	switch i.kind {
	case kindI32:
		return float64(i.i32)
	case kindI64:
		return float64(i.i64)
	default:
		return i.big.Float64()
	}
}

// ToBigDecimal widens i to an exact BigDecimal.
func (i Integer) ToBigDecimal() BigDecimal {
	return NewBigDecimalFromBigInt(i.ToBigInt())
}

// IntegerFromFloat64 mirrors the original's double-to-Integer
// constructor: values fitting int32 or int64 take those variants
// directly; larger magnitudes are truncated through BigDecimal.
func IntegerFromFloat64(v float64) Integer {
	if v >= -2147483648 && v <= 2147483647 {
		return NewIntegerI32(int32(v))
	}
	if v >= -9223372036854775808 && v <= 9223372036854775807 {
		return NewIntegerI64(int64(v))
	}
	bd := NewBigDecimalFromFloat64(v)
	return narrowBig(bd.Truncate())
}

// IntegerFromBigDecimal truncates v's fractional part.
func IntegerFromBigDecimal(v BigDecimal) Integer {
	return narrowBig(v.Truncate())
}
