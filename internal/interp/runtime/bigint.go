package runtime

import (
	"strconv"
	"strings"
)

// karatsubaThreshold is the digit count above which BigInt.Mul switches
// from schoolbook multiplication to Karatsuba.
const karatsubaThreshold = 32

// BigInt is an arbitrary-precision signed integer stored as little-endian
// base-10 digits (digits[0] is the ones place) plus a sign. Zero is
// canonically non-negative with a single zero digit.
type BigInt struct {
	digits     []uint8
	isNegative bool
}

func zeroBigInt() BigInt {
	return BigInt{digits: []uint8{0}}
}

// NewBigIntFromString parses a decimal string with an optional leading
// sign. Invalid input returns ok=false.
func NewBigIntFromString(s string) (BigInt, bool) {
	if s == "" {
		return BigInt{}, false
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return BigInt{}, false
	}
	digits := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c := s[len(s)-1-i]
		if c < '0' || c > '9' {
			return BigInt{}, false
		}
		digits[i] = c - '0'
	}
	b := BigInt{digits: digits, isNegative: neg}
	b.removeLeadingZeros()
	return b, true
}

// NewBigIntFromInt64 builds a BigInt from a native int64.
func NewBigIntFromInt64(v int64) BigInt {
	neg := v < 0
	uv := uint64(v)
	if neg {
		uv = uint64(-v)
	}
	if uv == 0 {
		return zeroBigInt()
	}
	var digits []uint8
	for uv > 0 {
		digits = append(digits, uint8(uv%10))
		uv /= 10
	}
	return BigInt{digits: digits, isNegative: neg}
}

func (b *BigInt) removeLeadingZeros() {
	for len(b.digits) > 1 && b.digits[len(b.digits)-1] == 0 {
		b.digits = b.digits[:len(b.digits)-1]
	}
	if len(b.digits) == 0 {
		b.digits = []uint8{0}
	}
	if b.IsZero() {
		b.isNegative = false
	}
}

func (b BigInt) IsZero() bool {
	for _, d := range b.digits {
		if d != 0 {
			return false
		}
	}
	return true
}

func (b BigInt) IsPositive() bool { return !b.isNegative }

func (b BigInt) length() int { return len(b.digits) }

func (b BigInt) Neg() BigInt {
	r := b
	r.digits = append([]uint8(nil), b.digits...)
	if !r.IsZero() {
		r.isNegative = !r.isNegative
	}
	return r
}

func (b BigInt) Abs() BigInt {
	r := b
	r.digits = append([]uint8(nil), b.digits...)
	r.isNegative = false
	return r
}

// String renders the canonical decimal form, sign prefix included.
func (b BigInt) String() string {
	var sb strings.Builder
	if b.isNegative {
		sb.WriteByte('-')
	}
	for i := len(b.digits) - 1; i >= 0; i-- {
		sb.WriteByte('0' + b.digits[i])
	}
	return sb.String()
}

// Cmp returns -1, 0, or 1 as b is less than, equal to, or greater than o.
func (b BigInt) Cmp(o BigInt) int {
	if b.isNegative != o.isNegative {
		if b.IsZero() && o.IsZero() {
			return 0
		}
		if b.isNegative {
			return -1
		}
		return 1
	}
	mag := cmpMagnitude(b.digits, o.digits)
	if b.isNegative {
		return -mag
	}
	return mag
}

func cmpMagnitude(a, c []uint8) int {
	if len(a) != len(c) {
		if len(a) < len(c) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != c[i] {
			if a[i] < c[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (b BigInt) Equal(o BigInt) bool { return b.Cmp(o) == 0 }
func (b BigInt) Less(o BigInt) bool  { return b.Cmp(o) < 0 }

// Add returns b+o.
func (b BigInt) Add(o BigInt) BigInt {
	if b.isNegative == o.isNegative {
		r := BigInt{digits: addMagnitude(b.digits, o.digits), isNegative: b.isNegative}
		r.removeLeadingZeros()
		return r
	}
	// Differing signs: delegate to subtraction of magnitudes.
	return b.Sub(o.Neg())
}

func addMagnitude(a, c []uint8) []uint8 {
	n := len(a)
	if len(c) > n {
		n = len(c)
	}
	result := make([]uint8, n+1)
	var carry uint8
	for i := 0; i < n; i++ {
		var da, dc uint8
		if i < len(a) {
			da = a[i]
		}
		if i < len(c) {
			dc = c[i]
		}
		sum := da + dc + carry
		result[i] = sum % 10
		carry = sum / 10
	}
	result[n] = carry
	return result
}

// Sub returns b-o.
func (b BigInt) Sub(o BigInt) BigInt {
	if b.isNegative != o.isNegative {
		r := BigInt{digits: addMagnitude(b.digits, o.digits), isNegative: b.isNegative}
		r.removeLeadingZeros()
		return r
	}
	// Same sign: subtract magnitudes, borrowing; sign of larger magnitude wins.
	switch cmpMagnitude(b.digits, o.digits) {
	case 0:
		return zeroBigInt()
	case 1:
		r := BigInt{digits: subMagnitude(b.digits, o.digits), isNegative: b.isNegative}
		r.removeLeadingZeros()
		return r
	default:
		r := BigInt{digits: subMagnitude(o.digits, b.digits), isNegative: !b.isNegative}
		r.removeLeadingZeros()
		return r
	}
}

// subMagnitude computes a-c assuming |a| >= |c|.
func subMagnitude(a, c []uint8) []uint8 {
	result := make([]uint8, len(a))
	var borrow int8
	for i := range a {
		var dc int8
		if i < len(c) {
			dc = int8(c[i])
		}
		diff := int8(a[i]) - dc - borrow
		if diff < 0 {
			diff += 10
			borrow = 1
		} else {
			borrow = 0
		}
		result[i] = uint8(diff)
	}
	return result
}

func (b BigInt) splitAt(index int) (hi, lo BigInt) {
	if index >= len(b.digits) {
		return zeroBigInt(), BigInt{digits: append([]uint8(nil), b.digits...)}
	}
	lo = BigInt{digits: append([]uint8(nil), b.digits[:index]...)}
	hi = BigInt{digits: append([]uint8(nil), b.digits[index:]...)}
	lo.removeLeadingZeros()
	hi.removeLeadingZeros()
	return hi, lo
}

// shiftLeft multiplies the magnitude by 10^n (little-endian zero-padding).
func (b BigInt) shiftLeft(n int) BigInt {
	if b.IsZero() || n == 0 {
		return b
	}
	digits := make([]uint8, n+len(b.digits))
	copy(digits[n:], b.digits)
	return BigInt{digits: digits, isNegative: b.isNegative}
}

func (b BigInt) naiveMultiply(o BigInt) BigInt {
	result := make([]uint8, len(b.digits)+len(o.digits))
	for i, da := range b.digits {
		if da == 0 {
			continue
		}
		var carry uint16
		for j, dc := range o.digits {
			prod := uint16(da)*uint16(dc) + uint16(result[i+j]) + carry
			result[i+j] = uint8(prod % 10)
			carry = prod / 10
		}
		k := i + len(o.digits)
		for carry > 0 {
			prod := uint16(result[k]) + carry
			result[k] = uint8(prod % 10)
			carry = prod / 10
			k++
		}
	}
	r := BigInt{digits: result}
	r.removeLeadingZeros()
	return r
}

func (b BigInt) karatsubaMultiply(o BigInt) BigInt {
	n := len(b.digits)
	if len(o.digits) > n {
		n = len(o.digits)
	}
	if n <= karatsubaThreshold {
		return b.naiveMultiply(o)
	}
	m := n / 2
	aHi, aLo := b.splitAt(m)
	bHi, bLo := o.splitAt(m)

	z0 := aLo.karatsubaMultiply(bLo)
	z2 := aHi.karatsubaMultiply(bHi)
	z1 := aLo.Add(aHi).karatsubaMultiply(bLo.Add(bHi)).Sub(z2).Sub(z0)

	return z2.shiftLeft(2 * m).Add(z1.shiftLeft(m)).Add(z0)
}

// Mul returns b*o using Karatsuba above karatsubaThreshold digits and
// schoolbook multiplication below it.
func (b BigInt) Mul(o BigInt) BigInt {
	if b.IsZero() || o.IsZero() {
		return zeroBigInt()
	}
	r := b.Abs().karatsubaMultiply(o.Abs())
	r.isNegative = b.isNegative != o.isNegative
	r.removeLeadingZeros()
	return r
}

// divmodMagnitude performs long division via per-digit binary search, returning
// (quotient, remainder) of |b| / |divisor|, both non-negative.
func divmodMagnitude(b, divisor BigInt) (quotient, remainder BigInt) {
	remainder = zeroBigInt()
	qDigits := make([]uint8, len(b.digits))
	for i := len(b.digits) - 1; i >= 0; i-- {
		remainder = remainder.shiftLeft(1)
		remainder.digits[0] = b.digits[i]
		remainder.removeLeadingZeros()

		lo, hi := uint8(0), uint8(9)
		var qDigit uint8
		for lo <= hi {
			mid := (lo + hi) / 2
			if cmpMagnitude(divisor.Mul(NewBigIntFromInt64(int64(mid))).digits, remainder.digits) <= 0 {
				qDigit = mid
				lo = mid + 1
			} else {
				if mid == 0 {
					break
				}
				hi = mid - 1
			}
		}
		qDigits[i] = qDigit
		remainder = remainder.Sub(divisor.Mul(NewBigIntFromInt64(int64(qDigit))))
	}
	quotient = BigInt{digits: qDigits}
	quotient.removeLeadingZeros()
	return quotient, remainder
}

// DivMod returns (quotient, remainder) of b/divisor with quotient sign
// the XOR of operand signs and remainder carrying the dividend's sign.
func (b BigInt) DivMod(divisor BigInt) (BigInt, BigInt) {
	q, r := divmodMagnitude(b.Abs(), divisor.Abs())
	q.isNegative = b.isNegative != divisor.isNegative
	q.removeLeadingZeros()
	r.isNegative = b.isNegative
	r.removeLeadingZeros()
	return q, r
}

// Div returns the truncating quotient of b/divisor.
func (b BigInt) Div(divisor BigInt) (BigInt, bool) {
	if divisor.IsZero() {
		return BigInt{}, false
	}
	q, _ := b.DivMod(divisor)
	return q, true
}

// Mod returns a%b such that |result| < |divisor| and the result carries
// the dividend's sign; if |b| < |divisor| the result is b unchanged.
func (b BigInt) Mod(divisor BigInt) (BigInt, bool) {
	if divisor.IsZero() {
		return BigInt{}, false
	}
	if cmpMagnitude(b.digits, divisor.digits) < 0 {
		return b, true
	}
	_, r := b.DivMod(divisor)
	return r, true
}

func (b BigInt) Max(o BigInt) BigInt {
	if b.Cmp(o) >= 0 {
		return b
	}
	return o
}

func (b BigInt) Min(o BigInt) BigInt {
	if b.Cmp(o) <= 0 {
		return b
	}
	return o
}

// Pow computes b raised to a non-negative integer exponent by
// square-and-multiply.
func (b BigInt) Pow(exponent BigInt) BigInt {
	result := NewBigIntFromInt64(1)
	base := b
	exp := exponent
	two := NewBigIntFromInt64(2)
	for !exp.IsZero() {
		if exp.digits[0]%2 != 0 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp, _ = exp.Div(two)
	}
	return result
}

// GCD computes the greatest common divisor via the Euclidean algorithm.
func (b BigInt) GCD(o BigInt) BigInt {
	a, c := b.Abs(), o.Abs()
	for !a.IsZero() {
		a, c = modEuclid(c, a), a
	}
	return c
}

func modEuclid(a, b BigInt) BigInt {
	r, _ := a.Mod(b)
	return r
}

// LCM computes the least common multiple.
func (b BigInt) LCM(o BigInt) BigInt {
	prod := b.Mul(o).Abs()
	g := b.GCD(o)
	q, _ := prod.Div(g)
	return q
}

// Factorial computes b! for non-negative b.
func (b BigInt) Factorial() BigInt {
	result := NewBigIntFromInt64(1)
	exp := b
	one := NewBigIntFromInt64(1)
	for exp.Cmp(one) > 0 {
		result = result.Mul(exp)
		exp = exp.Sub(one)
	}
	return result
}

func (b BigInt) IsEven() bool { return b.digits[0]%2 == 0 }
func (b BigInt) IsOdd() bool  { return !b.IsEven() }

// IntSqrt computes the integer square root of a non-negative BigInt via
// a base-4 digit-by-digit algorithm.
func (b BigInt) IntSqrt() BigInt {
	x := b
	y := zeroBigInt()
	four := NewBigIntFromInt64(4)
	p := NewBigIntFromInt64(1)
	for p.Mul(four).Cmp(x) <= 0 {
		p = p.Mul(four)
	}
	for !p.IsZero() {
		if x.Cmp(y.Add(p)) >= 0 {
			x = x.Sub(y.Add(p))
			y, _ = y.Div(two())
			y = y.Add(p)
		} else {
			y, _ = y.Div(two())
		}
		p, _ = p.Div(four)
	}
	return y
}

func two() BigInt { return NewBigIntFromInt64(2) }

const maxInt32 = 1<<31 - 1
const minInt32 = -1 << 31

var bigMaxInt32 = NewBigIntFromInt64(maxInt32)
var bigMinInt32 = NewBigIntFromInt64(minInt32)
var bigMaxInt64, _ = NewBigIntFromString("9223372036854775807")
var bigMinInt64, _ = NewBigIntFromString("-9223372036854775808")

func (b BigInt) FitsInt32() bool { return b.Cmp(bigMinInt32) >= 0 && b.Cmp(bigMaxInt32) <= 0 }
func (b BigInt) FitsInt64() bool { return b.Cmp(bigMinInt64) >= 0 && b.Cmp(bigMaxInt64) <= 0 }

// Int64 converts b to an int64, assuming FitsInt64 holds.
func (b BigInt) Int64() int64 {
	var v int64
	for i := len(b.digits) - 1; i >= 0; i-- {
		v = v*10 + int64(b.digits[i])
	}
	if b.isNegative {
		v = -v
	}
	return v
}

// Int32 converts b to an int32, assuming FitsInt32 holds.
func (b BigInt) Int32() int32 { return int32(b.Int64()) }

// Float64 converts b to the nearest double, using only the most
// significant ~17 digits for very large magnitudes.
func (b BigInt) Float64() float64 {
	const maxDigits = 17
	digits := b.digits
	extra := 0
	if len(digits) > maxDigits {
		extra = len(digits) - maxDigits
		digits = digits[extra:]
	}
	var sb strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte('0' + digits[i])
	}
	v, _ := strconv.ParseFloat(sb.String(), 64)
	for i := 0; i < extra; i++ {
		v *= 10
	}
	if b.isNegative {
		v = -v
	}
	return v
}
