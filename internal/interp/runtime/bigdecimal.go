package runtime

import (
	"strconv"
	"strings"
)

// divisionPrecisionCap bounds how many fractional digits BigDecimal.Div
// will produce when the division does not terminate.
const divisionPrecisionCap = 100

// BigDecimal is a BigInt integer part plus a sequence of fractional
// digits stored most-significant-first (unlike BigInt's little-endian
// digits). Normalized: no trailing zeros in the fractional part, and
// zero is canonically non-negative.
type BigDecimal struct {
	integer    BigInt
	fractional []uint8
}

func NewBigDecimalFromBigInt(b BigInt) BigDecimal {
	d := BigDecimal{integer: b}
	d.removeTrailingZeros()
	return d
}

func NewBigDecimalFromInt64(v int64) BigDecimal {
	return NewBigDecimalFromBigInt(NewBigIntFromInt64(v))
}

func NewBigDecimalFromFloat64(v float64) BigDecimal {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	d, _ := NewBigDecimalFromString(s)
	return d
}

// NewBigDecimalFromString parses "[-+]?digits(.digits)?".
func NewBigDecimalFromString(s string) (BigDecimal, bool) {
	if s == "" {
		return BigDecimal{}, false
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		b, ok := NewBigIntFromString(s)
		if !ok {
			return BigDecimal{}, false
		}
		return NewBigDecimalFromBigInt(b), true
	}

	intPart := s[:dot]
	fracPart := s[dot+1:]
	if intPart == "" || intPart == "-" || intPart == "+" {
		intPart += "0"
	}
	b, ok := NewBigIntFromString(intPart)
	if !ok {
		return BigDecimal{}, false
	}
	frac := make([]uint8, len(fracPart))
	for i := 0; i < len(fracPart); i++ {
		c := fracPart[i]
		if c < '0' || c > '9' {
			return BigDecimal{}, false
		}
		frac[i] = c - '0'
	}
	// "-0.5"-style input: the integer part alone parses as non-negative
	// zero, but the value is negative.
	if b.IsZero() && strings.HasPrefix(s, "-") && len(frac) > 0 {
		b.isNegative = true
	}
	d := BigDecimal{integer: b, fractional: frac}
	d.removeTrailingZeros()
	return d, true
}

func (d *BigDecimal) removeTrailingZeros() {
	for len(d.fractional) > 0 && d.fractional[len(d.fractional)-1] == 0 {
		d.fractional = d.fractional[:len(d.fractional)-1]
	}
	if d.integer.IsZero() && len(d.fractional) == 0 {
		d.integer.isNegative = false
	}
}

func (d BigDecimal) String() string {
	s := d.integer.String()
	if len(d.fractional) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(s)
	b.WriteByte('.')
	for _, digit := range d.fractional {
		b.WriteByte('0' + digit)
	}
	return b.String()
}

// Truncate drops the fractional part entirely.
func (d BigDecimal) Truncate() BigInt { return d.integer }

// TruncateTo returns a copy whose fractional part is truncated (not
// rounded) to at most precision digits.
func (d BigDecimal) TruncateTo(precision int) BigDecimal {
	r := d
	if len(r.fractional) > precision {
		r.fractional = append([]uint8(nil), r.fractional[:precision]...)
	} else {
		r.fractional = append([]uint8(nil), r.fractional...)
	}
	r.removeTrailingZeros()
	return r
}

func (d BigDecimal) Neg() BigDecimal {
	r := d
	r.integer = d.integer.Neg()
	// A zero integer part carries the sign of a value such as -0.5, and
	// BigInt.Neg leaves zero unsigned.
	if d.integer.IsZero() && len(d.fractional) > 0 {
		r.integer.isNegative = !d.integer.isNegative
	}
	return r
}

// Abs is a pure, non-mutating absolute value (a deliberate deviation
// from the original implementation, whose BigDecimal::abs() mutates its
// receiver in place — surprising for a method of this name, and not
// reproduced here; see DESIGN.md).
func (d BigDecimal) Abs() BigDecimal {
	r := d
	r.integer = d.integer.Abs()
	return r
}

func normalizeFractional(a, b []uint8) ([]uint8, []uint8) {
	na := append([]uint8(nil), a...)
	nb := append([]uint8(nil), b...)
	for len(na) < len(nb) {
		na = append(na, 0)
	}
	for len(nb) < len(na) {
		nb = append(nb, 0)
	}
	return na, nb
}

// Cmp returns -1, 0, or 1 as d is less than, equal to, or greater than o.
func (d BigDecimal) Cmp(o BigDecimal) int {
	if d.integer.isNegative != o.integer.isNegative {
		if d.integer.isNegative {
			return -1
		}
		return 1
	}
	mag := cmpMagnitude(d.integer.digits, o.integer.digits)
	if mag == 0 {
		fa, fb := normalizeFractional(d.fractional, o.fractional)
		for i := range fa {
			if fa[i] != fb[i] {
				if fa[i] < fb[i] {
					mag = -1
				} else {
					mag = 1
				}
				break
			}
		}
	}
	if d.integer.isNegative {
		return -mag
	}
	return mag
}

func (d BigDecimal) Equal(o BigDecimal) bool { return d.Cmp(o) == 0 }
func (d BigDecimal) Less(o BigDecimal) bool  { return d.Cmp(o) < 0 }

func (d BigDecimal) Max(o BigDecimal) BigDecimal {
	if d.Cmp(o) >= 0 {
		return d
	}
	return o
}

func (d BigDecimal) Min(o BigDecimal) BigDecimal {
	if d.Cmp(o) <= 0 {
		return d
	}
	return o
}

// stripDecimal removes d's decimal point and reinterprets its digits as
// one BigInt; callers track the decimal point position themselves.
func (d BigDecimal) stripDecimal() BigInt {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.Replace(s, ".", "", 1)
	b, _ := NewBigIntFromString(s)
	if neg {
		b = b.Neg()
	}
	return b
}

// intToDecimal reconstructs a BigDecimal from a scaled integer and the
// position (counted from the right) where the decimal point belongs.
func intToDecimal(integer BigInt, decimalPointPos int) BigDecimal {
	s := integer.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if decimalPointPos >= len(s) {
		s = strings.Repeat("0", decimalPointPos-len(s)+1) + s
	}
	pos := len(s) - decimalPointPos
	s = s[:pos] + "." + s[pos:]
	if neg {
		s = "-" + s
	}
	d, _ := NewBigDecimalFromString(s)
	return d
}

// Add returns d+o.
func (d BigDecimal) Add(o BigDecimal) BigDecimal {
	if d.integer.IsZero() && len(d.fractional) == 0 {
		return o
	}
	if o.integer.IsZero() && len(o.fractional) == 0 {
		return d
	}
	fa, fb := normalizeFractional(d.fractional, o.fractional)
	pos := len(fa)
	a := BigDecimal{integer: d.integer, fractional: fa}
	b := BigDecimal{integer: o.integer, fractional: fb}
	result := a.stripDecimal().Add(b.stripDecimal())
	out := intToDecimal(result, pos)
	out.removeTrailingZeros()
	return out
}

// Sub returns d-o.
func (d BigDecimal) Sub(o BigDecimal) BigDecimal {
	return d.Add(o.Neg())
}

// Mul returns d*o.
func (d BigDecimal) Mul(o BigDecimal) BigDecimal {
	pos := len(d.fractional) + len(o.fractional)
	result := d.stripDecimal().Mul(o.stripDecimal())
	out := intToDecimal(result, pos)
	out.removeTrailingZeros()
	return out
}

// Div divides d by o to divisionPrecisionCap fractional digits, or fewer
// if the division terminates earlier. ok=false on division by zero.
func (d BigDecimal) Div(o BigDecimal) (BigDecimal, bool) {
	return d.DivWithPrecision(o, divisionPrecisionCap)
}

// DivWithPrecision is Div with an explicit fractional-digit cap, used
// internally by Sqrt's Newton iteration.
func (d BigDecimal) DivWithPrecision(o BigDecimal, limit int) (BigDecimal, bool) {
	if o.integer.IsZero() && len(o.fractional) == 0 {
		return BigDecimal{}, false
	}
	a, b := d.Abs(), o.Abs()
	fa, fb := normalizeFractional(a.fractional, b.fractional)
	a.fractional, b.fractional = fa, fb

	dividend := a.stripDecimal()
	divisor := b.stripDecimal()

	quotient, remainder := dividend.DivMod(divisor)
	var sb strings.Builder
	sb.WriteString(quotient.String())
	sb.WriteByte('.')
	precision := 0
	for !remainder.IsZero() && precision < limit {
		remainder = remainder.Mul(NewBigIntFromInt64(10))
		q, r := remainder.DivMod(divisor)
		sb.WriteByte('0' + byte(q.Int64()))
		remainder = r
		precision++
	}

	result, _ := NewBigDecimalFromString(sb.String())
	if d.integer.IsPositive() != o.integer.IsPositive() {
		result = result.Neg()
	}
	result.removeTrailingZeros()
	return result, true
}

// Mod returns d modulo o: the remainder after subtracting o times the
// truncated quotient of d/o.
func (d BigDecimal) Mod(o BigDecimal) (BigDecimal, bool) {
	q, ok := d.Div(o)
	if !ok {
		return BigDecimal{}, false
	}
	truncatedQuotient := NewBigDecimalFromBigInt(q.Truncate())
	return d.Sub(o.Mul(truncatedQuotient)), true
}

// Pow computes d raised to a non-negative integer exponent by
// square-and-multiply.
func (d BigDecimal) Pow(exponent BigInt) BigDecimal {
	result := NewBigDecimalFromInt64(1)
	base := d
	exp := exponent
	two := NewBigIntFromInt64(2)
	for !exp.IsZero() {
		if r, _ := exp.Mod(two); !r.IsZero() {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp, _ = exp.Div(two)
	}
	return result
}

// GCD and LCM mirror BigInt's, operating over BigDecimal values (an
// unusual domain, carried over faithfully from the original's
// supplementary-operation surface).
func (d BigDecimal) GCD(o BigDecimal) BigDecimal {
	a, b := d.Abs(), o.Abs()
	for !(a.integer.IsZero() && len(a.fractional) == 0) {
		r, _ := b.Mod(a)
		a, b = r, a
	}
	return b
}

func (d BigDecimal) LCM(o BigDecimal) BigDecimal {
	prod := d.Mul(o).Abs()
	g := d.GCD(o)
	q, _ := prod.Div(g)
	return q
}

// Sqrt computes the square root of d to precision fractional digits
// using Newton's iteration, capped at 50 iterations.
func (d BigDecimal) Sqrt(precision int) (BigDecimal, bool) {
	if !d.integer.IsPositive() && !(d.integer.IsZero() && len(d.fractional) == 0) {
		return BigDecimal{}, false
	}
	one := NewBigDecimalFromInt64(1)
	if d.Cmp(NewBigDecimalFromInt64(0)) == 0 || d.Cmp(one) == 0 {
		return d, true
	}

	epsilonStr := "0." + strings.Repeat("0", precision-1) + "1"
	epsilon, _ := NewBigDecimalFromString(epsilonStr)

	var x BigDecimal
	if d.Cmp(one) > 0 {
		intPart := d.Truncate()
		length := len(intPart.String())
		if intPart.isNegative {
			length--
		}
		p := NewBigIntFromInt64(10).Pow(NewBigIntFromInt64(int64((length + 1) / 2)))
		x = NewBigDecimalFromBigInt(p)
		if len(d.fractional) > 0 {
			divisor := NewBigDecimalFromInt64(10).Pow(NewBigIntFromInt64(int64(len(d.fractional) / 2)))
			x, _ = x.DivWithPrecision(divisor, precision)
		}
	} else {
		x = d.Mul(NewBigDecimalFromInt64(10).Pow(NewBigIntFromInt64(int64(precision / 2))))
	}

	const maxIterations = 50
	for i := 0; i < maxIterations; i++ {
		sDivX, ok := d.DivWithPrecision(x, precision)
		if !ok {
			break
		}
		sum := x.Add(sDivX)
		next, ok := sum.DivWithPrecision(NewBigDecimalFromInt64(2), precision)
		if !ok {
			break
		}
		next = next.TruncateTo(precision)
		if next.Sub(x).Abs().Cmp(epsilon) <= 0 {
			return next, true
		}
		x = next
	}
	return x.TruncateTo(precision), true
}

// Float64 converts d to the nearest double.
func (d BigDecimal) Float64() float64 {
	v, _ := strconv.ParseFloat(d.String(), 64)
	return v
}
