package runtime

// ConvertTo attempts to convert v to the target dynamic type tag,
// following the conversion table of spec.md §4.1. changed reports
// whether an actual conversion took place (so callers can decide whether
// an ImplicitConversionWarning is warranted); ok is false when the pair
// is not convertible at all.
func ConvertTo(v Value, target string) (result Value, changed bool, ok bool) {
	if v.Type() == target {
		return v, false, true
	}

	switch src := v.(type) {
	case DecimalValue:
		switch target {
		case TagInteger:
			return NewInteger(IntegerFromFloat64(src.Value)), true, true
		case TagBigDecimal:
			return BigDecimalValue{Value: NewBigDecimalFromFloat64(src.Value)}, true, true
		}
	case BigDecimalValue:
		switch target {
		case TagInteger:
			return NewInteger(IntegerFromBigDecimal(src.Value)), true, true
		case TagDecimal:
			return DecimalValue{Value: src.Value.Float64()}, true, true
		}
	case IntegerValue:
		switch target {
		case TagDecimal:
			return DecimalValue{Value: src.Value.Float64()}, true, true
		case TagBigDecimal:
			return BigDecimalValue{Value: src.Value.ToBigDecimal()}, true, true
		case TagBoolean:
			return BooleanValue{Value: src.Value.Bool()}, true, true
		}
	case BooleanValue:
		b := int64(0)
		if src.Value {
			b = 1
		}
		switch target {
		case TagInteger:
			return NewInteger(NewIntegerI32(int32(b))), true, true
		case TagDecimal:
			return DecimalValue{Value: float64(b)}, true, true
		case TagBigDecimal:
			return BigDecimalValue{Value: NewBigDecimalFromInt64(b)}, true, true
		}
	case NilValue:
		switch target {
		case TagInteger:
			return NewInteger(NewIntegerI32(0)), true, true
		case TagDecimal:
			return DecimalValue{Value: 0}, true, true
		case TagBigDecimal:
			return BigDecimalValue{Value: NewBigDecimalFromInt64(0)}, true, true
		case TagBoolean:
			return BooleanValue{Value: false}, true, true
		}
	}

	return nil, false, false
}

// Promote converts both a and b up to the higher-priority of their two
// types. aChanged/bChanged report whether each side actually converted.
func Promote(a, b Value) (pa, pb Value, aChanged, bChanged, ok bool) {
	target := HigherPriority(a.Type(), b.Type())
	ca, achg, aok := ConvertTo(a, target)
	cb, bchg, bok := ConvertTo(b, target)
	if !aok || !bok {
		return a, b, false, false, false
	}
	return ca, cb, achg, bchg, true
}
