package scpi

import "math"

// NumericValueKind distinguishes the literal and placeholder forms of
// spec.md §4.3's <numeric_value>: the decimal numeric element extended
// with MAXimum, MINimum, DEFault, UP and DOWN character-data forms.
// Individual commands are only required to accept MAXimum/MINimum; the
// remaining three are optional per command and their resolution depends
// on state the core has no access to (the device's current value, its
// preferred default, its step size), so it is surfaced here rather than
// collapsed into a plain float the way NextFloat/NextInt do for the two
// mandatory forms.
type NumericValueKind int

const (
	NumericLiteral NumericValueKind = iota
	NumericMaximum
	NumericMinimum
	NumericDefault
	NumericUp
	NumericDown
)

// NumericValue is the parsed form of one <numeric_value> token.
type NumericValue struct {
	Kind  NumericValueKind
	Value float64 // meaningful only when Kind == NumericLiteral
}

// NextNumericValue reads the next token as a <numeric_value>: a decimal
// numeric or one of MAXimum/MINimum/DEFault/UP/DOWN (spec.md §4.3).
func (p Parameters) NextNumericValue() (NumericValue, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return NumericValue{}, err
	}
	switch tok.Kind {
	case TokCharacterData:
		switch {
		case mnemonicShortForm("MAXimum", tok.Bytes):
			return NumericValue{Kind: NumericMaximum}, nil
		case mnemonicShortForm("MINimum", tok.Bytes):
			return NumericValue{Kind: NumericMinimum}, nil
		case mnemonicShortForm("DEFault", tok.Bytes):
			return NumericValue{Kind: NumericDefault}, nil
		case mnemonicCompare("UP", tok.Bytes):
			return NumericValue{Kind: NumericUp}, nil
		case mnemonicCompare("DOWN", tok.Bytes):
			return NumericValue{Kind: NumericDown}, nil
		default:
			return NumericValue{}, NewError(DataTypeError)
		}
	default:
		v, err := tokenToFloat64(tok)
		if err != nil {
			return NumericValue{}, err
		}
		return NumericValue{Kind: NumericLiteral, Value: v}, nil
	}
}

// Build starts a NumericBuilder for resolving v, with max/min defaulting
// to +/-math.MaxFloat64 (spec.md §4.3: "the MAXimum value refers to the
// largest value the function can currently be set to", which callers for
// an unbounded parameter never need to narrow).
func (v NumericValue) Build() *NumericBuilder {
	return &NumericBuilder{value: v, max: math.MaxFloat64, min: -math.MaxFloat64}
}

// NumericBuilder resolves a NumericValue into a concrete float64 against
// the handler-supplied bounds and default, grounded on the original's
// NumericBuilder (scpi-contrib/src/scpi1999/numeric.rs): Max/Min/Default
// are setters, Finish does the resolution.
type NumericBuilder struct {
	value      NumericValue
	max, min   float64
	hasDefault bool
	def        float64
}

// Max sets the value MAXimum resolves to.
func (b *NumericBuilder) Max(v float64) *NumericBuilder { b.max = v; return b }

// Min sets the value MINimum resolves to.
func (b *NumericBuilder) Min(v float64) *NumericBuilder { b.min = v; return b }

// Default sets the value DEFault resolves to. Without a call to Default,
// DEFault is rejected as illegal-parameter-value.
func (b *NumericBuilder) Default(v float64) *NumericBuilder {
	b.hasDefault = true
	b.def = v
	return b
}

// Finish resolves the builder's NumericValue, range-checking a literal
// value against Max/Min. UP and DOWN always fail here: stepping requires
// the handler's current value, which this builder does not carry, so a
// handler that wants to support UP/DOWN must check NumericValue.Kind
// itself before ever reaching Finish.
func (b *NumericBuilder) Finish() (float64, error) {
	switch b.value.Kind {
	case NumericMaximum:
		return b.max, nil
	case NumericMinimum:
		return b.min, nil
	case NumericDefault:
		if !b.hasDefault {
			return 0, NewError(IllegalParameterValue)
		}
		return b.def, nil
	case NumericUp, NumericDown:
		return 0, NewError(IllegalParameterValue)
	default:
		if b.value.Value > b.max || b.value.Value < b.min {
			return 0, NewError(DataOutOfRange)
		}
		return b.value.Value, nil
	}
}
