package scpi

import (
	"math"
	"strconv"
	"strings"
)

// Parameters presents the data-token stream of one command unit to a
// handler (spec.md §4.3). It wraps a PeekTokenizer positioned just after
// the header of the unit currently being dispatched.
type Parameters struct {
	p *PeekTokenizer
}

// NewParameters wraps toka for use by a Command's Event/Query method.
func NewParameters(toka *PeekTokenizer) Parameters {
	return Parameters{p: toka}
}

// NextOptionalToken consumes and returns the next data token, or
// (Token{}, false, nil) if no data token is present (spec.md §4.3). The
// single header separator (the whitespace between a header and its
// parameter list) is transparently skipped, since the dispatcher hands the
// tokenizer to Parameters without consuming it first; a data separator
// (',') guarantees a following parameter and so escalates to NextToken
// instead of silently reporting "no data".
func (p Parameters) NextOptionalToken() (Token, bool, error) {
	tok, ok, err := p.p.Peek()
	if err != nil {
		return Token{}, false, err
	}
	if !ok {
		return Token{}, false, nil
	}
	if tok.IsData() {
		p.p.Next()
		return tok, true, nil
	}
	if tok.Kind == TokHeaderSeparator {
		p.p.Next()
		return p.NextOptionalToken()
	}
	if tok.Kind == TokDataSeparator {
		p.p.Next()
		return p.NextToken()
	}
	return Token{}, false, nil
}

// NextToken is NextOptionalToken but returns MissingParameter when no data
// token is available.
func (p Parameters) NextToken() (Token, bool, error) {
	tok, present, err := p.NextOptionalToken()
	if err != nil {
		return Token{}, true, err
	}
	if !present {
		return Token{}, true, NewError(MissingParameter)
	}
	return tok, true, nil
}

// HasNext reports whether at least one more data token is available without
// consuming it (used by handlers with optional trailing parameters). A
// header separator is consumed first, as in NextOptionalToken; a data
// separator is left in place and counts as a following parameter.
func (p Parameters) HasNext() (bool, error) {
	for {
		tok, ok, err := p.p.Peek()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if tok.Kind == TokHeaderSeparator {
			p.p.Next()
			continue
		}
		return tok.IsData() || tok.Kind == TokDataSeparator, nil
	}
}

func mnemonicCompare(want string, got []byte) bool {
	if len(want) != len(got) {
		return false
	}
	for i := 0; i < len(want); i++ {
		if !asciiEqualFold(want[i], got[i]) {
			return false
		}
	}
	return true
}

// NextString converts the next token to a text string: StringProgramData or
// ArbitraryBlockData only (spec.md §4.3).
func (p Parameters) NextString() (string, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return "", err
	}
	switch tok.Kind {
	case TokStringData, TokArbitraryBlock:
		return string(tok.Bytes), nil
	default:
		return "", NewError(DataTypeError)
	}
}

// NextBytes converts the next token to a byte string: StringProgramData
// only (spec.md §4.3).
func (p Parameters) NextBytes() ([]byte, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokStringData {
		return nil, NewError(DataTypeError)
	}
	return tok.Bytes, nil
}

// NextBool converts the next token to a boolean: numeric (nonzero is true)
// or ON/OFF character data (spec.md §4.3).
func (p Parameters) NextBool() (bool, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return false, err
	}
	switch tok.Kind {
	case TokDecimalNumeric, TokNonDecimalNumeric:
		v, err := tokenToInt64(tok)
		if err != nil {
			return false, err
		}
		return v != 0, nil
	case TokCharacterData:
		if mnemonicCompare("ON", tok.Bytes) {
			return true, nil
		}
		if mnemonicCompare("OFF", tok.Bytes) {
			return false, nil
		}
		return false, NewError(IllegalParameterValue)
	default:
		return false, NewError(DataTypeError)
	}
}

// NextFloat converts the next token to a float64, honoring INFinity,
// NINFinity, NAN, MAXimum, MINimum character data (spec.md §4.3).
func (p Parameters) NextFloat() (float64, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return 0, err
	}
	return tokenToFloat64(tok)
}

// NextInt converts the next token to an int64, rounding NR2/NR3 half away
// from zero, honoring MAXimum/MINimum character data (spec.md §4.3, §9).
func (p Parameters) NextInt() (int64, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return 0, err
	}
	return tokenToInt64(tok)
}

// NextUnit converts the next token to a float64 expressed in dim's SI
// base unit: a bare decimal numeric is taken to already be in the base
// unit, and a decimal-numeric-with-suffix is accepted only if its suffix
// names one of dim's table entries (spec.md §4.3). A suffix that parses
// fine but doesn't belong to dim is illegal-parameter-value, not a data
// type error - the token decoded correctly, it's just the wrong unit for
// this command (mirrors the original's per-dimension TryFrom impls in
// scpi/src/parser/suffix.rs, which return IllegalParameterValue rather
// than DataTypeError on an unrecognized suffix).
func (p Parameters) NextUnit(dim UnitDimension) (float64, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case TokDecimalNumeric:
		return tokenToFloat64(tok)
	case TokDecimalNumericSuffix:
		raw, err := strconv.ParseFloat(string(tok.Bytes), 64)
		if err != nil {
			return 0, NewError(InvalidCharacterInNumber)
		}
		conv, ok := lookupUnit(dim, tok.Suffix)
		if !ok {
			return 0, NewError(IllegalParameterValue)
		}
		return raw*conv.Multiplier + conv.Offset, nil
	case TokCharacterData:
		return tokenToFloat64(tok)
	default:
		return 0, NewError(DataTypeError)
	}
}

// NextNumericList converts the next token to a parsed NumericList
// (spec.md §4.2/§4.3).
func (p Parameters) NextNumericList() ([]NumericListItem, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokExpressionData {
		return nil, NewError(DataTypeError)
	}
	return ParseNumericList(tok.Bytes)
}

// NextChannelList converts the next token to a parsed ChannelList
// (spec.md §4.2/§4.3).
func (p Parameters) NextChannelList() ([]ChannelListItem, error) {
	tok, _, err := p.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokExpressionData {
		return nil, NewError(DataTypeError)
	}
	return ParseChannelList(tok.Bytes)
}

func tokenToFloat64(tok Token) (float64, error) {
	switch tok.Kind {
	case TokDecimalNumeric:
		v, err := strconv.ParseFloat(string(tok.Bytes), 64)
		if err != nil {
			return 0, NewError(InvalidCharacterInNumber)
		}
		return v, nil
	case TokCharacterData:
		switch {
		case mnemonicCompare("INFinity", tok.Bytes), mnemonicShortForm("INFinity", tok.Bytes):
			return math.Inf(1), nil
		case mnemonicCompare("NINFinity", tok.Bytes), mnemonicShortForm("NINFinity", tok.Bytes):
			return math.Inf(-1), nil
		case mnemonicCompare("NAN", tok.Bytes), mnemonicShortForm("NAN", tok.Bytes):
			return math.NaN(), nil
		case mnemonicShortForm("MAXimum", tok.Bytes):
			return math.MaxFloat64, nil
		case mnemonicShortForm("MINimum", tok.Bytes):
			return -math.MaxFloat64, nil
		case mnemonicShortForm("DEFault", tok.Bytes), mnemonicCompare("UP", tok.Bytes), mnemonicCompare("DOWN", tok.Bytes):
			// Recognized <numeric_value> keywords (spec.md §4.3), but
			// resolving them needs the handler's own state (its default,
			// its current value for stepping); NextFloat/NextInt can't
			// produce a float for them. A handler that wants DEFault/UP/
			// DOWN support calls NextNumericValue instead.
			return 0, NewError(IllegalParameterValue)
		default:
			return 0, NewError(DataTypeError)
		}
	case TokDecimalNumericSuffix:
		return 0, NewError(SuffixNotAllowed)
	default:
		return 0, NewError(DataTypeError)
	}
}

func tokenToInt64(tok Token) (int64, error) {
	switch tok.Kind {
	case TokDecimalNumeric:
		if v, err := strconv.ParseInt(string(tok.Bytes), 10, 64); err == nil {
			return v, nil
		}
		f, err := strconv.ParseFloat(string(tok.Bytes), 64)
		if err != nil {
			return 0, NewError(InvalidCharacterInNumber)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, NewError(DataOutOfRange)
		}
		return roundHalfAwayFromZero(f), nil
	case TokNonDecimalNumeric:
		return int64(tok.NonDec), nil
	case TokCharacterData:
		switch {
		case mnemonicShortForm("MAXimum", tok.Bytes):
			return math.MaxInt64, nil
		case mnemonicShortForm("MINimum", tok.Bytes):
			return math.MinInt64, nil
		case mnemonicShortForm("DEFault", tok.Bytes), mnemonicCompare("UP", tok.Bytes), mnemonicCompare("DOWN", tok.Bytes):
			return 0, NewError(IllegalParameterValue)
		default:
			return 0, NewError(DataTypeError)
		}
	case TokDecimalNumericSuffix:
		return 0, NewError(SuffixNotAllowed)
	default:
		return 0, NewError(DataTypeError)
	}
}

// roundHalfAwayFromZero resolves spec.md §9's open question on float-to-int
// rounding mode.
func roundHalfAwayFromZero(f float64) int64 {
	if f >= 0 {
		return int64(f + 0.5)
	}
	return int64(f - 0.5)
}

// mnemonicShortForm reports whether got matches the short-or-long form of
// the canonical mnemonic name (uppercase-prefix rule, spec.md §3 "Header"),
// case-insensitively.
func mnemonicShortForm(name string, got []byte) bool {
	shortLen := 0
	for shortLen < len(name) && name[shortLen] >= 'A' && name[shortLen] <= 'Z' {
		shortLen++
	}
	short := name[:shortLen]
	long := strings.ToUpper(name)
	g := strings.ToUpper(string(got))
	return g == strings.ToUpper(short) || g == long
}
