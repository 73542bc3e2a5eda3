package scpi

import (
	"math"
	"testing"
)

// TestArbitraryBlockRoundTrip covers spec.md §8 property 7: formatting a
// byte slice as arbitrary-block data then re-tokenizing it yields a single
// arbitrary-block token whose payload equals the original bytes.
func TestArbitraryBlockRoundTrip(t *testing.T) {
	tests := [][]byte{
		{},
		{0x00},
		[]byte("hello, world"),
		[]byte{0x00, 0xFF, 0x0A, 0x0D, 0x23},
	}
	for _, payload := range tests {
		fmtr := NewBoundedFormatter(4096)
		unit := fmtr.ResponseUnit()
		if err := unit.Data(Arbitrary(payload)).Finish(); err != nil {
			t.Fatalf("format arbitrary block (%d bytes): %v", len(payload), err)
		}
		msg := append(append([]byte{}, fmtr.Bytes()...), '\n')

		tok := NewTokenizer(msg)
		got, ok, err := tok.Next()
		if err != nil || !ok {
			t.Fatalf("re-tokenize: ok=%v err=%v", ok, err)
		}
		if got.Kind != TokArbitraryBlock {
			t.Fatalf("re-tokenized kind = %v, want TokArbitraryBlock", got.Kind)
		}
		if string(got.Bytes) != string(payload) {
			t.Errorf("round trip mismatch: got %q, want %q", got.Bytes, payload)
		}
	}
}

// TestFloatSpecialValueEncoding covers spec.md §4.5/§8 property 8's three
// fixed special-value strings.
func TestFloatSpecialValueEncoding(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"nan", math.NaN(), "9.91E+37"},
		{"+inf", math.Inf(1), "9.9E+37"},
		{"-inf", math.Inf(-1), "-9.9E+37"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtr := NewBoundedFormatter(64)
			if err := Float(tt.v).FormatResponseData(fmtr); err != nil {
				t.Fatalf("format: %v", err)
			}
			if got := string(fmtr.Bytes()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringResponseDoublesQuotes(t *testing.T) {
	fmtr := NewBoundedFormatter(64)
	if err := String(`say "hi"`).FormatResponseData(fmtr); err != nil {
		t.Fatalf("format: %v", err)
	}
	want := `"say ""hi"""`
	if got := string(fmtr.Bytes()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResponseUnitsSeparatedByUnitSeparator(t *testing.T) {
	fmtr := NewBoundedFormatter(64)
	if err := fmtr.ResponseUnit().Data(Int(1)).Finish(); err != nil {
		t.Fatalf("unit 1: %v", err)
	}
	if err := fmtr.ResponseUnit().Data(Int(2)).Finish(); err != nil {
		t.Fatalf("unit 2: %v", err)
	}
	want := "1;2"
	if got := string(fmtr.Bytes()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResponseUnitProducingNoDataAddsNoSeparator(t *testing.T) {
	fmtr := NewBoundedFormatter(64)
	if err := fmtr.ResponseUnit().Data(Int(1)).Finish(); err != nil {
		t.Fatalf("unit 1: %v", err)
	}
	fmtr.ResponseUnit() // a unit that writes nothing
	if err := fmtr.ResponseUnit().Data(Int(2)).Finish(); err != nil {
		t.Fatalf("unit 3: %v", err)
	}
	want := "1;2"
	if got := string(fmtr.Bytes()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestArbitraryBlockLenPrefixMatchesDecimalDigitCount(t *testing.T) {
	fmtr := NewBoundedFormatter(256)
	payload := make([]byte, 100)
	if err := Arbitrary(payload).FormatResponseData(fmtr); err != nil {
		t.Fatalf("format: %v", err)
	}
	// 100 bytes -> len is "100", whose digit count "3" is the ndigits field.
	want := "#3100" + string(payload)
	if got := string(fmtr.Bytes()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
