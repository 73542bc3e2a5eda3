package scpi

import "testing"

func TestAsciiEqualFold(t *testing.T) {
	tests := []struct {
		name string
		a, b byte
		want bool
	}{
		{"same", 'A', 'A', true},
		{"case-insensitive", 'a', 'A', true},
		{"case-insensitive-reversed", 'A', 'a', true},
		{"digit-equal", '5', '5', true},
		{"mismatch", 'A', 'B', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asciiEqualFold(tt.a, tt.b); got != tt.want {
				t.Errorf("asciiEqualFold(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
