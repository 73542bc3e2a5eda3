package scpi

import "testing"

type stubCommand struct {
	BaseCommand
	name string
}

func (c stubCommand) Meta() CommandType { return NoQuery }

func (c stubCommand) Event(dev Device, ctx *Context, params Parameters) error {
	return nil
}

// TestMnemonicRoundTrip covers spec.md §8 property 1: every case variation
// of a node's declared mnemonic, down to its short-form prefix, routes to
// the same node as the full long form.
func TestMnemonicRoundTrip(t *testing.T) {
	tests := []struct {
		declared string
		variants []string
	}{
		{"TRIGger", []string{"TRIGger", "trigger", "TriGGer", "TRIG", "trig", "Trig"}},
		{"MEASure", []string{"MEASure", "measure", "MEAS", "meas"}},
		{"SYSTem", []string{"SYSTem", "system", "SYST", "syst"}},
	}
	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			for _, v := range tt.variants {
				if !matchMnemonic(tt.declared, []byte(v)) {
					t.Errorf("matchMnemonic(%q, %q) = false, want true", tt.declared, v)
				}
			}
		})
	}
}

// TestMnemonicSuffixElision covers spec.md §8 property 2: a bare mnemonic
// and its "1" suffix both route to a declared-suffix-1 (or suffix-less)
// node; an explicit "2" only matches a node declared with that suffix.
func TestMnemonicSuffixElision(t *testing.T) {
	if !matchMnemonic("TRIGger", []byte("TRIG")) {
		t.Errorf("bare mnemonic should match a suffix-less declaration")
	}
	if !matchMnemonic("TRIGger", []byte("TRIG1")) {
		t.Errorf("explicit suffix 1 should match a suffix-less declaration")
	}
	if matchMnemonic("TRIGger", []byte("TRIG2")) {
		t.Errorf("suffix 2 must not match a suffix-less (implicit 1) declaration")
	}
	if !matchMnemonic("TRIGger2", []byte("TRIG2")) {
		t.Errorf("suffix 2 should match a declaration carrying suffix 2")
	}
	if matchMnemonic("TRIGger2", []byte("TRIG")) {
		t.Errorf("bare mnemonic must not match a declaration carrying suffix 2")
	}
}

func TestTreeValidateDefaultOrdering(t *testing.T) {
	root := Branch("ROOT",
		DefaultLeaf("NEXT", stubCommand{name: "next"}),
		Leaf("ALL", stubCommand{name: "all"}),
	)
	if err := root.Validate(); err != nil {
		t.Fatalf("expected a valid tree, got %v", err)
	}

	badOrder := Branch("ROOT",
		Leaf("ALL", stubCommand{name: "all"}),
		DefaultLeaf("NEXT", stubCommand{name: "next"}),
	)
	if err := badOrder.Validate(); !IsErrTreeInvariant(err) {
		t.Errorf("expected a tree-invariant error for a default child not ordered first, got %v", err)
	}
}

func TestTreeValidateDuplicateMnemonic(t *testing.T) {
	root := Branch("ROOT",
		Leaf("TRIGger", stubCommand{name: "a"}),
		Leaf("TRIG", stubCommand{name: "b"}),
	)
	if err := root.Validate(); !IsErrTreeInvariant(err) {
		t.Errorf("expected a tree-invariant error for colliding short forms, got %v", err)
	}
}

func TestTreeValidateTwoDefaultLeaves(t *testing.T) {
	root := Branch("ROOT",
		DefaultLeaf("FIRST", stubCommand{name: "a"}),
		DefaultLeaf("SECOND", stubCommand{name: "b"}),
	)
	if err := root.Validate(); !IsErrTreeInvariant(err) {
		t.Errorf("expected a tree-invariant error for two default leaves, got %v", err)
	}
}

func TestTreeValidateCommonNodeNotAtRoot(t *testing.T) {
	root := Branch("ROOT",
		Branch("CHILD", CommonLeaf("BAD", stubCommand{name: "bad"})),
	)
	if err := root.Validate(); !IsErrTreeInvariant(err) {
		t.Errorf("expected a tree-invariant error for a common node outside root, got %v", err)
	}
}

func TestTreeValidateRealTreeIsValid(t *testing.T) {
	if err := NewRoot().Validate(); err != nil {
		t.Errorf("the built-in IEEE488/SYSTem/STATus tree should validate cleanly, got %v", err)
	}
}
