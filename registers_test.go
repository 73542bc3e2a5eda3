package scpi

import "testing"

func TestEventRegisterTransitionLaw(t *testing.T) {
	tests := []struct {
		name          string
		old, new, ptr, ntr uint16
	}{
		{"rising-with-ptr", 0x00, 0xFF, 0xFFFF, 0x0000},
		{"falling-with-ntr", 0xFF, 0x00, 0x0000, 0xFFFF},
		{"no-filter-match", 0x00, 0xFF, 0x0000, 0x0000},
		{"mixed", 0x0F, 0xF0, 0x00F0, 0x000F},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEventRegister()
			r.SetCondition(tt.old)
			r.event = 0 // SetCondition from power-on may itself set event bits
			r.ptr = tt.ptr
			r.ntr = tt.ntr
			r.SetCondition(tt.new)

			wantTransitions := tt.old ^ tt.new
			wantEvent := wantTransitions & ((tt.new & tt.ptr) | (^tt.new & tt.ntr))
			if r.Condition() != tt.new&registerMask {
				t.Errorf("condition = %#x, want %#x", r.Condition(), tt.new&registerMask)
			}
			if r.event&registerMask != wantEvent&registerMask {
				t.Errorf("event = %#x, want %#x", r.event, wantEvent)
			}
		})
	}
}

func TestEventRegisterReadIsDestructive(t *testing.T) {
	r := NewEventRegister()
	r.ptr = 0xFFFF
	r.SetCondition(0x01)
	if r.Event() == 0 {
		t.Fatalf("expected a nonzero event word before read")
	}
	if r.Event() != 0 {
		t.Errorf("second Event() read should return 0, got nonzero")
	}
	if r.Condition() != 0x01 {
		t.Errorf("condition should be unchanged by reading event, got %#x", r.Condition())
	}
}

func TestEventRegisterSummary(t *testing.T) {
	r := NewEventRegister()
	r.SetEnable(0x0F)
	r.SetCondition(0x10)
	if r.Summary() {
		t.Errorf("summary should be false when condition doesn't intersect enable")
	}
	r.SetCondition(0x01)
	if !r.Summary() {
		t.Errorf("summary should be true when condition intersects enable")
	}
}

func TestEventRegisterPreset(t *testing.T) {
	r := NewEventRegister()
	r.SetEnable(0xFF)
	r.SetPTR(0x00)
	r.SetNTR(0xFF)
	r.SetCondition(0x01)
	r.Preset()
	if r.Enable() != 0 || r.PTR() != 0x7FFF || r.NTR() != 0 {
		t.Errorf("preset did not reset enable/ptr/ntr: %+v", r)
	}
}
