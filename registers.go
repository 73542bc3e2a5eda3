package scpi

// EventRegister is one 488.2/SCPI event register: condition, event, enable,
// and the positive/negative transition filters. Bit 15 is reserved and is
// always masked out of publicly observed values (spec.md §3).
type EventRegister struct {
	condition uint16
	event     uint16
	enable    uint16
	ptr       uint16
	ntr       uint16
}

const registerMask = 0x7FFF

// NewEventRegister returns a register in its power-on state: everything
// zero except PTR, which defaults to all-ones (spec.md §3 lifecycle).
func NewEventRegister() *EventRegister {
	return &EventRegister{ptr: 0xFFFF}
}

// Preset resets enable/ptr/ntr to their defined defaults without touching
// condition or event, used by STATus:PRESet (spec.md §4.6).
func (r *EventRegister) Preset() {
	r.enable = 0
	r.ptr = 0xFFFF
	r.ntr = 0
}

// Condition returns the current condition word, masked to 15 bits.
func (r *EventRegister) Condition() uint16 { return r.condition & registerMask }

// Event returns the current event word, masked to 15 bits, and clears it:
// reading the event register is destructive (spec.md §8 property 4).
func (r *EventRegister) Event() uint16 {
	v := r.event & registerMask
	r.event = 0
	return v
}

// Enable returns the enable mask.
func (r *EventRegister) Enable() uint16 { return r.enable & registerMask }

// SetEnable overwrites the enable mask.
func (r *EventRegister) SetEnable(v uint16) { r.enable = v & registerMask }

// PTR returns the positive-transition filter.
func (r *EventRegister) PTR() uint16 { return r.ptr & registerMask }

// SetPTR overwrites the positive-transition filter.
func (r *EventRegister) SetPTR(v uint16) { r.ptr = v & registerMask }

// NTR returns the negative-transition filter.
func (r *EventRegister) NTR() uint16 { return r.ntr & registerMask }

// SetNTR overwrites the negative-transition filter.
func (r *EventRegister) SetNTR(v uint16) { r.ntr = v & registerMask }

// SetCondition writes a new condition word and applies the transition law
// (spec.md §8 property 3): transitions := old XOR new; event bits are set
// where a transition intersects (new&ptr)|(^new&ntr); event is sticky
// (OR'd, never cleared here).
func (r *EventRegister) SetCondition(val uint16) {
	val &= registerMask
	old := r.condition
	transitions := old ^ val
	r.event |= transitions & ((val & r.ptr) | (^val & r.ntr))
	r.condition = val
}

// SetConditionBits ORs bits into the condition word via SetCondition.
func (r *EventRegister) SetConditionBits(bits uint16) {
	r.SetCondition(r.condition | bits)
}

// ClearConditionBits clears bits from the condition word via SetCondition.
func (r *EventRegister) ClearConditionBits(bits uint16) {
	r.SetCondition(r.condition &^ bits)
}

// Summary reports whether (condition & enable) is nonzero, the value
// propagated into the OPERation/QUEStionable summary bits of STB
// (spec.md §3/§4.6).
func (r *EventRegister) Summary() bool {
	return (r.condition&r.enable)&registerMask != 0
}

// ClearEvent zeroes only the event word, leaving condition/enable/PTR/NTR
// untouched.
func (r *EventRegister) ClearEvent() {
	r.event = 0
}
